/*
Package domain contains the core domain models of the drake engine.

It defines the vocabulary shared by the state machine, its collaborators and
every adapter: drag phases, axis directions, pointer events, lifecycle events
and listeners, board layouts and sentinel errors. The package holds no
behavior beyond small value helpers and depends only on the visual tree.

# Key Entities

  - Phase: where the drag state machine currently is (idle, grabbed, dragging)
    or how a session ended (dropped, canceled, removed).
  - Event: a lifecycle notification (drag, shadow, drop, dragend, ...).
  - PointerEvent: the uniform pointer stream the engine consumes.
  - Layout: the ordered arrangement of a board, as stored by adapters.
*/
package domain
