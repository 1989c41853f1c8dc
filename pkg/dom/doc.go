/*
Package dom implements the visual tree the drag engine operates on.

It is a deliberately small stand-in for a browser document: nodes form an
ordered tree, containers lay their children out along an axis, every node has
a bounding rect, and ElementFromPoint answers "what is under the pointer".
Hosts (terminal UIs, HTTP clients, tests) describe their widgets as nodes and
let the engine move them around.

# Layout

Layout is lazy. Any structural or geometric mutation marks the owning
document dirty and the next Rect or ElementFromPoint call recomputes it, the
same way a browser reflows after DOM changes.

  - FlowVertical / FlowHorizontal containers stack children with padding and gap,
    auto-sizing along any zero dimension.
  - FlowNone nodes place children at their own position relative to the parent.
  - Absolute nodes use document coordinates (the drag mirror is one).
*/
package dom
