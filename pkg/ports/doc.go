/*
Package ports defines the driven ports (interfaces) of drake's adapters.

The engine itself is storage-agnostic; these interfaces let hosts keep board
layouts across restarts and coordinate writes between replicas.

# Key Interfaces

  - LayoutStore: persists and loads board layouts (memory, Redis).
  - DistributedLocker: serializes layout writes across instances.
*/
package ports
