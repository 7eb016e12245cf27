/*
Package ports defines the driven ports (interfaces) for the Wayfinder service.

These interfaces decouple the maze service from external implementations, allowing
it to work with various storage backends and locking strategies.

# Key Interfaces

  - MazeStore: Responsible for persisting and loading named grids.
  - DistributedLocker: Serialises edits and searches on the same maze across replicas.
  - Solver: The search surface adapters drive (HTTP, MCP, CLI).
*/
package ports
