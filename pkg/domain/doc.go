/*
Package domain contains the core domain models for the Wayfinder maze editor.

It defines the grid that users paint on, the closed enumerations that adapters cycle
through, and the result of a search run. This package is kept pure and free of I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Cell: The state of a single grid square (Empty, Wall, Explored, Path, Start, Destination).
  - Grid: A fixed-size rectangle of cells with bounds-checked, tolerant mutators.
  - Mode: The search strategy (BFS, DFS, Greedy BFS, A*), cyclable in a stable order.
  - DrawMode: What a paint stroke writes in the editor (Walls, Agent, Destination).
  - Result: The ordered explored cells and the reconstructed path of a search.
*/
package domain
