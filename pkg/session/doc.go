/*
Package session serialises access to stored mazes.

A Manager wraps a ports.MazeStore with a per-maze in-process lock and, when
configured, a ports.DistributedLocker so that several replicas never edit or
solve the same maze at once.
*/
package session
