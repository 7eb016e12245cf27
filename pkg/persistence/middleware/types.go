package middleware

import "github.com/aretw0/wayfinder/pkg/ports"

// Middleware allows wrapping a MazeStore to add behavior.
type Middleware func(ports.MazeStore) ports.MazeStore

// Chain wraps store with mws. The first middleware is the outermost.
func Chain(store ports.MazeStore, mws ...Middleware) ports.MazeStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
