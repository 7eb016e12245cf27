package http

import (
	"log/slog"
	"sync"
)

// StreamManager fans maze events out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // maze name -> set of channels
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a buffered channel for maze events. Call the returned
// function to unsubscribe; it closes the channel.
func (sm *StreamManager) Subscribe(maze string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[maze]; !ok {
		sm.subscribers[maze] = make(map[chan<- string]struct{})
	}
	sm.subscribers[maze][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[maze]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, maze)
			}
		}
	}
}

// Subscribers returns the number of listeners for maze.
func (sm *StreamManager) Subscribers(maze string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[maze])
}

// Broadcast sends msg to every subscriber of maze. Slow clients miss messages
// rather than block the request that produced them.
func (sm *StreamManager) Broadcast(maze string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[maze] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: Client buffer full, dropping message", "maze", maze)
		}
	}
}
