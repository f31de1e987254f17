// ABOUTME: Conversation storage interface and its in-memory implementation.
// ABOUTME: MemoryRepository is safe for concurrent HTTP handlers.
package chat

import (
	"context"
	"sync"
)

// Repository persists conversations.
type Repository interface {
	// Get returns a copy of the conversation or ErrNotFound.
	Get(ctx context.Context, id string) (*Conversation, error)
	// Append adds messages, creating the conversation when absent.
	Append(ctx context.Context, id string, msgs ...Message) error
	// Delete removes the conversation or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// MemoryRepository keeps conversations in a map.
type MemoryRepository struct {
	mu    sync.RWMutex
	convs map[string]*Conversation
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{convs: make(map[string]*Conversation)}
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conv, ok := r.convs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &Conversation{ID: conv.ID, Messages: append([]Message{}, conv.Messages...)}, nil
}

func (r *MemoryRepository) Append(_ context.Context, id string, msgs ...Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.convs[id]
	if !ok {
		conv = &Conversation{ID: id, Messages: []Message{}}
		r.convs[id] = conv
	}
	conv.Messages = append(conv.Messages, msgs...)
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.convs[id]; !ok {
		return ErrNotFound
	}
	delete(r.convs, id)
	return nil
}
