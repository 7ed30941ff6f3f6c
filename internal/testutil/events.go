package testutil

import (
	"context"
	"sync"
	"time"

	"event-manager/internal/domains/event/model"
)

// MemoryEventRepo is an in-memory stand-in for the Postgres event repository.
// It keeps insertion order and can be told to fail every call.
type MemoryEventRepo struct {
	mu     sync.Mutex
	order  []string
	events map[string]model.Event

	Err error
}

func NewMemoryEventRepo() *MemoryEventRepo {
	return &MemoryEventRepo{events: map[string]model.Event{}}
}

func (r *MemoryEventRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *MemoryEventRepo) Create(ctx context.Context, e *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events[e.ID] = *e
	r.order = append(r.order, e.ID)
	return nil
}

func (r *MemoryEventRepo) List(ctx context.Context) ([]model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]model.Event, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.events[id])
	}
	return out, nil
}

func (r *MemoryEventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	e, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *MemoryEventRepo) Update(ctx context.Context, id string, in model.EventInput, updatedAt time.Time) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	e, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	in.Apply(&e)
	e.UpdatedAt = updatedAt
	r.events[id] = e
	return &e, nil
}

func (r *MemoryEventRepo) Delete(ctx context.Context, id string) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	e, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	delete(r.events, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &e, nil
}

func (r *MemoryEventRepo) SetMintAddress(ctx context.Context, id, address string, updatedAt time.Time) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	e, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	e.NFTMintAddress = &address
	e.UpdatedAt = updatedAt
	r.events[id] = e
	return &e, nil
}

func (r *MemoryEventRepo) ListImageURLs(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	urls := make([]string, 0)
	seen := map[string]bool{}
	for _, id := range r.order {
		img := r.events[id].ImageURL
		if img == nil || *img == "" || seen[*img] {
			continue
		}
		seen[*img] = true
		urls = append(urls, *img)
	}
	return urls, nil
}

// StepClock advances by Step on every call to Now.
type StepClock struct {
	mu   sync.Mutex
	next time.Time
	Step time.Duration
}

func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{next: start.UTC(), Step: step}
}

func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(c.Step)
	return now
}
