package instruction

import (
	"context"
	"sort"
	"sync"
	"time"
)

// DefaultHistoryLimit bounds history listings when no limit is given.
const DefaultHistoryLimit = 50

// HistoryEntry is the metadata kept for one generated document. Document
// content is never stored.
type HistoryEntry struct {
	ID        string        `json:"id"`
	Category  CategoryKey   `json:"kategorie"`
	Filename  string        `json:"filename"`
	Bytes     int64         `json:"bytes"`
	Pages     int           `json:"pages"`
	CreatedAt time.Time     `json:"created_at"`
	Duration  time.Duration `json:"duration"`
}

// History records generated documents.
type History interface {
	Record(ctx context.Context, entry HistoryEntry) error
	List(ctx context.Context, limit int) ([]HistoryEntry, error)
}

// MemoryHistory keeps the most recent entries in memory.
type MemoryHistory struct {
	Max int

	mu      sync.RWMutex
	entries []HistoryEntry
}

// NewMemoryHistory creates a history holding at most max entries.
func NewMemoryHistory(max int) *MemoryHistory {
	return &MemoryHistory{Max: max}
}

func (h *MemoryHistory) Record(ctx context.Context, entry HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entry.ID == "" {
		return NewError(KindInvalidInput, "history entry id required", nil)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, entry)
	// Oldest by CreatedAt first, so trimming evicts what List ranks last.
	sort.SliceStable(h.entries, func(i, j int) bool {
		return h.entries[i].CreatedAt.Before(h.entries[j].CreatedAt)
	})
	if h.Max > 0 && len(h.entries) > h.Max {
		h.entries = append([]HistoryEntry(nil), h.entries[len(h.entries)-h.Max:]...)
	}
	return nil
}

// List returns entries newest first. Entries with equal timestamps are
// returned in reverse recording order.
func (h *MemoryHistory) List(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	h.mu.RLock()
	out := make([]HistoryEntry, 0, len(h.entries))
	for i := len(h.entries) - 1; i >= 0; i-- {
		out = append(out, h.entries[i])
	}
	h.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
