package historybun

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-betriebsanweisung/instruction"
	"github.com/uptrace/bun"
)

// Store keeps generation history in a Bun-backed database.
type Store struct {
	DB  *bun.DB
	Max int
	Now func() time.Time
}

var _ instruction.History = (*Store)(nil)

// NewStore creates a Bun-backed history store.
func NewStore(db *bun.DB) *Store {
	return &Store{DB: db, Now: time.Now}
}

// CreateSchema creates the history table when it is missing.
func (s *Store) CreateSchema(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return instruction.NewError(instruction.KindNotImpl, "history database not configured", nil)
	}
	_, err := s.DB.NewCreateTable().Model((*entryModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Record stores one history entry and prunes entries beyond Max.
func (s *Store) Record(ctx context.Context, entry instruction.HistoryEntry) error {
	if s == nil || s.DB == nil {
		return instruction.NewError(instruction.KindNotImpl, "history database not configured", nil)
	}
	if entry.ID == "" {
		return instruction.NewError(instruction.KindInvalidInput, "history entry id required", nil)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}

	model := modelFromEntry(entry)
	if _, err := s.DB.NewInsert().Model(&model).Exec(ctx); err != nil {
		return err
	}
	if s.Max > 0 {
		return s.Prune(ctx, s.Max)
	}
	return nil
}

// List returns entries newest first.
func (s *Store) List(ctx context.Context, limit int) ([]instruction.HistoryEntry, error) {
	if s == nil || s.DB == nil {
		return nil, instruction.NewError(instruction.KindNotImpl, "history database not configured", nil)
	}
	if limit <= 0 {
		limit = instruction.DefaultHistoryLimit
	}

	models := make([]entryModel, 0)
	err := s.DB.NewSelect().Model(&models).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]instruction.HistoryEntry, 0, len(models))
	for _, model := range models {
		entries = append(entries, model.toEntry())
	}
	return entries, nil
}

// Get returns a single entry by ID.
func (s *Store) Get(ctx context.Context, id string) (instruction.HistoryEntry, error) {
	if s == nil || s.DB == nil {
		return instruction.HistoryEntry{}, instruction.NewError(instruction.KindNotImpl, "history database not configured", nil)
	}
	if id == "" {
		return instruction.HistoryEntry{}, instruction.NewError(instruction.KindInvalidInput, "history entry id required", nil)
	}

	model := new(entryModel)
	err := s.DB.NewSelect().Model(model).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return instruction.HistoryEntry{}, instruction.NewError(instruction.KindNotFound, fmt.Sprintf("history entry %q not found", id), nil)
		}
		return instruction.HistoryEntry{}, err
	}
	return model.toEntry(), nil
}

// Prune deletes all but the newest keep entries.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if s == nil || s.DB == nil {
		return instruction.NewError(instruction.KindNotImpl, "history database not configured", nil)
	}
	if keep <= 0 {
		return nil
	}

	newest := s.DB.NewSelect().Model((*entryModel)(nil)).
		Column("id").
		Order("created_at DESC").
		Limit(keep)
	_, err := s.DB.NewDelete().Model((*entryModel)(nil)).
		Where("id NOT IN (?)", newest).
		Exec(ctx)
	return err
}

type entryModel struct {
	bun.BaseModel `bun:"table:instruction_history,alias:instruction_history"`

	ID         string    `bun:",pk"`
	Category   string    `bun:",notnull"`
	Filename   string    `bun:"filename"`
	Bytes      int64     `bun:"bytes"`
	Pages      int       `bun:"pages"`
	DurationMS int64     `bun:"duration_ms"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}

func modelFromEntry(entry instruction.HistoryEntry) entryModel {
	return entryModel{
		ID:         entry.ID,
		Category:   string(entry.Category),
		Filename:   entry.Filename,
		Bytes:      entry.Bytes,
		Pages:      entry.Pages,
		DurationMS: entry.Duration.Milliseconds(),
		CreatedAt:  entry.CreatedAt,
	}
}

func (m entryModel) toEntry() instruction.HistoryEntry {
	return instruction.HistoryEntry{
		ID:        m.ID,
		Category:  instruction.CategoryKey(m.Category),
		Filename:  m.Filename,
		Bytes:     m.Bytes,
		Pages:     m.Pages,
		CreatedAt: m.CreatedAt,
		Duration:  time.Duration(m.DurationMS) * time.Millisecond,
	}
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
