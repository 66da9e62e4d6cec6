// Package shared holds helpers used by several use cases.
package shared

import (
	"context"
	"fmt"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/history"
	"github.com/runoshun/taskboard/internal/tracker"
)

// Board loads a tracker from a snapshot store, lets a use case work on it
// and writes it back. This centralizes the pattern every command follows:
//
//	snap, err := store.Load(ctx)
//	tr, err := tracker.Restore(snap, opts)
//	... mutate tr ...
//	err = store.Save(ctx, tr.Snapshot())
type Board struct {
	store  domain.SnapshotStore
	config *domain.Config
	clock  domain.Clock
}

// NewBoard creates a Board. A nil config uses the defaults.
func NewBoard(store domain.SnapshotStore, cfg *domain.Config, clock domain.Clock) *Board {
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}
	return &Board{
		store:  store,
		config: cfg,
		clock:  clock,
	}
}

// Options returns the tracker options derived from the config.
func (b *Board) Options() tracker.Options {
	start, end := b.config.Schedule.Horizon(b.clock.Now())
	return tracker.Options{
		HorizonStart: start,
		HorizonEnd:   end,
		History:      history.New(b.config.History.Limit),
	}
}

// Open restores a tracker from the store.
// Returns domain.ErrNotInitialized if the store was never initialized.
func (b *Board) Open(ctx context.Context) (*tracker.Tracker, error) {
	if !b.store.IsInitialized() {
		return nil, domain.ErrNotInitialized
	}
	snap, err := b.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	tr, err := tracker.Restore(snap, b.Options())
	if err != nil {
		return nil, fmt.Errorf("restore tracker: %w", err)
	}
	return tr, nil
}

// Save writes the tracker state back to the store.
func (b *Board) Save(ctx context.Context, tr *tracker.Tracker) error {
	if err := b.store.Save(ctx, tr.Snapshot()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Update opens the tracker, runs fn and saves the result.
// Nothing is saved if fn fails.
func (b *Board) Update(ctx context.Context, fn func(tr *tracker.Tracker) error) error {
	tr, err := b.Open(ctx)
	if err != nil {
		return err
	}
	if err := fn(tr); err != nil {
		return err
	}
	return b.Save(ctx, tr)
}

// View opens the tracker and runs fn without saving.
func (b *Board) View(ctx context.Context, fn func(tr *tracker.Tracker) error) error {
	tr, err := b.Open(ctx)
	if err != nil {
		return err
	}
	return fn(tr)
}
