package store

import (
	"context"

	"github.com/evgenshkuropat/shiftmate-bot/internal/domain"
)

// Repo persists whole snapshots of the bot state. Loading happens once on
// startup; saving replaces everything after any mutation. Snapshots stay tiny,
// one anchor and a handful of reminders per user.
type Repo interface {
	LoadAll(ctx context.Context) (map[int64]domain.Anchor, map[int64][]*domain.Reminder, error)
	SaveAll(ctx context.Context, anchors map[int64]domain.Anchor, reminders map[int64][]*domain.Reminder) error
	Close() error
}
