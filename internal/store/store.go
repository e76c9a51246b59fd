package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/evgenshkuropat/shiftmate-bot/internal/domain"
)

// Store holds the per-user state shared by the message handlers and the
// scheduler: shift anchors, reminders and in-progress reminder drafts.
// All mutation is atomic per key with respect to concurrent readers; the
// due-check scan never observes a reminder mid-update.
//
// Drafts are conversational state only and are not persisted.
type Store struct {
	mu   sync.RWMutex
	log  *zap.Logger
	repo Repo

	anchors   map[int64]domain.Anchor
	reminders map[int64][]*domain.Reminder
	drafts    map[int64]domain.Draft
}

func New(repo Repo, log *zap.Logger) *Store {
	return &Store{
		log:       log,
		repo:      repo,
		anchors:   make(map[int64]domain.Anchor),
		reminders: make(map[int64][]*domain.Reminder),
		drafts:    make(map[int64]domain.Draft),
	}
}

// Load replaces the in-memory state with the persisted snapshot. A load
// failure degrades to an empty store instead of refusing to start.
func (s *Store) Load(ctx context.Context) {
	anchors, reminders, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.log.Error("snapshot load failed, starting empty", zap.Error(err))
		return
	}

	count := 0
	for _, list := range reminders {
		sort.SliceStable(list, func(i, j int) bool { return list[i].EventAt.Before(list[j].EventAt) })
		count += len(list)
	}

	s.mu.Lock()
	s.anchors = anchors
	s.reminders = reminders
	s.mu.Unlock()

	s.log.Info("snapshot loaded",
		zap.Int("anchors", len(anchors)),
		zap.Int("reminders", count),
	)
}

// --- Shift anchors ---

// SetAnchor replaces the user's anchor; last write wins.
func (s *Store) SetAnchor(ctx context.Context, chatID int64, a domain.Anchor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anchors[chatID] = a
	s.persistLocked(ctx)
}

func (s *Store) Anchor(chatID int64) (domain.Anchor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.anchors[chatID]
	return a, ok
}

func (s *Store) ClearAnchor(ctx context.Context, chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.anchors, chatID)
	s.persistLocked(ctx)
}

// --- Reminder drafts ---

func (s *Store) Draft(chatID int64) domain.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drafts[chatID]
}

func (s *Store) SetDraft(chatID int64, d domain.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[chatID] = d
}

func (s *Store) ClearDraft(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, chatID)
}

// --- Reminders ---

// AddReminder appends a finished reminder, keeping the user's list ordered
// by event time for display.
func (s *Store) AddReminder(ctx context.Context, r *domain.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := append(s.reminders[r.ChatID], r)
	sort.SliceStable(list, func(i, j int) bool { return list[i].EventAt.Before(list[j].EventAt) })
	s.reminders[r.ChatID] = list

	s.persistLocked(ctx)
}

// Reminders returns a copy of the user's reminders ordered by event time.
func (s *Store) Reminders(chatID int64) []domain.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Reminder, 0, len(s.reminders[chatID]))
	for _, r := range s.reminders[chatID] {
		out = append(out, *r)
	}
	return out
}

// DueNow returns every unsent reminder across all users whose notify time
// has arrived, earliest first. Earliest-due delivery order matters when many
// reminders become due within one scheduler tick.
func (s *Store) DueNow(now time.Time) []*domain.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var due []*domain.Reminder
	for _, list := range s.reminders {
		for _, r := range list {
			if !r.Sent && !r.NotifyAt.After(now) {
				due = append(due, r)
			}
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].NotifyAt.Before(due[j].NotifyAt) })
	return due
}

// MarkSent flips the sent flag for a batch of delivered reminders and
// persists once. The flag only ever goes false -> true.
func (s *Store) MarkSent(ctx context.Context, batch []*domain.Reminder) {
	if len(batch) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range batch {
		r.Sent = true
	}
	s.persistLocked(ctx)
}

// persistLocked saves the current snapshot; the caller holds the write lock,
// so the saved state and the in-memory state cannot diverge mid-save. A save
// failure keeps the in-memory state; the next successful save catches up.
func (s *Store) persistLocked(ctx context.Context) {
	if err := s.repo.SaveAll(ctx, s.anchors, s.reminders); err != nil {
		s.log.Error("snapshot save failed", zap.Error(err))
	}
}
