package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/evgenshkuropat/shiftmate-bot/internal/domain"
)

// Civil date/time layouts used in the database. All times live in one fixed
// zone, so storing wall-clock text round-trips losslessly and keeps anchor
// weekday arithmetic correct across DST.
const (
	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02 15:04:05"
)

// SQLiteRepo implements Repo over an embedded SQLite database.
type SQLiteRepo struct {
	db  *sql.DB
	loc *time.Location
}

// OpenSQLite opens (or creates) the database at path, applies PRAGMAs, runs
// migrations and returns a repository. loc is the bot's civil time zone;
// stored dates and times are interpreted in it.
func OpenSQLite(ctx context.Context, path string, loc *time.Location) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Single-writer engine; one connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db, loc: loc}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// LoadAll reads the full snapshot: every shift anchor and every reminder.
func (r *SQLiteRepo) LoadAll(ctx context.Context) (map[int64]domain.Anchor, map[int64][]*domain.Reminder, error) {
	anchors := make(map[int64]domain.Anchor)
	reminders := make(map[int64][]*domain.Reminder)

	rows, err := r.db.QueryContext(ctx, `SELECT chat_id, monday, shift_type FROM shift_anchors`)
	if err != nil {
		return nil, nil, fmt.Errorf("load anchors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			chatID int64
			monday string
			tag    string
		)
		if err := rows.Scan(&chatID, &monday, &tag); err != nil {
			return nil, nil, err
		}

		day, err := time.ParseInLocation(dateLayout, monday, r.loc)
		if err != nil {
			return nil, nil, fmt.Errorf("anchor monday %q: %w", monday, err)
		}
		shift, err := domain.ParseShiftType(tag)
		if err != nil {
			return nil, nil, fmt.Errorf("anchor shift: %w", err)
		}
		anchors[chatID] = domain.Anchor{Monday: day, Type: shift}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	rrows, err := r.db.QueryContext(ctx, `
		SELECT chat_id, title, event_at, notify_at, sent
		FROM reminders
		ORDER BY chat_id, event_at`)
	if err != nil {
		return nil, nil, fmt.Errorf("load reminders: %w", err)
	}
	defer rrows.Close()

	for rrows.Next() {
		var (
			chatID   int64
			title    string
			eventAt  string
			notifyAt string
			sentInt  int
		)
		if err := rrows.Scan(&chatID, &title, &eventAt, &notifyAt, &sentInt); err != nil {
			return nil, nil, err
		}

		event, err := time.ParseInLocation(timeLayout, eventAt, r.loc)
		if err != nil {
			return nil, nil, fmt.Errorf("reminder event_at %q: %w", eventAt, err)
		}
		notify, err := time.ParseInLocation(timeLayout, notifyAt, r.loc)
		if err != nil {
			return nil, nil, fmt.Errorf("reminder notify_at %q: %w", notifyAt, err)
		}

		reminders[chatID] = append(reminders[chatID], &domain.Reminder{
			ChatID:   chatID,
			Title:    title,
			EventAt:  event,
			NotifyAt: notify,
			Sent:     sentInt != 0,
		})
	}
	if err := rrows.Err(); err != nil {
		return nil, nil, err
	}

	return anchors, reminders, nil
}

// SaveAll replaces the persisted snapshot with the given state in a single
// transaction.
func (r *SQLiteRepo) SaveAll(ctx context.Context, anchors map[int64]domain.Anchor, reminders map[int64][]*domain.Reminder) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shift_anchors`); err != nil {
		return fmt.Errorf("clear anchors: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reminders`); err != nil {
		return fmt.Errorf("clear reminders: %w", err)
	}

	for chatID, a := range anchors {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO shift_anchors (chat_id, monday, shift_type)
			VALUES (?, ?, ?)`,
			chatID, a.Monday.Format(dateLayout), a.Type.String(),
		); err != nil {
			return fmt.Errorf("insert anchor: %w", err)
		}
	}

	for chatID, list := range reminders {
		for _, rem := range list {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO reminders (chat_id, title, event_at, notify_at, sent)
				VALUES (?, ?, ?, ?, ?)`,
				chatID, rem.Title,
				rem.EventAt.Format(timeLayout), rem.NotifyAt.Format(timeLayout),
				boolToInt(rem.Sent),
			); err != nil {
				return fmt.Errorf("insert reminder: %w", err)
			}
		}
	}

	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
