package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lehrteam/stundenplan-api/internal/models"
	"github.com/lehrteam/stundenplan-api/internal/realtime"
)

// AvailabilityRepository provides persistence for availability marks.
type AvailabilityRepository struct {
	db     *sqlx.DB
	broker realtime.Broker
}

// NewAvailabilityRepository creates a new availability repository.
func NewAvailabilityRepository(db *sqlx.DB, broker realtime.Broker) *AvailabilityRepository {
	return &AvailabilityRepository{db: db, broker: broker}
}

// ListByWeek returns every mark for the given week key.
func (r *AvailabilityRepository) ListByWeek(ctx context.Context, weekStart string) ([]models.Availability, error) {
	const query = `SELECT person_id, week_start, day, slot_id FROM availability WHERE week_start = $1`
	var marks []models.Availability
	if err := r.db.SelectContext(ctx, &marks, query, weekStart); err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	return marks, nil
}

// Toggle flips the mark for one (person, week, day, slot) cell and
// returns whether the mark exists afterwards. The delete-first order
// plus the unique index on the natural key make the flip atomic: two
// concurrent toggles serialize and can never leave duplicate rows.
func (r *AvailabilityRepository) Toggle(ctx context.Context, personID, weekStart string, day models.Weekday, slotID string) (bool, error) {
	const deleteQuery = `DELETE FROM availability WHERE person_id = $1 AND week_start = $2 AND day = $3 AND slot_id = $4`
	res, err := r.db.ExecContext(ctx, deleteQuery, personID, weekStart, day, slotID)
	if err != nil {
		return false, fmt.Errorf("toggle availability delete: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("toggle availability rows: %w", err)
	}

	if deleted > 0 {
		r.publish(ctx, weekStart)
		return false, nil
	}

	const insertQuery = `INSERT INTO availability (id, person_id, week_start, day, slot_id, created_at) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (person_id, week_start, day, slot_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, insertQuery, uuid.NewString(), personID, weekStart, day, slotID, time.Now().UTC()); err != nil {
		return false, fmt.Errorf("toggle availability insert: %w", err)
	}

	r.publish(ctx, weekStart)
	return true, nil
}

// ReplaceWeek swaps out a person's marks for one week in a single
// transaction, so readers never observe the transient empty state
// between the delete and the inserts.
func (r *AvailabilityRepository) ReplaceWeek(ctx context.Context, personID, weekStart string, entries []models.AvailabilityEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace week: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = r.replaceWeekTx(ctx, tx, personID, weekStart, entries); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace week: %w", err)
	}

	r.publish(ctx, weekStart)
	return nil
}

func (r *AvailabilityRepository) replaceWeekTx(ctx context.Context, tx *sqlx.Tx, personID, weekStart string, entries []models.AvailabilityEntry) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM availability WHERE person_id = $1 AND week_start = $2`, personID, weekStart); err != nil {
		return fmt.Errorf("replace week delete: %w", err)
	}

	now := time.Now().UTC()
	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO availability (id, person_id, week_start, day, slot_id, created_at) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (person_id, week_start, day, slot_id) DO NOTHING`,
			uuid.NewString(), personID, weekStart, entry.Day, entry.SlotID, now); err != nil {
			return fmt.Errorf("replace week insert: %w", err)
		}
	}
	return nil
}

func (r *AvailabilityRepository) publish(ctx context.Context, weekStart string) {
	if r.broker == nil {
		return
	}
	_ = r.broker.Publish(ctx, realtime.Event{Table: realtime.TableAvailability, WeekStart: weekStart})
}
