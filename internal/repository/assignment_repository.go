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

// AssignmentRepository provides persistence for primary assignments.
type AssignmentRepository struct {
	db     *sqlx.DB
	broker realtime.Broker
}

// NewAssignmentRepository creates a new assignment repository.
func NewAssignmentRepository(db *sqlx.DB, broker realtime.Broker) *AssignmentRepository {
	return &AssignmentRepository{db: db, broker: broker}
}

// ListByWeek returns every assignment for the given week key.
func (r *AssignmentRepository) ListByWeek(ctx context.Context, weekStart string) ([]models.Assignment, error) {
	const query = `SELECT week_start, day, slot_id, primary_person_id FROM assignments WHERE week_start = $1`
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, weekStart); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// SetPrimary upserts the designated person for one week/day/slot cell.
// The conditional upsert on the cell's unique key replaces the original
// check-then-act sequence, so concurrent writers serialize to last-write-wins.
func (r *AssignmentRepository) SetPrimary(ctx context.Context, weekStart string, day models.Weekday, slotID string, primaryPersonID *string) error {
	const query = `INSERT INTO assignments (id, week_start, day, slot_id, primary_person_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (week_start, day, slot_id) DO UPDATE SET primary_person_id = EXCLUDED.primary_person_id`
	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), weekStart, day, slotID, primaryPersonID, time.Now().UTC()); err != nil {
		return fmt.Errorf("set primary assignment: %w", err)
	}

	r.publish(ctx, weekStart)
	return nil
}

func (r *AssignmentRepository) publish(ctx context.Context, weekStart string) {
	if r.broker == nil {
		return
	}
	_ = r.broker.Publish(ctx, realtime.Event{Table: realtime.TableAssignments, WeekStart: weekStart})
}
