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

// PersonRepository provides persistence for the roster.
type PersonRepository struct {
	db     *sqlx.DB
	broker realtime.Broker
}

// NewPersonRepository creates a new person repository.
func NewPersonRepository(db *sqlx.DB, broker realtime.Broker) *PersonRepository {
	return &PersonRepository{db: db, broker: broker}
}

// List returns all people ordered by creation time ascending.
func (r *PersonRepository) List(ctx context.Context) ([]models.Person, error) {
	const query = `SELECT id, name, color, created_at FROM people ORDER BY created_at ASC`
	var people []models.Person
	if err := r.db.SelectContext(ctx, &people, query); err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	return people, nil
}

// Create stores a new person and announces the roster change on the feed.
func (r *PersonRepository) Create(ctx context.Context, person *models.Person) error {
	if person.ID == "" {
		person.ID = uuid.NewString()
	}
	if person.CreatedAt.IsZero() {
		person.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO people (id, name, color, created_at) VALUES (:id, :name, :color, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, person); err != nil {
		return fmt.Errorf("create person: %w", err)
	}

	r.publish(ctx)
	return nil
}

func (r *PersonRepository) publish(ctx context.Context) {
	if r.broker == nil {
		return
	}
	_ = r.broker.Publish(ctx, realtime.Event{Table: realtime.TablePeople})
}
