package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehrteam/stundenplan-api/internal/models"
	"github.com/lehrteam/stundenplan-api/internal/realtime"
)

func TestPersonRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPersonRepository(db, nil)

	rows := sqlmock.NewRows([]string{"id", "name", "color", "created_at"}).
		AddRow("p1", "Anna", "#EF4444", time.Now()).
		AddRow("p2", "Lukas", "#10B981", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, color, created_at FROM people ORDER BY created_at ASC")).
		WillReturnRows(rows)

	people, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "Anna", people[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepositoryCreatePublishesRosterChange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	broker := &recordingBroker{}
	repo := NewPersonRepository(db, broker)

	mock.ExpectExec("INSERT INTO people").
		WithArgs(sqlmock.AnyArg(), "Anna", "#EF4444", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	person := &models.Person{Name: "Anna", Color: "#EF4444"}
	require.NoError(t, repo.Create(context.Background(), person))
	assert.NotEmpty(t, person.ID)
	assert.False(t, person.CreatedAt.IsZero())

	events := broker.published()
	require.Len(t, events, 1)
	assert.Equal(t, realtime.TablePeople, events[0].Table)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepositoryCreateFailureDoesNotPublish(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	broker := &recordingBroker{}
	repo := NewPersonRepository(db, broker)

	mock.ExpectExec("INSERT INTO people").
		WillReturnError(assert.AnError)

	err := repo.Create(context.Background(), &models.Person{Name: "Anna", Color: "#EF4444"})
	require.Error(t, err)
	assert.Empty(t, broker.published())
}
