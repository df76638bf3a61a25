package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehrteam/stundenplan-api/internal/models"
	appErrors "github.com/lehrteam/stundenplan-api/pkg/errors"
	"github.com/lehrteam/stundenplan-api/pkg/export"
)

type stubRenderer struct {
	raw  []byte
	err  error
	last export.WeekData
}

func (s *stubRenderer) Render(data export.WeekData) ([]byte, error) {
	s.last = data
	return s.raw, s.err
}

func newExportFixture(xlsx, pdf *stubRenderer) *ExportService {
	people := &stubPeople{people: []models.Person{{ID: "anna", Name: "Anna", Color: "#EF4444"}}}
	availability := &stubAvailability{marks: map[string][]models.Availability{
		"2025-11-03": {{PersonID: "anna", WeekStart: "2025-11-03", Day: models.Monday, SlotID: "08-10"}},
	}}
	return NewExportService(people, availability, xlsx, pdf, nil)
}

func TestExportXLSXPassesWeekData(t *testing.T) {
	xlsx := &stubRenderer{raw: []byte("book")}
	svc := newExportFixture(xlsx, &stubRenderer{})

	raw, name, err := svc.XLSX("2025-11-03")
	require.NoError(t, err)
	assert.Equal(t, []byte("book"), raw)
	assert.Equal(t, "Stundenplan_2025-11-03.xlsx", name)
	assert.Equal(t, "2025-11-03", xlsx.last.WeekStart)
	assert.Len(t, xlsx.last.People, 1)
	assert.Len(t, xlsx.last.Availability, 1)
}

func TestExportPDFWrapsFailure(t *testing.T) {
	pdf := &stubRenderer{err: errors.New("render blew up")}
	svc := newExportFixture(&stubRenderer{}, pdf)

	_, _, err := svc.PDF("2025-11-03")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
