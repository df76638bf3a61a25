package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFRender(t *testing.T) {
	raw, err := NewPDFExporter().Render(annaWeek())
	require.NoError(t, err)

	require.Greater(t, len(raw), 4)
	assert.Equal(t, "%PDF", string(raw[:4]))
}

func TestPDFRenderEmptyWeek(t *testing.T) {
	raw, err := NewPDFExporter().Render(WeekData{WeekStart: "2025-11-03"})
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}
