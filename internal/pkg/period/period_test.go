package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p, err := Parse("06-2025")
	require.NoError(t, err)
	assert.Equal(t, time.June, p.Month)
	assert.Equal(t, 2025, p.Year)
	assert.Equal(t, "06-2025", p.String())
	assert.Equal(t, "June 2025", p.Label())

	for _, bad := range []string{"", "6-2025", "13-2025", "00-2025", "2025-06", "06/2025", "06-25"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidPeriod, bad)
	}
}

func TestRange(t *testing.T) {
	p, err := Parse("12-2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), p.Start())
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), p.End())

	feb := Of(time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "02-2024", feb.String())
	assert.Equal(t, 29, feb.End().AddDate(0, 0, -1).Day())
}
