package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"2026-03-05", "2026-03-05"},
		{"05-Mar-26", "2026-03-05"},
		{"Mar 5, 2026", "2026-03-05"},
		{"5 March 2026", "2026-03-05"},
		{"03/05/2026", "2026-03-05"},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := ParseDate(tc.raw)
			assert.True(t, ok)
			assert.Equal(t, tc.want, NormalizeDate(got))
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	_, ok := ParseDate("not a date")
	assert.False(t, ok)
}

func TestInYearWindow(t *testing.T) {
	now := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	assert.True(t, InYearWindow(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), now, 2, 3))
	assert.True(t, InYearWindow(time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC), now, 2, 3))
	assert.True(t, InYearWindow(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), now, 2, 3))
	assert.False(t, InYearWindow(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), now, 2, 3))
	assert.False(t, InYearWindow(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), now, 2, 3))
}

func TestValidateWeight(t *testing.T) {
	kg, ok := ValidateWeight("1000", "KG")
	assert.True(t, ok)
	assert.Equal(t, 1000.0, kg)

	kg, ok = ValidateWeight("1", "MT")
	assert.True(t, ok)
	assert.Equal(t, 1000.0, kg)

	kg, ok = ValidateWeight("10", "LBS")
	assert.True(t, ok)
	assert.InDelta(t, 4.536, kg, 0.001)

	_, ok = ValidateWeight("abc", "KG")
	assert.False(t, ok)

	_, ok = ValidateWeight("1", "GALLONS")
	assert.False(t, ok)
}

func TestValidateVolume(t *testing.T) {
	cbm, ok := ValidateVolume("12.5", "CBM")
	assert.True(t, ok)
	assert.Equal(t, 12.5, cbm)

	_, ok = ValidateVolume("12.5", "LITERS")
	assert.False(t, ok)
}
