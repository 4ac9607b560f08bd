package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		date, err := ParseDate("1990-06-15")
		require.NoError(t, err)
		assert.Equal(t, NewDate(1990, time.June, 15), date)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, input := range []string{"", "15-06-1990", "1990/06/15", "1990-13-01", "not-a-date"} {
			_, err := ParseDate(input)
			assert.Error(t, err, "input %q", input)
		}
	})
}

func TestDate_YearsUntil(t *testing.T) {
	birth := NewDate(2000, time.June, 15)

	tests := []struct {
		name  string
		today Date
		want  int
	}{
		{"DayBeforeAnniversary", NewDate(2018, time.June, 14), 17},
		{"OnAnniversary", NewDate(2018, time.June, 15), 18},
		{"DayAfterAnniversary", NewDate(2018, time.June, 16), 18},
		{"EarlierMonth", NewDate(2018, time.May, 20), 17},
		{"LaterMonth", NewDate(2018, time.July, 1), 18},
		{"SameDate", NewDate(2000, time.June, 15), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, birth.YearsUntil(tt.today))
		})
	}
}

func TestDate_Ordering(t *testing.T) {
	earlier := NewDate(1990, time.January, 1)
	later := NewDate(1990, time.January, 2)

	assert.True(t, later.After(earlier))
	assert.False(t, earlier.After(later))
	assert.False(t, earlier.After(earlier))
	assert.True(t, earlier.Before(later))
	assert.False(t, earlier.Before(earlier))
}

func TestDate_JSON(t *testing.T) {
	t.Run("Marshal", func(t *testing.T) {
		data, err := json.Marshal(NewDate(1990, time.June, 5))
		require.NoError(t, err)
		assert.Equal(t, `"1990-06-05"`, string(data))
	})

	t.Run("Unmarshal", func(t *testing.T) {
		var date Date
		require.NoError(t, json.Unmarshal([]byte(`"1990-06-05"`), &date))
		assert.Equal(t, NewDate(1990, time.June, 5), date)
	})

	t.Run("UnmarshalNull", func(t *testing.T) {
		var date Date
		require.NoError(t, json.Unmarshal([]byte(`null`), &date))
		assert.True(t, date.IsZero())
	})

	t.Run("UnmarshalInvalid", func(t *testing.T) {
		var date Date
		assert.Error(t, json.Unmarshal([]byte(`"05/06/1990"`), &date))
	})

	t.Run("UnmarshalEmptyString", func(t *testing.T) {
		var date Date
		assert.Error(t, json.Unmarshal([]byte(`""`), &date))
	})

	t.Run("UnmarshalNonString", func(t *testing.T) {
		var date Date
		assert.Error(t, json.Unmarshal([]byte(`19900605`), &date))
	})
}

func TestDate_SQL(t *testing.T) {
	t.Run("Value", func(t *testing.T) {
		value, err := NewDate(1990, time.June, 5).Value()
		require.NoError(t, err)
		assert.Equal(t, time.Date(1990, time.June, 5, 0, 0, 0, 0, time.UTC), value)
	})

	t.Run("ScanTime", func(t *testing.T) {
		var date Date
		require.NoError(t, date.Scan(time.Date(1990, time.June, 5, 10, 30, 0, 0, time.UTC)))
		assert.Equal(t, NewDate(1990, time.June, 5), date)
	})

	t.Run("ScanBytes", func(t *testing.T) {
		var date Date
		require.NoError(t, date.Scan([]byte("1990-06-05")))
		assert.Equal(t, NewDate(1990, time.June, 5), date)
	})

	t.Run("ScanString", func(t *testing.T) {
		var date Date
		require.NoError(t, date.Scan("1990-06-05"))
		assert.Equal(t, NewDate(1990, time.June, 5), date)
	})

	t.Run("ScanUnsupported", func(t *testing.T) {
		var date Date
		assert.Error(t, date.Scan(42))
	})
}

func TestDate_String(t *testing.T) {
	assert.Equal(t, "2001-01-09", NewDate(2001, time.January, 9).String())
}
