package domain

import (
	"encoding/json/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-11")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-11", d.String())

	_, err = ParseDate("11.09.2026")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDateComparisons(t *testing.T) {
	a := NewDate(2026, time.September, 10)
	b := NewDate(2026, time.September, 11)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(NewDate(2026, time.September, 10)))
}

func TestDateAddDays(t *testing.T) {
	d := NewDate(2026, time.February, 27)

	assert.Equal(t, "2026-03-13", d.AddDays(14).String())
	assert.Equal(t, "2026-02-26", d.AddDays(-1).String())
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.January, 5)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-01-05"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, d.Equal(back))
}

func TestDateUnmarshalVariants(t *testing.T) {
	var d Date

	// RFC3339 timestamps truncate to their date.
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-01T15:04:05Z"`), &d))
	assert.Equal(t, "2026-03-01", d.String())

	// null and "" clear the date.
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	require.Error(t, json.Unmarshal([]byte(`42`), &d))
	require.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &d))
}

func TestZeroDateMarshalsNull(t *testing.T) {
	data, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	ts := time.Date(2026, time.June, 30, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2026-06-30", DateOf(ts).String())
}
