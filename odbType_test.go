package odb

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullTypes_Scan(t *testing.T) {
	var s NullString
	require.NoError(t, s.Scan([]byte("abc")))
	assert.Equal(t, "abc", s.String())
	require.NoError(t, s.Scan(nil))
	assert.Equal(t, "", s.String())
	require.NoError(t, s.Scan(int64(12)))
	assert.Equal(t, "12", s.String())

	var i NullInt64
	require.NoError(t, i.Scan(int64(7)))
	assert.EqualValues(t, 7, i.Int64())
	require.NoError(t, i.Scan([]byte("42")))
	assert.Equal(t, 42, i.Int())
	require.NoError(t, i.Scan(nil))
	assert.Zero(t, i.Int64())
	assert.Error(t, i.Scan("abc"))

	var f NullFloat64
	require.NoError(t, f.Scan("1.5"))
	assert.Equal(t, 1.5, f.Float64())
	require.NoError(t, f.Scan(nil))
	assert.Zero(t, f.Float64())

	var b NullBool
	require.NoError(t, b.Scan(int64(1)))
	assert.True(t, b.Bool())
	require.NoError(t, b.Scan(false))
	assert.False(t, b.Bool())
	require.NoError(t, b.Scan([]byte("true")))
	assert.True(t, b.Bool())
	require.NoError(t, b.Scan(nil))
	assert.False(t, b.Bool())
}

func TestDateTime(t *testing.T) {
	want := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	var d DateTime
	require.NoError(t, d.Scan(want))
	assert.True(t, want.Equal(d.Datetime()))

	require.NoError(t, d.Scan("2024-05-06 07:08:09"))
	assert.True(t, want.Equal(d.Datetime()))

	require.NoError(t, d.Scan([]byte("2024-05-06T07:08:09Z")))
	assert.True(t, want.Equal(d.Datetime()))

	assert.Error(t, d.Scan("yesterday"))

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.Datetime().IsZero())

	d = DateTime(want)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-06 07:08:09"`, string(b))

	var back DateTime
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, want.Equal(back.Datetime()))
}
