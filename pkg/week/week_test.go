package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAt(t *testing.T) {
	// 2026-03-02 is a Monday in ISO week 10.
	w, y := At(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, 10, w)
	assert.Equal(t, 2026, y)

	// January 1st 2027 is a Friday, still ISO week 53 of 2026.
	w, y = At(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 53, w)
	assert.Equal(t, 2026, y)
}

func TestPrevious(t *testing.T) {
	w, y := Previous(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, w)
	assert.Equal(t, 2026, y)
}

func TestStartEnd(t *testing.T) {
	start := Start(10, 2026, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Monday, start.Weekday())

	end := End(10, 2026, time.UTC)
	assert.Equal(t, time.Sunday, end.Weekday())
	assert.True(t, end.After(start))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(1))
	assert.True(t, Valid(53))
	assert.False(t, Valid(0))
	assert.False(t, Valid(54))
}
