package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 75.0, RoundHalfUp(75.0))
	assert.Equal(t, 66.67, RoundHalfUp(66.666666))
	assert.Equal(t, 2.5, RoundHalfUp(2.495), "half rounds up")
	assert.Equal(t, 0.13, RoundHalfUp(0.125))
	assert.Equal(t, 0.0, RoundHalfUp(0))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 50.0, Percentage(1, 2))
	assert.Equal(t, 33.33, Percentage(1, 3))
	assert.Equal(t, 66.67, Percentage(2, 3))
	assert.Equal(t, 0.0, Percentage(5, 0), "zero denominator yields 0")
	assert.Equal(t, 100.0, Percentage(4, 4))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.5, Ratio(1, 2))
	assert.Equal(t, 0.0, Ratio(3, 0))
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(2, 10, 25)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, int64(25), info.TotalItems)

	empty := NewPaginationInfo(1, 10, 0)
	assert.Equal(t, 1, empty.TotalPages)

	clamped := NewPaginationInfo(9, 10, 25)
	assert.Equal(t, 3, clamped.CurrentPage, "page is clamped to the last page")
}
