package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
)

func TestDuplicateAuthor(t *testing.T) {
	recommendations := []models.Recommendation{
		{Author: "г-жа Иванова"},
		{Author: " Петър Петров "},
	}

	assert.True(t, DuplicateAuthor(recommendations, "г-жа Иванова"))
	assert.True(t, DuplicateAuthor(recommendations, "петър петров"), "authors are compared case-insensitively")
	assert.True(t, DuplicateAuthor(recommendations, "  г-жа Иванова  "), "authors are trimmed")
	assert.False(t, DuplicateAuthor(recommendations, "г-н Георгиев"))
	assert.False(t, DuplicateAuthor(nil, "anyone"))
}
