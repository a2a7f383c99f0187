package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
)

func TestValidateGoalActivities(t *testing.T) {
	t.Run("trims entries and keeps order", func(t *testing.T) {
		cleaned, err := ValidateGoalActivities([]string{" математика ", "спорт"})
		require.NoError(t, err)
		assert.Equal(t, []string{"математика", "спорт"}, cleaned)
	})

	t.Run("empty list is fine", func(t *testing.T) {
		cleaned, err := ValidateGoalActivities(nil)
		require.NoError(t, err)
		assert.Empty(t, cleaned)
	})

	t.Run("rejects blank entry", func(t *testing.T) {
		_, err := ValidateGoalActivities([]string{"   "})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects overlong entry", func(t *testing.T) {
		_, err := ValidateGoalActivities([]string{strings.Repeat("a", models.MaxGoalActivityLength+1)})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("duplicate is a conflict, not a silent drop", func(t *testing.T) {
		_, err := ValidateGoalActivities([]string{"Шах", " шах "})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("enforces the activity cap", func(t *testing.T) {
		activities := make([]string, models.MaxGoalActivities+1)
		for i := range activities {
			activities[i] = "activity " + strings.Repeat("x", i+1)
		}
		_, err := ValidateGoalActivities(activities)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}
