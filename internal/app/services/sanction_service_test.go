package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
)

func TestValidateAbsences(t *testing.T) {
	t.Run("zero allowance is accepted", func(t *testing.T) {
		assert.NoError(t, ValidateAbsences(models.Absences{MaxAllowed: 0}))
	})

	t.Run("regular counters are accepted", func(t *testing.T) {
		assert.NoError(t, ValidateAbsences(models.Absences{Excused: 3, Unexcused: 1, MaxAllowed: 150}))
	})

	t.Run("negative values are rejected", func(t *testing.T) {
		assert.ErrorIs(t, ValidateAbsences(models.Absences{Excused: -1, MaxAllowed: 150}), apperrors.ErrValidationFailed)
		assert.ErrorIs(t, ValidateAbsences(models.Absences{Unexcused: -1, MaxAllowed: 150}), apperrors.ErrValidationFailed)
		assert.ErrorIs(t, ValidateAbsences(models.Absences{MaxAllowed: -1}), apperrors.ErrValidationFailed)
	})
}

func TestIsCriticalAbsences(t *testing.T) {
	t.Run("below the threshold", func(t *testing.T) {
		assert.False(t, IsCriticalAbsences(models.Absences{Excused: 50, Unexcused: 50, MaxAllowed: 150}))
	})

	t.Run("exactly at the threshold is not critical", func(t *testing.T) {
		// 0.8 * 150 = 120; only strictly above counts
		assert.False(t, IsCriticalAbsences(models.Absences{Excused: 100, Unexcused: 20, MaxAllowed: 150}))
	})

	t.Run("above the threshold", func(t *testing.T) {
		assert.True(t, IsCriticalAbsences(models.Absences{Excused: 100, Unexcused: 21, MaxAllowed: 150}))
	})

	t.Run("excused and unexcused both count", func(t *testing.T) {
		assert.True(t, IsCriticalAbsences(models.Absences{Excused: 121, MaxAllowed: 150}))
		assert.True(t, IsCriticalAbsences(models.Absences{Unexcused: 121, MaxAllowed: 150}))
	})
}
