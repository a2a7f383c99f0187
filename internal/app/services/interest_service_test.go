package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
)

func TestValidateInterestEntries(t *testing.T) {
	t.Run("trims category and subcategory", func(t *testing.T) {
		cleaned, err := ValidateInterestEntries([]dto.InterestEntryRequest{
			{Category: " Наука ", Subcategory: " Астрономия "},
		})
		require.NoError(t, err)
		require.Len(t, cleaned, 1)
		assert.Equal(t, models.InterestEntry{Category: "Наука", Subcategory: "Астрономия"}, cleaned[0])
	})

	t.Run("same category with different subcategories is allowed", func(t *testing.T) {
		cleaned, err := ValidateInterestEntries([]dto.InterestEntryRequest{
			{Category: "Спорт", Subcategory: "Футбол"},
			{Category: "Спорт", Subcategory: "Волейбол"},
		})
		require.NoError(t, err)
		assert.Len(t, cleaned, 2)
	})

	t.Run("duplicate pair is a conflict", func(t *testing.T) {
		_, err := ValidateInterestEntries([]dto.InterestEntryRequest{
			{Category: "Спорт", Subcategory: "Футбол"},
			{Category: " спорт", Subcategory: "ФУТБОЛ "},
		})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("rejects empty subcategory", func(t *testing.T) {
		_, err := ValidateInterestEntries([]dto.InterestEntryRequest{
			{Category: "Спорт", Subcategory: "  "},
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("enforces the entry cap", func(t *testing.T) {
		entries := make([]dto.InterestEntryRequest, models.MaxInterestEntries+1)
		for i := range entries {
			entries[i] = dto.InterestEntryRequest{Category: "C", Subcategory: string(rune('a' + i))}
		}
		_, err := ValidateInterestEntries(entries)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestValidateHobbies(t *testing.T) {
	t.Run("trims and keeps order", func(t *testing.T) {
		cleaned, err := ValidateHobbies([]string{" шах ", "Плуване"})
		require.NoError(t, err)
		assert.Equal(t, []string{"шах", "Плуване"}, cleaned)
	})

	t.Run("duplicate is a conflict", func(t *testing.T) {
		_, err := ValidateHobbies([]string{"Шах", "шах"})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("rejects blank hobby", func(t *testing.T) {
		_, err := ValidateHobbies([]string{""})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("enforces the hobby cap", func(t *testing.T) {
		hobbies := make([]string, models.MaxHobbies+1)
		for i := range hobbies {
			hobbies[i] = "hobby " + string(rune('a'+i))
		}
		_, err := ValidateHobbies(hobbies)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}
