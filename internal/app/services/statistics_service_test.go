package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
)

func TestRankHobbies(t *testing.T) {
	t.Run("counts across students case-insensitively", func(t *testing.T) {
		ranked := RankHobbies([][]string{
			{"Шах", "плуване"},
			{"шах"},
			{" ШАХ ", "Плуване", "китара"},
		}, 10)

		require.Len(t, ranked, 3)
		assert.Equal(t, dto.RankedHobby{Hobby: "Шах", Count: 3}, ranked[0])
		assert.Equal(t, dto.RankedHobby{Hobby: "плуване", Count: 2}, ranked[1])
		assert.Equal(t, dto.RankedHobby{Hobby: "китара", Count: 1}, ranked[2])
	})

	t.Run("first-seen casing wins for display", func(t *testing.T) {
		ranked := RankHobbies([][]string{{"Тенис"}, {"тенис"}}, 10)
		require.Len(t, ranked, 1)
		assert.Equal(t, "Тенис", ranked[0].Hobby)
	})

	t.Run("ties break alphabetically", func(t *testing.T) {
		ranked := RankHobbies([][]string{{"b", "a"}, {"a", "b"}}, 10)
		require.Len(t, ranked, 2)
		assert.Equal(t, "a", ranked[0].Hobby)
		assert.Equal(t, "b", ranked[1].Hobby)
	})

	t.Run("applies the limit", func(t *testing.T) {
		ranked := RankHobbies([][]string{{"a", "b", "c", "d"}}, 2)
		assert.Len(t, ranked, 2)
	})

	t.Run("skips blank entries", func(t *testing.T) {
		ranked := RankHobbies([][]string{{"  ", ""}}, 10)
		assert.Empty(t, ranked)
	})
}
