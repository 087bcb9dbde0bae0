// internal/bot/pokedex/suggest_test.go
package pokedex

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/errors"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/logger"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/pokeapi"
)

func waterSource(t *testing.T) *fakeSource {
	t.Helper()
	return &fakeSource{
		types: map[string]*pokeapi.TypeRecord{
			"water": mustType(t, `{
				"name": "water",
				"damage_relations": {"double_damage_to": [], "double_damage_from": []},
				"pokemon": [
					{"slot": 1, "pokemon": {"name": "squirtle"}},
					{"slot": 1, "pokemon": {"name": "psyduck"}},
					{"slot": 1, "pokemon": {"name": "poliwag"}}
				]
			}`),
		},
		listed: []string{"bulbasaur", "ivysaur", "venusaur"},
	}
}

func TestService_Suggest_ByType(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		expected []string
	}{
		{"first entries in upstream order", 2, []string{"squirtle", "psyduck"}},
		{"count above available returns all", 10, []string{"squirtle", "psyduck", "poliwag"}},
		{"count below one clamps to one", 0, []string{"squirtle"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(waterSource(t), logger.NewTestLogger(t))

			result := service.Suggest(context.Background(), tt.count, "water")

			require.True(t, result.Success)
			assert.Equal(t, tt.expected, result.Names)
			assert.Empty(t, result.Error)
		})
	}
}

func TestService_Suggest_Unfiltered(t *testing.T) {
	source := waterSource(t)
	service := NewService(source, logger.NewTestLogger(t))

	result := service.Suggest(context.Background(), 2, "")

	require.True(t, result.Success)
	assert.Equal(t, []string{"bulbasaur", "ivysaur"}, result.Names)
	// The listing limit is the requested count.
	assert.Equal(t, []int{2}, source.listCalls)
}

func TestService_Suggest_Failures(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		service := NewService(waterSource(t), logger.NewTestLogger(t))

		result := service.Suggest(context.Background(), 3, "metal")

		require.False(t, result.Success)
		assert.Equal(t, fmt.Sprintf(msgCategoryNotFound, "metal"), result.Error)
		assert.Empty(t, result.Names)
	})

	t.Run("type lookup transport failure", func(t *testing.T) {
		source := waterSource(t)
		source.typeErr = commonerrors.NewUpstreamUnavailableError("pokeapi", errors.New("connection reset"))
		service := NewService(source, logger.NewTestLogger(t))

		result := service.Suggest(context.Background(), 3, "water")

		require.False(t, result.Success)
		assert.Equal(t, msgSuggestFailed, result.Error)
	})

	t.Run("listing failure", func(t *testing.T) {
		source := waterSource(t)
		source.listErr = commonerrors.NewUpstreamUnavailableError("pokeapi", errors.New("timeout"))
		service := NewService(source, logger.NewTestLogger(t))

		result := service.Suggest(context.Background(), 3, "")

		require.False(t, result.Success)
		assert.Equal(t, msgSuggestFailed, result.Error)
	})

	t.Run("empty type has no matches", func(t *testing.T) {
		source := waterSource(t)
		source.types["water"].Pokemon = source.types["water"].Pokemon[:0]
		service := NewService(source, logger.NewTestLogger(t))

		result := service.Suggest(context.Background(), 3, "water")

		require.False(t, result.Success)
		assert.Equal(t, msgNoMatches, result.Error)
	})

	t.Run("empty listing has no matches", func(t *testing.T) {
		source := waterSource(t)
		source.listed = nil
		service := NewService(source, logger.NewTestLogger(t))

		result := service.Suggest(context.Background(), 3, "")

		require.False(t, result.Success)
		assert.Equal(t, msgNoMatches, result.Error)
	})
}
