package pokedex

import (
	"context"
	"fmt"

	commonerrors "github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/errors"
)

// Suggest returns up to count Pokémon names, optionally filtered by type. The
// first-N entries in upstream order are taken; fewer than count matches is a
// success, never padded.
func (s *Service) Suggest(ctx context.Context, count int, category string) *SuggestionResult {
	if count < 1 {
		count = 1
	}

	var names []string
	if category != "" {
		record, err := s.source.GetType(ctx, category)
		if err != nil {
			if commonerrors.CodeOf(err) == commonerrors.ErrCodeCategoryNotFound {
				return &SuggestionResult{Error: fmt.Sprintf(msgCategoryNotFound, category)}
			}
			s.logger.Warn("suggestion lookup failed", map[string]interface{}{
				"type":  category,
				"error": err.Error(),
			})
			return &SuggestionResult{Error: msgSuggestFailed}
		}
		names = record.MemberNames()
	} else {
		listed, err := s.source.ListPokemon(ctx, count)
		if err != nil {
			s.logger.Warn("suggestion listing failed", map[string]interface{}{
				"error": err.Error(),
			})
			return &SuggestionResult{Error: msgSuggestFailed}
		}
		names = listed
	}

	if len(names) > count {
		names = names[:count]
	}
	if len(names) == 0 {
		err := commonerrors.NewNoMatchesError(fmt.Sprintf("count: %d, type: %q", count, category))
		s.logger.Info("suggestion query empty", map[string]interface{}{
			"type": category,
			"code": string(err.Code),
		})
		return &SuggestionResult{Error: msgNoMatches}
	}

	return &SuggestionResult{Success: true, Names: names}
}
