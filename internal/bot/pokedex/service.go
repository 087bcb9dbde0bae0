// Package pokedex aggregates multiple dependent PokéAPI lookups into a single
// structured answer.
package pokedex

import (
	"context"
	"fmt"
	"sort"

	commonerrors "github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/errors"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/logger"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/pokeapi"
)

type Service struct {
	source pokeapi.DataSource
	logger logger.Logger
}

func NewService(source pokeapi.DataSource, log logger.Logger) *Service {
	return &Service{
		source: source,
		logger: log.WithFields(map[string]interface{}{
			"component": "pokedex",
		}),
	}
}

// Fetch resolves one Pokémon name into its merged info: base attributes, color
// from the species record, and per-type damage relations unioned into sorted
// advantage/weakness sets. Any lookup failure aborts the whole aggregation; no
// partial results are returned.
func (s *Service) Fetch(ctx context.Context, name string) *EntityInfo {
	base, err := s.source.GetPokemon(ctx, name)
	if err != nil {
		s.logFailure(name, "base record", err)
		return entityFailure(name)
	}

	// Upstream stores height in decimetres and weight in hectograms.
	height := fmt.Sprintf("%.1f m", float64(base.Height)/10)
	weight := fmt.Sprintf("%.1f kg", float64(base.Weight)/10)
	types := base.TypeNames()

	species, err := s.source.GetSpecies(ctx, name)
	if err != nil {
		s.logFailure(name, "species record", err)
		return entityFailure(name)
	}

	// Sequential per-type lookups, in slot order, without deduplicating the
	// type list first. Duplicate relations collapse in the sets below.
	advantages := make(map[string]bool)
	weaknesses := make(map[string]bool)
	for _, typeName := range types {
		record, err := s.source.GetType(ctx, typeName)
		if err != nil {
			s.logFailure(name, "type "+typeName, err)
			return entityFailure(name)
		}
		for _, target := range record.DamageRelations.DoubleDamageTo {
			advantages[target.Name] = true
		}
		for _, attacker := range record.DamageRelations.DoubleDamageFrom {
			weaknesses[attacker.Name] = true
		}
	}

	return &EntityInfo{
		Success:    true,
		Name:       name,
		Height:     height,
		Weight:     weight,
		Color:      species.Color.Name,
		Types:      types,
		Advantages: sortedKeys(advantages),
		Weaknesses: sortedKeys(weaknesses),
	}
}

func (s *Service) logFailure(name, step string, err error) {
	s.logger.Warn("aggregation aborted", map[string]interface{}{
		"pokemon":  name,
		"step":     step,
		"code":     string(commonerrors.CodeOf(err)),
		"category": commonerrors.GetErrorCategory(commonerrors.CodeOf(err)),
		"error":    err.Error(),
	})
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
