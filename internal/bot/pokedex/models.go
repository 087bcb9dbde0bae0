package pokedex

import "fmt"

// User-facing failure messages, produced at the point of origin. The
// orchestrator returns them verbatim.
const (
	msgNotFound         = `Não consegui encontrar informações para o Pokémon "%s". Verifique o nome e tente novamente.`
	msgCategoryNotFound = `Não conheço o tipo "%s". Tente, por exemplo, water, fire ou grass.`
	msgNoMatches        = "Não encontrei nenhum Pokémon para essa busca."
	msgSuggestFailed    = "Não consegui buscar sugestões agora. Tente novamente mais tarde."
)

// EntityInfo is the merged answer for one Pokémon. It is produced fresh per
// query and owned by the calling request.
type EntityInfo struct {
	Success    bool
	Name       string
	Height     string
	Weight     string
	Color      string
	Types      []string
	Advantages []string
	Weaknesses []string
	Error      string
}

// SuggestionResult is a bounded list of Pokémon names in upstream order.
type SuggestionResult struct {
	Success bool
	Names   []string
	Error   string
}

func entityFailure(name string) *EntityInfo {
	return &EntityInfo{
		Success: false,
		Name:    name,
		Error:   fmt.Sprintf(msgNotFound, name),
	}
}
