package pokeapi

// NamedResource is the PokéAPI {name, url} pair used throughout its payloads.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Pokemon is the base record from /pokemon/{name}. Height is in decimetres and
// weight in hectograms, per the upstream convention.
type Pokemon struct {
	Name   string `json:"name"`
	Height int    `json:"height"`
	Weight int    `json:"weight"`
	Types  []struct {
		Slot int           `json:"slot"`
		Type NamedResource `json:"type"`
	} `json:"types"`
}

// TypeNames returns the type tags in upstream slot order.
func (p *Pokemon) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

// Species is the secondary descriptive record from /pokemon-species/{name}.
type Species struct {
	Name  string        `json:"name"`
	Color NamedResource `json:"color"`
}

// TypeRecord is the relation record from /type/{name}.
type TypeRecord struct {
	Name            string `json:"name"`
	DamageRelations struct {
		DoubleDamageTo   []NamedResource `json:"double_damage_to"`
		DoubleDamageFrom []NamedResource `json:"double_damage_from"`
	} `json:"damage_relations"`
	Pokemon []struct {
		Slot    int           `json:"slot"`
		Pokemon NamedResource `json:"pokemon"`
	} `json:"pokemon"`
}

// MemberNames returns the names of the Pokémon belonging to this type, in
// upstream order.
func (t *TypeRecord) MemberNames() []string {
	names := make([]string, 0, len(t.Pokemon))
	for _, m := range t.Pokemon {
		names = append(names, m.Pokemon.Name)
	}
	return names
}

// PokemonList is the paginated listing from /pokemon?limit=N.
type PokemonList struct {
	Count   int             `json:"count"`
	Results []NamedResource `json:"results"`
}
