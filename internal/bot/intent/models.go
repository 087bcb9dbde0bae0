package intent

// Kind discriminates the intent variants. Exactly one variant is active per
// classification.
type Kind string

const (
	KindSuggest       Kind = "suggest"
	KindEntityQuery   Kind = "entity_query"
	KindNotRecognized Kind = "not_recognized"
)

// Topic tokens the classifier may emit, matching the fields of a Pokémon answer.
const (
	TopicColor      = "color"
	TopicHeight     = "height"
	TopicWeight     = "weight"
	TopicType       = "type"
	TopicAdvantages = "advantages"
	TopicWeaknesses = "weaknesses"
)

// CanonicalTopics is the fixed display order used whenever a full or partial
// answer is composed.
var CanonicalTopics = []string{
	TopicColor,
	TopicHeight,
	TopicWeight,
	TopicType,
	TopicAdvantages,
	TopicWeaknesses,
}

// Intent is the classification result. Kind selects which variant field is set.
type Intent struct {
	Kind    Kind
	Suggest *SuggestRequest
	Entity  *EntityQuery
}

// SuggestRequest asks for up to Count Pokémon names, optionally filtered by
// Category (a type tag).
type SuggestRequest struct {
	Count    int
	Category string
}

// EntityQuery asks about one Pokémon. Name is a lowercase API-safe slug, empty
// when the model could not determine one. AnswerFull is true whenever Topics is
// empty or the user asked for everything.
type EntityQuery struct {
	IsEntity   bool
	Name       string
	Topics     []string
	AnswerFull bool
}

func notRecognized() *Intent {
	return &Intent{Kind: KindNotRecognized}
}
