// internal/bot/dialogue/handler_test.go
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/bot/intent"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/bot/pokedex"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/bot/session"
	commonerrors "github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/errors"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/logger"
)

// ==========================
// Test Doubles
// ==========================

// fakeClassifier returns the scripted intent and records the hint it was given.
type fakeClassifier struct {
	intent   *intent.Intent
	err      error
	lastHint string
}

func (f *fakeClassifier) Classify(ctx context.Context, utterance, contextHint string) (*intent.Intent, error) {
	f.lastHint = contextHint
	if f.err != nil {
		return nil, f.err
	}
	return f.intent, nil
}

// fakePokedex returns canned results and records what was requested.
type fakePokedex struct {
	info   *pokedex.EntityInfo
	result *pokedex.SuggestionResult

	fetched       []string
	suggestCounts []int
	suggestTypes  []string
	panicOnFetch  bool
}

func (f *fakePokedex) Fetch(ctx context.Context, name string) *pokedex.EntityInfo {
	if f.panicOnFetch {
		panic("boom")
	}
	f.fetched = append(f.fetched, name)
	return f.info
}

func (f *fakePokedex) Suggest(ctx context.Context, count int, category string) *pokedex.SuggestionResult {
	f.suggestCounts = append(f.suggestCounts, count)
	f.suggestTypes = append(f.suggestTypes, category)
	return f.result
}

func pikachuInfo() *pokedex.EntityInfo {
	return &pokedex.EntityInfo{
		Success:    true,
		Name:       "pikachu",
		Height:     "0.4 m",
		Weight:     "6.0 kg",
		Color:      "yellow",
		Types:      []string{"electric"},
		Advantages: []string{"flying", "water"},
		Weaknesses: []string{"ground"},
	}
}

func entityIntent(name string, answerFull bool, topics ...string) *intent.Intent {
	return &intent.Intent{
		Kind: intent.KindEntityQuery,
		Entity: &intent.EntityQuery{
			IsEntity:   true,
			Name:       name,
			Topics:     topics,
			AnswerFull: answerFull,
		},
	}
}

func newTestHandler(t *testing.T, classifier *fakeClassifier, pdx *fakePokedex) (*Handler, *session.Store) {
	t.Helper()
	sessions := session.NewStore()
	return NewHandler(classifier, pdx, sessions, logger.NewTestLogger(t)), sessions
}

// ==========================
// Entity Query Tests
// ==========================

func TestHandler_Handle_FullEntityAnswer(t *testing.T) {
	classifier := &fakeClassifier{intent: entityIntent("pikachu", true)}
	pdx := &fakePokedex{info: pikachuInfo()}
	handler, sessions := newTestHandler(t, classifier, pdx)

	reply := handler.Handle(context.Background(), "user-a", "me fala do pikachu")

	assert.Contains(t, reply, "Aqui está o que encontrei sobre *Pikachu*:")
	assert.Contains(t, reply, "Cor: yellow")
	assert.Contains(t, reply, "Altura: 0.4 m")
	assert.Contains(t, reply, "Peso: 6.0 kg")
	assert.Contains(t, reply, "Tipo: electric")
	assert.Contains(t, reply, "Vantagens: flying, water")
	assert.Contains(t, reply, "Fraquezas: ground")
	assert.Contains(t, reply, msgInviteMore)

	assert.Equal(t, []string{"pikachu"}, pdx.fetched)
	assert.Equal(t, "pikachu", sessions.Get("user-a").LastEntity)
}

func TestHandler_Handle_SingleTopicAnswer(t *testing.T) {
	classifier := &fakeClassifier{intent: entityIntent("pikachu", false, intent.TopicColor)}
	pdx := &fakePokedex{info: pikachuInfo()}
	handler, _ := newTestHandler(t, classifier, pdx)

	reply := handler.Handle(context.Background(), "user-a", "qual a cor do pikachu?")

	assert.Contains(t, reply, "Cor: yellow")
	assert.NotContains(t, reply, "Altura:")
	assert.NotContains(t, reply, "Peso:")
	// All five unasked topics are offered as a follow-up.
	assert.Contains(t, reply, "Quer saber também sobre altura, peso, tipo, vantagens ou fraquezas?")
}

func TestHandler_Handle_FailedFetchKeepsContext(t *testing.T) {
	classifier := &fakeClassifier{intent: entityIntent("picachu", true)}
	pdx := &fakePokedex{info: &pokedex.EntityInfo{
		Success: false,
		Name:    "picachu",
		Error:   `Não consegui encontrar informações para o Pokémon "picachu". Verifique o nome e tente novamente.`,
	}}
	handler, sessions := newTestHandler(t, classifier, pdx)

	reply := handler.Handle(context.Background(), "user-a", "me fala do picachu")

	// The aggregation failure message is relayed verbatim.
	assert.Equal(t, pdx.info.Error, reply)
	// The attempted name is still recorded, so "tudo" keeps referring to it.
	assert.Equal(t, "picachu", sessions.Get("user-a").LastEntity)
}

func TestHandler_Handle_ContinuationUsesContext(t *testing.T) {
	classifier := &fakeClassifier{intent: entityIntent("pikachu", true)}
	pdx := &fakePokedex{info: pikachuInfo()}
	handler, sessions := newTestHandler(t, classifier, pdx)
	sessions.SetLastEntity("user-a", "pikachu")

	handler.Handle(context.Background(), "user-a", "tudo")

	assert.Equal(t, "pikachu", classifier.lastHint)
}

func TestHandler_Handle_ContinuationHints(t *testing.T) {
	tests := []struct {
		name         string
		utterance    string
		lastEntity   string
		expectedHint string
	}{
		{"keyword with context", "tudo", "pikachu", "pikachu"},
		{"keyword with surrounding space", "  Mais  ", "pikachu", "pikachu"},
		{"keyword without context", "tudo", "", ""},
		{"regular question ignores context", "qual a cor do squirtle?", "pikachu", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := &fakeClassifier{intent: entityIntent("pikachu", true)}
			pdx := &fakePokedex{info: pikachuInfo()}
			handler, sessions := newTestHandler(t, classifier, pdx)
			if tt.lastEntity != "" {
				sessions.SetLastEntity("user-a", tt.lastEntity)
			}

			handler.Handle(context.Background(), "user-a", tt.utterance)

			assert.Equal(t, tt.expectedHint, classifier.lastHint)
		})
	}
}

func TestHandler_Handle_UnnamedEntityQuery(t *testing.T) {
	classifier := &fakeClassifier{intent: entityIntent("", true)}
	pdx := &fakePokedex{}
	handler, sessions := newTestHandler(t, classifier, pdx)
	sessions.SetLastEntity("user-a", "pikachu")

	reply := handler.Handle(context.Background(), "user-a", "e aquele outro?")

	assert.Equal(t, msgClarify, reply)
	assert.Empty(t, pdx.fetched)
	// An unnamed query leaves the previous context alone.
	assert.Equal(t, "pikachu", sessions.Get("user-a").LastEntity)
}

func TestHandler_Handle_NonPokemonMessageClearsContext(t *testing.T) {
	classifier := &fakeClassifier{intent: &intent.Intent{
		Kind:   intent.KindEntityQuery,
		Entity: &intent.EntityQuery{IsEntity: false, AnswerFull: true},
	}}
	pdx := &fakePokedex{}
	handler, sessions := newTestHandler(t, classifier, pdx)
	sessions.SetLastEntity("user-a", "pikachu")

	reply := handler.Handle(context.Background(), "user-a", "bom dia!")

	assert.Equal(t, msgClarify, reply)
	assert.Equal(t, "", sessions.Get("user-a").LastEntity)
}

// ==========================
// Suggestion Tests
// ==========================

func TestHandler_Handle_Suggestion(t *testing.T) {
	classifier := &fakeClassifier{intent: &intent.Intent{
		Kind:    intent.KindSuggest,
		Suggest: &intent.SuggestRequest{Count: 2, Category: "water"},
	}}
	pdx := &fakePokedex{result: &pokedex.SuggestionResult{
		Success: true,
		Names:   []string{"squirtle", "psyduck"},
	}}
	handler, sessions := newTestHandler(t, classifier, pdx)
	sessions.SetLastEntity("user-a", "pikachu")

	reply := handler.Handle(context.Background(), "user-a", "me indica 2 pokemons de agua")

	assert.Contains(t, reply, msgSuggestHeader)
	assert.Contains(t, reply, "• Squirtle")
	assert.Contains(t, reply, "• Psyduck")
	assert.Contains(t, reply, msgSuggestInvite)
	assert.Equal(t, []int{2}, pdx.suggestCounts)
	assert.Equal(t, []string{"water"}, pdx.suggestTypes)
	// A suggestion turn switches subjects and drops the entity context.
	assert.Equal(t, "", sessions.Get("user-a").LastEntity)
}

func TestHandler_Handle_SuggestionFailure(t *testing.T) {
	failure := fmt.Sprintf(`Não conheço o tipo "%s". Tente, por exemplo, water, fire ou grass.`, "metal")
	classifier := &fakeClassifier{intent: &intent.Intent{
		Kind:    intent.KindSuggest,
		Suggest: &intent.SuggestRequest{Count: 1, Category: "metal"},
	}}
	pdx := &fakePokedex{result: &pokedex.SuggestionResult{Error: failure}}
	handler, _ := newTestHandler(t, classifier, pdx)

	reply := handler.Handle(context.Background(), "user-a", "me indica um pokemon de metal")

	assert.Equal(t, failure, reply)
}

// ==========================
// Failure Handling Tests
// ==========================

func TestHandler_Handle_MalformedClassification(t *testing.T) {
	classifier := &fakeClassifier{err: commonerrors.NewClassificationMalformedError("not json")}
	pdx := &fakePokedex{}
	handler, sessions := newTestHandler(t, classifier, pdx)
	sessions.SetLastEntity("user-a", "pikachu")

	reply := handler.Handle(context.Background(), "user-a", "???")

	assert.Equal(t, msgRephrase, reply)
	assert.Equal(t, "", sessions.Get("user-a").LastEntity)
	assert.Empty(t, pdx.fetched)
}

func TestHandler_Handle_ClassifierError(t *testing.T) {
	classifier := &fakeClassifier{err: errors.New("deadline exceeded")}
	pdx := &fakePokedex{}
	handler, _ := newTestHandler(t, classifier, pdx)

	reply := handler.Handle(context.Background(), "user-a", "oi")

	assert.Equal(t, msgApology, reply)
}

func TestHandler_Handle_NotRecognized(t *testing.T) {
	classifier := &fakeClassifier{intent: &intent.Intent{Kind: intent.KindNotRecognized}}
	pdx := &fakePokedex{}
	handler, sessions := newTestHandler(t, classifier, pdx)
	sessions.SetLastEntity("user-a", "pikachu")

	reply := handler.Handle(context.Background(), "user-a", "qual a previsão do tempo?")

	assert.Equal(t, msgClarify, reply)
	assert.Equal(t, "", sessions.Get("user-a").LastEntity)
}

func TestHandler_Handle_RecoversFromPanic(t *testing.T) {
	classifier := &fakeClassifier{intent: entityIntent("pikachu", true)}
	pdx := &fakePokedex{panicOnFetch: true}
	handler, _ := newTestHandler(t, classifier, pdx)

	reply := handler.Handle(context.Background(), "user-a", "me fala do pikachu")

	assert.Equal(t, msgApology, reply)
}

// ==========================
// Conversation Flow Test
// ==========================

func TestHandler_Handle_ContextRoundTrip(t *testing.T) {
	classifier := &fakeClassifier{intent: entityIntent("pikachu", false, intent.TopicColor)}
	pdx := &fakePokedex{info: pikachuInfo()}
	handler, _ := newTestHandler(t, classifier, pdx)

	// First turn: a topic question records the entity.
	first := handler.Handle(context.Background(), "user-a", "qual a cor do pikachu?")
	require.Contains(t, first, "Cor: yellow")
	assert.Equal(t, "", classifier.lastHint)

	// Second turn: the bare continuation resolves against the recorded entity.
	classifier.intent = entityIntent("pikachu", true)
	second := handler.Handle(context.Background(), "user-a", "tudo")
	assert.Equal(t, "pikachu", classifier.lastHint)
	assert.Contains(t, second, "Altura: 0.4 m")
	assert.Contains(t, second, msgInviteMore)
}
