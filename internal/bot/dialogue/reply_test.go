// internal/bot/dialogue/reply_test.go
package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/bot/intent"
)

func TestComposeEntityReply_FullAnswer(t *testing.T) {
	query := &intent.EntityQuery{IsEntity: true, Name: "pikachu", AnswerFull: true}

	reply := composeEntityReply(query, pikachuInfo())

	expected := "Aqui está o que encontrei sobre *Pikachu*:\n" +
		"Cor: yellow\n" +
		"Altura: 0.4 m\n" +
		"Peso: 6.0 kg\n" +
		"Tipo: electric\n" +
		"Vantagens: flying, water\n" +
		"Fraquezas: ground\n" +
		"\n" +
		msgInviteMore
	assert.Equal(t, expected, reply)
}

func TestComposeEntityReply_TopicsInCanonicalOrder(t *testing.T) {
	// The asked order does not matter; lines follow the fixed order.
	query := &intent.EntityQuery{
		IsEntity: true,
		Name:     "pikachu",
		Topics:   []string{intent.TopicWeight, intent.TopicColor},
	}

	reply := composeEntityReply(query, pikachuInfo())

	expected := "Aqui está o que encontrei sobre *Pikachu*:\n" +
		"Cor: yellow\n" +
		"Peso: 6.0 kg\n" +
		"\n" +
		"Quer saber também sobre altura, tipo, vantagens ou fraquezas?"
	assert.Equal(t, expected, reply)
}

func TestComposeEntityReply_AllTopicsAskedExplicitly(t *testing.T) {
	query := &intent.EntityQuery{
		IsEntity: true,
		Name:     "pikachu",
		Topics:   append([]string(nil), intent.CanonicalTopics...),
	}

	reply := composeEntityReply(query, pikachuInfo())

	// Nothing left to offer, so the generic invitation closes the reply.
	assert.Contains(t, reply, msgInviteMore)
	assert.NotContains(t, reply, "Quer saber também")
}

func TestComposeEntityReply_EmptyRelationLists(t *testing.T) {
	info := pikachuInfo()
	info.Advantages = nil
	info.Weaknesses = nil
	query := &intent.EntityQuery{IsEntity: true, Name: "pikachu", AnswerFull: true}

	reply := composeEntityReply(query, info)

	assert.Contains(t, reply, "Vantagens: nenhuma")
	assert.Contains(t, reply, "Fraquezas: nenhuma")
}

func TestComposeEntityReply_MultiTypeLine(t *testing.T) {
	info := pikachuInfo()
	info.Types = []string{"grass", "poison"}
	query := &intent.EntityQuery{IsEntity: true, Name: "bulbasaur", Topics: []string{intent.TopicType}}
	info.Name = "bulbasaur"

	reply := composeEntityReply(query, info)

	assert.Contains(t, reply, "Tipo: grass, poison")
}

func TestComposeSuggestionReply(t *testing.T) {
	reply := composeSuggestionReply([]string{"squirtle", "psyduck"})

	expected := msgSuggestHeader + "\n" +
		"• Squirtle\n" +
		"• Psyduck\n" +
		"\n" +
		msgSuggestInvite
	assert.Equal(t, expected, reply)
}

func TestJoinWithOu(t *testing.T) {
	tests := []struct {
		name     string
		items    []string
		expected string
	}{
		{"empty", nil, ""},
		{"single", []string{"cor"}, "cor"},
		{"pair", []string{"cor", "peso"}, "cor ou peso"},
		{"many", []string{"cor", "peso", "tipo"}, "cor, peso ou tipo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, joinWithOu(tt.items))
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Pikachu", capitalize("pikachu"))
	assert.Equal(t, "Mr-mime", capitalize("mr-mime"))
	assert.Equal(t, "", capitalize(""))
}
