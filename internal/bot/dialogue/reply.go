package dialogue

import (
	"fmt"
	"strings"

	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/bot/intent"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/bot/pokedex"
)

const (
	msgInviteMore     = "Se quiser saber mais alguma coisa, é só perguntar!"
	msgSuggestHeader  = "Aqui estão algumas sugestões de Pokémon:"
	msgSuggestInvite  = "Me pergunte sobre qualquer um deles!"
	listEmptyFallback = "nenhuma"
)

// topicLabels are the Portuguese names used when suggesting unasked topics.
var topicLabels = map[string]string{
	intent.TopicColor:      "cor",
	intent.TopicHeight:     "altura",
	intent.TopicWeight:     "peso",
	intent.TopicType:       "tipo",
	intent.TopicAdvantages: "vantagens",
	intent.TopicWeaknesses: "fraquezas",
}

// composeEntityReply renders the answer for one Pokémon: a header line, one
// line per requested topic in canonical order, then the follow-up line.
func composeEntityReply(query *intent.EntityQuery, info *pokedex.EntityInfo) string {
	asked := make(map[string]bool, len(query.Topics))
	for _, t := range query.Topics {
		asked[t] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Aqui está o que encontrei sobre *%s*:\n", capitalize(info.Name))

	for _, topic := range intent.CanonicalTopics {
		if !query.AnswerFull && !asked[topic] {
			continue
		}
		b.WriteString(topicLine(topic, info))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(followUpLine(query, asked))
	return b.String()
}

func topicLine(topic string, info *pokedex.EntityInfo) string {
	switch topic {
	case intent.TopicColor:
		return "Cor: " + info.Color
	case intent.TopicHeight:
		return "Altura: " + info.Height
	case intent.TopicWeight:
		return "Peso: " + info.Weight
	case intent.TopicType:
		return "Tipo: " + strings.Join(info.Types, ", ")
	case intent.TopicAdvantages:
		return "Vantagens: " + joinOrFallback(info.Advantages)
	case intent.TopicWeaknesses:
		return "Fraquezas: " + joinOrFallback(info.Weaknesses)
	}
	return ""
}

// followUpLine picks the closing line: a generic invitation after a full
// answer, otherwise a suggestion naming the topics not yet asked.
func followUpLine(query *intent.EntityQuery, asked map[string]bool) string {
	if query.AnswerFull {
		return msgInviteMore
	}

	var unasked []string
	for _, topic := range intent.CanonicalTopics {
		if !asked[topic] {
			unasked = append(unasked, topicLabels[topic])
		}
	}
	if len(unasked) == 0 {
		return msgInviteMore
	}

	return fmt.Sprintf("Quer saber também sobre %s?", joinWithOu(unasked))
}

func composeSuggestionReply(names []string) string {
	var b strings.Builder
	b.WriteString(msgSuggestHeader)
	b.WriteByte('\n')
	for _, name := range names {
		b.WriteString("• ")
		b.WriteString(capitalize(name))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(msgSuggestInvite)
	return b.String()
}

func joinOrFallback(items []string) string {
	if len(items) == 0 {
		return listEmptyFallback
	}
	return strings.Join(items, ", ")
}

// joinWithOu joins items with commas and a final "ou": "a, b ou c".
func joinWithOu(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " ou " + items[len(items)-1]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
