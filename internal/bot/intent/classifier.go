package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	commonerrors "github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/errors"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/logger"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/metrics"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/llm"
)

const promptTemplate = `Você é o classificador de intenções de um bot de Pokédex no WhatsApp.
Analise a mensagem do usuário e responda SOMENTE com um objeto JSON, sem nenhum texto adicional e sem markdown.

Se o usuário pedir sugestões ou indicações de Pokémon, responda no formato:
{"suggest": true, "count": <quantidade pedida, 1 se não informada>, "type": "<tipo em inglês, ex: water; omita se não houver filtro>"}

Para qualquer outra mensagem, responda no formato:
{"is_pokemon": <true se a mensagem fala de um Pokémon específico, senão false>, "name": "<nome do Pokémon em minúsculas, sem acentos; omita se não souber>", "topics": [<apenas valores entre "color", "height", "weight", "type", "advantages", "weaknesses" que o usuário pediu>], "answer_full": <true se o usuário quer todas as informações ou não especificou tópicos>}
`

const contextHintTemplate = `
O usuário está no meio de uma conversa sobre o Pokémon "%s".
Se a mensagem for uma continuação curta (por exemplo "tudo", "mais", "completo"), considere que ela se refere a esse Pokémon e use-o como "name".
`

// fencedBlock matches the first markdown code fence in a model reply, with or
// without a language tag.
var fencedBlock = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")

// Classifier turns a raw utterance into a typed Intent via one language-model
// call followed by a strict parse-then-validate step.
type Classifier struct {
	llm     llm.Client
	schemas *schemas
	logger  logger.Logger
}

func NewClassifier(llmClient llm.Client, log logger.Logger) (*Classifier, error) {
	s, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	return &Classifier{
		llm:     llmClient,
		schemas: s,
		logger: log.WithFields(map[string]interface{}{
			"component": "intent-classifier",
		}),
	}, nil
}

// Classify builds the instruction prompt, calls the model and parses the reply.
// A reply that is not valid JSON fails with CLASSIFICATION_MALFORMED carrying
// the raw text; valid JSON of an unknown shape maps to KindNotRecognized.
func (c *Classifier) Classify(ctx context.Context, utterance, contextHint string) (*Intent, error) {
	raw, err := c.llm.Complete(ctx, c.buildPrompt(utterance, contextHint))
	if err != nil {
		return nil, err
	}

	doc := sanitizeReply(raw)

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(doc), &fields); err != nil {
		c.logger.Warn("model reply is not valid JSON", map[string]interface{}{
			"reply": raw,
		})
		return nil, commonerrors.NewClassificationMalformedError(raw)
	}

	parsed := c.mapToVariant(doc, fields)
	metrics.IntentsClassified.WithLabelValues(string(parsed.Kind)).Inc()
	return parsed, nil
}

func (c *Classifier) buildPrompt(utterance, contextHint string) string {
	var b strings.Builder
	b.WriteString(promptTemplate)
	if contextHint != "" {
		fmt.Fprintf(&b, contextHintTemplate, contextHint)
	}
	fmt.Fprintf(&b, "\nMensagem do usuário: %q\n", utterance)
	return b.String()
}

// mapToVariant validates the decoded reply against the known shapes, in order.
func (c *Classifier) mapToVariant(doc string, fields map[string]interface{}) *Intent {
	if c.schemas.matchesSuggest(doc) {
		if wantsSuggestion, _ := fields["suggest"].(bool); wantsSuggestion {
			return &Intent{
				Kind:    KindSuggest,
				Suggest: buildSuggestRequest(fields),
			}
		}
		return notRecognized()
	}

	if c.schemas.matchesEntity(doc) {
		return &Intent{
			Kind:   KindEntityQuery,
			Entity: buildEntityQuery(fields),
		}
	}

	return notRecognized()
}

func buildSuggestRequest(fields map[string]interface{}) *SuggestRequest {
	req := &SuggestRequest{Count: 1}
	if count, ok := fields["count"].(float64); ok && count >= 1 {
		req.Count = int(count)
	}
	if category, ok := fields["type"].(string); ok {
		req.Category = strings.ToLower(strings.TrimSpace(category))
	}
	return req
}

func buildEntityQuery(fields map[string]interface{}) *EntityQuery {
	query := &EntityQuery{}
	query.IsEntity, _ = fields["is_pokemon"].(bool)

	if name, ok := fields["name"].(string); ok {
		query.Name = strings.ToLower(strings.TrimSpace(name))
	}

	if rawTopics, ok := fields["topics"].([]interface{}); ok {
		seen := make(map[string]bool, len(rawTopics))
		for _, t := range rawTopics {
			topic, ok := t.(string)
			if !ok || seen[topic] {
				continue
			}
			seen[topic] = true
			query.Topics = append(query.Topics, topic)
		}
	}

	answerFull, _ := fields["answer_full"].(bool)
	// Invariant: an empty topic list always means a full answer.
	query.AnswerFull = answerFull || len(query.Topics) == 0

	return query
}

// sanitizeReply extracts the contents of the first fenced code block if one is
// present; otherwise it strips stray fence markers from the edges.
func sanitizeReply(raw string) string {
	if m := fencedBlock.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}

	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// IsMalformed reports whether err is the malformed-classification failure. The
// caller must treat it as NotRecognized with a user-facing apology, not a crash.
func IsMalformed(err error) bool {
	return commonerrors.CodeOf(err) == commonerrors.ErrCodeClassificationMalformed
}
