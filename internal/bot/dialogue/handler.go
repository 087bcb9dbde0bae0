// Package dialogue orchestrates one chat message: classification, dispatch to
// the Pokédex services, context update and reply composition.
package dialogue

import (
	"context"
	"strings"
	"time"

	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/bot/intent"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/bot/pokedex"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/bot/session"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/logger"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/metrics"
)

const (
	msgClarify = `Desculpe, não entendi. Você pode me perguntar sobre um Pokémon (por exemplo: "cor do pikachu") ou pedir sugestões (por exemplo: "me indique 3 pokémons de água").`
	msgApology = "Ops, tive um probleminha para te responder. Tente novamente mais tarde!"
	msgRephrase = "Desculpe, não consegui entender sua mensagem agora. Pode tentar de novo?"
)

// continuationKeywords are the short follow-ups that resolve to the entity of
// the previous turn.
var continuationKeywords = map[string]bool{
	"tudo":     true,
	"mais":     true,
	"completo": true,
	"info":     true,
}

// Classifier is the piece of the intent package the orchestrator consumes.
type Classifier interface {
	Classify(ctx context.Context, utterance, contextHint string) (*intent.Intent, error)
}

// Pokedex is the aggregation/suggestion surface the orchestrator consumes.
type Pokedex interface {
	Fetch(ctx context.Context, name string) *pokedex.EntityInfo
	Suggest(ctx context.Context, count int, category string) *pokedex.SuggestionResult
}

type Handler struct {
	classifier Classifier
	pokedex    Pokedex
	sessions   *session.Store
	logger     logger.Logger
}

func NewHandler(classifier Classifier, pdx Pokedex, sessions *session.Store, log logger.Logger) *Handler {
	return &Handler{
		classifier: classifier,
		pokedex:    pdx,
		sessions:   sessions,
		logger: log.WithFields(map[string]interface{}{
			"component": "dialogue",
		}),
	}
}

// Handle turns one raw utterance into the text reply. It always returns a
// string; classification failures, upstream failures and panics all collapse to
// a user-facing message here and never reach the transport as errors.
func (h *Handler) Handle(ctx context.Context, userID, utterance string) (reply string) {
	start := time.Now()
	outcome := "ok"

	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("panic while handling message", map[string]interface{}{
				"user":  userID,
				"panic": r,
			})
			outcome = "panic"
			reply = msgApology
		}
		metrics.MessagesProcessed.WithLabelValues(outcome).Inc()
		metrics.MessageDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	sess := h.sessions.Get(userID)

	contextHint := ""
	if isContinuation(utterance) && sess.LastEntity != "" {
		contextHint = sess.LastEntity
	}

	classified, err := h.classifier.Classify(ctx, utterance, contextHint)
	if err != nil {
		if intent.IsMalformed(err) {
			// Treated as not recognized, with an apology instead of a crash.
			outcome = "malformed"
			h.sessions.ClearLastEntity(userID)
			return msgRephrase
		}
		h.logger.Error("classification failed", map[string]interface{}{
			"user":  userID,
			"error": err.Error(),
		})
		outcome = "classify_error"
		return msgApology
	}

	switch classified.Kind {
	case intent.KindSuggest:
		h.sessions.ClearLastEntity(userID)
		result := h.pokedex.Suggest(ctx, classified.Suggest.Count, classified.Suggest.Category)
		if !result.Success {
			outcome = "suggest_failed"
			return result.Error
		}
		outcome = "suggestion"
		return composeSuggestionReply(result.Names)

	case intent.KindEntityQuery:
		query := classified.Entity
		if !query.IsEntity {
			h.sessions.ClearLastEntity(userID)
			outcome = "not_recognized"
			return msgClarify
		}
		if query.Name == "" {
			// No context mutation when the model recognized a Pokémon question
			// but could not name the Pokémon.
			outcome = "unnamed_entity"
			return msgClarify
		}

		// The attempted name is recorded before the fetch, so a follow-up after
		// a failed lookup still refers to what the user last asked about.
		h.sessions.SetLastEntity(userID, query.Name)

		info := h.pokedex.Fetch(ctx, query.Name)
		if !info.Success {
			outcome = "entity_failed"
			return info.Error
		}
		outcome = "entity"
		return composeEntityReply(query, info)

	default:
		h.sessions.ClearLastEntity(userID)
		outcome = "not_recognized"
		return msgClarify
	}
}

func isContinuation(utterance string) bool {
	return continuationKeywords[strings.ToLower(strings.TrimSpace(utterance))]
}
