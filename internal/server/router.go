// Package server exposes the webhook HTTP surface of the bot.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/logger"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/observability"
)

// Responder produces the text reply for one inbound message.
type Responder interface {
	Handle(ctx context.Context, userID, utterance string) string
}

// Sender delivers the reply back to the user.
type Sender interface {
	SendText(ctx context.Context, phone, text string) error
}

// inboundMessage is the WPPConnect webhook payload for a received message.
type inboundMessage struct {
	From       string `json:"from"`
	Body       string `json:"body"`
	IsGroupMsg bool   `json:"isGroupMsg"`
	IsStatus   bool   `json:"isStatus"`
	Sender     struct {
		Name string `json:"name"`
	} `json:"sender"`
}

// shouldIgnore filters senders the bot never answers: groups, status updates
// and newsletters.
func (m *inboundMessage) shouldIgnore() bool {
	return m.IsGroupMsg || m.IsStatus || strings.HasSuffix(m.From, "@newsletter")
}

type Router struct {
	verifyToken string
	responder   Responder
	sender      Sender
	obs         *observability.Observability
	logger      logger.Logger
}

func NewRouter(verifyToken string, responder Responder, sender Sender, obs *observability.Observability, log logger.Logger) *Router {
	return &Router{
		verifyToken: verifyToken,
		responder:   responder,
		sender:      sender,
		obs:         obs,
		logger: log.WithFields(map[string]interface{}{
			"component": "server",
		}),
	}
}

// Engine builds the gin engine with all routes registered.
func (r *Router) Engine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), r.requestLog())

	engine.GET("/webhook", r.verifyWebhook)
	engine.POST("/webhook", r.receiveMessage)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return engine
}

func (r *Router) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		r.logger.Debug("http request", map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		})
		c.Next()
	}
}

// verifyWebhook answers the Meta-style subscription handshake.
func (r *Router) verifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	challenge := c.Query("hub.challenge")
	token := c.Query("hub.verify_token")

	if mode == "subscribe" && token == r.verifyToken {
		c.String(http.StatusOK, challenge)
		return
	}
	c.String(http.StatusForbidden, "Token inválido")
}

// receiveMessage handles one inbound chat message end to end. The webhook
// always acknowledges with 200 OK; delivery problems are logged, never surfaced
// to the caller.
func (r *Router) receiveMessage(c *gin.Context) {
	var msg inboundMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		r.logger.Warn("unparseable webhook payload", map[string]interface{}{
			"error": err.Error(),
		})
		c.String(http.StatusOK, "OK")
		return
	}

	if msg.From == "" || msg.Body == "" || msg.shouldIgnore() {
		c.String(http.StatusOK, "OK")
		return
	}

	messageID := uuid.NewString()
	start := time.Now()
	log := r.logger.WithFields(map[string]interface{}{
		"messageId": messageID,
		"from":      msg.From,
	})
	log.Info("message received", map[string]interface{}{
		"sender": msg.Sender.Name,
		"chars":  len(msg.Body),
	})

	ctx := c.Request.Context()
	reply := r.responder.Handle(ctx, msg.From, msg.Body)

	outcome := "ok"
	if err := r.sender.SendText(ctx, msg.From, reply); err != nil {
		outcome = "send_failed"
		log.WithError(err).Error("failed to deliver reply", nil)
	}

	r.obs.RecordMessageProcessed(ctx, outcome)
	r.obs.RecordMessageDuration(ctx, time.Since(start), outcome)

	c.String(http.StatusOK, "OK")
}
