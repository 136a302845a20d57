package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mlafitness/backend/internal/telemetry/metrics"
	"github.com/mlafitness/backend/internal/telemetry/tracing"
	"github.com/mlafitness/backend/pkg"
)

const (
	// anonymousUser keys conversations for requests without a username.
	anonymousUser = "anonymous"

	emptyMessageReply  = "I didn't receive a message. Please try again!"
	modelTroubleReply  = "I'm having trouble connecting right now. Please try again!"
	conversationClosed = "Conversation reset"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=chat_test

type modelClient interface {
	Complete(ctx context.Context, systemPrompt string, turns []Turn) (*Completion, error)
	Model() string
}

type ChatRequest struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Context  struct {
		Screen string `json:"screen"`
	} `json:"context"`
	// Screen is the flat legacy form of context.screen, read only when the
	// context object is absent.
	Screen string `json:"screen,omitempty"`
}

func (req *ChatRequest) screen() string {
	if req.Context.Screen != "" {
		return req.Context.Screen
	}
	if req.Screen != "" {
		return req.Screen
	}
	return ScreenGeneral
}

type ChatResponse struct {
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions,omitempty"`
	Success     bool     `json:"success"`
	Usage       *Usage   `json:"usage,omitempty"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type ResetRequest struct {
	Username string `json:"username"`
}

type ResetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status           string `json:"status"`
	Model            string `json:"model"`
	MongoDBConnected bool   `json:"mongodb_connected"`
}

// Handler serves the chatbot endpoints: the chat exchange itself, follow-up
// suggestions, conversation reset and health.
type Handler struct {
	history    *History
	ctxBuilder *ContextBuilder
	client     modelClient
	engine     *Engine

	metricsManager *metrics.Manager
	pingStore      func(ctx context.Context) error
}

type NewHandlerParams struct {
	History        *History
	ContextBuilder *ContextBuilder
	Client         modelClient
	Engine         *Engine
	MetricsManager *metrics.Manager
	PingStore      func(ctx context.Context) error
}

func NewHandler(params NewHandlerParams) *Handler {
	return &Handler{
		history:        params.History,
		ctxBuilder:     params.ContextBuilder,
		client:         params.Client,
		engine:         params.Engine,
		metricsManager: params.MetricsManager,
		pingStore:      params.PingStore,
	}
}

// HandleChat runs one chat exchange: detect the period window, build the
// fitness context, call the model with the recent conversation, then attach
// follow-up suggestions. The user turn is recorded before the model call so
// a failed exchange still shows up in the conversation; the assistant turn
// is recorded only on success.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "chat.handler.chat")
	defer span.End()

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("chat request, decode body: %s", err)
		h.writeChatError(w, http.StatusBadRequest, emptyMessageReply)
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" || req.Username == "" {
		h.writeChatError(w, http.StatusBadRequest, emptyMessageReply)
		return
	}

	username := req.Username
	screen := req.screen()

	span.SetAttributes(
		attribute.String("username", username),
		attribute.String("screen", screen),
	)

	windowDays := DetectWindowDays(req.Message)
	fc := h.ctxBuilder.Build(ctx, username, windowDays)
	systemPrompt := BuildSystemPrompt(screen, fc)

	h.history.Append(username, RoleUser, req.Message)
	contextTurns := h.history.ContextWindow(username, ContextTurns)

	completion, err := h.client.Complete(ctx, systemPrompt, contextTurns)
	if err != nil {
		log.Errorf("chat exchange for [%s]: %s", username, err)
		h.writeChatError(w, http.StatusInternalServerError, modelTroubleReply)
		return
	}

	h.history.Append(username, RoleAssistant, completion.Text)
	h.metricsManager.CounterChatExchanges.Inc()

	recentTurns := h.history.ContextWindow(username, RecentTurns)
	suggestions := h.engine.Suggest(recentTurns, screen, fc)

	h.writeJSON(w, ChatResponse{
		Response:    completion.Text,
		Suggestions: suggestions,
		Success:     true,
		Usage:       &completion.Usage,
	})
}

// HandleSuggestions returns follow-up prompts without running an exchange.
func (h *Handler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "chat.handler.suggestions")
	defer span.End()

	username := r.URL.Query().Get("username")
	if username == "" {
		username = anonymousUser
	}
	screen := r.URL.Query().Get("screen")
	if screen == "" {
		screen = ScreenGeneral
	}

	fc := h.ctxBuilder.Build(ctx, username, DefaultWindowDays)
	recentTurns := h.history.ContextWindow(username, RecentTurns)

	h.writeJSON(w, SuggestionsResponse{
		Suggestions: h.engine.Suggest(recentTurns, screen, fc),
	})
}

// HandleReset discards the caller's conversation history.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "chat.handler.reset")
	defer span.End()

	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("reset request, decode body: %s", err)
	}
	if req.Username == "" {
		req.Username = anonymousUser
	}

	h.history.Reset(req.Username)

	h.writeJSON(w, ResetResponse{
		Success: true,
		Message: conversationClosed,
	})
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	mongoConnected := h.pingStore(pingCtx) == nil

	h.writeJSON(w, HealthResponse{
		Status:           "healthy",
		Model:            h.client.Model(),
		MongoDBConnected: mongoConnected,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, payload any) {
	respBytes, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("chat handler, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(respBytes))
}

func (h *Handler) writeChatError(w http.ResponseWriter, statusCode int, reply string) {
	respBytes, err := json.Marshal(ChatResponse{
		Response: reply,
		Success:  false,
	})
	if err != nil {
		log.Errorf("chat handler, marshal error response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, statusCode)
}
