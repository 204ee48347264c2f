package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/culinaglass/core/internal/application/panels"
	"github.com/culinaglass/core/internal/domain/recipe"
	"github.com/culinaglass/core/pkg/healthcheck"
)

// Handlers exposes the panel operations over JSON. Every handler resolves
// the caller's session first; panel state is never shared across sessions.
type Handlers struct {
	sessions  *SessionStore
	health    *healthcheck.HealthCheck
	validate  *validator.Validate
	maxUpload int64
	logger    *zap.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(sessions *SessionStore, health *healthcheck.HealthCheck, maxUpload int64, logger *zap.Logger) *Handlers {
	if maxUpload <= 0 {
		maxUpload = 8 << 20
	}
	return &Handlers{
		sessions:  sessions,
		health:    health,
		validate:  validator.New(),
		maxUpload: maxUpload,
		logger:    logger.Named("http"),
	}
}

type searchRequest struct {
	Query string `json:"query" validate:"required"`
}

type selectRequest struct {
	Recipe recipe.Recipe `json:"recipe" validate:"required"`
}

type transformRequest struct {
	Instruction string `json:"instruction" validate:"required"`
}

type lessonRequest struct {
	Topic string `json:"topic" validate:"required"`
}

type recommendRequest struct {
	Preferences string `json:"preferences" validate:"required"`
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

// Search handles POST /api/v1/recipes/search.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	set := h.sessions.Panels(w, r)
	results, err := set.Search.Search(r.Context(), req.Query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"label":   firstNonEmpty(labelOf(set), req.Query),
		"recipes": results,
	})
}

// ScanPantry handles POST /api/v1/pantry/scan. The body is the raw JPEG.
func (h *Handlers) ScanPantry(w http.ResponseWriter, r *http.Request) {
	image, err := io.ReadAll(io.LimitReader(r.Body, h.maxUpload+1))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if int64(len(image)) > h.maxUpload {
		h.writeErrorJSON(w, http.StatusRequestEntityTooLarge, "image too large")
		return
	}
	if len(image) == 0 {
		h.writeErrorJSON(w, http.StatusBadRequest, "empty image")
		return
	}

	set := h.sessions.Panels(w, r)
	results, err := set.Search.ScanPantry(r.Context(), image)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"label":   panels.PantryResultsLabel,
		"recipes": results,
	})
}

// SelectRecipe handles POST /api/v1/recipes/select.
func (h *Handlers) SelectRecipe(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if err := req.Recipe.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}
	set := h.sessions.Panels(w, r)
	set.Details.Select(req.Recipe)
	h.writeJSON(w, http.StatusOK, map[string]any{"recipe": req.Recipe})
}

// Transform handles POST /api/v1/recipes/transform against the selected
// recipe.
func (h *Handlers) Transform(w http.ResponseWriter, r *http.Request) {
	var req transformRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	set := h.sessions.Panels(w, r)
	out, err := set.Details.Transform(r.Context(), req.Instruction)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"recipe": out})
}

// Nutrition handles POST /api/v1/recipes/nutrition against the selected
// recipe.
func (h *Handlers) Nutrition(w http.ResponseWriter, r *http.Request) {
	set := h.sessions.Panels(w, r)
	report, err := set.Details.AnalyzeNutrition(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"report": report})
}

// Recommend handles POST /api/v1/recipes/recommend.
func (h *Handlers) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	set := h.sessions.Panels(w, r)
	out, err := set.Details.Recommend(r.Context(), req.Preferences)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"recipe": out})
}

// Lesson handles POST /api/v1/lessons.
func (h *Handlers) Lesson(w http.ResponseWriter, r *http.Request) {
	var req lessonRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	set := h.sessions.Panels(w, r)
	out, err := set.Academy.Learn(r.Context(), req.Topic)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"lesson": out})
}

// ChatMessage handles POST /api/v1/chat/messages. A provider failure
// still returns 200 with the apology turn: the conversation survives.
func (h *Handlers) ChatMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	set := h.sessions.Panels(w, r)
	reply, err := set.Assistant.Send(r.Context(), req.Message)
	if err != nil && reply == "" {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"reply":      reply,
		"transcript": set.Assistant.Transcript(),
	})
}

// ChatTranscript handles GET /api/v1/chat/transcript.
func (h *Handlers) ChatTranscript(w http.ResponseWriter, r *http.Request) {
	set := h.sessions.Panels(w, r)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"transcript": set.Assistant.Transcript(),
		"awaiting":   set.Assistant.Awaiting(),
	})
}

// Suggestions handles GET /api/v1/suggestions.
func (h *Handlers) Suggestions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"default":     panels.DefaultQuery,
		"suggestions": panels.InitialQueries,
	})
}

// Health handles GET /healthz.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := h.health.Run(r.Context())
	status := http.StatusOK
	if resp.Status != healthcheck.StatusHealthy {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, resp)
}

func (h *Handlers) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, h.maxUpload)).Decode(v); err != nil {
		h.writeErrorJSON(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		h.writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// writeError maps domain errors onto HTTP statuses. Provider and
// malformed-payload failures are the upstream's fault, hence 502.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case recipe.IsCanceled(err):
		// Client went away; nothing useful to write.
		h.logger.Debug("request canceled", zap.String("path", r.URL.Path))
	case errors.Is(err, recipe.ErrEmptyQuery):
		h.writeErrorJSON(w, http.StatusBadRequest, "query must not be empty")
	case errors.Is(err, panels.ErrNoSelection):
		h.writeErrorJSON(w, http.StatusBadRequest, "no recipe selected")
	case errors.Is(err, recipe.ErrBusy):
		h.writeErrorJSON(w, http.StatusConflict, "a request is already in flight")
	case errors.Is(err, recipe.ErrMalformed):
		h.logger.Warn("malformed provider result", zap.Error(err))
		h.writeErrorJSON(w, http.StatusBadGateway, "the chef had trouble with that one")
	default:
		h.logger.Error("provider request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		h.writeErrorJSON(w, http.StatusBadGateway, "the chef had trouble with that one")
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *Handlers) writeErrorJSON(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func labelOf(set *panels.Set) string {
	label, _, _ := set.Search.State()
	return label
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
