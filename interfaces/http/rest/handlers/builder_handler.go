package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"formforge-backend/application/ports"
	"formforge-backend/application/services"
	"formforge-backend/domain/forms"
	"formforge-backend/pkg/common"
	"formforge-backend/pkg/utils"
)

// BuilderHandler exposes the field-level editing operations of the form
// builder. Each request loads a session over the stored form, applies one
// mutation and saves, so the stored record is always the source of truth
// between UI actions.
type BuilderHandler struct {
	repo      ports.FormRepository
	suggester ports.Suggester
	logger    *zap.Logger
}

// NewBuilderHandler creates a new builder handler
func NewBuilderHandler(repo ports.FormRepository, suggester ports.Suggester, logger *zap.Logger) *BuilderHandler {
	return &BuilderHandler{repo: repo, suggester: suggester, logger: logger}
}

// AddFieldRequest represents the request body for appending a field
type AddFieldRequest struct {
	Type  forms.FieldType `json:"type" validate:"required"`
	Label string          `json:"label,omitempty" validate:"omitempty,max=200"`
}

// OptionRequest represents the request body for option mutations
type OptionRequest struct {
	Label string `json:"label" validate:"required,max=200"`
	Value string `json:"value" validate:"required,max=200"`
}

// SuggestionAcceptRequest represents the request body for accepting one
// suggested field name
type SuggestionAcceptRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// AddField handles POST /api/v1/forms/{formID}/fields
func (h *BuilderHandler) AddField(w http.ResponseWriter, r *http.Request) {
	var req AddFieldRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.mutate(w, r, func(session *services.BuilderSession) error {
		_, err := session.AddField(req.Type, req.Label)
		return err
	})
}

// UpdateField handles PUT /api/v1/forms/{formID}/fields/{index}
func (h *BuilderHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	index, ok := h.index(w, r, "index")
	if !ok {
		return
	}
	var field forms.FormField
	if !h.decode(w, r, &field) {
		return
	}
	if field.ID == "" {
		field.ID = forms.NewID()
	}
	h.mutate(w, r, func(session *services.BuilderSession) error {
		return session.UpdateField(index, field)
	})
}

// RemoveField handles DELETE /api/v1/forms/{formID}/fields/{index}
func (h *BuilderHandler) RemoveField(w http.ResponseWriter, r *http.Request) {
	index, ok := h.index(w, r, "index")
	if !ok {
		return
	}
	h.mutate(w, r, func(session *services.BuilderSession) error {
		return session.RemoveField(index)
	})
}

// AddOption handles POST /api/v1/forms/{formID}/fields/{index}/options
func (h *BuilderHandler) AddOption(w http.ResponseWriter, r *http.Request) {
	index, ok := h.index(w, r, "index")
	if !ok {
		return
	}
	var req OptionRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.mutate(w, r, func(session *services.BuilderSession) error {
		return session.AddOption(index, req.Label, req.Value)
	})
}

// UpdateOption handles PUT /api/v1/forms/{formID}/fields/{index}/options/{optionIndex}
func (h *BuilderHandler) UpdateOption(w http.ResponseWriter, r *http.Request) {
	index, ok := h.index(w, r, "index")
	if !ok {
		return
	}
	optionIndex, ok := h.index(w, r, "optionIndex")
	if !ok {
		return
	}
	var req OptionRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.mutate(w, r, func(session *services.BuilderSession) error {
		return session.UpdateOption(index, optionIndex, req.Label, req.Value)
	})
}

// RemoveOption handles DELETE /api/v1/forms/{formID}/fields/{index}/options/{optionIndex}
func (h *BuilderHandler) RemoveOption(w http.ResponseWriter, r *http.Request) {
	index, ok := h.index(w, r, "index")
	if !ok {
		return
	}
	optionIndex, ok := h.index(w, r, "optionIndex")
	if !ok {
		return
	}
	h.mutate(w, r, func(session *services.BuilderSession) error {
		return session.RemoveOption(index, optionIndex)
	})
}

// Preview handles POST /api/v1/forms/{formID}/preview. The form is saved
// first so the preview renders durable state.
func (h *BuilderHandler) Preview(w http.ResponseWriter, r *http.Request) {
	session, err := h.load(r)
	if err != nil {
		respondAppError(w, err)
		return
	}
	path, err := session.Preview(r.Context())
	if err != nil {
		h.logger.Error("preview save failed", zap.Error(err))
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"previewUrl": path})
}

// Suggest handles POST /api/v1/forms/{formID}/suggestions
func (h *BuilderHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	session, err := h.load(r)
	if err != nil {
		respondAppError(w, err)
		return
	}
	suggested, err := session.RequestSuggestions(r.Context())
	if err != nil {
		h.logger.Warn("field suggestion request failed", zap.Error(err))
		respondAppError(w, err)
		return
	}
	if suggested == nil {
		suggested = []string{}
	}
	common.RespondJSON(w, http.StatusOK, map[string][]string{"suggestedFields": suggested})
}

// AcceptSuggestion handles POST /api/v1/forms/{formID}/suggestions/accept:
// it appends a field named after the suggestion with its type inferred
// from the name, then saves.
func (h *BuilderHandler) AcceptSuggestion(w http.ResponseWriter, r *http.Request) {
	var req SuggestionAcceptRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.mutate(w, r, func(session *services.BuilderSession) error {
		_, err := session.AcceptSuggestion(req.Name)
		return err
	})
}

func (h *BuilderHandler) load(r *http.Request) (*services.BuilderSession, error) {
	return services.LoadBuilderSession(r.Context(), h.repo, h.suggester, h.logger,
		chi.URLParam(r, "formID"))
}

// mutate runs one builder operation against a freshly loaded session and
// persists the result
func (h *BuilderHandler) mutate(w http.ResponseWriter, r *http.Request, op func(*services.BuilderSession) error) {
	session, err := h.load(r)
	if err != nil {
		respondAppError(w, err)
		return
	}
	if err := op(session); err != nil {
		respondAppError(w, err)
		return
	}
	saved, err := session.Save(r.Context())
	if err != nil {
		h.logger.Error("builder save failed", zap.Error(err))
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, saved)
}

func (h *BuilderHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body: "+err.Error())
		return false
	}
	if err := utils.ValidateStruct(dst); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return false
	}
	return true
}

func (h *BuilderHandler) index(w http.ResponseWriter, r *http.Request, param string) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", param+" must be an integer")
		return 0, false
	}
	return index, true
}
