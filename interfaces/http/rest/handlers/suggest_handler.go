package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"formforge-backend/application/ports"
	"formforge-backend/pkg/common"
	"formforge-backend/pkg/utils"
)

// SuggestHandler exposes the field suggestion service boundary directly:
// a title in, suggested field names out.
type SuggestHandler struct {
	suggester ports.Suggester
	logger    *zap.Logger
}

// NewSuggestHandler creates a new suggestion handler
func NewSuggestHandler(suggester ports.Suggester, logger *zap.Logger) *SuggestHandler {
	return &SuggestHandler{suggester: suggester, logger: logger}
}

// SuggestRequest represents the suggestion request body
type SuggestRequest struct {
	FormTitle string `json:"formTitle" validate:"required,max=200"`
}

// SuggestResponse represents the suggestion response body
type SuggestResponse struct {
	SuggestedFields []string `json:"suggestedFields"`
}

// Suggest handles POST /api/v1/suggestions
func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if h.suggester == nil {
		common.RespondError(w, http.StatusServiceUnavailable, "EXTERNAL", "suggestion service is not configured")
		return
	}

	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	suggested, err := h.suggester.SuggestFields(r.Context(), req.FormTitle)
	if err != nil {
		h.logger.Warn("field suggestion request failed",
			zap.String("formTitle", req.FormTitle), zap.Error(err))
		respondAppError(w, err)
		return
	}
	if suggested == nil {
		suggested = []string{}
	}
	common.RespondJSON(w, http.StatusOK, SuggestResponse{SuggestedFields: suggested})
}
