package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"formforge-backend/application/ports"
	"formforge-backend/domain/forms"
	"formforge-backend/pkg/common"
	"formforge-backend/pkg/utils"
)

// FormHandler handles the form CRUD and publish lifecycle endpoints
type FormHandler struct {
	repo   ports.FormRepository
	logger *zap.Logger
}

// NewFormHandler creates a new form handler
func NewFormHandler(repo ports.FormRepository, logger *zap.Logger) *FormHandler {
	return &FormHandler{repo: repo, logger: logger}
}

// SaveFormRequest represents the request body for creating or updating a
// form. Pointer fields distinguish "leave unchanged" (absent) from an
// explicit empty value.
type SaveFormRequest struct {
	Title        *string           `json:"title,omitempty" validate:"omitempty,max=200"`
	Description  *string           `json:"description,omitempty" validate:"omitempty,max=2000"`
	ProjectNotes *string           `json:"projectNotes,omitempty" validate:"omitempty,max=10000"`
	Fields       []forms.FormField `json:"fields,omitempty"`
}

func (req *SaveFormRequest) patch() (forms.FormPatch, error) {
	patch := forms.FormPatch{
		Title:        req.Title,
		Description:  req.Description,
		ProjectNotes: req.ProjectNotes,
		Fields:       req.Fields,
	}
	for i := range patch.Fields {
		if patch.Fields[i].ID == "" {
			patch.Fields[i].ID = forms.NewID()
		}
		if err := patch.Fields[i].Validate(); err != nil {
			return forms.FormPatch{}, err
		}
	}
	return patch, nil
}

// ListForms handles GET /api/v1/forms
func (h *FormHandler) ListForms(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.GetAllForms(r.Context())
	if err != nil {
		h.logger.Error("failed to list forms", zap.Error(err))
		respondAppError(w, err)
		return
	}
	if all == nil {
		all = []*forms.Form{}
	}
	common.RespondJSON(w, http.StatusOK, all)
}

// GetForm handles GET /api/v1/forms/{formID}
func (h *FormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.repo.GetFormByID(r.Context(), chi.URLParam(r, "formID"))
	if err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, form)
}

// CreateForm handles POST /api/v1/forms
func (h *FormHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// UpdateForm handles PUT /api/v1/forms/{formID}
func (h *FormHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, chi.URLParam(r, "formID"))
}

func (h *FormHandler) save(w http.ResponseWriter, r *http.Request, id string) {
	var req SaveFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	patch, err := req.patch()
	if err != nil {
		respondAppError(w, err)
		return
	}

	saved, err := h.repo.SaveForm(r.Context(), id, patch)
	if err != nil {
		h.logger.Error("failed to save form", zap.String("formID", id), zap.Error(err))
		respondAppError(w, err)
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	common.RespondJSON(w, status, saved)
}

// DeleteForm handles DELETE /api/v1/forms/{formID}
func (h *FormHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteForm(r.Context(), chi.URLParam(r, "formID")); err != nil {
		h.logger.Error("failed to delete form", zap.Error(err))
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "form deleted"})
}

// PublishForm handles POST /api/v1/forms/{formID}/publish
func (h *FormHandler) PublishForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.repo.PublishForm(r.Context(), chi.URLParam(r, "formID"))
	if err != nil {
		respondAppError(w, err)
		return
	}
	h.logger.Info("form published",
		zap.String("formID", form.ID),
		zap.String("publishedUrl", form.PublishedURL),
	)
	common.RespondJSON(w, http.StatusOK, form)
}

// UnpublishForm handles POST /api/v1/forms/{formID}/unpublish
func (h *FormHandler) UnpublishForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.repo.UnpublishForm(r.Context(), chi.URLParam(r, "formID"))
	if err != nil {
		respondAppError(w, err)
		return
	}
	h.logger.Info("form unpublished", zap.String("formID", form.ID))
	common.RespondJSON(w, http.StatusOK, form)
}
