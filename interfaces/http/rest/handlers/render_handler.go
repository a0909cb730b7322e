package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"formforge-backend/application/ports"
	"formforge-backend/domain/forms"
	"formforge-backend/interfaces/http/render"
	"formforge-backend/pkg/common"
)

// RenderHandler serves the HTML form pages: the published end-user view,
// the builder preview, and submission handling.
type RenderHandler struct {
	repo        ports.FormRepository
	submissions ports.SubmissionRepository
	renderer    *render.Renderer
	logger      *zap.Logger
}

// NewRenderHandler creates a new render handler
func NewRenderHandler(repo ports.FormRepository, submissions ports.SubmissionRepository, renderer *render.Renderer, logger *zap.Logger) *RenderHandler {
	return &RenderHandler{
		repo:        repo,
		submissions: submissions,
		renderer:    renderer,
		logger:      logger,
	}
}

// ViewForm handles GET /forms/{formID}: the public view of a published
// form. Unpublished forms are not externally accessible.
func (h *RenderHandler) ViewForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.repo.GetFormByID(r.Context(), chi.URLParam(r, "formID"))
	if err != nil || !form.IsPublished() {
		h.renderNotFound(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderForm(w, form, false, nil, nil); err != nil {
		h.logger.Error("failed to render form", zap.String("formID", form.ID), zap.Error(err))
	}
}

// PreviewForm handles GET /preview/{formID}: the builder-facing preview.
// Submission is suppressed; the form need not be published.
func (h *RenderHandler) PreviewForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.repo.GetFormByID(r.Context(), chi.URLParam(r, "formID"))
	if err != nil {
		h.renderNotFound(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderForm(w, form, true, nil, nil); err != nil {
		h.logger.Error("failed to render preview", zap.String("formID", form.ID), zap.Error(err))
	}
}

// SubmitForm handles POST /forms/{formID}/submissions. Required-field
// violations re-render the form with field-scoped messages and no side
// effect; a clean submission is persisted and acknowledged.
func (h *RenderHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.repo.GetFormByID(r.Context(), chi.URLParam(r, "formID"))
	if err != nil || !form.IsPublished() {
		h.renderNotFound(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	values := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		values[key] = r.PostForm.Get(key)
	}

	fieldErrors := render.ValidateSubmission(form, values)
	if len(fieldErrors) > 0 {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		if err := h.renderer.RenderForm(w, form, false, values, fieldErrors); err != nil {
			h.logger.Error("failed to re-render form", zap.String("formID", form.ID), zap.Error(err))
		}
		return
	}

	sub := forms.NewSubmission(form.ID, render.CollectSubmissionData(form, values))
	if err := h.submissions.SaveSubmission(r.Context(), sub); err != nil {
		h.logger.Error("failed to persist submission",
			zap.String("formID", form.ID), zap.Error(err))
		http.Error(w, "failed to record your response", http.StatusInternalServerError)
		return
	}

	h.logger.Info("submission recorded",
		zap.String("formID", form.ID),
		zap.String("submissionID", sub.ID),
	)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderSubmitted(w, form); err != nil {
		h.logger.Error("failed to render acknowledgement", zap.Error(err))
	}
}

// ListSubmissions handles GET /api/v1/forms/{formID}/submissions
func (h *RenderHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	if _, err := h.repo.GetFormByID(r.Context(), formID); err != nil {
		respondAppError(w, err)
		return
	}
	subs, err := h.submissions.ListSubmissionsByForm(r.Context(), formID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	if subs == nil {
		subs = []*forms.Submission{}
	}
	common.RespondJSON(w, http.StatusOK, subs)
}

func (h *RenderHandler) renderNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(notFoundPage))
}

const notFoundPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Form not found</title></head>
<body style="font-family: system-ui, sans-serif; max-width: 640px; margin: 2rem auto; text-align: center;">
<h1>Form not found</h1>
<p>This form does not exist or is no longer published.</p>
<p><a href="/">Back to safety</a></p>
</body>
</html>
`
