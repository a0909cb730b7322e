// Package ports defines the interfaces between the application layer and
// infrastructure implementations.
package ports

import (
	"context"

	"formforge-backend/domain/forms"
)

// FormRepository is the durable mapping from form ID to Form record.
//
// SaveForm upserts: when id matches an existing record the patch is merged
// into it and updatedAt refreshed; when id is empty or unmatched a new
// fully populated record is created. The returned form is always re-read
// from the store so callers observe the complete persisted state.
type FormRepository interface {
	GetAllForms(ctx context.Context) ([]*forms.Form, error)
	GetFormByID(ctx context.Context, id string) (*forms.Form, error)
	SaveForm(ctx context.Context, id string, patch forms.FormPatch) (*forms.Form, error)
	DeleteForm(ctx context.Context, id string) error
	PublishForm(ctx context.Context, id string) (*forms.Form, error)
	UnpublishForm(ctx context.Context, id string) (*forms.Form, error)
}

// SubmissionRepository persists end-user form submissions
type SubmissionRepository interface {
	SaveSubmission(ctx context.Context, sub *forms.Submission) error
	ListSubmissionsByForm(ctx context.Context, formID string) ([]*forms.Submission, error)
}

// Suggester asks an external text-generation service for field name
// suggestions based on a form title
type Suggester interface {
	SuggestFields(ctx context.Context, formTitle string) ([]string, error)
}
