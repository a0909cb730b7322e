package sqlite

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"formforge-backend/application/ports"
	"formforge-backend/domain/forms"
	pkgerrors "formforge-backend/pkg/errors"
)

// SubmissionRepository implements ports.SubmissionRepository over the
// sqlite store
type SubmissionRepository struct {
	store  *Store
	logger *zap.Logger
}

// NewSubmissionRepository creates a submission repository
func NewSubmissionRepository(store *Store, logger *zap.Logger) ports.SubmissionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionRepository{store: store, logger: logger}
}

// SaveSubmission appends a submission record
func (r *SubmissionRepository) SaveSubmission(ctx context.Context, sub *forms.Submission) error {
	dataJSON, err := json.Marshal(sub.Data)
	if err != nil {
		return pkgerrors.NewStorageError("SaveSubmission", err)
	}
	_, err = r.store.db.ExecContext(ctx, `
		INSERT INTO submissions (id, form_id, submitted_at, data_json)
		VALUES (?, ?, ?, ?)`,
		sub.ID, sub.FormID, sub.SubmittedAt, string(dataJSON),
	)
	if err != nil {
		return pkgerrors.NewStorageError("SaveSubmission", err)
	}
	r.logger.Debug("submission saved",
		zap.String("submissionID", sub.ID),
		zap.String("formID", sub.FormID),
	)
	return nil
}

// ListSubmissionsByForm returns every submission for a form in arrival order
func (r *SubmissionRepository) ListSubmissionsByForm(ctx context.Context, formID string) ([]*forms.Submission, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, form_id, submitted_at, data_json
		FROM submissions WHERE form_id = ? ORDER BY rowid`, formID)
	if err != nil {
		return nil, pkgerrors.NewStorageError("ListSubmissionsByForm", err)
	}
	defer rows.Close()

	var result []*forms.Submission
	for rows.Next() {
		var sub forms.Submission
		var dataJSON string
		if err := rows.Scan(&sub.ID, &sub.FormID, &sub.SubmittedAt, &dataJSON); err != nil {
			return nil, pkgerrors.NewStorageError("ListSubmissionsByForm", err)
		}
		if err := json.Unmarshal([]byte(dataJSON), &sub.Data); err != nil {
			return nil, pkgerrors.NewStorageError("ListSubmissionsByForm", err)
		}
		result = append(result, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.NewStorageError("ListSubmissionsByForm", err)
	}
	return result, nil
}
