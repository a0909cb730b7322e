package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"formforge-backend/application/ports"
	"formforge-backend/domain/forms"
	pkgerrors "formforge-backend/pkg/errors"
)

// FormRepository implements ports.FormRepository over the sqlite store
type FormRepository struct {
	store   *Store
	baseURL string
	logger  *zap.Logger
}

// NewFormRepository creates a form repository. baseURL is the site origin
// used to derive published form URLs, e.g. "http://localhost:8080".
func NewFormRepository(store *Store, baseURL string, logger *zap.Logger) ports.FormRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormRepository{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

const formColumns = `id, title, description, project_notes, fields_json,
	created_at, updated_at, published_at, published_url, version`

// GetAllForms returns every stored form in insertion order
func (r *FormRepository) GetAllForms(ctx context.Context) ([]*forms.Form, error) {
	rows, err := r.store.db.QueryContext(ctx,
		`SELECT `+formColumns+` FROM forms ORDER BY rowid`)
	if err != nil {
		return nil, pkgerrors.NewStorageError("GetAllForms", err)
	}
	defer rows.Close()

	var result []*forms.Form
	for rows.Next() {
		form, _, err := scanForm(rows)
		if err != nil {
			return nil, pkgerrors.NewStorageError("GetAllForms", err)
		}
		result = append(result, form)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.NewStorageError("GetAllForms", err)
	}
	return result, nil
}

// GetFormByID returns the form matching id, or a not-found error
func (r *FormRepository) GetFormByID(ctx context.Context, id string) (*forms.Form, error) {
	row := r.store.db.QueryRowContext(ctx,
		`SELECT `+formColumns+` FROM forms WHERE id = ?`, id)
	form, _, err := scanForm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.NewNotFoundError("form")
	}
	if err != nil {
		return nil, pkgerrors.NewStorageError("GetFormByID", err)
	}
	return form, nil
}

// SaveForm upserts a form. When id matches an existing record the patch is
// merged into it under an optimistic version check and updatedAt refreshed;
// when id is empty or unmatched a new record is created (generating an id
// if missing, defaulting the title, defaulting fields to empty). The
// returned form is re-read from the store so the caller observes the
// complete persisted state, not the input.
func (r *FormRepository) SaveForm(ctx context.Context, id string, patch forms.FormPatch) (*forms.Form, error) {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, pkgerrors.NewStorageError("SaveForm", err)
	}
	defer tx.Rollback()

	var finalID string
	if id != "" {
		existing, version, err := getFormTx(ctx, tx, id)
		if err != nil && !pkgerrors.IsNotFound(err) {
			return nil, err
		}
		if existing != nil {
			patch.Apply(existing)
			existing.UpdatedAt = forms.Now()
			if err := updateFormTx(ctx, tx, existing, version); err != nil {
				return nil, err
			}
			finalID = existing.ID
		} else {
			// ID provided but unmatched: treat as new with this ID
			form := newFormFromPatch(id, patch)
			if err := insertFormTx(ctx, tx, form); err != nil {
				return nil, err
			}
			finalID = form.ID
		}
	} else {
		form := newFormFromPatch("", patch)
		if err := insertFormTx(ctx, tx, form); err != nil {
			return nil, err
		}
		finalID = form.ID
	}

	saved, _, err := getFormTx(ctx, tx, finalID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, pkgerrors.NewStorageError("SaveForm", err)
	}

	r.logger.Debug("form saved",
		zap.String("formID", saved.ID),
		zap.String("title", saved.Title),
	)
	return saved, nil
}

// DeleteForm removes the matching record permanently. Deleting an absent
// id is a no-op, not an error.
func (r *FormRepository) DeleteForm(ctx context.Context, id string) error {
	_, err := r.store.db.ExecContext(ctx, `DELETE FROM forms WHERE id = ?`, id)
	if err != nil {
		return pkgerrors.NewStorageError("DeleteForm", err)
	}
	return nil
}

// PublishForm stamps the form with a publish time and derived URL, then
// re-saves it. Returns the updated record or a not-found error.
func (r *FormRepository) PublishForm(ctx context.Context, id string) (*forms.Form, error) {
	if _, err := r.GetFormByID(ctx, id); err != nil {
		return nil, err
	}
	return r.SaveForm(ctx, id, forms.FormPatch{
		Publish: &forms.PublishState{
			At:  forms.Now(),
			URL: r.baseURL + "/forms/" + id,
		},
	})
}

// UnpublishForm clears both publish fields and re-saves
func (r *FormRepository) UnpublishForm(ctx context.Context, id string) (*forms.Form, error) {
	if _, err := r.GetFormByID(ctx, id); err != nil {
		return nil, err
	}
	return r.SaveForm(ctx, id, forms.FormPatch{Publish: &forms.PublishState{}})
}

// newFormFromPatch builds a fully populated record for insertion
func newFormFromPatch(id string, patch forms.FormPatch) *forms.Form {
	title := ""
	if patch.Title != nil {
		title = *patch.Title
	}
	form := forms.NewForm(title)
	if id != "" {
		form.ID = id
	}
	patch.Apply(form)
	if form.Title == "" {
		form.Title = forms.DefaultTitle
	}
	if form.Fields == nil {
		form.Fields = []forms.FormField{}
	}
	return form
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanForm(row rowScanner) (*forms.Form, int, error) {
	var (
		form         forms.Form
		fieldsJSON   string
		publishedAt  sql.NullString
		publishedURL sql.NullString
		version      int
	)
	err := row.Scan(
		&form.ID, &form.Title, &form.Description, &form.ProjectNotes,
		&fieldsJSON, &form.CreatedAt, &form.UpdatedAt,
		&publishedAt, &publishedURL, &version,
	)
	if err != nil {
		return nil, 0, err
	}
	if err := json.Unmarshal([]byte(fieldsJSON), &form.Fields); err != nil {
		return nil, 0, err
	}
	if form.Fields == nil {
		form.Fields = []forms.FormField{}
	}
	form.PublishedAt = publishedAt.String
	form.PublishedURL = publishedURL.String
	return &form, version, nil
}

func getFormTx(ctx context.Context, tx *sql.Tx, id string) (*forms.Form, int, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+formColumns+` FROM forms WHERE id = ?`, id)
	form, version, err := scanForm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, pkgerrors.NewNotFoundError("form")
	}
	if err != nil {
		return nil, 0, pkgerrors.NewStorageError("GetFormByID", err)
	}
	return form, version, nil
}

func insertFormTx(ctx context.Context, tx *sql.Tx, form *forms.Form) error {
	fieldsJSON, err := json.Marshal(form.Fields)
	if err != nil {
		return pkgerrors.NewStorageError("SaveForm", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO forms (id, title, description, project_notes, fields_json,
			created_at, updated_at, published_at, published_url, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		form.ID, form.Title, form.Description, form.ProjectNotes,
		string(fieldsJSON), form.CreatedAt, form.UpdatedAt,
		nullable(form.PublishedAt), nullable(form.PublishedURL),
	)
	if err != nil {
		return pkgerrors.NewStorageError("SaveForm", err)
	}
	return nil
}

func updateFormTx(ctx context.Context, tx *sql.Tx, form *forms.Form, version int) error {
	fieldsJSON, err := json.Marshal(form.Fields)
	if err != nil {
		return pkgerrors.NewStorageError("SaveForm", err)
	}
	result, err := tx.ExecContext(ctx, `
		UPDATE forms
		SET title = ?, description = ?, project_notes = ?, fields_json = ?,
			updated_at = ?, published_at = ?, published_url = ?,
			version = version + 1
		WHERE id = ? AND version = ?`,
		form.Title, form.Description, form.ProjectNotes, string(fieldsJSON),
		form.UpdatedAt, nullable(form.PublishedAt), nullable(form.PublishedURL),
		form.ID, version,
	)
	if err != nil {
		return pkgerrors.NewStorageError("SaveForm", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.NewStorageError("SaveForm", err)
	}
	if affected == 0 {
		return pkgerrors.NewConflictError("form was modified concurrently")
	}
	return nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
