// Package services holds the application-layer use cases. The builder
// session is the editing workflow over exactly one form.
package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"formforge-backend/application/ports"
	"formforge-backend/domain/forms"
	pkgerrors "formforge-backend/pkg/errors"
)

// BuilderSession is a mutable in-memory editing session for one form,
// seeded either from an existing record (edit) or a fresh default record
// (create). Mutations are index based and happen on a single goroutine,
// matching the event-driven UI that drives them; the session is not safe
// for concurrent use.
type BuilderSession struct {
	repo      ports.FormRepository
	suggester ports.Suggester
	logger    *zap.Logger

	form        *forms.Form
	persisted   bool
	suggestions []string
}

// NewBuilderSession starts a session over a fresh unsaved form
func NewBuilderSession(repo ports.FormRepository, suggester ports.Suggester, logger *zap.Logger) *BuilderSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BuilderSession{
		repo:      repo,
		suggester: suggester,
		logger:    logger,
		form:      forms.NewForm(""),
	}
}

// LoadBuilderSession starts a session over an existing stored form
func LoadBuilderSession(ctx context.Context, repo ports.FormRepository, suggester ports.Suggester, logger *zap.Logger, formID string) (*BuilderSession, error) {
	form, err := repo.GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BuilderSession{
		repo:      repo,
		suggester: suggester,
		logger:    logger,
		form:      form,
		persisted: true,
	}, nil
}

// Form returns a copy of the current in-memory form state
func (s *BuilderSession) Form() *forms.Form {
	return s.form.Clone()
}

// SetTitle updates the working title
func (s *BuilderSession) SetTitle(title string) {
	s.form.Title = title
}

// SetDescription updates the working description
func (s *BuilderSession) SetDescription(description string) {
	s.form.Description = description
}

// SetProjectNotes updates the working project notes
func (s *BuilderSession) SetProjectNotes(notes string) {
	s.form.ProjectNotes = notes
}

// AddField appends a field of the chosen type with type-appropriate
// defaults and returns it
func (s *BuilderSession) AddField(fieldType forms.FieldType, label string) (forms.FormField, error) {
	if !fieldType.IsValid() {
		return forms.FormField{}, pkgerrors.NewValidationError("unknown field type: " + string(fieldType))
	}
	field := forms.NewField(fieldType, label)
	s.form.Fields = append(s.form.Fields, field)
	return field, nil
}

// UpdateField replaces the whole field at index
func (s *BuilderSession) UpdateField(index int, field forms.FormField) error {
	if err := s.checkFieldIndex(index); err != nil {
		return err
	}
	if err := field.Validate(); err != nil {
		return err
	}
	s.form.Fields[index] = field
	return nil
}

// RemoveField removes the field at index
func (s *BuilderSession) RemoveField(index int) error {
	if err := s.checkFieldIndex(index); err != nil {
		return err
	}
	s.form.Fields = append(s.form.Fields[:index], s.form.Fields[index+1:]...)
	return nil
}

// AddOption appends an option to the select or radio field at fieldIndex
func (s *BuilderSession) AddOption(fieldIndex int, label, value string) error {
	field, err := s.optionField(fieldIndex)
	if err != nil {
		return err
	}
	field.Options = append(field.Options, forms.NewOption(label, value))
	return nil
}

// UpdateOption replaces the option at optionIndex within the field at
// fieldIndex, preserving the option's identity
func (s *BuilderSession) UpdateOption(fieldIndex, optionIndex int, label, value string) error {
	field, err := s.optionField(fieldIndex)
	if err != nil {
		return err
	}
	if optionIndex < 0 || optionIndex >= len(field.Options) {
		return pkgerrors.NewValidationError(fmt.Sprintf("option index %d out of range", optionIndex))
	}
	field.Options[optionIndex].Label = label
	field.Options[optionIndex].Value = value
	return nil
}

// RemoveOption removes the option at optionIndex within the field at
// fieldIndex. The last option cannot be removed: select and radio fields
// must keep a non-empty option list.
func (s *BuilderSession) RemoveOption(fieldIndex, optionIndex int) error {
	field, err := s.optionField(fieldIndex)
	if err != nil {
		return err
	}
	if optionIndex < 0 || optionIndex >= len(field.Options) {
		return pkgerrors.NewValidationError(fmt.Sprintf("option index %d out of range", optionIndex))
	}
	if len(field.Options) == 1 {
		return pkgerrors.NewValidationError(string(field.Type) + " field must keep at least one option")
	}
	field.Options = append(field.Options[:optionIndex], field.Options[optionIndex+1:]...)
	return nil
}

// Save persists the current in-memory form. The first save of a newly
// created form makes its id durable; subsequent saves are updates.
func (s *BuilderSession) Save(ctx context.Context) (*forms.Form, error) {
	if err := s.form.Validate(); err != nil {
		return nil, err
	}
	saved, err := s.repo.SaveForm(ctx, s.form.ID, forms.PatchFrom(s.form))
	if err != nil {
		return nil, err
	}
	s.form = saved.Clone()
	s.persisted = true
	s.logger.Info("form saved",
		zap.String("formID", saved.ID),
		zap.String("title", saved.Title),
	)
	return saved, nil
}

// Preview saves first, so the renderer reads durable state, then returns
// the path of the preview view for this form
func (s *BuilderSession) Preview(ctx context.Context) (string, error) {
	saved, err := s.Save(ctx)
	if err != nil {
		return "", err
	}
	return "/preview/" + saved.ID, nil
}

// IsPersisted reports whether the session's form has been durably saved
func (s *BuilderSession) IsPersisted() bool {
	return s.persisted
}

// RequestSuggestions asks the suggestion service for field names based on
// the current title. The title must be non-empty. On failure the pending
// suggestion list is left unchanged.
func (s *BuilderSession) RequestSuggestions(ctx context.Context) ([]string, error) {
	if strings.TrimSpace(s.form.Title) == "" {
		return nil, pkgerrors.NewValidationError("form title is required to get suggestions")
	}
	if s.suggester == nil {
		return nil, pkgerrors.NewExternalError("suggestions", fmt.Errorf("no suggestion client configured"))
	}
	suggested, err := s.suggester.SuggestFields(ctx, s.form.Title)
	if err != nil {
		return nil, err
	}
	s.suggestions = suggested
	return append([]string(nil), suggested...), nil
}

// PendingSuggestions returns the suggestions not yet accepted
func (s *BuilderSession) PendingSuggestions() []string {
	return append([]string(nil), s.suggestions...)
}

// AcceptSuggestion appends a field named after the suggestion, with its
// type inferred from keywords in the name, and removes the suggestion from
// the pending list
func (s *BuilderSession) AcceptSuggestion(name string) (forms.FormField, error) {
	field, err := s.AddField(forms.InferFieldType(name), name)
	if err != nil {
		return forms.FormField{}, err
	}
	for i, pending := range s.suggestions {
		if pending == name {
			s.suggestions = append(s.suggestions[:i], s.suggestions[i+1:]...)
			break
		}
	}
	return field, nil
}

func (s *BuilderSession) checkFieldIndex(index int) error {
	if index < 0 || index >= len(s.form.Fields) {
		return pkgerrors.NewValidationError(fmt.Sprintf("field index %d out of range", index))
	}
	return nil
}

func (s *BuilderSession) optionField(fieldIndex int) (*forms.FormField, error) {
	if err := s.checkFieldIndex(fieldIndex); err != nil {
		return nil, err
	}
	field := &s.form.Fields[fieldIndex]
	if !field.Type.RequiresOptions() {
		return nil, pkgerrors.NewValidationError(string(field.Type) + " field does not carry options")
	}
	return field, nil
}
