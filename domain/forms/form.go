package forms

import (
	"time"

	"github.com/google/uuid"

	pkgerrors "formforge-backend/pkg/errors"
)

// FieldType enumerates the supported input field types
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeRadio    FieldType = "radio"
)

// FieldTypes lists every supported field type in display order
var FieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeTextarea,
	FieldTypeNumber,
	FieldTypeDate,
	FieldTypeSelect,
	FieldTypeCheckbox,
	FieldTypeRadio,
}

// IsValid reports whether t is a known field type
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeDate,
		FieldTypeSelect, FieldTypeCheckbox, FieldTypeRadio:
		return true
	}
	return false
}

// RequiresOptions reports whether fields of this type carry an option list
func (t FieldType) RequiresOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeRadio
}

// FieldOption is one selectable choice within a select or radio field
type FieldOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// FormField is one typed input definition within a Form.
// ID is the only uniqueness-bearing attribute, scoped to the owning form;
// labels are free to collide.
type FormField struct {
	ID           string        `json:"id"`
	Label        string        `json:"label"`
	Type         FieldType     `json:"type"`
	Placeholder  string        `json:"placeholder,omitempty"`
	Required     bool          `json:"required,omitempty"`
	Options      []FieldOption `json:"options,omitempty"`
	DefaultValue interface{}   `json:"defaultValue,omitempty"`
}

// Form is a named, ordered collection of field definitions plus metadata
// and publish state. Field order is display order.
type Form struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	ProjectNotes string      `json:"projectNotes,omitempty"`
	Fields       []FormField `json:"fields"`
	CreatedAt    string      `json:"createdAt"`
	UpdatedAt    string      `json:"updatedAt"`
	PublishedAt  string      `json:"publishedAt,omitempty"`
	PublishedURL string      `json:"publishedUrl,omitempty"`
}

// Submission holds one end-user response to a form. Data maps field IDs
// to submitted values.
type Submission struct {
	ID          string                 `json:"id"`
	FormID      string                 `json:"formId"`
	SubmittedAt string                 `json:"submittedAt"`
	Data        map[string]interface{} `json:"data"`
}

// DefaultTitle is assigned to forms saved without a title
const DefaultTitle = "Untitled Form"

// timestampLayout matches the ISO-8601 shape of the stored data
// (millisecond precision, UTC designator).
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp formats t as a stored ISO-8601 timestamp
func Timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// Now returns the current time as a stored ISO-8601 timestamp
func Now() string {
	return Timestamp(time.Now())
}

// NewID generates an opaque unique identifier
func NewID() string {
	return uuid.New().String()
}

// NewForm creates an unsaved form with fresh identity and timestamps.
// The form becomes durable only once saved to the store.
func NewForm(title string) *Form {
	if title == "" {
		title = DefaultTitle
	}
	now := Now()
	return &Form{
		ID:        NewID(),
		Title:     title,
		Fields:    []FormField{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewSubmission creates a submission record for the given form
func NewSubmission(formID string, data map[string]interface{}) *Submission {
	return &Submission{
		ID:          NewID(),
		FormID:      formID,
		SubmittedAt: Now(),
		Data:        data,
	}
}

// IsPublished reports whether the form is externally accessible
func (f *Form) IsPublished() bool {
	return f.PublishedAt != ""
}

// Clone returns a deep copy of the form
func (f *Form) Clone() *Form {
	if f == nil {
		return nil
	}
	clone := *f
	clone.Fields = cloneFields(f.Fields)
	return &clone
}

func cloneFields(fields []FormField) []FormField {
	if fields == nil {
		return nil
	}
	out := make([]FormField, len(fields))
	copy(out, fields)
	for i := range out {
		if out[i].Options != nil {
			opts := make([]FieldOption, len(out[i].Options))
			copy(opts, out[i].Options)
			out[i].Options = opts
		}
	}
	return out
}

// Validate checks the structural invariants of the form
func (f *Form) Validate() error {
	if f.ID == "" {
		return pkgerrors.NewValidationError("form id cannot be empty")
	}
	if (f.PublishedAt == "") != (f.PublishedURL == "") {
		return pkgerrors.NewValidationError("publishedAt and publishedUrl must be set together")
	}
	for i := range f.Fields {
		if err := f.Fields[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the structural invariants of the field: options must be
// present and non-empty exactly when the type calls for them.
func (fld *FormField) Validate() error {
	if fld.ID == "" {
		return pkgerrors.NewValidationError("field id cannot be empty")
	}
	if !fld.Type.IsValid() {
		return pkgerrors.NewValidationError("unknown field type: " + string(fld.Type))
	}
	if fld.Type.RequiresOptions() {
		if len(fld.Options) == 0 {
			return pkgerrors.NewValidationError(string(fld.Type) + " field must have at least one option")
		}
	} else if len(fld.Options) > 0 {
		return pkgerrors.NewValidationError(string(fld.Type) + " field must not have options")
	}
	return nil
}
