// Package render turns a stored form into an interactive HTML surface and
// validates submitted values against it.
package render

import (
	"html/template"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"formforge-backend/domain/forms"
)

// Renderer produces HTML pages for forms. Stored text (titles, labels,
// placeholders, descriptions) is stripped of markup before rendering so
// builder-entered content stays plain text.
type Renderer struct {
	tmpl   *template.Template
	policy *bluemonday.Policy
}

// NewRenderer creates a renderer with the built-in page template
func NewRenderer() *Renderer {
	return &Renderer{
		tmpl:   template.Must(template.New("form").Parse(formTemplate)),
		policy: bluemonday.StrictPolicy(),
	}
}

// Page carries everything one rendering needs
type Page struct {
	Title       string
	Description string
	Action      string
	Preview     bool
	Submitted   bool
	Fields      []FieldView
}

// FieldView is the per-field view model handed to the template
type FieldView struct {
	ID          string
	Label       string
	Type        string
	Placeholder string
	Required    bool
	Options     []OptionView
	Value       string
	Checked     bool
	Error       string
}

// OptionView is one choice of a select or radio control
type OptionView struct {
	ID       string
	Label    string
	Value    string
	Selected bool
}

// RenderForm writes the HTML page for the form. In preview mode a notice
// is rendered and the submit control suppressed. values holds the
// submitted raw values to re-display, fieldErrors the field-scoped
// validation messages; both may be nil on first render.
func (r *Renderer) RenderForm(w io.Writer, form *forms.Form, preview bool, values map[string]string, fieldErrors map[string]string) error {
	page := Page{
		Title:       r.clean(form.Title),
		Description: r.clean(form.Description),
		Action:      "/forms/" + form.ID + "/submissions",
		Preview:     preview,
	}
	for _, field := range form.Fields {
		page.Fields = append(page.Fields, r.fieldView(field, values, fieldErrors))
	}
	return r.tmpl.Execute(w, page)
}

// RenderSubmitted writes the post-submission acknowledgement page
func (r *Renderer) RenderSubmitted(w io.Writer, form *forms.Form) error {
	page := Page{
		Title:     r.clean(form.Title),
		Submitted: true,
	}
	return r.tmpl.Execute(w, page)
}

func (r *Renderer) fieldView(field forms.FormField, values, fieldErrors map[string]string) FieldView {
	view := FieldView{
		ID:          field.ID,
		Label:       r.clean(field.Label),
		Type:        string(field.Type),
		Placeholder: r.clean(field.Placeholder),
		Required:    field.Required,
		Value:       values[field.ID],
		Error:       fieldErrors[field.ID],
	}

	if view.Value == "" && values == nil {
		view.Value = defaultString(field.DefaultValue)
	}
	if field.Type == forms.FieldTypeCheckbox {
		if values == nil {
			view.Checked = defaultBool(field.DefaultValue)
		} else {
			view.Checked = isChecked(values[field.ID])
		}
	}
	for _, opt := range field.Options {
		view.Options = append(view.Options, OptionView{
			ID:       opt.ID,
			Label:    r.clean(opt.Label),
			Value:    opt.Value,
			Selected: opt.Value == view.Value,
		})
	}
	return view
}

func (r *Renderer) clean(s string) string {
	return strings.TrimSpace(r.policy.Sanitize(s))
}

func defaultString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func defaultBool(v interface{}) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}
