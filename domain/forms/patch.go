package forms

// PublishState is the publish portion of a patch. A zero At clears both
// publish fields; a non-empty At sets both.
type PublishState struct {
	At  string
	URL string
}

// FormPatch carries only the fields the caller intends to change.
// A nil pointer leaves the stored value untouched; a pointer to an empty
// string overwrites, so "absent" and "explicitly empty" can never be
// confused in a save.
type FormPatch struct {
	Title        *string
	Description  *string
	ProjectNotes *string

	// Fields replaces the whole field list when non-nil. An empty non-nil
	// slice clears every field.
	Fields []FormField

	Publish *PublishState
}

// Apply mutates f in place with the populated entries of the patch.
// Timestamps are the store's responsibility, not Apply's.
func (p FormPatch) Apply(f *Form) {
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.ProjectNotes != nil {
		f.ProjectNotes = *p.ProjectNotes
	}
	if p.Fields != nil {
		f.Fields = cloneFields(p.Fields)
	}
	if p.Publish != nil {
		if p.Publish.At == "" {
			f.PublishedAt = ""
			f.PublishedURL = ""
		} else {
			f.PublishedAt = p.Publish.At
			f.PublishedURL = p.Publish.URL
		}
	}
}

// PatchFrom builds a patch that mirrors every patchable attribute of f.
// Used when a caller holds a fully materialized form and wants whole-record
// save semantics.
func PatchFrom(f *Form) FormPatch {
	title := f.Title
	description := f.Description
	notes := f.ProjectNotes
	patch := FormPatch{
		Title:        &title,
		Description:  &description,
		ProjectNotes: &notes,
		Fields:       cloneFields(f.Fields),
	}
	if patch.Fields == nil {
		patch.Fields = []FormField{}
	}
	patch.Publish = &PublishState{At: f.PublishedAt, URL: f.PublishedURL}
	return patch
}

// StringPtr returns a pointer to s, for building patches inline
func StringPtr(s string) *string {
	return &s
}
