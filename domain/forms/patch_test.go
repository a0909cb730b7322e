package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchApplyLeavesAbsentFields(t *testing.T) {
	form := NewForm("Keep me")
	form.Description = "keep description"
	form.ProjectNotes = "keep notes"
	form.Fields = []FormField{NewField(FieldTypeText, "Name")}

	FormPatch{Title: StringPtr("New title")}.Apply(form)

	assert.Equal(t, "New title", form.Title)
	assert.Equal(t, "keep description", form.Description)
	assert.Equal(t, "keep notes", form.ProjectNotes)
	assert.Len(t, form.Fields, 1)
}

func TestPatchApplyExplicitEmptyOverwrites(t *testing.T) {
	form := NewForm("Title")
	form.Description = "something"

	FormPatch{Description: StringPtr("")}.Apply(form)

	assert.Empty(t, form.Description)
	assert.Equal(t, "Title", form.Title)
}

func TestPatchApplyFields(t *testing.T) {
	form := NewForm("Title")
	form.Fields = []FormField{NewField(FieldTypeText, "Old")}

	// nil leaves the list alone
	FormPatch{}.Apply(form)
	assert.Len(t, form.Fields, 1)

	// an empty non-nil slice clears it
	FormPatch{Fields: []FormField{}}.Apply(form)
	assert.Empty(t, form.Fields)
	assert.NotNil(t, form.Fields)
}

func TestPatchApplyPublish(t *testing.T) {
	form := NewForm("Title")

	FormPatch{Publish: &PublishState{At: Now(), URL: "http://localhost/forms/" + form.ID}}.Apply(form)
	assert.True(t, form.IsPublished())
	assert.NotEmpty(t, form.PublishedURL)

	FormPatch{Publish: &PublishState{}}.Apply(form)
	assert.False(t, form.IsPublished())
	assert.Empty(t, form.PublishedAt)
	assert.Empty(t, form.PublishedURL)
}

func TestPatchFromRoundTrip(t *testing.T) {
	form := NewForm("Source")
	form.Description = "desc"
	form.Fields = []FormField{NewField(FieldTypeRadio, "Choice")}
	form.PublishedAt = Now()
	form.PublishedURL = "http://localhost/forms/" + form.ID

	target := NewForm("Target")
	target.ID = form.ID
	PatchFrom(form).Apply(target)

	assert.Equal(t, form.Title, target.Title)
	assert.Equal(t, form.Description, target.Description)
	require.Len(t, target.Fields, 1)
	assert.Equal(t, "Choice", target.Fields[0].Label)
	assert.Equal(t, form.PublishedAt, target.PublishedAt)
	assert.Equal(t, form.PublishedURL, target.PublishedURL)
}

func TestPatchFromIsolatedFromSource(t *testing.T) {
	form := NewForm("Source")
	form.Fields = []FormField{NewField(FieldTypeText, "Name")}

	patch := PatchFrom(form)
	form.Fields[0].Label = "Mutated"

	target := NewForm("Target")
	patch.Apply(target)
	assert.Equal(t, "Name", target.Fields[0].Label)
}
