package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formforge-backend/domain/forms"
)

func contactForm() *forms.Form {
	form := forms.NewForm("Contact Us")
	form.Fields = []forms.FormField{
		{ID: "f-name", Label: "Name", Type: forms.FieldTypeText, Required: true},
		{ID: "f-msg", Label: "Message", Type: forms.FieldTypeTextarea},
		{ID: "f-terms", Label: "Accept Terms", Type: forms.FieldTypeCheckbox, Required: true},
		{ID: "f-age", Label: "Age", Type: forms.FieldTypeNumber},
	}
	return form
}

func TestValidateSubmissionRequired(t *testing.T) {
	form := contactForm()

	fieldErrors := ValidateSubmission(form, map[string]string{
		"f-msg": "hello",
	})

	require.Len(t, fieldErrors, 2)
	assert.Equal(t, "Name is required.", fieldErrors["f-name"])
	assert.Equal(t, "Accept Terms is required.", fieldErrors["f-terms"])
}

func TestValidateSubmissionWhitespaceOnlyFails(t *testing.T) {
	form := contactForm()

	fieldErrors := ValidateSubmission(form, map[string]string{
		"f-name":  "   ",
		"f-terms": "on",
	})

	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "Name is required.", fieldErrors["f-name"])
}

func TestValidateSubmissionPasses(t *testing.T) {
	form := contactForm()

	fieldErrors := ValidateSubmission(form, map[string]string{
		"f-name":  "Ada",
		"f-terms": "on",
	})
	assert.Empty(t, fieldErrors)
}

func TestCollectSubmissionData(t *testing.T) {
	form := contactForm()

	data := CollectSubmissionData(form, map[string]string{
		"f-name":  "Ada",
		"f-terms": "on",
		"f-age":   "36",
	})

	assert.Equal(t, "Ada", data["f-name"])
	assert.Equal(t, true, data["f-terms"])
	assert.Equal(t, 36.0, data["f-age"])

	// Absent text fields are omitted, unticked checkboxes are recorded
	_, present := data["f-msg"]
	assert.False(t, present)

	data = CollectSubmissionData(form, map[string]string{"f-name": "Ada"})
	assert.Equal(t, false, data["f-terms"])
}

func TestCollectSubmissionDataNonNumeric(t *testing.T) {
	form := contactForm()

	data := CollectSubmissionData(form, map[string]string{"f-age": "a few"})
	assert.Equal(t, "a few", data["f-age"])
}

func TestValidateSubmissionSelectMembership(t *testing.T) {
	form := forms.NewForm("Sizes")
	form.Fields = []forms.FormField{
		{ID: "f-size", Label: "Size", Type: forms.FieldTypeSelect, Required: true, Options: []forms.FieldOption{
			{ID: "o-s", Label: "Small", Value: "s"},
			{ID: "o-m", Label: "Medium", Value: "m"},
		}},
	}

	fieldErrors := ValidateSubmission(form, map[string]string{"f-size": "m"})
	assert.Empty(t, fieldErrors)

	// A value outside the option list counts as no choice
	fieldErrors = ValidateSubmission(form, map[string]string{"f-size": "xxl"})
	assert.Equal(t, "Size is required.", fieldErrors["f-size"])

	fieldErrors = ValidateSubmission(form, map[string]string{})
	assert.Equal(t, "Size is required.", fieldErrors["f-size"])
}

func TestCollectSubmissionDataDropsUnknownOption(t *testing.T) {
	form := forms.NewForm("Sizes")
	form.Fields = []forms.FormField{
		{ID: "f-size", Label: "Size", Type: forms.FieldTypeRadio, Options: []forms.FieldOption{
			{ID: "o-s", Label: "Small", Value: "s"},
		}},
	}

	data := CollectSubmissionData(form, map[string]string{"f-size": "s"})
	assert.Equal(t, "s", data["f-size"])

	data = CollectSubmissionData(form, map[string]string{"f-size": "forged"})
	_, present := data["f-size"]
	assert.False(t, present)
}

func TestIsChecked(t *testing.T) {
	for _, v := range []string{"on", "true", "1", "yes", "ON", "Yes"} {
		assert.True(t, isChecked(v), v)
	}
	for _, v := range []string{"", "off", "false", "0", "no"} {
		assert.False(t, isChecked(v), v)
	}
}
