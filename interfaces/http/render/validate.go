package render

import (
	"strconv"
	"strings"

	"formforge-backend/domain/forms"
)

// ValidateSubmission checks submitted raw values against the form's
// required rules. The result maps field IDs to field-scoped messages of
// the shape "<label> is required."; an empty map means the submission may
// proceed. For select and radio fields a value outside the option list
// counts as no choice.
func ValidateSubmission(form *forms.Form, values map[string]string) map[string]string {
	fieldErrors := make(map[string]string)
	for _, field := range form.Fields {
		if !field.Required {
			continue
		}
		value := values[field.ID]
		violated := false
		switch {
		case field.Type == forms.FieldTypeCheckbox:
			violated = !isChecked(value)
		case field.Type.RequiresOptions():
			violated = chosenOption(field, value) == ""
		default:
			violated = strings.TrimSpace(value) == ""
		}
		if violated {
			fieldErrors[field.ID] = field.Label + " is required."
		}
	}
	return fieldErrors
}

// CollectSubmissionData converts raw values into the submission data
// mapping keyed by field id. Checkboxes become booleans, numbers become
// numeric when they parse, everything else stays text. Fields with no
// submitted value are omitted (checkboxes are always recorded).
func CollectSubmissionData(form *forms.Form, values map[string]string) map[string]interface{} {
	data := make(map[string]interface{})
	for _, field := range form.Fields {
		value, present := values[field.ID]
		switch field.Type {
		case forms.FieldTypeCheckbox:
			data[field.ID] = isChecked(value)
		case forms.FieldTypeNumber:
			if !present || value == "" {
				continue
			}
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				data[field.ID] = n
			} else {
				data[field.ID] = value
			}
		case forms.FieldTypeSelect, forms.FieldTypeRadio:
			if chosen := chosenOption(field, value); chosen != "" {
				data[field.ID] = chosen
			}
		default:
			if !present {
				continue
			}
			data[field.ID] = value
		}
	}
	return data
}

// chosenOption returns value when it matches one of the field's option
// values, otherwise ""
func chosenOption(field forms.FormField, value string) string {
	for _, opt := range field.Options {
		if opt.Value == value && value != "" {
			return value
		}
	}
	return ""
}

// isChecked interprets the value an HTML checkbox posts when ticked
func isChecked(value string) bool {
	switch strings.ToLower(value) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
