package forms

import "strings"

// NewField creates a field of the given type with a generated ID and
// type-appropriate defaults. Select and radio fields are seeded with a
// single placeholder option so the options invariant holds from birth.
func NewField(fieldType FieldType, label string) FormField {
	if label == "" {
		label = defaultLabel(fieldType)
	}
	field := FormField{
		ID:    NewID(),
		Label: label,
		Type:  fieldType,
	}
	if fieldType.RequiresOptions() {
		field.Options = []FieldOption{
			{ID: NewID(), Label: "Option 1", Value: "option1"},
		}
	}
	return field
}

// NewOption creates an option with a generated ID
func NewOption(label, value string) FieldOption {
	return FieldOption{ID: NewID(), Label: label, Value: value}
}

func defaultLabel(fieldType FieldType) string {
	name := string(fieldType)
	if name == "" {
		return "New Field"
	}
	return "New " + strings.ToUpper(name[:1]) + name[1:] + " Field"
}

// InferFieldType guesses a field type from a suggested field name by
// keyword matching. Unrecognized names fall back to plain text.
func InferFieldType(name string) FieldType {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "date"):
		return FieldTypeDate
	case strings.Contains(lower, "phone"), strings.Contains(lower, "number"):
		return FieldTypeNumber
	case strings.Contains(lower, "description"),
		strings.Contains(lower, "message"),
		strings.Contains(lower, "comment"):
		return FieldTypeTextarea
	default:
		return FieldTypeText
	}
}
