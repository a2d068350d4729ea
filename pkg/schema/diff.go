package schema

// StructuralChange reports whether replacing oldField with newField alters
// what a synthesized generator program must compute. A change is structural
// when the key, type, or strategy differs, or when grouping is added or
// removed. Edits confined to option contents (bounds, enumerated values,
// grouping counts, pattern, static value, format) are parametric: a
// conforming program re-reads those values from the live configuration on
// every run, so it stays valid without re-synthesis.
func StructuralChange(oldField, newField FieldConfig) bool {
	if oldField.Key != newField.Key {
		return true
	}
	if oldField.Type != newField.Type {
		return true
	}
	if oldField.Strategy != newField.Strategy {
		return true
	}
	return hasGrouping(oldField) != hasGrouping(newField)
}

func hasGrouping(field FieldConfig) bool {
	return field.Options.GroupingConfig() != nil
}
