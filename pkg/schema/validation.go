package schema

import "fmt"

// ValidationError reports a field configuration that cannot be used for
// generation.
type ValidationError struct {
	Key    string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("schema: invalid field configuration: %s", e.Reason)
	}
	return fmt.Sprintf("schema: field %q: %s", e.Key, e.Reason)
}

// Validate checks the list-level invariants of a field configuration: keys
// must be present and unique. Per-strategy option requirements are not
// checked here; they are resolved lazily at generation time, where
// generators degrade to documented fallbacks instead of failing a bulk run.
func Validate(fields []FieldConfig) error {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if field.Key == "" {
			return &ValidationError{Reason: "empty key"}
		}
		if _, dup := seen[field.Key]; dup {
			return &ValidationError{Key: field.Key, Reason: "duplicate key"}
		}
		seen[field.Key] = struct{}{}
	}
	return nil
}
