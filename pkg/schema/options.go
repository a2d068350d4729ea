package schema

// The accessors below are nil-receiver safe so generators can read options
// from partially configured fields without guarding every call site.

// MinOr returns Min or def when unset.
func (o *FieldOptions) MinOr(def float64) float64 {
	if o == nil || o.Min == nil {
		return def
	}
	return *o.Min
}

// MaxOr returns Max or def when unset.
func (o *FieldOptions) MaxOr(def float64) float64 {
	if o == nil || o.Max == nil {
		return def
	}
	return *o.Max
}

// StepOr returns Step or def when unset.
func (o *FieldOptions) StepOr(def float64) float64 {
	if o == nil || o.Step == nil {
		return def
	}
	return *o.Step
}

// StartOr returns Start or def when unset.
func (o *FieldOptions) StartOr(def float64) float64 {
	if o == nil || o.Start == nil {
		return def
	}
	return *o.Start
}

// PrecisionOr returns Precision or def when unset.
func (o *FieldOptions) PrecisionOr(def int) int {
	if o == nil || o.Precision == nil {
		return def
	}
	return *o.Precision
}

// GroupingConfig returns the grouping configuration or nil.
func (o *FieldOptions) GroupingConfig() *GroupingConfig {
	if o == nil {
		return nil
	}
	return o.Grouping
}

// EnumValues returns the enumerated values or nil.
func (o *FieldOptions) EnumValues() []string {
	if o == nil {
		return nil
	}
	return o.Values
}

// Float64 returns a pointer to v, for building options literals.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v, for building options literals.
func Int(v int) *int { return &v }
