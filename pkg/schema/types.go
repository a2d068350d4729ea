package schema

// FieldType is the simplified enum classifying a leaf value in a sample.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeNull    FieldType = "null"
)

// Strategy names the algorithm used to synthesize a field's value.
type Strategy string

const (
	StrategyIncrement   Strategy = "increment"
	StrategyRandomInt   Strategy = "random_int"
	StrategyRandomFloat Strategy = "random_float"
	StrategyEnum        Strategy = "enum"
	StrategyUUID        Strategy = "uuid"
	StrategyName        Strategy = "name"
	StrategyEmail       Strategy = "email"
	StrategyDate        Strategy = "date"
	StrategyAddress     Strategy = "address"
	StrategyPhone       Strategy = "phone"
	StrategySentence    Strategy = "sentence"
	StrategyStatic      Strategy = "static"
	StrategyRegex       Strategy = "regex"
	StrategyAIContext   Strategy = "ai_context"
)

// GroupingStrategy selects how group sizes are computed.
type GroupingStrategy string

const (
	// GroupingFixed uses CountPerGroup rows per group value.
	GroupingFixed GroupingStrategy = "fixed"
	// GroupingEven divides the requested row count evenly across the values.
	GroupingEven GroupingStrategy = "even"
)

// GroupingConfig marks a field as the grouping key: its value cycles through
// the field's enumerated values in runs of consecutive rows, and counters for
// the listed reset fields restart at every group boundary.
type GroupingConfig struct {
	Strategy      GroupingStrategy `json:"strategy" yaml:"strategy"`
	CountPerGroup int              `json:"countPerGroup,omitempty" yaml:"countPerGroup,omitempty"`
	ResetFields   []string         `json:"resetFields,omitempty" yaml:"resetFields,omitempty"`
}

// FieldOptions carries the named parameters a strategy reads at generation
// time. All numeric parameters are optional; strategies fall back to their
// documented defaults when a parameter is absent.
type FieldOptions struct {
	Min         *float64        `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64        `json:"max,omitempty" yaml:"max,omitempty"`
	Step        *float64        `json:"step,omitempty" yaml:"step,omitempty"`
	Start       *float64        `json:"start,omitempty" yaml:"start,omitempty"`
	Precision   *int            `json:"precision,omitempty" yaml:"precision,omitempty"`
	Values      []string        `json:"values,omitempty" yaml:"values,omitempty"`
	Format      string          `json:"format,omitempty" yaml:"format,omitempty"`
	Pattern     string          `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	StaticValue string          `json:"staticValue,omitempty" yaml:"staticValue,omitempty"`
	Grouping    *GroupingConfig `json:"groupingConfig,omitempty" yaml:"groupingConfig,omitempty"`
}

// FieldConfig describes how a single flat field is generated. Key is the
// dot-path of the field and must be unique within a configuration list.
// SampleValue preserves the originally inferred value so a field manually
// switched to the static strategy can restore it.
type FieldConfig struct {
	Key         string        `json:"key" yaml:"key"`
	Type        FieldType     `json:"type" yaml:"type"`
	Strategy    Strategy      `json:"strategy" yaml:"strategy"`
	Options     *FieldOptions `json:"options,omitempty" yaml:"options,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	SampleValue any           `json:"sampleValue,omitempty" yaml:"sampleValue,omitempty"`
}

// AnalysisResult is the output of schema inference and the input to
// generation.
type AnalysisResult struct {
	Fields              []FieldConfig `json:"fields" yaml:"fields"`
	OriginalSampleCount int           `json:"originalSampleCount" yaml:"originalSampleCount"`
}

// Field looks up a field configuration by key.
func (r AnalysisResult) Field(key string) (FieldConfig, bool) {
	for _, field := range r.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return FieldConfig{}, false
}
