package infer

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-datagen/pkg/flatten"
	"github.com/goliatone/go-datagen/pkg/schema"
)

var (
	uuidPattern    = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	isoDatePrefix  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	dateOnly       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateKeySignals = []string{"date", "time", "_at"}
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Rules is the local heuristic analyzer. It flattens the sample through the
// path codec and proposes a strategy per flat key from value shape and key
// name. Check order matters: id-like numeric detection runs before generic
// numeric ranges, and UUID/date pattern checks run before the key-name and
// fallback string rules.
type Rules struct{}

// NewRules constructs the local rule-based analyzer.
func NewRules() *Rules {
	return &Rules{}
}

// Analyze implements Analyzer.
func (r *Rules) Analyze(ctx context.Context, sample []byte) (schema.AnalysisResult, error) {
	record, count, err := ParseSample(sample)
	if err != nil {
		return schema.AnalysisResult{}, err
	}

	flat := flatten.Flatten(record)
	fields := make([]schema.FieldConfig, 0, flat.Len())
	for _, key := range flat.Keys() {
		value, _ := flat.Get(key)
		fields = append(fields, inferField(key, value))
	}

	return schema.AnalysisResult{
		Fields:              fields,
		OriginalSampleCount: count,
	}, nil
}

func inferField(key string, value any) schema.FieldConfig {
	switch v := value.(type) {
	case nil:
		return schema.FieldConfig{
			Key:      key,
			Type:     schema.FieldTypeNull,
			Strategy: schema.StrategyStatic,
			Options:  &schema.FieldOptions{StaticValue: "null"},
		}
	case float64:
		return inferNumber(key, v)
	case bool:
		return schema.FieldConfig{
			Key:         key,
			Type:        schema.FieldTypeBoolean,
			Strategy:    schema.StrategyEnum,
			Options:     &schema.FieldOptions{Values: []string{"true", "false"}},
			SampleValue: v,
		}
	case string:
		return inferString(key, v)
	default:
		return schema.FieldConfig{
			Key:         key,
			Type:        schema.FieldTypeString,
			Strategy:    schema.StrategyStatic,
			Options:     &schema.FieldOptions{StaticValue: fmt.Sprintf("%v", v)},
			SampleValue: v,
		}
	}
}

func inferNumber(key string, v float64) schema.FieldConfig {
	if isInteger(v) && idLikeKey(key) {
		return schema.FieldConfig{
			Key:      key,
			Type:     schema.FieldTypeNumber,
			Strategy: schema.StrategyIncrement,
			Options: &schema.FieldOptions{
				Start: schema.Float64(v),
				Step:  schema.Float64(1),
			},
			SampleValue: v,
		}
	}
	if isInteger(v) {
		return schema.FieldConfig{
			Key:      key,
			Type:     schema.FieldTypeNumber,
			Strategy: schema.StrategyRandomInt,
			Options: &schema.FieldOptions{
				Min: schema.Float64(0),
				Max: schema.Float64(math.Max(v*2, 100)),
			},
			SampleValue: v,
		}
	}
	return schema.FieldConfig{
		Key:      key,
		Type:     schema.FieldTypeNumber,
		Strategy: schema.StrategyRandomFloat,
		Options: &schema.FieldOptions{
			Min:       schema.Float64(0),
			Max:       schema.Float64(v * 2),
			Precision: schema.Int(2),
		},
		SampleValue: v,
	}
}

func inferString(key, v string) schema.FieldConfig {
	field := schema.FieldConfig{
		Key:         key,
		Type:        schema.FieldTypeString,
		SampleValue: v,
	}

	switch {
	case uuidPattern.MatchString(v):
		field.Strategy = schema.StrategyUUID
	case isoDatePrefix.MatchString(v), dateLikeKey(key) && parseableDate(v):
		field.Strategy = schema.StrategyDate
		// Date-only samples regenerate as dates; anything longer keeps the
		// full RFC 3339 timestamp form.
		if dateOnly.MatchString(v) {
			field.Options = &schema.FieldOptions{Format: "YYYY-MM-DD"}
		}
	case keyContains(key, "email"):
		field.Strategy = schema.StrategyEmail
	case keyContains(key, "name", "user", "author"):
		field.Strategy = schema.StrategyName
	case keyContains(key, "phone", "tel"):
		field.Strategy = schema.StrategyPhone
	case keyContains(key, "address", "city", "street", "country"):
		field.Strategy = schema.StrategyAddress
	default:
		field.Strategy = schema.StrategyAIContext
	}
	return field
}

func isInteger(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v) && v == math.Trunc(v)
}

// idLikeKey inspects the leaf path segment so nested keys such as
// "user.account_id" qualify.
func idLikeKey(key string) bool {
	leaf := key
	if idx := strings.LastIndex(key, "."); idx >= 0 {
		leaf = key[idx+1:]
	}
	return leaf == "id" ||
		strings.HasSuffix(leaf, "_id") ||
		strings.HasSuffix(leaf, "Id")
}

func dateLikeKey(key string) bool {
	lowered := strings.ToLower(key)
	for _, signal := range dateKeySignals {
		if strings.Contains(lowered, signal) {
			return true
		}
	}
	return false
}

func keyContains(key string, signals ...string) bool {
	lowered := strings.ToLower(key)
	for _, signal := range signals {
		if strings.Contains(lowered, signal) {
			return true
		}
	}
	return false
}

func parseableDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}
