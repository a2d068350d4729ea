// Package datagen infers flat schemas from nested JSON samples and
// synthesizes bulk datasets conforming to them, either through the local
// deterministic rule engine or by executing an externally synthesized
// generator program in a sandbox. This root package re-exports the core
// types and provides convenience entry points; advanced callers compose the
// pkg/... packages directly.
package datagen

import (
	"context"

	"github.com/goliatone/go-datagen/pkg/generate"
	"github.com/goliatone/go-datagen/pkg/infer"
	"github.com/goliatone/go-datagen/pkg/orchestrator"
	"github.com/goliatone/go-datagen/pkg/preset"
	"github.com/goliatone/go-datagen/pkg/schema"
)

// FieldType re-exports the schema field type enumeration.
type FieldType = schema.FieldType

const (
	FieldTypeString  = schema.FieldTypeString
	FieldTypeNumber  = schema.FieldTypeNumber
	FieldTypeBoolean = schema.FieldTypeBoolean
	FieldTypeArray   = schema.FieldTypeArray
	FieldTypeNull    = schema.FieldTypeNull
)

// Strategy re-exports the generation strategy enumeration.
type Strategy = schema.Strategy

// FieldConfig describes how a single flat field is generated.
type FieldConfig = schema.FieldConfig

// FieldOptions carries per-strategy parameters.
type FieldOptions = schema.FieldOptions

// GroupingConfig marks a field as the grouping key.
type GroupingConfig = schema.GroupingConfig

// AnalysisResult is the output of schema inference.
type AnalysisResult = schema.AnalysisResult

// Preset is the externally persisted configuration record.
type Preset = preset.Preset

// Request describes one orchestrated generation run.
type Request = orchestrator.Request

// Analyze runs the local rule-based inference over raw sample JSON.
func Analyze(ctx context.Context, sample []byte) (AnalysisResult, error) {
	return infer.NewRules().Analyze(ctx, sample)
}

// Generate produces count records from a field configuration list using the
// local deterministic engine with the built-in strategy table.
func Generate(count int, fields []FieldConfig) ([]map[string]any, error) {
	return generate.New().Generate(count, fields)
}

// NewOrchestrator exposes the pipeline coordinator constructor, mirroring
// the option-based composition used throughout the module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// StructuralChange reports whether a field edit invalidates a cached
// generator program.
func StructuralChange(oldField, newField FieldConfig) bool {
	return schema.StructuralChange(oldField, newField)
}
