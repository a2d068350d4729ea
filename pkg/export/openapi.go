// Package export converts field configuration lists to OpenAPI schema
// documents and back, so inferred shapes can feed schema-driven tooling.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// SchemaFromFields builds a nested OpenAPI object schema from a flat field
// configuration list. Dot-path keys become nested properties; numeric path
// segments become array items.
func SchemaFromFields(fields []schema.FieldConfig) (*openapi3.Schema, error) {
	if err := schema.Validate(fields); err != nil {
		return nil, err
	}
	root := openapi3.NewObjectSchema()
	for _, field := range fields {
		insertPath(root, strings.Split(field.Key, "."), leafSchema(field))
	}
	return root, nil
}

func insertPath(node *openapi3.Schema, segments []string, leaf *openapi3.Schema) {
	name := segments[0]
	rest := segments[1:]
	if node.Properties == nil {
		node.Properties = make(openapi3.Schemas)
	}

	if len(rest) == 0 {
		node.Properties[name] = openapi3.NewSchemaRef("", leaf)
		return
	}

	if isIndexSegment(rest[0]) {
		array := ensureProperty(node, name, openapi3.NewArraySchema)
		rest = rest[1:]
		if len(rest) == 0 {
			array.Items = openapi3.NewSchemaRef("", leaf)
			return
		}
		var item *openapi3.Schema
		if array.Items != nil && array.Items.Value != nil {
			item = array.Items.Value
		} else {
			item = openapi3.NewObjectSchema()
			array.Items = openapi3.NewSchemaRef("", item)
		}
		insertPath(item, rest, leaf)
		return
	}

	child := ensureProperty(node, name, openapi3.NewObjectSchema)
	insertPath(child, rest, leaf)
}

func ensureProperty(node *openapi3.Schema, name string, create func() *openapi3.Schema) *openapi3.Schema {
	if ref, ok := node.Properties[name]; ok && ref != nil && ref.Value != nil {
		return ref.Value
	}
	child := create()
	node.Properties[name] = openapi3.NewSchemaRef("", child)
	return child
}

func leafSchema(field schema.FieldConfig) *openapi3.Schema {
	var out *openapi3.Schema
	switch field.Type {
	case schema.FieldTypeNumber:
		out = openapi3.NewFloat64Schema()
	case schema.FieldTypeBoolean:
		out = openapi3.NewBoolSchema()
	case schema.FieldTypeNull:
		out = &openapi3.Schema{Type: &openapi3.Types{"null"}}
	case schema.FieldTypeArray:
		out = openapi3.NewArraySchema()
	default:
		out = openapi3.NewStringSchema()
	}
	out.Description = field.Description

	switch field.Strategy {
	case schema.StrategyUUID:
		out.Format = "uuid"
	case schema.StrategyDate:
		out.Format = "date"
	case schema.StrategyEmail:
		out.Format = "email"
	case schema.StrategyEnum:
		for _, value := range field.Options.EnumValues() {
			out.Enum = append(out.Enum, value)
		}
	case schema.StrategyRandomInt, schema.StrategyRandomFloat:
		if field.Options != nil {
			out.Min = field.Options.Min
			out.Max = field.Options.Max
		}
	case schema.StrategyRegex:
		if field.Options != nil {
			out.Pattern = field.Options.Pattern
		}
	}
	return out
}

// FieldsFromSchema flattens an OpenAPI object schema back into a field
// configuration list with default strategies per type and format. It is the
// import half of the export round trip; arrays are represented by their item
// schema under a "0" segment, mirroring the path codec.
func FieldsFromSchema(root *openapi3.Schema) ([]schema.FieldConfig, error) {
	if root == nil || !root.Type.Is("object") {
		return nil, fmt.Errorf("export: root schema must be an object")
	}
	var fields []schema.FieldConfig
	walkProperties(root, "", &fields)
	return fields, nil
}

func walkProperties(node *openapi3.Schema, prefix string, out *[]schema.FieldConfig) {
	names := make([]string, 0, len(node.Properties))
	for name := range node.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := node.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		walkSchema(ref.Value, joinPath(prefix, name), out)
	}
}

func walkSchema(node *openapi3.Schema, path string, out *[]schema.FieldConfig) {
	switch {
	case node.Type.Is("object") && len(node.Properties) > 0:
		walkProperties(node, path, out)
	case node.Type.Is("array"):
		if node.Items != nil && node.Items.Value != nil {
			walkSchema(node.Items.Value, joinPath(path, "0"), out)
		}
	default:
		*out = append(*out, fieldFromLeaf(node, path))
	}
}

func fieldFromLeaf(node *openapi3.Schema, path string) schema.FieldConfig {
	field := schema.FieldConfig{
		Key:         path,
		Description: node.Description,
	}

	switch {
	case node.Type.Is("integer"):
		field.Type = schema.FieldTypeNumber
		field.Strategy = schema.StrategyRandomInt
		field.Options = &schema.FieldOptions{Min: node.Min, Max: node.Max}
	case node.Type.Is("number"):
		field.Type = schema.FieldTypeNumber
		field.Strategy = schema.StrategyRandomFloat
		field.Options = &schema.FieldOptions{Min: node.Min, Max: node.Max, Precision: schema.Int(2)}
	case node.Type.Is("boolean"):
		field.Type = schema.FieldTypeBoolean
		field.Strategy = schema.StrategyEnum
		field.Options = &schema.FieldOptions{Values: []string{"true", "false"}}
	case node.Type.Is("null"):
		field.Type = schema.FieldTypeNull
		field.Strategy = schema.StrategyStatic
		field.Options = &schema.FieldOptions{StaticValue: "null"}
	default:
		field.Type = schema.FieldTypeString
		field.Strategy = stringStrategy(node)
		if field.Strategy == schema.StrategyEnum {
			values := make([]string, 0, len(node.Enum))
			for _, value := range node.Enum {
				values = append(values, fmt.Sprintf("%v", value))
			}
			field.Options = &schema.FieldOptions{Values: values}
		}
		if field.Strategy == schema.StrategyDate {
			field.Options = &schema.FieldOptions{Format: "YYYY-MM-DD"}
		}
	}
	return field
}

func stringStrategy(node *openapi3.Schema) schema.Strategy {
	if len(node.Enum) > 0 {
		return schema.StrategyEnum
	}
	switch node.Format {
	case "uuid":
		return schema.StrategyUUID
	case "date", "date-time":
		return schema.StrategyDate
	case "email":
		return schema.StrategyEmail
	default:
		return schema.StrategyAIContext
	}
}

func joinPath(parent, segment string) string {
	if parent == "" {
		return segment
	}
	return parent + "." + segment
}

func isIndexSegment(segment string) bool {
	if segment == "" {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
