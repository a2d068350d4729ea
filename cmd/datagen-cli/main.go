package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/davecgh/go-spew/spew"

	"github.com/goliatone/go-datagen/pkg/generate"
	"github.com/goliatone/go-datagen/pkg/infer"
	"github.com/goliatone/go-datagen/pkg/preset"
	"github.com/goliatone/go-datagen/pkg/sandbox"
	"github.com/goliatone/go-datagen/pkg/schema"
)

func main() {
	samplePath := flag.String("sample", "", "path to the sample JSON file")
	count := flag.Int("count", 10, "number of records to generate")
	output := flag.String("output", "", "output file (stdout if empty)")
	program := flag.String("program", "", "path to a generator program to execute instead of the local engine")
	interactive := flag.Bool("interactive", false, "edit the inferred field configuration before generating")
	debug := flag.Bool("debug", false, "dump the field configuration before generating")
	presetDB := flag.String("presets", "", "path to the preset database")
	savePreset := flag.String("save", "", "save the configuration under this preset name")
	loadPreset := flag.String("load", "", "load a saved preset instead of analyzing a sample")
	listPresets := flag.Bool("list", false, "list saved presets and exit")
	flag.Parse()

	ctx := context.Background()

	var store preset.Store
	if *presetDB != "" {
		sqlite, err := preset.OpenSQLite(*presetDB)
		if err != nil {
			log.Fatalf("Failed to open preset database: %v", err)
		}
		defer sqlite.Close()
		store = sqlite
	}

	if *listPresets {
		if store == nil {
			log.Fatal("-list requires -presets")
		}
		names, err := store.List(ctx)
		if err != nil {
			log.Fatalf("Failed to list presets: %v", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	sampleText, fields, programSource := resolveConfiguration(ctx, store, *samplePath, *loadPreset, count)

	if *interactive {
		fields = editFields(fields)
	}
	if *debug {
		spew.Fdump(os.Stderr, fields)
	}

	if *savePreset != "" {
		if store == nil {
			log.Fatal("-save requires -presets")
		}
		err := store.Save(ctx, preset.Preset{
			Name:          *savePreset,
			SampleText:    sampleText,
			Fields:        fields,
			Count:         *count,
			ProgramSource: programSource,
		})
		if err != nil {
			log.Fatalf("Failed to save preset: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Preset %q saved\n", *savePreset)
	}

	if *program != "" {
		raw, err := os.ReadFile(*program)
		if err != nil {
			log.Fatalf("Failed to read program: %v", err)
		}
		programSource = string(raw)
	}

	rows, err := generateRows(ctx, programSource, *count, fields)
	if err != nil {
		log.Fatalf("Failed to generate records: %v", err)
	}

	encoded, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, encoded, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Fprintf(os.Stderr, "%d records written to %s\n", len(rows), *output)
	} else {
		fmt.Println(string(encoded))
	}
}

// resolveConfiguration loads a preset or analyzes the sample file.
func resolveConfiguration(ctx context.Context, store preset.Store, samplePath, presetName string, count *int) (string, []schema.FieldConfig, string) {
	if presetName != "" {
		if store == nil {
			log.Fatal("-load requires -presets")
		}
		p, err := store.Load(ctx, presetName)
		if err != nil {
			log.Fatalf("Failed to load preset %q: %v", presetName, err)
		}
		if !flagWasSet("count") && p.Count > 0 {
			*count = p.Count
		}
		return p.SampleText, p.Fields, p.ProgramSource
	}

	if samplePath == "" {
		log.Fatal("either -sample or -load is required")
	}
	raw, err := os.ReadFile(samplePath)
	if err != nil {
		log.Fatalf("Failed to read sample: %v", err)
	}
	result, err := infer.NewRules().Analyze(ctx, raw)
	if err != nil {
		log.Fatalf("Failed to analyze sample: %v", err)
	}
	return string(raw), result.Fields, ""
}

// generateRows runs either the local engine or, when a program source is
// available, the sandboxed executor through the orchestrator.
func generateRows(ctx context.Context, programSource string, count int, fields []schema.FieldConfig) ([]map[string]any, error) {
	if programSource == "" {
		return generate.New().Generate(count, fields)
	}

	return sandbox.NewGojaExecutor().Execute(ctx, programSource, count, fields)
}

var strategyChoices = []string{
	string(schema.StrategyIncrement),
	string(schema.StrategyRandomInt),
	string(schema.StrategyRandomFloat),
	string(schema.StrategyEnum),
	string(schema.StrategyUUID),
	string(schema.StrategyName),
	string(schema.StrategyEmail),
	string(schema.StrategyDate),
	string(schema.StrategyAddress),
	string(schema.StrategyPhone),
	string(schema.StrategySentence),
	string(schema.StrategyStatic),
	string(schema.StrategyRegex),
	string(schema.StrategyAIContext),
}

// editFields walks the user through per-field strategy edits.
func editFields(fields []schema.FieldConfig) []schema.FieldConfig {
	for {
		options := make([]string, 0, len(fields)+1)
		for _, field := range fields {
			options = append(options, fmt.Sprintf("%s (%s, %s)", field.Key, field.Type, field.Strategy))
		}
		options = append(options, "done")

		var picked string
		prompt := &survey.Select{Message: "Edit field:", Options: options, PageSize: 15}
		if err := survey.AskOne(prompt, &picked); err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		if picked == "done" {
			return fields
		}

		index := indexOfChoice(options, picked)
		fields[index] = editField(fields[index])
	}
}

func editField(field schema.FieldConfig) schema.FieldConfig {
	var strategy string
	prompt := &survey.Select{
		Message: fmt.Sprintf("Strategy for %s:", field.Key),
		Options: strategyChoices,
		Default: string(field.Strategy),
	}
	if err := survey.AskOne(prompt, &strategy); err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}
	field.Strategy = schema.Strategy(strategy)

	switch field.Strategy {
	case schema.StrategyStatic:
		defaultValue := ""
		if field.Options != nil {
			defaultValue = field.Options.StaticValue
		}
		if defaultValue == "" && field.SampleValue != nil {
			defaultValue = fmt.Sprintf("%v", field.SampleValue)
		}
		var value string
		input := &survey.Input{Message: "Static value:", Default: defaultValue}
		if err := survey.AskOne(input, &value); err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		field.Options = mergedOptions(field.Options, func(o *schema.FieldOptions) { o.StaticValue = value })
	case schema.StrategyEnum:
		current := strings.Join(field.Options.EnumValues(), ",")
		var raw string
		input := &survey.Input{Message: "Values (comma separated):", Default: current}
		if err := survey.AskOne(input, &raw); err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		values := splitValues(raw)
		field.Options = mergedOptions(field.Options, func(o *schema.FieldOptions) { o.Values = values })
	case schema.StrategyRegex:
		currentPattern := ""
		if field.Options != nil {
			currentPattern = field.Options.Pattern
		}
		var pattern string
		input := &survey.Input{Message: "Pattern:", Default: currentPattern}
		if err := survey.AskOne(input, &pattern); err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		field.Options = mergedOptions(field.Options, func(o *schema.FieldOptions) { o.Pattern = pattern })
	}
	return field
}

func mergedOptions(existing *schema.FieldOptions, apply func(*schema.FieldOptions)) *schema.FieldOptions {
	opts := &schema.FieldOptions{}
	if existing != nil {
		copied := *existing
		opts = &copied
	}
	apply(opts)
	return opts
}

func splitValues(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func indexOfChoice(options []string, picked string) int {
	for i, option := range options {
		if option == picked {
			return i
		}
	}
	return 0
}

func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
