package synth

import (
	"strings"
	"testing"

	"github.com/goliatone/go-datagen/pkg/schema"
)

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "no fence",
			response: "function generate(c, f) { return []; }",
			want:     "function generate(c, f) { return []; }",
		},
		{
			name:     "plain fence",
			response: "```\nfunction generate(c, f) { return []; }\n```",
			want:     "function generate(c, f) { return []; }",
		},
		{
			name:     "language tag",
			response: "```javascript\nfunction generate(c, f) { return []; }\n```",
			want:     "function generate(c, f) { return []; }",
		},
		{
			name:     "surrounding whitespace",
			response: "\n\n```js\nvar x = 1;\n```\n\n",
			want:     "var x = 1;",
		},
		{
			name:     "fence only",
			response: "```",
			want:     "",
		},
		{
			name:     "empty",
			response: "",
			want:     "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripCodeFence(tc.response); got != tc.want {
				t.Fatalf("StripCodeFence = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuildPromptIncludesRequest(t *testing.T) {
	out, err := BuildPrompt(Request{
		Fields: []schema.FieldConfig{
			{Key: "id", Type: schema.FieldTypeNumber, Strategy: schema.StrategyIncrement},
		},
		SampleText:   `{"id":1001}`,
		Instructions: "ids must look like invoice numbers",
	})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}

	for _, fragment := range []string{
		"generate(count, fields)",
		`"key": "id"`,
		`{"id":1001}`,
		"ids must look like invoice numbers",
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, out)
		}
	}
}

func TestBuildPromptOmitsEmptyInstructions(t *testing.T) {
	out, err := BuildPrompt(Request{SampleText: "{}"})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if strings.Contains(out, "Custom instructions") {
		t.Fatal("prompt must omit the instructions section when empty")
	}
}

func TestProgramCacheReuse(t *testing.T) {
	cache := NewProgramCache()

	if _, ok := cache.Get("sample", ""); ok {
		t.Fatal("empty cache must miss")
	}

	cache.Put("source-a", "sample", "")
	source, ok := cache.Get("sample", "")
	if !ok || source != "source-a" {
		t.Fatalf("Get = (%q, %v), want cached source", source, ok)
	}
}

func TestProgramCacheMissesOnSampleChange(t *testing.T) {
	cache := NewProgramCache()
	cache.Put("source-a", "sample", "")

	if _, ok := cache.Get("different sample", ""); ok {
		t.Fatal("changed sample text must miss")
	}
}

func TestProgramCacheMissesOnInstructionChange(t *testing.T) {
	cache := NewProgramCache()
	cache.Put("source-a", "sample", "old instructions")

	if _, ok := cache.Get("sample", "new instructions"); ok {
		t.Fatal("changed instructions must miss")
	}
}

func TestProgramCacheInvalidateOnStructuralEdit(t *testing.T) {
	cache := NewProgramCache()
	cache.Put("source-a", "sample", "")

	oldField := schema.FieldConfig{Key: "id", Type: schema.FieldTypeNumber, Strategy: schema.StrategyIncrement}

	parametric := oldField
	parametric.Options = &schema.FieldOptions{Start: schema.Float64(99)}
	if cache.InvalidateOnEdit(oldField, parametric) {
		t.Fatal("parametric edit must not invalidate")
	}
	if _, ok := cache.Get("sample", ""); !ok {
		t.Fatal("cache must survive parametric edit")
	}

	structural := oldField
	structural.Strategy = schema.StrategyUUID
	if !cache.InvalidateOnEdit(oldField, structural) {
		t.Fatal("structural edit must invalidate")
	}
	if _, ok := cache.Get("sample", ""); ok {
		t.Fatal("cache must be empty after structural edit")
	}
}

func TestProgramCacheOverwrite(t *testing.T) {
	cache := NewProgramCache()
	cache.Put("source-a", "sample-a", "")
	cache.Put("source-b", "sample-b", "")

	if _, ok := cache.Get("sample-a", ""); ok {
		t.Fatal("slot holds one program; the old entry must be gone")
	}
	source, ok := cache.Get("sample-b", "")
	if !ok || source != "source-b" {
		t.Fatalf("Get = (%q, %v), want source-b", source, ok)
	}
}
