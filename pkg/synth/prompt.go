package synth

import (
	"encoding/json"
	"fmt"

	"github.com/flosch/pongo2/v6"
)

// promptTemplate frames the synthesis request. The contract language
// mirrors pkg/sandbox: a generate(count, fields) entry point that re-reads
// option values from the fields argument on every invocation.
const promptTemplate = `Write a standalone ECMAScript 5 program that generates synthetic data.

The program must define a single function:

    function generate(count, fields)

It receives the target row count and the live field configuration list, and
must return an array of exactly count nested records. Field keys are
dot-separated paths; numeric path segments denote array indices. Read every
option value (min, max, step, start, precision, values, format, pattern,
staticValue, groupingConfig) from the fields argument at call time. Never
embed option values as literals, because callers re-run the same program
after editing options.

Do not use require, imports, timers, or any host API. The function arguments
are the only inputs available.

Field configuration:
{{ fields_json }}

Original sample:
{{ sample }}
{% if instructions %}
Custom instructions:
{{ instructions }}
{% endif %}
Respond with the program source only.`

var prompt = pongo2.Must(pongo2.FromString(promptTemplate))

// BuildPrompt renders the synthesis prompt for a request.
func BuildPrompt(req Request) (string, error) {
	fieldsJSON, err := json.MarshalIndent(req.Fields, "", "  ")
	if err != nil {
		return "", fmt.Errorf("synth: encode fields: %w", err)
	}

	out, err := prompt.Execute(pongo2.Context{
		"fields_json":  string(fieldsJSON),
		"sample":       req.SampleText,
		"instructions": req.Instructions,
	})
	if err != nil {
		return "", fmt.Errorf("synth: render prompt: %w", err)
	}
	return out, nil
}
