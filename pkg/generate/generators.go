package generate

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// enumPlaceholder is emitted when an enum field has no configured values.
const enumPlaceholder = "unset"

// fillerSentence substitutes for semantic generation in the local engine;
// the delegated path handles ai_context fields for real.
const fillerSentence = "Lorem ipsum dolor sit amet, consectetur adipiscing elit."

var firstNames = []string{
	"Ada", "Alan", "Grace", "Edsger", "Barbara", "Donald",
	"Katherine", "Dennis", "Margaret", "Ken", "Radia", "Linus",
}

var lastNames = []string{
	"Lovelace", "Turing", "Hopper", "Dijkstra", "Liskov", "Knuth",
	"Johnson", "Ritchie", "Hamilton", "Thompson", "Perlman", "Torvalds",
}

var emailDomains = []string{
	"example.com", "example.org", "mail.test", "inbox.dev",
}

var streetNames = []string{
	"Oak Street", "Maple Avenue", "Cedar Lane", "Elm Drive",
	"Pine Road", "Birch Boulevard", "Willow Way", "Juniper Court",
}

var cityNames = []string{
	"Springfield", "Riverton", "Fairview", "Lakewood",
	"Greenville", "Ashford", "Milltown", "Brookside",
}

func genIncrement(state *State, field schema.FieldConfig, _ *rand.Rand) any {
	return state.Next(field.Key, field.Options.StepOr(1))
}

func genRandomInt(_ *State, field schema.FieldConfig, rng *rand.Rand) any {
	lo := int64(field.Options.MinOr(0))
	hi := int64(field.Options.MaxOr(100))
	if hi < lo {
		return float64(lo)
	}
	return float64(lo + rng.Int63n(hi-lo+1))
}

func genRandomFloat(_ *State, field schema.FieldConfig, rng *rand.Rand) any {
	lo := field.Options.MinOr(0)
	hi := field.Options.MaxOr(100)
	if hi < lo {
		return lo
	}
	value := lo + rng.Float64()*(hi-lo)
	shift := math.Pow(10, float64(field.Options.PrecisionOr(2)))
	return math.Round(value*shift) / shift
}

func genEnum(_ *State, field schema.FieldConfig, rng *rand.Rand) any {
	values := field.Options.EnumValues()
	if len(values) == 0 {
		return enumPlaceholder
	}
	return values[rng.Intn(len(values))]
}

func genUUID(_ *State, _ schema.FieldConfig, _ *rand.Rand) any {
	return uuid.NewString()
}

func genName(_ *State, _ schema.FieldConfig, rng *rand.Rand) any {
	return firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
}

func genEmail(_ *State, _ schema.FieldConfig, rng *rand.Rand) any {
	local := fmt.Sprintf("%s.%s%d",
		strings.ToLower(firstNames[rng.Intn(len(firstNames))]),
		strings.ToLower(lastNames[rng.Intn(len(lastNames))]),
		rng.Intn(100))
	return local + "@" + emailDomains[rng.Intn(len(emailDomains))]
}

func genPhone(_ *State, _ schema.FieldConfig, rng *rand.Rand) any {
	return fmt.Sprintf("+1-%03d-%03d-%04d", 200+rng.Intn(800), rng.Intn(1000), rng.Intn(10000))
}

// genDate picks a uniform instant within the trailing 365 days.
func genDate(_ *State, field schema.FieldConfig, rng *rand.Rand) any {
	offset := time.Duration(rng.Int63n(int64(365 * 24 * time.Hour)))
	instant := time.Now().Add(-offset)
	if field.Options != nil && field.Options.Format == "YYYY-MM-DD" {
		return instant.Format("2006-01-02")
	}
	return instant.Format(time.RFC3339)
}

func genAddress(_ *State, _ schema.FieldConfig, rng *rand.Rand) any {
	return fmt.Sprintf("%d %s, %s",
		1+rng.Intn(9999),
		streetNames[rng.Intn(len(streetNames))],
		cityNames[rng.Intn(len(cityNames))])
}

func genStatic(_ *State, field schema.FieldConfig, _ *rand.Rand) any {
	raw := ""
	if field.Options != nil {
		raw = field.Options.StaticValue
	}
	return coerceStatic(raw, field.Type)
}

func genRegex(_ *State, field schema.FieldConfig, _ *rand.Rand) any {
	pattern := ""
	if field.Options != nil {
		pattern = field.Options.Pattern
	}
	// No pattern-conformant synthesis locally; the placeholder carries the
	// pattern so the value stays traceable.
	return fmt.Sprintf("regex:%s", pattern)
}

func genSentence(_ *State, _ schema.FieldConfig, _ *rand.Rand) any {
	return fillerSentence
}

// coerceStatic converts a configured static value to the field's declared
// type. A numeric parse failure keeps the raw string instead of failing the
// run; boolean coercion maps the literals "true"/"false" and falls back to
// generic truthiness (any non-empty string) otherwise.
func coerceStatic(raw string, fieldType schema.FieldType) any {
	switch fieldType {
	case schema.FieldTypeNumber:
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			return parsed
		}
		return raw
	case schema.FieldTypeBoolean:
		switch raw {
		case "true":
			return true
		case "false":
			return false
		default:
			return raw != ""
		}
	case schema.FieldTypeNull:
		if raw == "null" || raw == "" {
			return nil
		}
		return raw
	default:
		return raw
	}
}
