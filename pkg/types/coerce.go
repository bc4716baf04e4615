package types

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// leadingNumber matches the longest numeric prefix of a form value, so
// "85°C" reads as 85 the way a browser number field would.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber coerces a user-entered value to a float. Anything that does not
// start with a number, and any non-finite result, becomes 0.
func ParseNumber(s string) float64 {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// limitFields mirrors Limit with the bounds left undecoded.
type limitFields[T any] struct {
	Parameter   Parameter `json:"parameter" yaml:"parameter"`
	Minimum     T         `json:"minimum" yaml:"minimum"`
	Maximum     T         `json:"maximum" yaml:"maximum"`
	Unit        string    `json:"unit" yaml:"unit"`
	Description string    `json:"description" yaml:"description"`
}

// UnmarshalJSON accepts the bounds as numbers or as strings. Strings are
// coerced with ParseNumber; null, absent or any other JSON type becomes 0.
func (l *Limit) UnmarshalJSON(data []byte) error {
	var raw limitFields[json.RawMessage]
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = Limit{
		Parameter:   raw.Parameter,
		Minimum:     jsonNumber(raw.Minimum),
		Maximum:     jsonNumber(raw.Maximum),
		Unit:        raw.Unit,
		Description: raw.Description,
	}
	return nil
}

// UnmarshalYAML applies the same coercion as UnmarshalJSON to YAML input.
func (l *Limit) UnmarshalYAML(node *yaml.Node) error {
	var raw limitFields[yaml.Node]
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*l = Limit{
		Parameter:   raw.Parameter,
		Minimum:     yamlNumber(&raw.Minimum),
		Maximum:     yamlNumber(&raw.Maximum),
		Unit:        raw.Unit,
		Description: raw.Description,
	}
	return nil
}

func jsonNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseNumber(s)
	}
	return 0
}

func yamlNumber(n *yaml.Node) float64 {
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return 0
	}
	var f float64
	if err := n.Decode(&f); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return ParseNumber(n.Value)
}
