package comuna

import (
	_ "embed"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var defaultAliases []byte

// Aliases maps a simplified spelling to its canonical accented form. Keys are
// stored lowercased and trimmed.
type Aliases map[string]string

// DefaultAliases returns the built-in alias table for the Santiago comunas.
func DefaultAliases() Aliases {
	a, err := ParseAliases(defaultAliases)
	if err != nil {
		panic(err) // embedded file is fixed at build time
	}
	return a
}

// LoadAliases reads an alias table from a YAML file with a top-level
// "aliases" mapping.
func LoadAliases(path string) (Aliases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "comuna: read aliases %s", path)
	}
	return ParseAliases(data)
}

// ParseAliases decodes a YAML alias table.
func ParseAliases(data []byte) (Aliases, error) {
	var wrapper struct {
		Aliases map[string]string `yaml:"aliases"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "comuna: parse aliases")
	}

	out := make(Aliases, len(wrapper.Aliases))
	for k, v := range wrapper.Aliases {
		out[fold(k)] = strings.TrimSpace(v)
	}
	return out, nil
}

// Canonical returns the canonical spelling of name, or name itself when it
// has no alias.
func (a Aliases) Canonical(name string) string {
	if c, ok := a[fold(name)]; ok {
		return c
	}
	return strings.TrimSpace(name)
}

// fold lowercases s for alias lookup. Casers hold state, so one is built per
// call.
func fold(s string) string {
	return cases.Lower(language.Spanish).String(strings.TrimSpace(s))
}

func toUpper(s string) string {
	return cases.Upper(language.Spanish).String(s)
}
