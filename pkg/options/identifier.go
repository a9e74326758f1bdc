package options

import (
	"strings"
	"unicode"
)

const (
	DefaultSwitchPrefix = "dfmt_"
	DefaultNamespace    = "dfmt."
)

// Normalizer maps raw switch names to settings identifiers.
type Normalizer struct {
	SwitchPrefix string
	Namespace    string
}

// DefaultNormalizer strips "dfmt_" and files everything under "dfmt.".
func DefaultNormalizer() Normalizer {
	return Normalizer{SwitchPrefix: DefaultSwitchPrefix, Namespace: DefaultNamespace}
}

// Identifier returns the settings key for a switch name.
//
//	dfmt_align_switch_statement_labels -> dfmt.alignSwitchStatementLabels
func (n Normalizer) Identifier(switchName string) string {
	name := switchName
	if n.SwitchPrefix != "" {
		name = strings.TrimPrefix(name, n.SwitchPrefix)
	}
	return n.Namespace + CamelCase(name)
}

// CamelCase drops each underscore and upper-cases the character after it.
// Nothing else is touched, so "brace_style_2" becomes "braceStyle2".
// A run of underscores acts as a single separator and a trailing underscore
// is dropped; the result never contains '_'.
func CamelCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	upper := false
	for _, r := range s {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
