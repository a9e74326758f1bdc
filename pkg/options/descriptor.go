package options

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the settings value type.
type Kind string

const (
	KindBoolean Kind = "boolean"
	KindNumber  Kind = "number"
	KindString  Kind = "string"
)

// DefaultScope is the VS Code configuration scope applied to every switch.
const DefaultScope = "resource"

const (
	boolDefaultTrue  = "**`true`**, `false`"
	boolDefaultFalse = "`true`, **`false`**"
)

var (
	integerPattern = regexp.MustCompile(`\d+`)
	tokenPattern   = regexp.MustCompile("`(\\w+)`")
	boldPattern    = regexp.MustCompile("\\*\\*`(\\w+)`\\*\\*")
)

// Descriptor is the settings entry synthesized for one switch.
type Descriptor struct {
	Type        Kind
	Default     any // bool, int or string depending on Type
	Enum        []string
	Scope       string
	Description string
}

// Field is one key/value pair of a descriptor in manifest order.
type Field struct {
	Key   string
	Value any
}

// Fields lists the descriptor's manifest keys in the order they are written.
func (d Descriptor) Fields() []Field {
	fields := make([]Field, 0, 5)
	fields = append(fields, Field{"type", string(d.Type)})
	if d.Type == KindString {
		fields = append(fields, Field{"enum", d.Enum})
	}
	fields = append(fields,
		Field{"default", d.Default},
		Field{"scope", d.Scope},
		Field{"description", d.Description},
	)
	return fields
}

// Synthesize classifies the allowed-values column. First match wins:
// the two exact boolean spellings, then anything mentioning "integer",
// then a backtick enum whose bold token is the default.
func Synthesize(raw, description, scope string) (Descriptor, error) {
	d := Descriptor{Scope: scope, Description: description}

	switch {
	case raw == boolDefaultTrue:
		d.Type, d.Default = KindBoolean, true

	case raw == boolDefaultFalse:
		d.Type, d.Default = KindBoolean, false

	case strings.Contains(raw, "integer"):
		literal := integerPattern.FindString(raw)
		if literal == "" {
			return Descriptor{}, fmt.Errorf("%w: no integer literal in %q", ErrClassification, raw)
		}
		n, err := strconv.Atoi(literal)
		if err != nil {
			return Descriptor{}, fmt.Errorf("%w: integer literal %q: %v", ErrClassification, literal, err)
		}
		d.Type, d.Default = KindNumber, n

	default:
		bold := boldPattern.FindStringSubmatch(raw)
		if bold == nil {
			return Descriptor{}, fmt.Errorf("%w: no bold default in %q", ErrClassification, raw)
		}
		enum := []string{}
		for _, m := range tokenPattern.FindAllStringSubmatch(raw, -1) {
			enum = append(enum, m[1])
		}
		d.Type, d.Enum, d.Default = KindString, enum, bold[1]
	}

	return d, nil
}
