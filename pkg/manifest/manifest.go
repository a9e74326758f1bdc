// Package manifest edits the configuration properties of an extension's
// package.json while keeping every key in its original position.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/simonhull/firebird-suite/wren/pkg/options"
)

// ErrManifestShape means the document lacks a contributes.configuration.properties object.
var ErrManifestShape = errors.New("manifest has unexpected shape")

// PropertiesPath is where VS Code expects configuration settings.
var PropertiesPath = []string{"contributes", "configuration", "properties"}

// Object is a JSON object whose members keep their document order. Values
// stay raw until they are edited.
type Object = orderedmap.OrderedMap[string, json.RawMessage]

// Manifest is a decoded package.json. Only the objects along PropertiesPath
// are decoded; everything else is carried through as raw JSON.
type Manifest struct {
	chain           []*Object // root, then one object per PropertiesPath element
	trailingNewline bool
}

// Change reports what Merge did to one entry.
type Change struct {
	ID      string
	Created bool
	Changed bool
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest document.
func Parse(data []byte) (*Manifest, error) {
	root, err := decodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("%w: document is not a JSON object: %v", ErrManifestShape, err)
	}

	m := &Manifest{
		chain:           []*Object{root},
		trailingNewline: bytes.HasSuffix(data, []byte("\n")),
	}

	current := root
	for i, key := range PropertiesPath {
		raw, ok := current.Get(key)
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrManifestShape, strings.Join(PropertiesPath[:i+1], "."))
		}
		next, err := decodeObject(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an object", ErrManifestShape, strings.Join(PropertiesPath[:i+1], "."))
		}
		m.chain = append(m.chain, next)
		current = next
	}

	return m, nil
}

func (m *Manifest) properties() *Object {
	return m.chain[len(m.chain)-1]
}

// IDs lists the configuration property identifiers in document order.
func (m *Manifest) IDs() []string {
	props := m.properties()
	ids := make([]string, 0, props.Len())
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}
	return ids
}

// Property returns the raw entry for id.
func (m *Manifest) Property(id string) (json.RawMessage, bool) {
	return m.properties().Get(id)
}

// Merge shallow-merges fields into the entry for id, creating an empty entry
// first when needed. Existing keys keep their position and value unless a
// field of the same name overwrites them; new keys are appended.
func (m *Manifest) Merge(id string, fields []options.Field) (Change, error) {
	props := m.properties()
	change := Change{ID: id}

	entry := orderedmap.New[string, json.RawMessage]()
	before, ok := props.Get(id)
	if ok {
		var err error
		entry, err = decodeObject(before)
		if err != nil {
			return change, fmt.Errorf("%w: property %q is not an object", ErrManifestShape, id)
		}
	} else {
		change.Created = true
	}

	for _, f := range fields {
		raw, err := marshal(f.Value)
		if err != nil {
			return change, fmt.Errorf("encoding %s.%s: %w", id, f.Key, err)
		}
		entry.Set(f.Key, raw)
	}

	after, err := encodeObject(entry)
	if err != nil {
		return change, fmt.Errorf("encoding %s: %w", id, err)
	}

	change.Changed = change.Created || !sameJSON(before, after)
	props.Set(id, after)
	return change, nil
}

// Encode serializes the whole document with tab indentation. A trailing
// newline is written only if the parsed input ended with one.
func (m *Manifest) Encode() ([]byte, error) {
	// fold the edited objects back into their parents, innermost first
	for i := len(m.chain) - 1; i > 0; i-- {
		raw, err := encodeObject(m.chain[i])
		if err != nil {
			return nil, err
		}
		m.chain[i-1].Set(PropertiesPath[i-1], raw)
	}

	compact, err := encodeObject(m.chain[0])
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "\t"); err != nil {
		return nil, fmt.Errorf("indenting manifest: %w", err)
	}
	if m.trailingNewline {
		out.WriteByte('\n')
	}
	return out.Bytes(), nil
}

func decodeObject(data []byte) (*Object, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.New("expected '{'")
	}
	obj := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(trimmed, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// encodeObject writes obj as compact JSON in member order. Raw values are
// compacted, not re-escaped, so existing text is preserved.
func encodeObject(obj *Object) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := marshal(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := json.Compact(&buf, pair.Value); err != nil {
			return nil, fmt.Errorf("member %q: %w", pair.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshal encodes v without HTML escaping, matching what editors write.
func marshal(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func sameJSON(a, b json.RawMessage) bool {
	var ca, cb bytes.Buffer
	if json.Compact(&ca, a) != nil || json.Compact(&cb, b) != nil {
		return false
	}
	return bytes.Equal(ca.Bytes(), cb.Bytes())
}
