package options

import (
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// Load reads an option map file from disk.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read option map: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes an option map document. Comments and trailing commas are
// accepted. The document must be an object whose members are either objects
// of value -> label strings or arrays of strings, where each string serves as
// both value and label. Member order in the document is preserved.
func Parse(data []byte) (*Map, error) {
	root, err := hujson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse option map: %w", err)
	}
	obj, ok := root.Value.(*hujson.Object)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be an object", ErrMalformed)
	}
	m := NewMap()
	for _, member := range obj.Members {
		key, err := memberName(member)
		if err != nil {
			return nil, err
		}
		set, err := parseSet(member.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %q: %v", ErrMalformed, key, err)
		}
		m.Put(key, set)
	}
	return m, nil
}

func parseSet(v hujson.Value) (*Set, error) {
	set := NewSet()
	switch val := v.Value.(type) {
	case *hujson.Object:
		for _, member := range val.Members {
			value, err := memberName(member)
			if err != nil {
				return nil, err
			}
			label, ok := stringLiteral(member.Value)
			if !ok {
				return nil, fmt.Errorf("label for %q must be a string", value)
			}
			set.Add(value, label)
		}
	case *hujson.Array:
		for i, elem := range val.Elements {
			value, ok := stringLiteral(elem)
			if !ok {
				return nil, fmt.Errorf("element %d must be a string", i)
			}
			set.Add(value, value)
		}
	default:
		return nil, fmt.Errorf("options must be an object or an array")
	}
	return set, nil
}

func memberName(member hujson.ObjectMember) (string, error) {
	name, ok := stringLiteral(member.Name)
	if !ok {
		return "", fmt.Errorf("%w: object key is not a string", ErrMalformed)
	}
	return name, nil
}

func stringLiteral(v hujson.Value) (string, bool) {
	lit, ok := v.Value.(hujson.Literal)
	if !ok || lit.Kind() != '"' {
		return "", false
	}
	return lit.String(), true
}
