package options

// Option is a single selectable entry: the value submitted and the label shown.
type Option struct {
	Value string
	Label string
}

// Set is an ordered value -> label mapping. Insertion order is render order.
type Set struct {
	order  []string
	labels map[string]string
}

// NewSet builds a set from the supplied options in order.
func NewSet(opts ...Option) *Set {
	s := &Set{labels: make(map[string]string, len(opts))}
	for _, opt := range opts {
		s.Add(opt.Value, opt.Label)
	}
	return s
}

// Add appends value with label. Re-adding a value replaces its label but keeps
// its original position.
func (s *Set) Add(value, label string) {
	if s.labels == nil {
		s.labels = make(map[string]string)
	}
	if _, exists := s.labels[value]; !exists {
		s.order = append(s.order, value)
	}
	s.labels[value] = label
}

// Options returns a copy of the entries in insertion order.
func (s *Set) Options() []Option {
	if s == nil {
		return nil
	}
	out := make([]Option, 0, len(s.order))
	for _, value := range s.order {
		out = append(out, Option{Value: value, Label: s.labels[value]})
	}
	return out
}

// Label returns the label stored for value.
func (s *Set) Label(value string) (string, bool) {
	if s == nil {
		return "", false
	}
	label, ok := s.labels[value]
	return label, ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Map is an ordered filter value -> option set lookup table.
type Map struct {
	keys []string
	sets map[string]*Set
}

func NewMap() *Map {
	return &Map{sets: make(map[string]*Set)}
}

// Put stores set under key, keeping the first position of an existing key.
func (m *Map) Put(key string, set *Set) {
	if m.sets == nil {
		m.sets = make(map[string]*Set)
	}
	if _, exists := m.sets[key]; !exists {
		m.keys = append(m.keys, key)
	}
	if set == nil {
		set = NewSet()
	}
	m.sets[key] = set
}

// Lookup returns the option set for key. A nil map has no entries.
func (m *Map) Lookup(key string) (*Set, bool) {
	if m == nil {
		return nil, false
	}
	set, ok := m.sets[key]
	return set, ok
}

// Keys returns the filter values in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

const (
	// PlaceholderValue and PlaceholderLabel make up the "no selection" option.
	PlaceholderValue = ""
	PlaceholderLabel = "---"
)

// Placeholder returns the single option rendered when no option set applies.
func Placeholder() Option {
	return Option{Value: PlaceholderValue, Label: PlaceholderLabel}
}

// FilterOptions lists the options offered by a filter control: the placeholder
// followed by values, or by the map keys when values is empty. Each label is
// the value itself.
func FilterOptions(m *Map, values []string) []Option {
	if len(values) == 0 {
		values = m.Keys()
	}
	out := make([]Option, 0, len(values)+1)
	out = append(out, Placeholder())
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, Option{Value: v, Label: v})
	}
	return out
}
