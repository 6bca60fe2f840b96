package api

import "reflect"

// Match is a pair of include/exclude dotted-path pattern lists scoped to one
// declaring type. Patterns use `.` as a literal separator and `*` for any run
// of characters, and are matched against the whole path.
type Match struct {
	Includes []string
	Excludes []string
}

// NewMatch returns an empty match for fluent construction.
func NewMatch() *Match {
	return &Match{}
}

// Include appends include patterns.
func (m *Match) Include(patterns ...string) *Match {
	m.Includes = append(m.Includes, patterns...)
	return m
}

// Exclude appends exclude patterns.
func (m *Match) Exclude(patterns ...string) *Match {
	m.Excludes = append(m.Excludes, patterns...)
	return m
}

// View pairs a root value with the per-type matches for one Serialize call.
// It is immutable for the duration of that call; building and serializing
// concurrently is not supported.
type View struct {
	value   any
	matches map[reflect.Type]*Match
}

// NewView wraps a root value.
func NewView(value any) *View {
	return &View{
		value:   value,
		matches: make(map[reflect.Type]*Match),
	}
}

// ForType attaches a match to the type of sample (pointers are dereferenced,
// so ForType(User{}, m) and ForType(&User{}, m) key the same entry).
func (v *View) ForType(sample any, m *Match) *View {
	t := reflect.TypeOf(sample)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil {
		v.matches[t] = m
	}
	return v
}

// Value returns the root value.
func (v *View) Value() any {
	return v.value
}

// MatchFor returns the match configured for exactly t, or nil. Walking the
// ancestor (embedded-type) chain is the resolver's job, not the view's.
func (v *View) MatchFor(t reflect.Type) *Match {
	return v.matches[t]
}
