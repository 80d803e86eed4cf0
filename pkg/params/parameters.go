package params

import (
	"log/slog"

	"github.com/pseudomuto/dalsql/pkg/utils"
)

// Redacted replaces sensitive values in logs and rendered output.
const Redacted = "*****"

// Parameter is a single bound value.
type Parameter struct {
	Index     int    `yaml:"index" msgpack:"index"`
	Name      string `yaml:"name" msgpack:"name"`
	Type      Type   `yaml:"type" msgpack:"type"`
	Value     any    `yaml:"value" msgpack:"value"`
	Sensitive bool   `yaml:"sensitive,omitempty" msgpack:"sensitive,omitempty"`
	InParam   bool   `yaml:"in,omitempty" msgpack:"in,omitempty"`

	invalid    bool
	expandable bool
}

// Valid reports whether the owning expression is still part of the statement.
func (p *Parameter) Valid() bool { return !p.invalid }

// SetValid mirrors the owning expression's validity.
func (p *Parameter) SetValid(valid bool) { p.invalid = !valid }

// Values returns the elements of an IN parameter. Scalars come back as a single
// element slice and a nil list as nil.
func (p *Parameter) Values() []any {
	if vs, ok := utils.ToSlice(p.Value); ok {
		return vs
	}

	return []any{p.Value}
}

// LogValue implements slog.LogValuer, hiding the value of sensitive parameters.
func (p *Parameter) LogValue() slog.Value {
	var value any = p.Value
	if p.Sensitive {
		value = Redacted
	}

	return slog.GroupValue(
		slog.Int("index", p.Index),
		slog.String("name", p.Name),
		slog.String("type", p.Type.String()),
		slog.Any("value", value),
	)
}

// Redact returns a copy of the parameter with its value hidden when it is sensitive.
func (p *Parameter) Redact() *Parameter {
	cp := *p
	if cp.Sensitive {
		cp.Value = Redacted
	}

	return &cp
}

// Parameters is the ordered store shared by every clause of one statement.
// The zero value is ready to use.
type Parameters struct {
	entries []*Parameter
}

// New returns an empty store.
func New() *Parameters {
	return &Parameters{}
}

// NextIndex returns the index the next added parameter will receive.
func (ps *Parameters) NextIndex() int { return len(ps.entries) + 1 }

// Len returns the number of recorded entries, valid or not.
func (ps *Parameters) Len() int { return len(ps.entries) }

// Add records a new valid entry at the next index and returns it.
func (ps *Parameters) Add(name string, typ Type, value any) *Parameter {
	p := &Parameter{
		Index: ps.NextIndex(),
		Name:  name,
		Type:  typ,
		Value: value,
	}
	ps.entries = append(ps.entries, p)
	return p
}

// AddIn records a list-valued entry bound to a single placeholder written by the
// caller. Expand leaves it as one list.
func (ps *Parameters) AddIn(name string, typ Type, values []any) *Parameter {
	p := ps.Add(name, typ, values)
	p.InParam = true
	return p
}

// AddColumnIn records the list of an IN column expression. The expression renders
// one placeholder per element in InExpanded mode, so Expand flattens the entry.
func (ps *Parameters) AddColumnIn(name string, typ Type, values []any) *Parameter {
	p := ps.AddIn(name, typ, values)
	p.expandable = true
	return p
}

// Get returns the entry at the given 1-based index, or nil.
func (ps *Parameters) Get(index int) *Parameter {
	if index < 1 || index > len(ps.entries) {
		return nil
	}

	return ps.entries[index-1]
}

// Last returns the most recently added entry, or nil.
func (ps *Parameters) Last() *Parameter {
	return ps.Get(len(ps.entries))
}

// Incomplete returns the first entry that lacks a name or whose index does not match
// its position, or nil when every entry is complete.
func (ps *Parameters) Incomplete() *Parameter {
	for i, p := range ps.entries {
		if p.Name == "" || p.Index != i+1 {
			return p
		}
	}

	return nil
}

// All returns every recorded entry in append order, including invalid ones.
func (ps *Parameters) All() []*Parameter {
	out := make([]*Parameter, len(ps.entries))
	copy(out, ps.entries)
	return out
}

// Build returns copies of the valid entries, re-indexed contiguously from 1.
func (ps *Parameters) Build() []*Parameter {
	out := make([]*Parameter, 0, len(ps.entries))
	for _, p := range ps.entries {
		if p.invalid {
			continue
		}

		cp := *p
		cp.Index = len(out) + 1
		out = append(out, &cp)
	}

	return out
}

// Expand flattens the lists of IN column expressions into one entry per element,
// re-indexing the result from 1. It is the binding counterpart of InExpanded
// rendering. Lists added with AddIn keep their single placeholder and stay whole.
func Expand(built []*Parameter) []*Parameter {
	out := make([]*Parameter, 0, len(built))
	for _, p := range built {
		if !p.InParam || !p.expandable {
			cp := *p
			cp.Index = len(out) + 1
			out = append(out, &cp)
			continue
		}

		for _, v := range p.Values() {
			out = append(out, &Parameter{
				Index:     len(out) + 1,
				Name:      p.Name,
				Type:      p.Type,
				Value:     v,
				Sensitive: p.Sensitive,
			})
		}
	}

	return out
}
