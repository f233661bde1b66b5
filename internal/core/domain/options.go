package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// OptionDef declares one recipe option.
type OptionDef struct {
	Name    string
	Values  []string
	Any     bool
	Default string
	// HasDefault distinguishes an empty default from no default at all.
	HasDefault bool
}

// OptionAssignment is a "pattern:option=value" rule. An empty pattern
// addresses the package that declares the assignment.
type OptionAssignment struct {
	Pattern string
	Name    string
	Value   string
}

// ParseOptionAssignment parses "pkg:opt=value", "*:opt=value" or "opt=value".
func ParseOptionAssignment(text string) (OptionAssignment, error) {
	left, value, ok := strings.Cut(text, "=")
	if !ok {
		return OptionAssignment{}, zerr.With(zerr.Wrap(ErrInvalidValue, "malformed option "+text), "option", text)
	}
	a := OptionAssignment{Value: strings.TrimSpace(value)}
	left = strings.TrimSpace(left)
	if pattern, name, scoped := strings.Cut(left, ":"); scoped {
		a.Pattern, a.Name = strings.TrimSpace(pattern), strings.TrimSpace(name)
	} else {
		a.Name = left
	}
	if a.Name == "" || (a.Pattern == "" && strings.Contains(left, ":")) {
		return OptionAssignment{}, zerr.With(zerr.Wrap(ErrInvalidValue, "malformed option "+text), "option", text)
	}
	return a, nil
}

// String returns the assignment in its textual form.
func (a OptionAssignment) String() string {
	if a.Pattern == "" {
		return a.Name + "=" + a.Value
	}
	return a.Pattern + ":" + a.Name + "=" + a.Value
}

func (a OptionAssignment) wildcard() bool {
	return strings.ContainsAny(a.Pattern, "*?[")
}

// Options holds the option values of one node.
type Options struct {
	defs   map[string]OptionDef
	values map[string]string
	frozen bool
}

// NewOptions creates the options of a recipe with its defaults applied.
func NewOptions(schema []OptionDef) (*Options, error) {
	o := &Options{
		defs:   make(map[string]OptionDef, len(schema)),
		values: make(map[string]string, len(schema)),
	}
	for _, def := range schema {
		if _, dup := o.defs[def.Name]; dup {
			return nil, zerr.With(zerr.Wrap(ErrSchema, "duplicate option "+def.Name), "option", def.Name)
		}
		o.defs[def.Name] = def
		if def.HasDefault {
			if err := o.Set(def.Name, def.Default); err != nil {
				return nil, err
			}
		}
	}
	return o, nil
}

// Get returns the value of an option and whether it is set.
func (o *Options) Get(name string) (string, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Has reports whether the option is declared.
func (o *Options) Has(name string) bool {
	_, ok := o.defs[name]
	return ok
}

// Set assigns an option value after validating it against the declaration.
func (o *Options) Set(name, value string) error {
	if o.frozen {
		return zerr.With(zerr.Wrap(ErrOptionsFrozen, "option "+name), "option", name)
	}
	def, ok := o.defs[name]
	if !ok {
		return zerr.With(zerr.Wrap(ErrUndefinedValue, "option "+name), "option", name)
	}
	if !def.Any && !slices.Contains(def.Values, value) {
		return zerr.With(zerr.With(zerr.With(zerr.Wrap(ErrInvalidValue, "option "+name+"="+value), "option", name), "value", value),
			"allowed", strings.Join(def.Values, ", "))
	}
	o.values[name] = value
	return nil
}

// Remove drops an option entirely, e.g. fPIC on Windows.
func (o *Options) Remove(name string) error {
	if o.frozen {
		return zerr.With(zerr.Wrap(ErrOptionsFrozen, "option "+name), "option", name)
	}
	delete(o.defs, name)
	delete(o.values, name)
	return nil
}

// PropagateDownstream applies the assignments that match ref. Wildcard
// patterns are applied first and explicit package patterns last, so
// "pkg:opt" wins over "*:opt". Unknown options are ignored for wildcard
// patterns and rejected for explicit ones.
func (o *Options) PropagateDownstream(values []OptionAssignment, ref Reference) error {
	apply := func(a OptionAssignment) error {
		if !o.Has(a.Name) {
			if a.wildcard() {
				return nil
			}
			return zerr.With(zerr.With(zerr.Wrap(ErrUndefinedValue, "option "+a.Name+" of "+ref.String()), "option", a.Name), "reference", ref.String())
		}
		return o.Set(a.Name, a.Value)
	}
	for _, a := range values {
		if a.wildcard() && ref.Matches(a.Pattern) {
			if err := apply(a); err != nil {
				return err
			}
		}
	}
	for _, a := range values {
		if !a.wildcard() && (a.Pattern == "" || ref.Matches(a.Pattern)) {
			if err := apply(a); err != nil {
				return err
			}
		}
	}
	return nil
}

// Freeze makes the options immutable.
func (o *Options) Freeze() {
	o.frozen = true
}

// Frozen reports whether the options are immutable.
func (o *Options) Frozen() bool {
	return o.frozen
}

// Values returns the set options sorted by name.
func (o *Options) Values() []KeyValue {
	names := make([]string, 0, len(o.values))
	for name := range o.values {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]KeyValue, 0, len(names))
	for _, name := range names {
		out = append(out, KeyValue{Key: name, Value: o.values[name]})
	}
	return out
}

// Copy returns an unfrozen deep copy.
func (o *Options) Copy() *Options {
	c := &Options{
		defs:   make(map[string]OptionDef, len(o.defs)),
		values: make(map[string]string, len(o.values)),
	}
	for k, v := range o.defs {
		c.defs[k] = v
	}
	for k, v := range o.values {
		c.values[k] = v
	}
	return c
}
