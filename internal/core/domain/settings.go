package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// AnyValue marks a setting or option that accepts free-form values.
const AnyValue = "ANY"

// KeyValue is one assignment of a flattened settings or options tree.
type KeyValue struct {
	Key   string
	Value string
}

// SchemaField declares one setting of a settings schema. A field either
// accepts any value or enumerates its values; each value may enable nested
// sub-settings.
type SchemaField struct {
	Name   string
	Any    bool
	Values []SchemaValue
}

// SchemaValue is one allowed value of a SchemaField with the sub-settings it enables.
type SchemaValue struct {
	Value  string
	Fields []SchemaField
}

type fieldDef struct {
	name     string
	any      bool
	values   []string
	subtrees map[string][]*fieldDef
}

// SettingsSchema is the validated, immutable description of every setting.
type SettingsSchema struct {
	fields []*fieldDef
}

// NewSettingsSchema validates the schema tree. Duplicate keys and fields with
// neither values nor ANY are schema errors.
func NewSettingsSchema(fields []SchemaField) (*SettingsSchema, error) {
	defs, err := buildFieldDefs(fields, "")
	if err != nil {
		return nil, err
	}
	return &SettingsSchema{fields: defs}, nil
}

func buildFieldDefs(fields []SchemaField, prefix string) ([]*fieldDef, error) {
	defs := make([]*fieldDef, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		path := prefix + f.Name
		if f.Name == "" || strings.Contains(f.Name, ".") {
			return nil, zerr.With(zerr.Wrap(ErrSchema, "invalid field name "+path), "path", path)
		}
		if seen[f.Name] {
			return nil, zerr.With(zerr.Wrap(ErrSchema, "duplicate key "+path), "path", path)
		}
		seen[f.Name] = true

		if !f.Any && len(f.Values) == 0 {
			return nil, zerr.With(zerr.Wrap(ErrSchema, path+" expects a list of values or ANY"), "path", path)
		}

		def := &fieldDef{name: f.Name, any: f.Any, subtrees: make(map[string][]*fieldDef)}
		seenValues := make(map[string]bool, len(f.Values))
		for _, v := range f.Values {
			if seenValues[v.Value] {
				return nil, zerr.With(zerr.Wrap(ErrSchema, "duplicate value "+path+"="+v.Value), "path", path)
			}
			seenValues[v.Value] = true
			def.values = append(def.values, v.Value)
			if len(v.Fields) == 0 {
				continue
			}
			sub, err := buildFieldDefs(v.Fields, path+".")
			if err != nil {
				return nil, err
			}
			def.subtrees[v.Value] = sub
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Fields returns the names of the top-level settings in declaration order.
func (s *SettingsSchema) Fields() []string {
	names := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		names = append(names, f.name)
	}
	return names
}

// Settings holds values validated against a SettingsSchema. A Settings value
// may be scoped to a subset of top-level settings, which is how a recipe only
// sees the settings it declares.
type Settings struct {
	schema      *SettingsSchema
	scope       []string
	values      map[string]string
	constraints map[string][]string
	removed     map[string]bool
}

// NewSettings creates an empty Settings tree for the schema.
func NewSettings(schema *SettingsSchema) *Settings {
	return &Settings{
		schema:      schema,
		values:      make(map[string]string),
		constraints: make(map[string][]string),
		removed:     make(map[string]bool),
	}
}

// LoadSettings parses the output of Dumps back into a Settings tree.
func LoadSettings(schema *SettingsSchema, text string) (*Settings, error) {
	s := NewSettings(schema)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, zerr.With(zerr.Wrap(ErrInvalidValue, "malformed line "+line), "line", line)
		}
		if err := s.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Schema returns the schema the settings validate against.
func (s *Settings) Schema() *SettingsSchema {
	return s.schema
}

// Get returns the value at path and whether it is set.
func (s *Settings) Get(path string) (string, bool) {
	v, ok := s.values[path]
	return v, ok
}

// Set assigns a value. Undeclared paths fail with ErrUndefinedValue and values
// outside a closed enumeration with ErrInvalidValue. Changing a value drops
// every sub-setting that depended on the previous value.
func (s *Settings) Set(path, value string) error {
	def, err := s.lookup(path)
	if err != nil {
		return err
	}
	if !def.any && !slices.Contains(def.values, value) {
		return zerr.With(zerr.With(zerr.With(zerr.Wrap(ErrInvalidValue, path+"="+value), "setting", path), "value", value),
			"allowed", strings.Join(def.values, ", "))
	}
	if allowed, ok := s.constraints[path]; ok && !slices.Contains(allowed, value) {
		return zerr.With(zerr.With(zerr.With(zerr.Wrap(ErrInvalidValue, path+"="+value), "setting", path), "value", value),
			"allowed", strings.Join(allowed, ", "))
	}
	if old, ok := s.values[path]; ok && old != value {
		s.dropChildren(path)
	}
	s.values[path] = value
	return nil
}

// Remove deletes a setting and its sub-tree. Later assignments to the path fail.
func (s *Settings) Remove(path string) {
	delete(s.values, path)
	s.dropChildren(path)
	s.removed[path] = true
}

// Constrain narrows the allowed values of a leaf, e.g. the compiler versions
// supported by a recipe.
func (s *Settings) Constrain(path string, allowed []string) error {
	def, err := s.lookup(path)
	if err != nil {
		return err
	}
	if !def.any {
		for _, v := range allowed {
			if !slices.Contains(def.values, v) {
				return zerr.With(zerr.With(zerr.Wrap(ErrInvalidValue, path+"="+v), "setting", path), "value", v)
			}
		}
	}
	s.constraints[path] = slices.Clone(allowed)
	if v, ok := s.values[path]; ok && !slices.Contains(allowed, v) {
		return zerr.With(zerr.With(zerr.With(zerr.Wrap(ErrInvalidValue, path+"="+v), "setting", path), "value", v),
			"allowed", strings.Join(allowed, ", "))
	}
	return nil
}

// Restrict returns a copy scoped to the given top-level settings. Names not
// present in the schema fail with ErrUndefinedValue.
func (s *Settings) Restrict(names []string) (*Settings, error) {
	for _, name := range names {
		if s.schema.field(name) == nil {
			return nil, zerr.With(zerr.Wrap(ErrUndefinedValue, "setting "+name), "setting", name)
		}
	}
	c := s.Copy()
	c.scope = slices.Clone(names)
	for key := range c.values {
		if !c.inScope(key) {
			delete(c.values, key)
		}
	}
	return c, nil
}

// Copy returns a deep copy.
func (s *Settings) Copy() *Settings {
	c := NewSettings(s.schema)
	c.scope = slices.Clone(s.scope)
	for k, v := range s.values {
		c.values[k] = v
	}
	for k, v := range s.constraints {
		c.constraints[k] = slices.Clone(v)
	}
	for k, v := range s.removed {
		c.removed[k] = v
	}
	return c
}

// Values returns every set value depth-first in schema declaration order.
func (s *Settings) Values() []KeyValue {
	var out []KeyValue
	s.walk(s.schema.fields, "", func(path, value string) {
		out = append(out, KeyValue{Key: path, Value: value})
	})
	return out
}

// Dumps serializes the settings canonically, one key=value per line.
func (s *Settings) Dumps() string {
	values := s.Values()
	lines := make([]string, 0, len(values))
	for _, kv := range values {
		lines = append(lines, kv.Key+"="+kv.Value)
	}
	return strings.Join(lines, "\n")
}

// Equal reports whether both trees hold the same values.
func (s *Settings) Equal(o *Settings) bool {
	return s.Dumps() == o.Dumps()
}

func (s *Settings) walk(fields []*fieldDef, prefix string, fn func(path, value string)) {
	for _, def := range fields {
		path := prefix + def.name
		if !s.inScope(path) || s.removed[path] {
			continue
		}
		value, ok := s.values[path]
		if !ok {
			continue
		}
		fn(path, value)
		if sub := def.subtrees[value]; len(sub) > 0 {
			s.walk(sub, path+".", fn)
		}
	}
}

func (s *Settings) inScope(path string) bool {
	if s.scope == nil {
		return true
	}
	top, _, _ := strings.Cut(path, ".")
	return slices.Contains(s.scope, top)
}

func (s *Settings) dropChildren(path string) {
	prefix := path + "."
	for key := range s.values {
		if strings.HasPrefix(key, prefix) {
			delete(s.values, key)
		}
	}
}

func (s *Settings) lookup(path string) (*fieldDef, error) {
	undefined := func(reason string) error {
		return zerr.With(zerr.Wrap(ErrUndefinedValue, "setting "+path+": "+reason), "setting", path)
	}
	if !s.inScope(path) {
		return nil, undefined("setting not declared by the recipe")
	}
	parts := strings.Split(path, ".")
	fields := s.schema.fields
	for i, part := range parts {
		current := strings.Join(parts[:i+1], ".")
		if s.removed[current] {
			return nil, undefined("setting was removed")
		}
		def := findField(fields, part)
		if def == nil {
			return nil, undefined("setting does not exist")
		}
		if i == len(parts)-1 {
			return def, nil
		}
		parentValue, ok := s.values[current]
		if !ok {
			return nil, undefined(current + " is not defined")
		}
		fields = def.subtrees[parentValue]
	}
	return nil, undefined("empty path")
}

func (s *SettingsSchema) field(name string) *fieldDef {
	return findField(s.fields, name)
}

func findField(fields []*fieldDef, name string) *fieldDef {
	for _, f := range fields {
		if f.name == name {
			return f
		}
	}
	return nil
}
