package config

import (
	_ "embed"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

//go:embed default_settings.yml
var defaultSettings []byte

// DefaultSettingsYAML returns the built-in settings schema document.
func DefaultSettingsYAML() []byte {
	return defaultSettings
}

// ParseSchema parses a settings schema document. Declaration order is kept,
// which is why the document is walked as a yaml.Node tree instead of being
// decoded into maps.
//
// A field is either a list of values or a mapping from value to the
// sub-settings that value enables. The value ANY accepts anything.
func ParseSchema(data []byte) (*domain.SettingsSchema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(domain.ErrSchema, err.Error())
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, zerr.Wrap(domain.ErrSchema, "empty settings document")
	}
	fields, err := parseFields(doc.Content[0], "")
	if err != nil {
		return nil, err
	}
	return domain.NewSettingsSchema(fields)
}

func parseFields(node *yaml.Node, prefix string) ([]domain.SchemaField, error) {
	if node.Kind != yaml.MappingNode {
		return nil, schemaError(prefix, node, "expected a mapping of settings")
	}
	fields := make([]domain.SchemaField, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		field, err := parseField(name, node.Content[i+1], prefix+name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func parseField(name string, node *yaml.Node, path string) (domain.SchemaField, error) {
	field := domain.SchemaField{Name: name}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value != domain.AnyValue {
			return field, schemaError(path, node, "expected a list, a mapping or ANY")
		}
		field.Any = true
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return field, schemaError(path, item, "expected scalar values")
			}
			if item.Value == domain.AnyValue {
				field.Any = true
				continue
			}
			field.Values = append(field.Values, domain.SchemaValue{Value: item.Value})
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			value := node.Content[i].Value
			sub := node.Content[i+1]
			if value == domain.AnyValue {
				field.Any = true
				continue
			}
			sv := domain.SchemaValue{Value: value}
			if !isNull(sub) {
				subFields, err := parseFields(sub, path+"."+value+".")
				if err != nil {
					return field, err
				}
				sv.Fields = subFields
			}
			field.Values = append(field.Values, sv)
		}
	default:
		return field, schemaError(path, node, "unsupported node")
	}
	return field, nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func schemaError(path string, node *yaml.Node, reason string) error {
	err := zerr.Wrap(domain.ErrSchema, path+": "+reason)
	err = zerr.With(err, "path", path)
	return zerr.With(err, "line", node.Line)
}
