package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	yamlTagRubyRegexp = "!ruby/regexp"
	yamlTagRegexp     = "!regexp"
	yamlTagCorePrefix = "!!"
)

// ParseYAML decodes a YAML manifest.
func (m *Manifest) ParseYAML(data []byte) error {
	err := yaml.Unmarshal(data, m)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshal, err)
	}

	return nil
}

// UnmarshalYAML decodes a match pattern. Scalar tagged with !ruby/regexp or !regexp is a regular
// expression literal, other scalars are plain patterns.
func (p *Pattern) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: match must be a string", ErrUnsupportedFormat, node.Line)
	}

	var (
		pattern *Pattern
		err     error
	)

	switch {
	case node.Tag == yamlTagRubyRegexp || node.Tag == yamlTagRegexp:
		pattern, err = NewLiteralPattern(node.Value)
	case node.Tag == "" || node.Tag == "!" || strings.HasPrefix(node.Tag, yamlTagCorePrefix):
		pattern, err = NewPlainPattern(node.Value)
	default:
		return fmt.Errorf("%w: line %d: tag %s is not supported", ErrUnsupportedFormat, node.Line, node.Tag)
	}

	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*p = *pattern

	return nil
}

// UnmarshalYAML decodes a template. The scalar is taken as written, so version 2.0 stays "2.0".
func (t *Template) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: template must be a string", ErrUnsupportedFormat, node.Line)
	}

	template, err := NewTemplate(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*t = *template

	return nil
}
