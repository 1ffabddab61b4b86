package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// ParseHCL decodes an HCL manifest. Blocks keep the order they have in the file.
func (m *Manifest) ParseHCL(data []byte, filename string) error {
	parser := hclparse.NewParser()

	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return fmt.Errorf("%w: error parsing hcl: %s", ErrUnmarshal, diags.Error())
	}

	content, diags := hclFile.Body.Content(NewHCLBodySchema())
	if diags.HasErrors() {
		return fmt.Errorf("%w: error getting content: %s", ErrUnmarshal, diags.Error())
	}

	ruleSchema := NewHCLRuleSchema()
	dependencySchema := NewHCLDependencySchema()

	for _, block := range content.Blocks {
		switch block.Type {
		case hclBlockRule:
			rule, err := parseHCLBlockRule(block, ruleSchema)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrUnmarshal, err)
			}

			m.Rules = append(m.Rules, rule)
		case hclBlockDependency:
			dependency, err := parseHCLBlockDependency(block, dependencySchema)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrUnmarshal, err)
			}

			m.Dependencies = append(m.Dependencies, dependency)
		}
	}

	return nil
}

func parseHCLBlockRule(block *hcl.Block, schema *hcl.BodySchema) (*MatchRule, error) {
	bodyContent, diags := block.Body.Content(schema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("error getting content: %s at %s: %s", block.Type, block.DefRange.String(), diags.Error())
	}

	attrs := bodyContent.Attributes

	rule := &MatchRule{}

	_, hasMatch := attrs[hclAttrMatch]
	_, hasMatchRegexp := attrs[hclAttrMatchRegexp]

	switch {
	case hasMatch && hasMatchRegexp:
		return nil, fmt.Errorf(
			"%w: %s at %s: only one of %s and %s can be set",
			ErrInvalidPattern, block.Type, block.DefRange.String(), hclAttrMatch, hclAttrMatchRegexp,
		)
	case hasMatch:
		source, err := hclStringAttribute(attrs[hclAttrMatch])
		if err != nil {
			return nil, err
		}

		rule.Pattern, err = NewPlainPattern(source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", attrs[hclAttrMatch].Range.String(), err)
		}
	case hasMatchRegexp:
		source, err := hclStringAttribute(attrs[hclAttrMatchRegexp])
		if err != nil {
			return nil, err
		}

		rule.Pattern, err = NewLiteralPattern(source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", attrs[hclAttrMatchRegexp].Range.String(), err)
		}
	}

	for attrName, target := range map[string]**Template{hclAttrName: &rule.Name, hclAttrVersion: &rule.Version} {
		source, err := hclStringAttribute(attrs[attrName])
		if err != nil {
			return nil, err
		}

		template, err := NewTemplate(source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", attrs[attrName].Range.String(), err)
		}

		*target = template
	}

	return rule, nil
}

func parseHCLBlockDependency(block *hcl.Block, schema *hcl.BodySchema) (*Dependency, error) {
	bodyContent, diags := block.Body.Content(schema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("error getting content: %s at %s: %s", block.Type, block.DefRange.String(), diags.Error())
	}

	attrs := bodyContent.Attributes

	dependency := &Dependency{}

	fieldValues := map[string]*string{
		hclAttrName:    &dependency.Name,
		hclAttrVersion: &dependency.Version,
		hclAttrURI:     &dependency.URI,
	}

	for attrName, target := range fieldValues {
		value, err := hclStringAttribute(attrs[attrName])
		if err != nil {
			return nil, err
		}

		*target = value
	}

	stacksAttr, ok := attrs[hclAttrStacks]
	if ok {
		stacks, err := hclStringListAttribute(stacksAttr)
		if err != nil {
			return nil, err
		}

		dependency.Stacks = stacks
	}

	return dependency, nil
}

func hclStringAttribute(attr *hcl.Attribute) (string, error) {
	value, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("%w: %s: %s", ErrUnsupportedFormat, attr.Name, diags.Error())
	}

	if value.IsNull() || !value.IsKnown() || value.Type() != cty.String {
		return "", fmt.Errorf("%w: %s at %s must be a string", ErrUnsupportedFormat, attr.Name, attr.Range.String())
	}

	return value.AsString(), nil
}

func hclStringListAttribute(attr *hcl.Attribute) ([]string, error) {
	value, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %s", ErrUnsupportedFormat, attr.Name, diags.Error())
	}

	valueType := value.Type()
	if value.IsNull() || !value.IsKnown() ||
		!(valueType.IsTupleType() || valueType.IsListType() || valueType.IsSetType()) {
		return nil, fmt.Errorf("%w: %s at %s must be a list", ErrUnsupportedFormat, attr.Name, attr.Range.String())
	}

	list := []string{}

	for _, element := range value.AsValueSlice() {
		if element.IsNull() || !element.IsKnown() || element.Type() != cty.String {
			return nil, fmt.Errorf(
				"%w: %s at %s must contain only strings",
				ErrUnsupportedFormat, attr.Name, attr.Range.String(),
			)
		}

		list = append(list, element.AsString())
	}

	return list, nil
}
