package manifest

import "github.com/hashicorp/hcl/v2"

const (
	hclBlockRule       = "url_to_dependency_map"
	hclBlockDependency = "dependency"

	hclAttrMatch       = "match"
	hclAttrMatchRegexp = "match_regexp"
	hclAttrName        = "name"
	hclAttrVersion     = "version"
	hclAttrURI         = "uri"
	hclAttrStacks      = "cf_stacks"
)

// NewHCLBodySchema returns HCL body schema of the manifest file, which contains only blocks.
func NewHCLBodySchema() *hcl.BodySchema {
	return &hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: hclBlockRule},
			{Type: hclBlockDependency},
		},
	}
}

// NewHCLRuleSchema returns HCL body schema of a url_to_dependency_map block. Either match or match_regexp
// is expected, which is checked when the block is decoded.
func NewHCLRuleSchema() *hcl.BodySchema {
	return newHCLAttributesSchema(
		map[string]bool{
			hclAttrMatch:       false,
			hclAttrMatchRegexp: false,
			hclAttrName:        true,
			hclAttrVersion:     true,
		},
		[]string{hclAttrMatch, hclAttrMatchRegexp, hclAttrName, hclAttrVersion},
	)
}

// NewHCLDependencySchema returns HCL body schema of a dependency block.
func NewHCLDependencySchema() *hcl.BodySchema {
	return newHCLAttributesSchema(
		map[string]bool{
			hclAttrName:    true,
			hclAttrVersion: true,
			hclAttrURI:     true,
			hclAttrStacks:  false,
		},
		[]string{hclAttrName, hclAttrVersion, hclAttrURI, hclAttrStacks},
	)
}

func newHCLAttributesSchema(required map[string]bool, order []string) *hcl.BodySchema {
	hclBodySchema := &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{},
	}

	for _, attribute := range order {
		hclBodySchema.Attributes = append(hclBodySchema.Attributes, hcl.AttributeSchema{
			Name:     attribute,
			Required: required[attribute],
		})
	}

	return hclBodySchema
}
