package metadata

import (
	"github.com/goccy/go-yaml"

	"github.com/inkdex/comicmeta/pkg/errors"
)

// YAML renders the record as YAML. This is the sidecar/export form, not a
// tagging scheme: it carries every field losslessly, including the CoMet
// extras no single XML scheme can hold.
func (md *GenericMetadata) YAML() ([]byte, error) {
	data, err := yaml.MarshalWithOptions(md,
		yaml.Indent(2),
		yaml.IndentSequence(false),
		yaml.UseLiteralStyleIfMultiline(true),
	)
	if err != nil {
		return nil, errors.NewFormatError("yaml", "marshaling metadata", err)
	}
	return data, nil
}

// FromYAML parses a record previously rendered with YAML.
func FromYAML(data []byte) (*GenericMetadata, error) {
	md := New()
	if err := yaml.Unmarshal(data, md); err != nil {
		return nil, errors.NewFormatError("yaml", "unmarshaling metadata", err)
	}
	return md, nil
}
