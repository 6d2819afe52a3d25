package market

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/trueke/table"
)

// DecodeRecords reads a YAML sequence of mappings into ordered records. Key
// order of each mapping is kept. Nested values decode to plain Go values.
func DecodeRecords(r io.Reader) ([]table.Record, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode records: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("decode records: line %d: want a sequence of mappings", root.Line)
	}

	out := make([]table.Record, 0, len(root.Content))
	for i, n := range root.Content {
		if n.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("decode records: entry %d (line %d): want a mapping", i, n.Line)
		}
		rec := make(table.Record, 0, len(n.Content)/2)
		for j := 0; j+1 < len(n.Content); j += 2 {
			k, v := n.Content[j], n.Content[j+1]
			var val any
			if err := v.Decode(&val); err != nil {
				return nil, fmt.Errorf("decode records: entry %d field %q: %w", i, k.Value, err)
			}
			rec = rec.Set(k.Value, val)
		}
		out = append(out, rec)
	}
	return out, nil
}
