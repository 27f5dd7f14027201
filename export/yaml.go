package export

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EncodeYAML serializes a value tree to YAML. Mappings are emitted in
// insertion order, which yaml.Marshal on plain Go maps would not preserve.
func EncodeYAML(value Value) ([]byte, error) {
	node, err := toNode(value)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return out, nil
}

// WriteFile serializes the value tree and writes it to path, replacing any
// existing content.
func WriteFile(path string, value Value) error {
	data, err := EncodeYAML(value)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

func toNode(value Value) (*yaml.Node, error) {
	switch v := value.(type) {
	case nil, Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(float64(v), 'g', -1, 64)}, nil
	case Integer:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(v), 10)}, nil
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(v)}, nil
	case Sequence:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v {
			child, err := toNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case *Mapping:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range v.keys {
			child, err := toNode(v.values[key])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("unsupported export value %T", value)
	}
}
