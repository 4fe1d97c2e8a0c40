package definitions

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/intacct-functions/pkg/content"
)

type yamlFile struct {
	Functions []yaml.Node `yaml:"functions"`
}

// Params stay nodes so scalars keep the text they were written with:
// 0012 must not become 10, nor 1.10 become 1.1.
type yamlEntry struct {
	Function string               `yaml:"function"`
	Params   map[string]yaml.Node `yaml:"params"`
}

// LoadYAML reads a YAML definitions file.
func LoadYAML(path string) ([]Definition, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open definitions file")
	}
	defer file.Close()

	return ParseYAML(file, path)
}

// ParseYAML reads YAML definitions from r. source names r in Definition.Source.
func ParseYAML(r io.Reader, source string) ([]Definition, error) {
	var doc yamlFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to parse %s", source)
	}

	defs := make([]Definition, 0, len(doc.Functions))
	for i := range doc.Functions {
		node := &doc.Functions[i]

		var entry yamlEntry
		if err := node.Decode(&entry); err != nil {
			return nil, errors.Wrapf(err, "%s:%d: malformed function entry", source, node.Line)
		}

		values, err := nodeValues(entry.Params)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: malformed params", source, node.Line)
		}

		defs = append(defs, Definition{
			Source:   fmt.Sprintf("%s:%d", source, node.Line),
			Function: entry.Function,
			Values:   values,
		})
	}

	return defs, nil
}

// nodeValues converts params nodes into Values. Scalars map to their literal
// text, sequences to []any of literal text and nulls to nil.
func nodeValues(params map[string]yaml.Node) (content.Values, error) {
	values := make(content.Values, len(params))
	for key, node := range params {
		value, err := nodeValue(&node)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", key)
		}
		values[key] = value
	}
	return values, nil
}

func nodeValue(node *yaml.Node) (any, error) {
	for node.Kind == yaml.AliasNode {
		node = node.Alias
	}

	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return nil, nil
		}
		return node.Value, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := nodeValue(child)
			if err != nil {
				return nil, err
			}
			if item == nil {
				item = ""
			}
			items = append(items, item)
		}
		return items, nil
	default:
		// Mappings are kept decoded so content.Values reports them as
		// invalid for the option they were given to.
		var decoded any
		if err := node.Decode(&decoded); err != nil {
			return nil, err
		}
		return decoded, nil
	}
}
