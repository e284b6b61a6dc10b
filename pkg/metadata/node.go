// SPDX-License-Identifier: MPL-2.0

package metadata

import "gopkg.in/yaml.v3"

type (
	// Node is one of *Mapping, *Sequence or *Scalar. The set is closed: the
	// unexported method keeps other packages from adding variants.
	Node interface {
		yamlNode() *yaml.Node
	}

	// Mapping is a YAML mapping node.
	Mapping struct{ n *yaml.Node }

	// Sequence is a YAML sequence node.
	Sequence struct{ n *yaml.Node }

	// Scalar is a YAML scalar node. Set mutates the underlying document.
	Scalar struct{ n *yaml.Node }

	// Pair is one key/value entry of a Mapping. Either side may be nil when
	// it is an alias.
	Pair struct {
		Key   Node
		Value Node
	}
)

func (m *Mapping) yamlNode() *yaml.Node  { return m.n }
func (s *Sequence) yamlNode() *yaml.Node { return s.n }
func (s *Scalar) yamlNode() *yaml.Node   { return s.n }

// Classify wraps n in its variant. Document nodes are unwrapped to their
// root. Aliases classify as nil: the anchored node is visited where it is
// defined, so following aliases would visit it twice.
func Classify(n *yaml.Node) Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return Classify(n.Content[0])
	case yaml.MappingNode:
		return &Mapping{n: n}
	case yaml.SequenceNode:
		return &Sequence{n: n}
	case yaml.ScalarNode:
		return &Scalar{n: n}
	default:
		return nil
	}
}

// Pairs returns the mapping entries in document order.
func (m *Mapping) Pairs() []Pair {
	out := make([]Pair, 0, len(m.n.Content)/2)
	for i := 0; i+1 < len(m.n.Content); i += 2 {
		out = append(out, Pair{Key: Classify(m.n.Content[i]), Value: Classify(m.n.Content[i+1])})
	}
	return out
}

// Items returns the sequence elements in document order.
func (s *Sequence) Items() []Node {
	out := make([]Node, len(s.n.Content))
	for i, c := range s.n.Content {
		out[i] = Classify(c)
	}
	return out
}

// Value returns the scalar text.
func (s *Scalar) Value() string { return s.n.Value }

// Line returns the 1-based source line, or 0 for synthesized nodes.
func (s *Scalar) Line() int { return s.n.Line }

// Set replaces the scalar text. The value is retagged as a string so that an
// identifier which happens to look like a number is quoted on output rather
// than re-emitted with its old numeric tag.
func (s *Scalar) Set(v string) {
	s.n.Value = v
	s.n.Tag = "!!str"
}

// scalarKey returns the text of k when it is a scalar key.
func scalarKey(k Node) (string, bool) {
	s, ok := k.(*Scalar)
	if !ok {
		return "", false
	}
	return s.Value(), true
}
