// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Document is a parsed metadata file. A file may hold several YAML documents;
// Unity .meta files hold exactly one.
type Document struct {
	docs []*yaml.Node
}

// Parse decodes every YAML document in data.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	doc := &Document{}
	for {
		var n yaml.Node
		err := dec.Decode(&n)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse metadata document: %w", err)
		}
		doc.docs = append(doc.docs, &n)
	}
	return doc, nil
}

// Roots returns the root node of each YAML document.
func (d *Document) Roots() []Node {
	out := make([]Node, 0, len(d.docs))
	for _, n := range d.docs {
		if root := Classify(n); root != nil {
			out = append(out, root)
		}
	}
	return out
}

// Encode serializes the document with two-space indentation. Documents
// without content encode to nothing.
func (d *Document) Encode(w io.Writer) error {
	var docs []*yaml.Node
	for _, n := range d.docs {
		if n.Kind == yaml.DocumentNode && len(n.Content) == 0 {
			continue
		}
		docs = append(docs, n)
	}
	if len(docs) == 0 {
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, n := range docs {
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("failed to encode metadata document: %w", err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode metadata document: %w", err)
	}
	return nil
}

// Bytes returns the encoded document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
