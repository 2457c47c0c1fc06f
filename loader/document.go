package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind tells which shape a Node has
type Kind int

const (
	// Null is an absent or explicit null value
	Null Kind = iota
	Scalar
	List
	Mapping
)

// Node is an already-parsed document value. Mappings keep their source
// order, which decides table and column order.
type Node struct {
	Kind Kind
	// Value holds the source text of a scalar
	Value string
	// Str is set when a scalar was a string (quoted or plain text)
	Str     bool
	Items   []Node
	Entries []Entry
}

// Entry is one key/value pair of a mapping
type Entry struct {
	Key   string
	Value Node
}

// Get returns the value for key. The last occurrence wins.
func (n Node) Get(key string) (Node, bool) {
	if n.Kind != Mapping {
		return Node{}, false
	}
	var (
		found Node
		ok    bool
	)
	for _, e := range n.Entries {
		if e.Key == key {
			found, ok = e.Value, true
		}
	}
	return found, ok
}

// IsEmpty reports whether the node carries no data at all
func (n Node) IsEmpty() bool {
	switch n.Kind {
	case Null:
		return true
	case Mapping:
		return len(n.Entries) == 0
	case List:
		return len(n.Items) == 0
	}
	return false
}

// Parse converts YAML (or JSON) text into a Node tree
func Parse(data []byte) (Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Node{}, fmt.Errorf("unmarshalling YAML: %w", err)
	}
	if doc.Kind == 0 {
		return Node{}, nil
	}
	return fromYAML(&doc, 0)
}

const maxAliasDepth = 64

func fromYAML(n *yaml.Node, depth int) (Node, error) {
	if depth > maxAliasDepth {
		return Node{}, fmt.Errorf("document nested too deeply at line %d", n.Line)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Node{}, nil
		}
		return fromYAML(n.Content[0], depth+1)
	case yaml.AliasNode:
		return fromYAML(n.Alias, depth+1)
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return Node{Kind: Null}, nil
		}
		return Node{Kind: Scalar, Value: n.Value, Str: n.ShortTag() == "!!str"}, nil
	case yaml.SequenceNode:
		out := Node{Kind: List, Items: make([]Node, 0, len(n.Content))}
		for _, item := range n.Content {
			v, err := fromYAML(item, depth+1)
			if err != nil {
				return Node{}, err
			}
			out.Items = append(out.Items, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := Node{Kind: Mapping}
		explicit := map[string]bool{}
		var merged []Entry
		mergeAt := -1
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.Value == "<<" && k.ShortTag() == "!!merge" {
				source, err := fromYAML(v, depth+1)
				if err != nil {
					return Node{}, err
				}
				if mergeAt < 0 {
					mergeAt = len(out.Entries)
				}
				merged = append(merged, mergeEntries(source)...)
				continue
			}
			value, err := fromYAML(v, depth+1)
			if err != nil {
				return Node{}, err
			}
			explicit[k.Value] = true
			out.Entries = append(out.Entries, Entry{Key: k.Value, Value: value})
		}
		if mergeAt >= 0 {
			out.Entries = insertMerged(out.Entries, mergeAt, merged, explicit)
		}
		return out, nil
	}
	return Node{}, nil
}

// insertMerged places merged keys where the first "<<" appeared. Keys the
// mapping sets itself always win, and among merge sources the first one
// naming a key wins.
func insertMerged(entries []Entry, at int, merged []Entry, explicit map[string]bool) []Entry {
	seen := map[string]bool{}
	var keep []Entry
	for _, e := range merged {
		if explicit[e.Key] || seen[e.Key] {
			continue
		}
		seen[e.Key] = true
		keep = append(keep, e)
	}
	out := make([]Entry, 0, len(entries)+len(keep))
	out = append(out, entries[:at]...)
	out = append(out, keep...)
	return append(out, entries[at:]...)
}

func mergeEntries(n Node) []Entry {
	switch n.Kind {
	case Mapping:
		return n.Entries
	case List:
		var entries []Entry
		for _, item := range n.Items {
			entries = append(entries, mergeEntries(item)...)
		}
		return entries
	}
	return nil
}

// Pairs returns the mapping entries with duplicate keys collapsed: the
// first position is kept and the last value wins.
func (n Node) Pairs() []Entry {
	if n.Kind != Mapping {
		return nil
	}
	pos := make(map[string]int, len(n.Entries))
	out := make([]Entry, 0, len(n.Entries))
	for _, e := range n.Entries {
		if i, ok := pos[e.Key]; ok {
			out[i].Value = e.Value
			continue
		}
		pos[e.Key] = len(out)
		out = append(out, e)
	}
	return out
}
