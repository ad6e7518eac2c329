package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Tree is a B+ Tree held level by level, root first. Construction
// happens once in Load; the structure is read-only afterwards.
type Tree struct {
	Levels [][]*Node
}

// Load reads the level-order tree description: a JSON array of levels,
// each level an array of nodes, each node an array of key entries. A
// key entry is either a number or a [number, color] pair. Children are
// attached to the leftmost node in the previous level that still has
// room, which preserves the key order of the serialized tree.
//
// namePattern is a fmt pattern with one %d verb used to name nodes in
// load order; the empty string means "n%d".
func Load(r io.Reader, namePattern string) (*Tree, error) {
	if namePattern == "" {
		namePattern = "n%d"
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()
	var rawLevels [][]json.RawMessage
	if err := dec.Decode(&rawLevels); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	t := &Tree{}
	serial := 0
	for _, rawLevel := range rawLevels {
		var prev []*Node
		if n := len(t.Levels); n > 0 {
			prev = t.Levels[n-1]
		}

		i := 0
		level := make([]*Node, 0, len(rawLevel))
		for _, rawNode := range rawLevel {
			keys, err := parseKeys(rawNode)
			if err != nil {
				return nil, err
			}
			node := &Node{
				Name: fmt.Sprintf(namePattern, serial),
				Keys: keys,
			}
			serial++

			for i < len(prev) && prev[i].full() {
				i++
			}
			if i < len(prev) {
				prev[i].addChild(node)
			}
			level = append(level, node)
		}
		if len(level) > 0 {
			t.Levels = append(t.Levels, level)
		}
	}
	return t, nil
}

// parseKeys decodes one node's key array.
func parseKeys(raw json.RawMessage) ([]Key, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: node is not an array of keys: %v", ErrMalformedInput, err)
	}
	keys := make([]Key, 0, len(entries))
	for _, entry := range entries {
		key, err := parseKey(entry)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// parseKey decodes a single key entry: a bare number, or a
// [number, color] pair where color is a hex string or an integer.
func parseKey(raw json.RawMessage) (Key, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var pair []json.RawMessage
		if err := json.Unmarshal(trimmed, &pair); err != nil || len(pair) != 2 {
			return Key{}, fmt.Errorf("%w: key pair must be [value, color]", ErrMalformedInput)
		}
		value, err := parseNumber(pair[0])
		if err != nil {
			return Key{}, err
		}
		color, err := parseColor(pair[1])
		if err != nil {
			return Key{}, err
		}
		return Key{Value: value, Color: color}, nil
	}

	value, err := parseNumber(trimmed)
	if err != nil {
		return Key{}, err
	}
	return Key{Value: value}, nil
}

func parseNumber(raw json.RawMessage) (string, error) {
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return "", fmt.Errorf("%w: key %s is not a number", ErrMalformedInput, raw)
	}
	return num.String(), nil
}

func parseColor(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil && n >= 0 && n <= 0xffffff {
		return fmt.Sprintf("#%06x", n), nil
	}
	return "", fmt.Errorf("%w: key color %s is neither a hex string nor an integer", ErrMalformedInput, raw)
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node {
	if len(t.Levels) == 0 || len(t.Levels[0]) == 0 {
		return nil
	}
	return t.Levels[0][0]
}

// NumLevels returns the number of levels in the tree.
func (t *Tree) NumLevels() int {
	return len(t.Levels)
}

// NumNodes returns the total number of nodes across all levels.
func (t *Tree) NumNodes() int {
	total := 0
	for _, level := range t.Levels {
		total += len(level)
	}
	return total
}

// NumLeaves returns the number of nodes on the deepest level.
func (t *Tree) NumLeaves() int {
	if len(t.Levels) == 0 {
		return 0
	}
	return len(t.Levels[len(t.Levels)-1])
}

// String renders one line per level for diagnostics.
func (t *Tree) String() string {
	var sb strings.Builder
	for _, level := range t.Levels {
		for i, node := range level {
			if i > 0 {
				sb.WriteString("  ")
			}
			values := make([]string, len(node.Keys))
			for j, k := range node.Keys {
				values[j] = k.Value
			}
			parent := ""
			if node.Parent != nil {
				parent = "(" + node.Parent.Name + ")"
			}
			fmt.Fprintf(&sb, "<%s%s: [%s]>", node.Name, parent, strings.Join(values, " "))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
