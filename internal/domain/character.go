package domain

import "sort"

// Character is a story character with open-ended user-defined fields
// ("role", "description", ...). FieldOrder preserves the insertion order of
// Fields keys so rendered output is stable.
type Character struct {
	ID         string
	Name       string
	Fields     map[string]string
	FieldOrder []string
	IsChecked  bool
}

// SetField adds or updates a field, tracking first-insertion order.
func (c *Character) SetField(key, value string) {
	if c.Fields == nil {
		c.Fields = make(map[string]string)
	}
	if _, ok := c.Fields[key]; !ok {
		c.FieldOrder = append(c.FieldOrder, key)
	}
	c.Fields[key] = value
}

// OrderedFields returns (key, value) pairs in insertion order. Keys present
// in Fields but missing from FieldOrder (possible after loading a project
// saved without order data) are appended at the end, sorted.
func (c *Character) OrderedFields() [][2]string {
	out := make([][2]string, 0, len(c.Fields))
	seen := make(map[string]bool, len(c.Fields))
	for _, k := range c.FieldOrder {
		if v, ok := c.Fields[k]; ok && !seen[k] {
			out = append(out, [2]string{k, v})
			seen[k] = true
		}
	}
	var rest []string
	for k := range c.Fields {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		out = append(out, [2]string{k, c.Fields[k]})
	}
	return out
}
