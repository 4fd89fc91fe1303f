package main

import (
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dpotapov/gomark"
)

// buildFrontmatter renders head's title/canonical/base/meta-<name>
// entries as a YAML frontmatter block ("---\nkey: value\n...---\n",
// spec.md §6) followed by one blank line, or "" when head has no such
// entries. It builds an explicit yaml.Node mapping (rather than
// marshaling a Go map) so key order is deterministic instead of at the
// mercy of map iteration.
func buildFrontmatter(head gomark.HeadInfo) (string, error) {
	keys := make([]string, 0, 3+len(head.Meta))
	values := make([]string, 0, 3+len(head.Meta))

	add := func(key, value string) {
		if value == "" {
			return
		}
		keys = append(keys, key)
		values = append(values, value)
	}
	add("title", head.Title)
	add("canonical", head.Canonical)
	add("base", head.Base)

	metaNames := make([]string, 0, len(head.Meta))
	for name := range head.Meta {
		metaNames = append(metaNames, name)
	}
	sort.Strings(metaNames)
	for _, name := range metaNames {
		add("meta-"+name, head.Meta[name])
	}

	if len(keys) == 0 {
		return "", nil
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, key := range keys {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: values[i]},
		)
	}

	body, err := yaml.Marshal(mapping)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(body)
	sb.WriteString("---\n\n")
	return sb.String(), nil
}
