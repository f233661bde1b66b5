package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// messager matches zerr.Error: the message of one link without its cause.
type messager interface {
	Message() string
}

type metadataer interface {
	Metadata() map[string]any
}

// errorEntry is one link of an error chain.
type errorEntry struct {
	message  string
	metadata map[string]any
}

// collectErrorEntries walks the chain of zerr errors. Links without a message
// only carry metadata, which is merged into the next link. A standard error
// ends the walk with its full text.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	var pending map[string]any

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, errorEntry{message: current.Error(), metadata: pending})
			break
		}

		meta := map[string]any{}
		maps.Copy(meta, pending)
		if md, ok := current.(metadataer); ok {
			maps.Copy(meta, md.Metadata())
		}

		if m.Message() == "" {
			pending = meta
		} else {
			entries = append(entries, errorEntry{message: m.Message(), metadata: meta})
			pending = nil
		}
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders the main error first and its causes below a
// "Caused by:" header. Metadata keys are sorted.
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.message, "\n")

		indent := "       "
		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			lines = append(lines, "    → "+msgLines[0])
			indent = "      "
		}
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
