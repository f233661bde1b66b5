// export_test.go exports private functions for white-box testing.
package logger

// ErrorEntry exposes the fields of an errorEntry.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// CollectErrorEntries exports collectErrorEntries.
func CollectErrorEntries(err error) []ErrorEntry {
	var out []ErrorEntry
	for _, e := range collectErrorEntries(err) {
		out = append(out, ErrorEntry{Message: e.message, Metadata: e.metadata})
	}
	return out
}
