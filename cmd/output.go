package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// writeJSON encodes v as JSON to w, handling I/O errors at the boundary.
func writeJSON(w io.Writer, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(w, "{\"error\":%q}\n", err.Error())
	}
}

// writeDocument prints a human summary of a document result.
func writeDocument(w io.Writer, verb string, r *DocumentResult) {
	switch {
	case !r.Changed:
		fmt.Fprintf(w, "No change to %s\n", r.Path)
	case r.Planned:
		fmt.Fprintf(w, "Would %s %s\n", verb, r.Path)
		writeFields(w, r.Fields)
	default:
		fmt.Fprintf(w, "Updated %s\n", r.Path)
		writeFields(w, r.Fields)
	}
}

// writeFields prints the named metadata fields in key order.
func writeFields(w io.Writer, fields map[string]any) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %v\n", k, fields[k])
	}
}
