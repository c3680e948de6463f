package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"
)

// dueLayout formats due timestamps in table output.
const dueLayout = "2006-01-02 15:04"

// writeJSON prints v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeTable prints caller-form todos as an aligned table.
func writeTable(w io.Writer, todos []map[string]any) error {
	if len(todos) == 0 {
		_, err := fmt.Fprintln(w, "No todos.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tDUE\tNAME")
	for _, t := range todos {
		id, _ := t["id"].(int64)
		name, _ := t["name"].(string)
		due, _ := t["dueAt"].(float64)
		done, _ := t["done"].(bool)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", id, checkbox(done), formatDue(due), name)
	}
	return tw.Flush()
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// formatDue renders epoch milliseconds in UTC.
func formatDue(ms float64) string {
	return time.UnixMilli(int64(ms)).UTC().Format(dueLayout)
}

// parseDue accepts epoch milliseconds or an RFC 3339 timestamp.
func parseDue(s string) (float64, error) {
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		return ms, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("due %q: want epoch milliseconds or RFC 3339", s)
	}
	return float64(t.UnixMilli()), nil
}
