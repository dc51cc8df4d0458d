// Package render writes the final output: an aligned text table, a JSON
// array, or the key listing used by discovery.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"

	"github.com/gurre/awsquery/response"
)

// maxCellWidth bounds table cells so one long ARN does not blow up the
// whole layout.
const maxCellWidth = 50

// Table writes records as an aligned table. The columns slice holds full
// record paths; paths that simplify to the same dotted key share one header
// column, so per-record index differences collapse into a single column.
func Table(w io.Writer, records []*response.Record, columns []string) error {
	if len(records) == 0 || len(columns) == 0 {
		return nil
	}
	var headers []string
	seen := map[string]bool{}
	for _, col := range columns {
		key := response.SimplifyPath(col)
		if !seen[key] {
			seen[key] = true
			headers = append(headers, key)
		}
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, rec := range records {
		cells := make([]string, len(headers))
		for i, header := range headers {
			cells[i] = truncate(cellValue(rec, header))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// cellValue finds the record path that simplifies to the header key.
func cellValue(rec *response.Record, header string) string {
	for _, p := range rec.Paths() {
		if response.SimplifyPath(p) == header {
			v, _ := rec.Get(p)
			return response.ScalarString(v)
		}
	}
	return ""
}

func truncate(s string) string {
	if len(s) <= maxCellWidth {
		return s
	}
	return s[:maxCellWidth-3] + "..."
}

// JSON writes records as an indented JSON array. With columns the records
// are projected down to the matching paths first; without, every path is
// kept.
func JSON(w io.Writer, records []*response.Record, columns []string) error {
	out := records
	if len(columns) > 0 {
		keep := map[string]bool{}
		for _, col := range columns {
			keep[response.SimplifyPath(col)] = true
		}
		out = make([]*response.Record, 0, len(records))
		for _, rec := range records {
			proj := response.NewRecord()
			for _, p := range rec.Paths() {
				if keep[response.SimplifyPath(p)] {
					v, _ := rec.Get(p)
					proj.Set(p, v)
				}
			}
			out = append(out, proj)
		}
	}
	if out == nil {
		out = []*response.Record{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// Keys writes the distinct simplified keys across records, sorted without
// regard to case. This is the -k discovery listing.
func Keys(w io.Writer, records []*response.Record) error {
	seen := map[string]bool{}
	var keys []string
	for _, rec := range records {
		for _, p := range rec.Paths() {
			key := response.SimplifyPath(p)
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return strings.ToLower(keys[i]) < strings.ToLower(keys[j])
	})
	for _, key := range keys {
		if _, err := fmt.Fprintf(w, "  %s\n", key); err != nil {
			return err
		}
	}
	return nil
}

// List writes plain lines, one per entry. Used for the service and
// operation listings.
func List(w io.Writer, entries []string) error {
	for _, entry := range entries {
		if _, err := fmt.Fprintln(w, entry); err != nil {
			return err
		}
	}
	return nil
}
