package response

import (
	"bytes"
	"strings"

	json "github.com/goccy/go-json"
)

// Record is one flattened row: a map from dotted path to scalar value that
// preserves the order in which paths were discovered.
type Record struct {
	paths []string
	vals  map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{vals: make(map[string]any)}
}

// Set stores a scalar under the given dotted path.
func (r *Record) Set(path string, v any) {
	if _, ok := r.vals[path]; !ok {
		r.paths = append(r.paths, path)
	}
	r.vals[path] = v
}

// Get returns the scalar stored under path.
func (r *Record) Get(path string) (any, bool) {
	v, ok := r.vals[path]
	return v, ok
}

// Paths returns all dotted paths in discovery order.
func (r *Record) Paths() []string {
	return r.paths
}

// Len returns the number of paths.
func (r *Record) Len() int {
	return len(r.paths)
}

// MarshalJSON emits the record as a flat JSON object keyed by dotted paths,
// in discovery order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range r.paths {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(r.vals[p])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// LastSegment returns the final component of a dotted path.
func LastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// SimplifyPath drops numeric list indices from a dotted path, so
// "Tags.0.Value" displays as "Tags.Value". Full paths remain the matching
// domain for filters and extraction; simplified paths are display-only.
func SimplifyPath(path string) string {
	segs := strings.Split(path, ".")
	kept := segs[:0]
	for _, s := range segs {
		if isIndex(s) {
			continue
		}
		kept = append(kept, s)
	}
	if len(kept) == 0 {
		return path
	}
	return strings.Join(kept, ".")
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
