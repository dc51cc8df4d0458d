package response

import "strings"

// Extract returns the scalar values matching field across records. Matching
// proceeds through three tiers and stops at the first tier that yields
// anything: exact dotted path, exact last path segment, then
// case-insensitive substring of the last segment. Values are de-duplicated
// preserving first occurrence and nulls are dropped.
func Extract(records []*Record, field string) []string {
	if field == "" {
		return nil
	}
	if vals := collect(records, func(p string) bool { return p == field }); len(vals) > 0 {
		return vals
	}
	if vals := collect(records, func(p string) bool { return LastSegment(p) == field }); len(vals) > 0 {
		return vals
	}
	lower := strings.ToLower(field)
	return collect(records, func(p string) bool {
		return strings.Contains(strings.ToLower(LastSegment(p)), lower)
	})
}

// ExtractForParam harvests values for a target parameter. The field hint (or
// the parameter name itself) is tried first with Extract's tiers, then the
// standard AWS identifier fields, qualified by the entity the source
// operation lists. Responses that are bare string lists flatten to
// single-path "value" records and are used directly as a last resort.
func ExtractForParam(records []*Record, field, entity string) []string {
	if vals := Extract(records, field); len(vals) > 0 {
		return vals
	}
	fallbacks := []string{"Name", "Id", "Arn"}
	if entity != "" {
		fallbacks = append(fallbacks, entity+"Name", entity+"Id", entity+"Arn")
	}
	for _, fb := range fallbacks {
		if vals := extractExact(records, fb); len(vals) > 0 {
			return vals
		}
	}
	return bareValues(records)
}

// extractExact matches the last path segment exactly, then case-insensitively,
// without the substring tier. Fallback fields like Name must not latch onto
// arbitrary *Name siblings.
func extractExact(records []*Record, field string) []string {
	if vals := collect(records, func(p string) bool { return LastSegment(p) == field }); len(vals) > 0 {
		return vals
	}
	lower := strings.ToLower(field)
	return collect(records, func(p string) bool {
		return strings.ToLower(LastSegment(p)) == lower
	})
}

func bareValues(records []*Record) []string {
	for _, rec := range records {
		if rec.Len() != 1 || LastSegment(rec.Paths()[0]) != "value" {
			return nil
		}
	}
	return collect(records, func(p string) bool { return true })
}

func collect(records []*Record, match func(path string) bool) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, rec := range records {
		for _, p := range rec.Paths() {
			if !match(p) {
				continue
			}
			v, _ := rec.Get(p)
			s := ScalarString(v)
			if v == nil || s == "" {
				continue
			}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
