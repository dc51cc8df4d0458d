package filters

import (
	"strings"

	"github.com/gurre/awsquery/response"
)

// SelectColumns resolves column filter tokens to full record paths, in the
// order the user wrote the tokens. Each token is tried in tiers: exact path
// match, exact last-segment match, then case-insensitive substring against
// the last segment or the simplified path. Tokens that match nothing are
// dropped.
func SelectColumns(records []*response.Record, tokens []string) []string {
	paths := allPaths(records)
	var out []string
	seen := map[string]bool{}
	add := func(matched []string) {
		for _, p := range matched {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	for _, tok := range tokens {
		if m := matchPaths(paths, tok, func(p string) bool { return p == tok }); len(m) > 0 {
			add(m)
			continue
		}
		if m := matchPaths(paths, tok, func(p string) bool { return response.LastSegment(p) == tok }); len(m) > 0 {
			add(m)
			continue
		}
		low := strings.ToLower(tok)
		add(matchPaths(paths, tok, func(p string) bool {
			return strings.Contains(strings.ToLower(response.LastSegment(p)), low) ||
				strings.Contains(strings.ToLower(response.SimplifyPath(p)), low)
		}))
	}
	return out
}

func matchPaths(paths []string, tok string, pred func(string) bool) []string {
	var out []string
	for _, p := range paths {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// DefaultColumns picks up to six paths to show when the user named none.
// Paths are grouped by their simplified key, since per-record list indexes
// differ; only keys present in at least half the records qualify.
// Identifier-like segments (Name, Id, Arn suffixes, State or Status
// prefixes) are preferred over the rest, and within each group first-seen
// order is kept. One representative full path is returned per key.
func DefaultColumns(records []*response.Record) []string {
	if len(records) == 0 {
		return nil
	}
	var keys []string
	rep := map[string]string{}
	counts := map[string]int{}
	for _, rec := range records {
		seen := map[string]bool{}
		for _, p := range rec.Paths() {
			key := response.SimplifyPath(p)
			if _, ok := rep[key]; !ok {
				rep[key] = p
				keys = append(keys, key)
			}
			if !seen[key] {
				seen[key] = true
				counts[key]++
			}
		}
	}
	threshold := (len(records) + 1) / 2
	var preferred, rest []string
	for _, key := range keys {
		if counts[key] < threshold {
			continue
		}
		if isIdentifierSegment(response.LastSegment(key)) {
			preferred = append(preferred, rep[key])
		} else {
			rest = append(rest, rep[key])
		}
	}
	out := append(preferred, rest...)
	if len(out) > 6 {
		out = out[:6]
	}
	return out
}

func isIdentifierSegment(seg string) bool {
	for _, suffix := range []string{"Name", "Id", "Arn"} {
		if strings.HasSuffix(seg, suffix) {
			return true
		}
	}
	return strings.HasPrefix(seg, "State") || strings.HasPrefix(seg, "Status") || seg == "value"
}

// allPaths returns every distinct path across records in first-seen order.
func allPaths(records []*response.Record) []string {
	var out []string
	seen := map[string]bool{}
	for _, rec := range records {
		for _, p := range rec.Paths() {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}
