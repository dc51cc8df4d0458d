package filters

import (
	"strings"

	"github.com/gurre/awsquery/response"
)

// Apply keeps the records that match every value filter token. A token
// matches a record when it is a case-insensitive substring of any dotted
// path or any scalar value in the record. No tokens means no filtering.
func Apply(records []*response.Record, tokens []string) []*response.Record {
	if len(tokens) == 0 {
		return records
	}
	lowered := make([]string, len(tokens))
	for i, tok := range tokens {
		lowered[i] = strings.ToLower(tok)
	}
	var out []*response.Record
	for _, rec := range records {
		if matches(rec, lowered) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec *response.Record, tokens []string) bool {
	var items []string
	for _, path := range rec.Paths() {
		items = append(items, strings.ToLower(path))
		v, _ := rec.Get(path)
		if s := response.ScalarString(v); s != "" {
			items = append(items, strings.ToLower(s))
		}
	}
	for _, tok := range tokens {
		found := false
		for _, item := range items {
			if strings.Contains(item, tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
