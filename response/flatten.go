package response

import (
	"strconv"
	"strings"
)

// metadataKeys are response keys that never carry user-visible data and are
// excluded when locating the primary list.
var metadataKeys = map[string]struct{}{
	"ResponseMetadata": {},
	"NextToken":        {},
	"nextToken":        {},
	"Marker":           {},
	"IsTruncated":      {},
	"PaginationToken":  {},
}

func isMetadataKey(key string) bool {
	if _, ok := metadataKeys[key]; ok {
		return true
	}
	return strings.HasSuffix(key, "Token")
}

// MergePages combines pagination pages into one response object. List-valued
// keys concatenate across pages; scalar siblings are last-write-wins. A
// single page passes through untouched, and heterogeneous pages are returned
// as-is for per-page flattening.
func MergePages(pages []any) any {
	if len(pages) == 0 {
		return nil
	}
	if len(pages) == 1 {
		return pages[0]
	}
	for _, p := range pages {
		if _, ok := p.(*Object); !ok {
			return pages
		}
	}
	merged := NewObject()
	for _, p := range pages {
		obj := p.(*Object)
		for _, k := range obj.Keys() {
			v, _ := obj.Get(k)
			list, isList := v.([]any)
			if !isList {
				merged.Set(k, v)
				continue
			}
			if prev, ok := merged.Get(k); ok {
				if prevList, ok := prev.([]any); ok {
					combined := make([]any, 0, len(prevList)+len(list))
					combined = append(combined, prevList...)
					combined = append(combined, list...)
					merged.Set(k, combined)
					continue
				}
			}
			merged.Set(k, list)
		}
	}
	return merged
}

// Flatten turns a response tree (or a slice of page trees) into an ordered
// list of records. Each record maps dotted paths to scalars.
func Flatten(v any) []*Record {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		var out []*Record
		for _, page := range t {
			out = append(out, flattenOne(page)...)
		}
		return out
	default:
		return flattenOne(v)
	}
}

func flattenOne(v any) []*Record {
	switch t := v.(type) {
	case nil:
		return nil
	case *Object:
		stripped := stripMetadata(t)
		if stripped.Len() == 0 {
			return nil
		}
		return expand(stripped)
	case []any:
		var out []*Record
		for _, elem := range t {
			out = append(out, expand(wrapElem(elem))...)
		}
		return out
	default:
		rec := NewRecord()
		rec.Set("value", t)
		return []*Record{rec}
	}
}

// stripMetadata removes metadata keys at the response root only; nested
// occurrences stay in place.
func stripMetadata(obj *Object) *Object {
	out := NewObject()
	for _, k := range obj.Keys() {
		if isMetadataKey(k) {
			continue
		}
		v, _ := obj.Get(k)
		out.Set(k, v)
	}
	return out
}

// expand produces the records for one object. When the object has exactly
// one non-metadata child holding a non-empty list, that list is the primary
// list and each element becomes its own record, merged with the remaining
// sibling fields and keyed with the element index in the path. With zero or
// several candidate lists the whole object collapses into a single record.
func expand(obj *Object) []*Record {
	primary := ""
	candidates := 0
	for _, k := range obj.Keys() {
		if isMetadataKey(k) {
			continue
		}
		v, _ := obj.Get(k)
		if list, ok := v.([]any); ok && len(list) > 0 {
			candidates++
			primary = k
		}
	}
	if candidates != 1 {
		rec := NewRecord()
		for _, k := range obj.Keys() {
			v, _ := obj.Get(k)
			walk(k, v, rec)
		}
		if rec.Len() == 0 {
			return nil
		}
		return []*Record{rec}
	}

	list, _ := obj.Get(primary)
	var out []*Record
	for i, elem := range list.([]any) {
		prefix := primary + "." + strconv.Itoa(i)
		for _, sub := range expand(wrapElem(elem)) {
			rec := NewRecord()
			for _, k := range obj.Keys() {
				if k != primary {
					v, _ := obj.Get(k)
					walk(k, v, rec)
					continue
				}
				for _, p := range sub.Paths() {
					v, _ := sub.Get(p)
					rec.Set(prefix+"."+p, v)
				}
			}
			out = append(out, rec)
		}
	}
	return out
}

// wrapElem coerces a list element into an object. Scalar elements of mixed
// or string-typed lists become {value: x}.
func wrapElem(elem any) *Object {
	if obj, ok := elem.(*Object); ok {
		return obj
	}
	obj := NewObject()
	obj.Set("value", elem)
	return obj
}

func walk(prefix string, v any, rec *Record) {
	switch t := v.(type) {
	case *Object:
		for _, k := range t.Keys() {
			child, _ := t.Get(k)
			walk(prefix+"."+k, child, rec)
		}
	case []any:
		for i, elem := range t {
			walk(prefix+"."+strconv.Itoa(i), elem, rec)
		}
	default:
		rec.Set(prefix, t)
	}
}
