// Package config holds the parsed invocation: flags, parameter overrides
// and resolution hints, validated before any call planning starts.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgumentError reports an invocation the command line could not express.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string { return e.Msg }

func argErrorf(format string, args ...any) error {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// Hint steers resolution of one missing parameter: which source operation
// to use, which response field to harvest and how many values to keep.
type Hint struct {
	Source string
	Field  string
	Limit  int
}

// ParseHint decodes a -i value of the form "source", "source:field" or
// "source:field:limit". Field and limit are optional; a leading colon form
// like ":username" leaves the source to be picked automatically.
func ParseHint(s string) (Hint, error) {
	parts := strings.SplitN(s, ":", 3)
	hint := Hint{Source: parts[0]}
	if len(parts) > 1 {
		hint.Field = parts[1]
	}
	if len(parts) > 2 {
		n, err := strconv.Atoi(parts[2])
		if err != nil || n < 1 {
			return Hint{}, argErrorf("hint %q: limit must be a positive integer", s)
		}
		hint.Limit = n
	}
	if hint.Source == "" && hint.Field == "" && hint.Limit == 0 {
		return Hint{}, argErrorf("hint %q names neither a source, a field nor a limit", s)
	}
	return hint, nil
}

// Invocation is one fully parsed command line.
type Invocation struct {
	Service         string
	Action          string
	ResourceFilters []string
	ValueFilters    []string
	ColumnFilters   []string
	Params          map[string][]string
	Hints           []Hint
	Region          string
	Profile         string
	JSON            bool
	Keys            bool
	DryRun          bool
	Debug           bool
	MaxResolved     int
}

// Validate checks the invocation for contradictions before planning.
func (inv *Invocation) Validate() error {
	if inv.Service == "" && inv.Action != "" {
		return argErrorf("an action needs a service")
	}
	if inv.Service != "" && inv.Action == "" &&
		(len(inv.ValueFilters) > 0 || len(inv.ColumnFilters) > 0 || len(inv.ResourceFilters) > 0) {
		return argErrorf("filters need an action")
	}
	if inv.Keys && inv.JSON {
		return argErrorf("-k and -j are mutually exclusive")
	}
	if inv.MaxResolved < 1 {
		return argErrorf("max resolved calls must be at least 1")
	}
	return nil
}

// ParamFlags collects repeated -p key=value overrides. Repeating a key
// accumulates its values.
type ParamFlags struct {
	Values map[string][]string
	order  []string
}

func (p *ParamFlags) String() string {
	var parts []string
	for _, k := range p.order {
		for _, v := range p.Values[k] {
			parts = append(parts, k+"="+v)
		}
	}
	return strings.Join(parts, ",")
}

func (p *ParamFlags) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return fmt.Errorf("parameter %q is not key=value", s)
	}
	if p.Values == nil {
		p.Values = map[string][]string{}
	}
	if _, seen := p.Values[key]; !seen {
		p.order = append(p.order, key)
	}
	p.Values[key] = append(p.Values[key], value)
	return nil
}

// Keys returns the override keys in first-seen order.
func (p *ParamFlags) Keys() []string { return p.order }

// HintFlags collects repeated -i resolution hints in order.
type HintFlags struct {
	Hints []Hint
}

func (h *HintFlags) String() string {
	var parts []string
	for _, hint := range h.Hints {
		part := hint.Source + ":" + hint.Field
		if hint.Limit > 0 {
			part += ":" + strconv.Itoa(hint.Limit)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ",")
}

func (h *HintFlags) Set(s string) error {
	hint, err := ParseHint(s)
	if err != nil {
		return err
	}
	h.Hints = append(h.Hints, hint)
	return nil
}
