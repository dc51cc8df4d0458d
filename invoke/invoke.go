// Package invoke executes planned calls against the live API surface,
// following pagination tokens and fanning resolved call sets out over a
// bounded worker pool.
package invoke

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/gurre/awsquery/response"
)

// Caller is the minimal surface invoke needs from the client registry.
type Caller interface {
	Call(ctx context.Context, service, action string, params map[string]any) (any, error)
}

// Call is one fully resolved invocation. SortKey orders a fanned-out call
// set deterministically; it is the harvested value the call was built from.
type Call struct {
	Service string
	Action  string
	Params  map[string]any
	SortKey string
}

// Result pairs a call with its merged response tree or its failure.
type Result struct {
	Call Call
	Tree any
	Err  error
}

// Executor runs calls. The zero limits fall back to defaults; DryRunOutput
// receives the would-call lines when dry-run is on.
type Executor struct {
	Caller       Caller
	MaxPages     int
	Concurrency  int
	DryRunOutput io.Writer
	Debugf       func(format string, args ...any)
}

const (
	defaultMaxPages    = 50
	defaultConcurrency = 8
)

func (e *Executor) maxPages() int {
	if e.MaxPages > 0 {
		return e.MaxPages
	}
	return defaultMaxPages
}

func (e *Executor) concurrency() int {
	if e.Concurrency > 0 {
		return e.Concurrency
	}
	return defaultConcurrency
}

func (e *Executor) debugf(format string, args ...any) {
	if e.Debugf != nil {
		e.Debugf(format, args...)
	}
}

// tokenPairs maps a pagination token key in a response to the request
// parameter that continues the listing.
var tokenPairs = []struct{ respKey, reqKey string }{
	{"NextToken", "NextToken"},
	{"nextToken", "nextToken"},
	{"NextContinuationToken", "ContinuationToken"},
	{"NextMarker", "Marker"},
	{"PaginationToken", "PaginationToken"},
	{"Marker", "Marker"},
}

// Execute runs one call to completion, following pagination until the
// response carries no continuation token or the page ceiling is reached,
// and returns the merged tree. In dry-run mode the call is printed instead
// and the tree is nil.
func (e *Executor) Execute(ctx context.Context, call Call, dryRun bool) (any, error) {
	if dryRun {
		if e.DryRunOutput != nil {
			fmt.Fprintln(e.DryRunOutput, FormatCall(call))
		}
		return nil, nil
	}

	params := make(map[string]any, len(call.Params)+1)
	for k, v := range call.Params {
		params[k] = v
	}

	var pages []any
	for page := 0; page < e.maxPages(); page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tree, err := e.Caller.Call(ctx, call.Service, call.Action, params)
		if err != nil {
			return nil, err
		}
		pages = append(pages, tree)

		token, reqKey, more := continuation(tree)
		if !more {
			break
		}
		e.debugf("%s %s: fetching page %d", call.Service, call.Action, page+2)
		params[reqKey] = token
	}
	return response.MergePages(pages), nil
}

// continuation inspects a response tree for a pagination token. A literal
// IsTruncated=false ends the listing even when a marker key is present.
func continuation(tree any) (token, reqKey string, more bool) {
	obj, ok := tree.(*response.Object)
	if !ok {
		return "", "", false
	}
	if v, ok := obj.Get("IsTruncated"); ok {
		if b, ok := v.(bool); ok && !b {
			return "", "", false
		}
	}
	for _, pair := range tokenPairs {
		if v, ok := obj.Get(pair.respKey); ok {
			if s := response.ScalarString(v); s != "" {
				return s, pair.reqKey, true
			}
		}
	}
	return "", "", false
}

// ExecuteAll runs a call set and returns one result per call, in call
// order. Failures are isolated per call. Dry runs stay sequential so the
// printed plan keeps the call order.
func (e *Executor) ExecuteAll(ctx context.Context, calls []Call, dryRun bool) []Result {
	results := make([]Result, len(calls))
	if dryRun || len(calls) == 1 {
		for i, call := range calls {
			tree, err := e.Execute(ctx, call, dryRun)
			results[i] = Result{Call: call, Tree: tree, Err: err}
		}
		return results
	}

	sem := make(chan struct{}, e.concurrency())
	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		go func(i int, call Call) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			tree, err := e.Execute(ctx, call, false)
			results[i] = Result{Call: call, Tree: tree, Err: err}
		}(i, call)
	}
	wg.Wait()
	return results
}

// FormatCall renders one call as a single plan line with parameters in
// sorted key order.
func FormatCall(call Call) string {
	keys := make([]string, 0, len(call.Params))
	for k := range call.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, formatValue(call.Params[k])))
	}
	return fmt.Sprintf("%s %s {%s}", call.Service, call.Action, strings.Join(parts, ", "))
}

func formatValue(v any) string {
	if list, ok := v.([]string); ok {
		return "[" + strings.Join(list, ", ") + "]"
	}
	return response.ScalarString(v)
}
