// Package resolver plans the calls an invocation needs. Missing required
// parameters are filled by harvesting identifiers from read-only listing
// operations on the same service, recursively when a source listing has
// required parameters of its own.
package resolver

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gurre/awsquery/catalog"
	"github.com/gurre/awsquery/config"
	"github.com/gurre/awsquery/filters"
	"github.com/gurre/awsquery/invoke"
	"github.com/gurre/awsquery/policy"
	"github.com/gurre/awsquery/response"
)

// UnresolvedError reports a required parameter no source listing could
// supply, or one whose fan-out would exceed the call ceiling.
type UnresolvedError struct {
	Service string
	Action  string
	Field   string
	Reason  string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("cannot resolve parameter %s for %s %s: %s", e.Field, e.Service, e.Action, e.Reason)
}

// Request is one invocation to plan.
type Request struct {
	Service         string
	Action          string
	Params          map[string][]string
	Hints           []config.Hint
	ResourceFilters []string
}

// Resolver turns a request into concrete calls, executing source listings
// as needed to harvest parameter values.
type Resolver struct {
	Catalog     *catalog.Catalog
	Gate        *policy.Gate
	Exec        *invoke.Executor
	MaxResolved int
	Stderr      io.Writer
	Debugf      func(format string, args ...any)
}

const defaultMaxResolved = 100

func (r *Resolver) maxResolved() int {
	if r.MaxResolved > 0 {
		return r.MaxResolved
	}
	return defaultMaxResolved
}

func (r *Resolver) debugf(format string, args ...any) {
	if r.Debugf != nil {
		r.Debugf(format, args...)
	}
}

func (r *Resolver) noticef(format string, args ...any) {
	if r.Stderr != nil {
		fmt.Fprintf(r.Stderr, format+"\n", args...)
	}
}

// Resolve plans the request. Source listings run for real during planning;
// only the returned target calls honor any dry-run mode downstream.
func (r *Resolver) Resolve(ctx context.Context, req Request) ([]invoke.Call, error) {
	return r.plan(ctx, req, map[string]bool{})
}

func (r *Resolver) plan(ctx context.Context, req Request, visited map[string]bool) ([]invoke.Call, error) {
	shape, err := r.Catalog.Describe(req.Service, req.Action)
	if err != nil {
		return nil, err
	}
	visited[shape.Name] = true

	params, err := mergeParams(shape, req.Params)
	if err != nil {
		return nil, err
	}

	var missing []catalog.Field
	for _, f := range shape.RequiredInputs() {
		if _, ok := params[f.Name]; !ok {
			missing = append(missing, f)
		}
	}
	if len(req.Hints) > len(missing) {
		r.debugf("ignoring %d extra hint(s) for %s %s", len(req.Hints)-len(missing), req.Service, shape.Name)
	}
	if len(missing) == 0 {
		return []invoke.Call{{Service: req.Service, Action: shape.Name, Params: params}}, nil
	}

	harvested := make([][]string, len(missing))
	for i, field := range missing {
		var hint config.Hint
		if i < len(req.Hints) {
			hint = req.Hints[i]
		}
		values, err := r.resolveField(ctx, req, shape.Name, field, hint, visited)
		if err != nil {
			return nil, err
		}
		harvested[i] = values
	}

	total := 1
	widest := 0
	for i, values := range harvested {
		total *= len(values)
		if len(values) > len(harvested[widest]) {
			widest = i
		}
	}
	if total > r.maxResolved() {
		return nil, &UnresolvedError{
			Service: req.Service, Action: shape.Name, Field: missing[widest].Name,
			Reason: fmt.Sprintf("resolution would fan out to %d calls, ceiling is %d", total, r.maxResolved()),
		}
	}

	calls := buildCalls(req.Service, shape, params, missing, harvested)
	sort.SliceStable(calls, func(i, j int) bool { return calls[i].SortKey < calls[j].SortKey })
	return calls, nil
}

// mergeParams maps user overrides onto the input shape. Keys are matched to
// known fields without regard to case; unknown keys pass through unchanged
// for the dynamic caller to match. A repeated key or a list field keeps the
// whole value list, anything else collapses to its single value. Repeated
// values for a field the shape declares scalar are rejected.
func mergeParams(shape catalog.Shape, user map[string][]string) (map[string]any, error) {
	params := map[string]any{}
	for key, values := range user {
		name := key
		kind := catalog.KindScalar
		known := false
		if f, ok := shape.Input(key); ok {
			name = f.Name
			kind = f.Kind
			known = true
		}
		switch {
		case kind == catalog.KindList || len(values) > 1:
			if known && kind == catalog.KindScalar && len(values) > 1 {
				return nil, &UnresolvedError{
					Service: "", Action: shape.Name, Field: name,
					Reason: fmt.Sprintf("%d values given for a single-valued parameter", len(values)),
				}
			}
			params[name] = values
		default:
			params[name] = values[0]
		}
	}
	return params, nil
}

// resolveField harvests values for one missing parameter by running a
// source listing.
func (r *Resolver) resolveField(ctx context.Context, req Request, action string, field catalog.Field, hint config.Hint, visited map[string]bool) ([]string, error) {
	entity := catalog.ParamEntity(field.Name)
	candidates, err := r.candidates(req.Service, field, entity, hint)
	if err != nil {
		return nil, err
	}

	var lastReason string
	for _, op := range candidates {
		if visited[op] {
			continue
		}
		if r.Gate != nil && r.Gate.Check(req.Service, op) != nil {
			r.debugf("skipping source %s %s: not permitted by policy", req.Service, op)
			lastReason = "candidate sources denied by policy"
			continue
		}

		branch := copyVisited(visited)
		calls, err := r.plan(ctx, Request{Service: req.Service, Action: op, ResourceFilters: req.ResourceFilters}, branch)
		if err != nil {
			r.debugf("source %s %s not plannable: %v", req.Service, op, err)
			lastReason = "no plannable source listing"
			continue
		}

		records := r.runSource(ctx, calls, req.ResourceFilters)
		if records == nil {
			lastReason = "source listings returned no records"
			continue
		}

		extractField := hint.Field
		if extractField == "" {
			extractField = field.Name
		}
		values := response.ExtractForParam(records, extractField, catalog.Entity(op))
		if hint.Limit > 0 && len(values) > hint.Limit {
			values = values[:hint.Limit]
		}
		if len(values) == 0 {
			r.debugf("source %s %s yielded no values for %s", req.Service, op, field.Name)
			lastReason = "source records carry no matching field"
			continue
		}

		r.noticef("resolved %s for %s %s via %s (%d value(s))", field.Name, req.Service, action, op, len(values))
		return values, nil
	}

	if lastReason == "" {
		lastReason = "no source listing candidates"
	}
	return nil, &UnresolvedError{Service: req.Service, Action: action, Field: field.Name, Reason: lastReason}
}

// runSource executes planned source calls, flattens the surviving trees
// and applies the resource filters.
func (r *Resolver) runSource(ctx context.Context, calls []invoke.Call, resourceFilters []string) []*response.Record {
	var records []*response.Record
	anyTree := false
	for _, result := range r.Exec.ExecuteAll(ctx, calls, false) {
		if result.Err != nil {
			r.debugf("source call %s failed: %v", invoke.FormatCall(result.Call), result.Err)
			continue
		}
		anyTree = true
		records = append(records, response.Flatten(result.Tree)...)
	}
	if !anyTree {
		return nil
	}
	filtered := filters.Apply(records, resourceFilters)
	if filtered == nil {
		filtered = []*response.Record{}
	}
	return filtered
}

// candidates orders the service's operations by how likely they are to
// list the entity the field names. A hint narrows the set to operations
// whose name contains the hinted source.
func (r *Resolver) candidates(service string, field catalog.Field, entity string, hint config.Hint) ([]string, error) {
	ops, err := r.Catalog.Operations(service)
	if err != nil {
		return nil, err
	}

	if hint.Source != "" {
		needle := strings.ReplaceAll(strings.ToLower(hint.Source), "-", "")
		var out []string
		for _, op := range ops {
			if strings.Contains(strings.ToLower(op), needle) {
				out = append(out, op)
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			if len(out[i]) != len(out[j]) {
				return len(out[i]) < len(out[j])
			}
			return out[i] < out[j]
		})
		return out, nil
	}

	type ranked struct {
		op    string
		score int
		deps  int
	}
	var out []ranked
	for _, op := range ops {
		if !strings.HasPrefix(op, "List") && !strings.HasPrefix(op, "Describe") {
			continue
		}
		shape, err := r.Catalog.Describe(service, op)
		if err != nil {
			continue
		}
		score := 2
		opEntity := catalog.Entity(op)
		if entity != "" && opEntity == entity {
			score = 0
		} else if entity != "" && opEntity != "" && strings.Contains(opEntity, entity) {
			score = 1
		}
		out = append(out, ranked{op: op, score: score, deps: len(shape.RequiredInputs())})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.score != b.score {
			return a.score < b.score
		}
		if a.deps != b.deps {
			return a.deps < b.deps
		}
		if len(a.op) != len(b.op) {
			return len(a.op) < len(b.op)
		}
		return a.op < b.op
	})
	names := make([]string, len(out))
	for i, c := range out {
		names[i] = c.op
	}
	return names, nil
}

// buildCalls expands harvested values into the cartesian set of concrete
// calls. A list-shaped parameter wraps each harvested value as a
// one-element list so every call targets exactly one resource.
func buildCalls(service string, shape catalog.Shape, base map[string]any, missing []catalog.Field, harvested [][]string) []invoke.Call {
	combos := [][]string{{}}
	for _, values := range harvested {
		var next [][]string
		for _, combo := range combos {
			for _, v := range values {
				grown := make([]string, len(combo)+1)
				copy(grown, combo)
				grown[len(combo)] = v
				next = append(next, grown)
			}
		}
		combos = next
	}

	var calls []invoke.Call
	for _, combo := range combos {
		params := make(map[string]any, len(base)+len(missing))
		for k, v := range base {
			params[k] = v
		}
		for i, field := range missing {
			if field.Kind == catalog.KindList {
				params[field.Name] = []string{combo[i]}
			} else {
				params[field.Name] = combo[i]
			}
		}
		calls = append(calls, invoke.Call{
			Service: service,
			Action:  shape.Name,
			Params:  params,
			SortKey: strings.Join(combo, "/"),
		})
	}
	return calls
}

func copyVisited(visited map[string]bool) map[string]bool {
	out := make(map[string]bool, len(visited))
	for k, v := range visited {
		out[k] = v
	}
	return out
}
