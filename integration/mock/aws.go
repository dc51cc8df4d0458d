// Package mock provides a scripted AWS surface for integration tests. One
// Stub stands in for both the catalog registry and the invoke caller, so the
// whole pipeline runs without touching the network.
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gurre/awsquery/response"
)

// Handler produces the JSON response document for one scripted call.
type Handler func(params map[string]any) (string, error)

// Call records one invocation the stub received.
type Call struct {
	Service string
	Action  string
	Params  map[string]any
}

// Stub is the scripted surface. Operations must be registered before use;
// calling an unregistered operation fails the request.
type Stub struct {
	mu       sync.Mutex
	ops      map[string][]string
	handlers map[string]Handler
	calls    []Call
}

// New returns an empty stub.
func New() *Stub {
	return &Stub{
		ops:      make(map[string][]string),
		handlers: make(map[string]Handler),
	}
}

func key(service, action string) string {
	return service + "/" + action
}

// Register scripts one operation with a dynamic handler.
func (s *Stub) Register(service, action string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.handlers[key(service, action)]; !ok {
		s.ops[service] = append(s.ops[service], action)
	}
	s.handlers[key(service, action)] = h
}

// Respond scripts one operation with a fixed JSON document.
func (s *Stub) Respond(service, action, doc string) {
	s.Register(service, action, func(map[string]any) (string, error) {
		return doc, nil
	})
}

// Declare lists an operation without a response so the catalog sees it; any
// call to it fails.
func (s *Stub) Declare(service, action string) {
	s.Register(service, action, func(map[string]any) (string, error) {
		return "", fmt.Errorf("operation %s %s has no scripted response", service, action)
	})
}

// Services implements the catalog registry.
func (s *Stub) Services() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.ops))
	for svc := range s.ops {
		out = append(out, svc)
	}
	sort.Strings(out)
	return out
}

// Operations implements the catalog registry.
func (s *Stub) Operations(service string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ops, ok := s.ops[service]
	if !ok {
		return nil, fmt.Errorf("no client for service %s", service)
	}
	return append([]string(nil), ops...), nil
}

// Call implements the invoke caller: it records the call, runs the scripted
// handler and decodes its document into the tree form.
func (s *Stub) Call(_ context.Context, service, action string, params map[string]any) (any, error) {
	s.mu.Lock()
	h, ok := s.handlers[key(service, action)]
	s.calls = append(s.calls, Call{Service: service, Action: action, Params: params})
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unscripted call %s %s", service, action)
	}
	doc, err := h(params)
	if err != nil {
		return nil, err
	}
	return response.DecodeTree([]byte(doc))
}

// Calls returns the recorded invocations of one operation.
func (s *Stub) Calls(service, action string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Call
	for _, c := range s.calls {
		if c.Service == service && c.Action == action {
			out = append(out, c)
		}
	}
	return out
}
