// Package policy enforces the read-only action allowlist. Rules are
// "service:Action" patterns with * as a greedy wildcard; a built-in denylist
// of mutation verbs dominates the allowlist so no rule expansion can reach a
// write operation.
package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
)

// DeniedError reports a policy denial for one service/action pair.
type DeniedError struct {
	Service string
	Action  string
	Reason  string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("action %s:%s not permitted by policy: %s", e.Service, e.Action, e.Reason)
}

// mutationPrefixes are the write verbs that are never allowed, regardless of
// what the allowlist says.
var mutationPrefixes = []string{
	"Create", "Put", "Delete", "Update", "Modify", "Reboot", "Start", "Stop",
	"Terminate", "Send", "Attach", "Detach", "Run", "Cancel", "Restore", "Reset",
}

type rule struct {
	service string
	action  string
}

// Gate is the immutable, loaded ruleset. It is safe for concurrent readers.
type Gate struct {
	rules []rule
}

// Parse decodes a policy document: a JSON array of "service:Action" rule
// strings.
func Parse(data []byte) (*Gate, error) {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}
	gate := &Gate{}
	for _, entry := range raw {
		service, action, ok := strings.Cut(entry, ":")
		if !ok || service == "" || action == "" {
			return nil, fmt.Errorf("parse policy: malformed rule %q", entry)
		}
		gate.rules = append(gate.rules, rule{service: strings.ToLower(service), action: action})
	}
	return gate, nil
}

// Load reads and parses the policy file at path.
func Load(path string) (*Gate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}
	gate, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load policy %s: %w", path, err)
	}
	return gate, nil
}

// Locate finds the policy file: $AWSQUERY_POLICY, then policy.json in the
// working directory, then policy.json next to the executable. A missing
// policy is a fatal startup error.
func Locate() (string, error) {
	if p := os.Getenv("AWSQUERY_POLICY"); p != "" {
		return p, nil
	}
	if _, err := os.Stat("policy.json"); err == nil {
		return "policy.json", nil
	}
	if exe, err := os.Executable(); err == nil {
		p := filepath.Join(filepath.Dir(exe), "policy.json")
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("policy.json not found: set AWSQUERY_POLICY or place policy.json in the working directory")
}

// Allows reports whether the canonical action on service passes the gate.
func (g *Gate) Allows(service, action string) bool {
	return g.Check(service, action) == nil
}

// Check validates service and canonical action against the ruleset. The
// mutation denylist is checked first and wins over any allow rule.
func (g *Gate) Check(service, action string) error {
	for _, prefix := range mutationPrefixes {
		if strings.HasPrefix(action, prefix) {
			return &DeniedError{Service: service, Action: action, Reason: "mutating actions are not allowed"}
		}
	}
	service = strings.ToLower(service)
	for _, r := range g.rules {
		if wildcardMatch(r.service, service) && wildcardMatch(r.action, action) {
			return nil
		}
	}
	return &DeniedError{Service: service, Action: action, Reason: "no allowlist rule matches"}
}

// AllowsService reports whether any rule could allow some action on the
// service. Used for the bare service listing.
func (g *Gate) AllowsService(service string) bool {
	service = strings.ToLower(service)
	for _, r := range g.rules {
		if wildcardMatch(r.service, service) {
			return true
		}
	}
	return false
}

// wildcardMatch matches s against pattern where * matches any run of
// characters.
func wildcardMatch(pattern, s string) bool {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '*' {
			rest := pattern[i+1:]
			for j := i; j <= len(s); j++ {
				if wildcardMatch(rest, s[j:]) {
					return true
				}
			}
			return false
		}
		if i >= len(s) || pattern[i] != s[i] {
			return false
		}
	}
	return len(pattern) == len(s)
}
