package integration

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gurre/awsquery/catalog"
	"github.com/gurre/awsquery/config"
	"github.com/gurre/awsquery/filters"
	"github.com/gurre/awsquery/integration/mock"
	"github.com/gurre/awsquery/invoke"
	"github.com/gurre/awsquery/policy"
	"github.com/gurre/awsquery/render"
	"github.com/gurre/awsquery/resolver"
	"github.com/gurre/awsquery/response"
)

type options struct {
	json   bool
	keys   bool
	dryRun bool
	params map[string][]string
	hints  []config.Hint
}

// execute drives the full pipeline over the stub: token split, policy gate,
// resolution, invocation, flattening, filtering and rendering, the same way
// the command wires it.
func execute(t *testing.T, stub *mock.Stub, gate *policy.Gate, tokens []string, opt options) (string, error) {
	t.Helper()
	var out bytes.Buffer
	split := filters.Parse(tokens)
	cat := catalog.New(stub)

	shape, err := cat.Describe(split.Service, split.Action)
	if err != nil {
		return "", err
	}
	if err := gate.Check(split.Service, shape.Name); err != nil {
		return "", err
	}

	exec := &invoke.Executor{Caller: stub, DryRunOutput: &out}
	res := &resolver.Resolver{Catalog: cat, Gate: gate, Exec: exec}
	calls, err := res.Resolve(context.Background(), resolver.Request{
		Service:         split.Service,
		Action:          split.Action,
		Params:          opt.params,
		Hints:           opt.hints,
		ResourceFilters: split.ResourceFilters,
	})
	if err != nil {
		return "", err
	}

	results := exec.ExecuteAll(context.Background(), calls, opt.dryRun)
	if opt.dryRun {
		return out.String(), nil
	}

	var records []*response.Record
	for _, result := range results {
		if result.Err != nil {
			return "", result.Err
		}
		records = append(records, response.Flatten(result.Tree)...)
	}
	records = filters.Apply(records, split.ValueFilters)

	if opt.keys {
		err = render.Keys(&out, records)
		return out.String(), err
	}
	columns := filters.SelectColumns(records, split.ColumnFilters)
	if opt.json {
		err = render.JSON(&out, records, columns)
		return out.String(), err
	}
	if len(split.ColumnFilters) == 0 {
		columns = filters.DefaultColumns(records)
	}
	err = render.Table(&out, records, columns)
	return out.String(), err
}

func readonlyGate(t *testing.T) *policy.Gate {
	t.Helper()
	gate, err := policy.Parse([]byte(`["ec2:Describe*", "eks:*", "iam:List*", "s3:List*", "ssm:*"]`))
	if err != nil {
		t.Fatal(err)
	}
	return gate
}

const ec2Instances = `{"Reservations": [
	{"ReservationId": "r-1", "Instances": [
		{"InstanceId": "i-1", "State": {"Name": "running"}},
		{"InstanceId": "i-2", "State": {"Name": "stopped"}}]},
	{"ReservationId": "r-2", "Instances": [
		{"InstanceId": "i-3", "State": {"Name": "running"}}]}
]}`

func rows(out string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestTableColumnsInUserOrder(t *testing.T) {
	stub := mock.New()
	stub.Respond("ec2", "DescribeInstances", ec2Instances)

	out, err := execute(t, stub, readonlyGate(t),
		[]string{"ec2", "describe-instances", "--", "InstanceId", "State.Name"}, options{})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	lines := rows(out)
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header plus three instances:\n%s", len(lines), out)
	}
	header := strings.Fields(lines[0])
	if len(header) != 2 || !strings.HasSuffix(header[0], "InstanceId") || !strings.HasSuffix(header[1], "State.Name") {
		t.Errorf("header = %v, want InstanceId then State.Name", header)
	}
	want := [][]string{{"i-1", "running"}, {"i-2", "stopped"}, {"i-3", "running"}}
	for i, cells := range want {
		got := strings.Fields(lines[i+1])
		if len(got) != 2 || got[0] != cells[0] || got[1] != cells[1] {
			t.Errorf("row %d = %v, want %v", i, got, cells)
		}
	}
}

func TestValueFilterNarrowsRows(t *testing.T) {
	stub := mock.New()
	stub.Respond("ec2", "DescribeInstances", ec2Instances)

	out, err := execute(t, stub, readonlyGate(t),
		[]string{"ec2", "describe-instances", "running", "--", "InstanceId"}, options{})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	lines := rows(out)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus the two running instances:\n%s", len(lines), out)
	}
	if strings.Fields(lines[1])[0] != "i-1" || strings.Fields(lines[2])[0] != "i-3" {
		t.Errorf("rows = %v, want i-1 then i-3", lines[1:])
	}
}

func TestHintedResolutionFansOut(t *testing.T) {
	stub := newEKSStub()

	out, err := execute(t, stub, readonlyGate(t),
		[]string{"eks", "describe-nodegroup"}, options{
			hints: []config.Hint{{Source: "list-clus", Field: "cluster"}},
		})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	lines := rows(out)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus one row per cluster:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "prod") || !strings.Contains(lines[2], "stage") {
		t.Errorf("rows = %v, want prod before stage", lines[1:])
	}
	if got := len(stub.Calls("eks", "DescribeNodegroup")); got != 2 {
		t.Errorf("DescribeNodegroup called %d times, want 2", got)
	}
}

func newEKSStub() *mock.Stub {
	stub := mock.New()
	stub.Respond("eks", "ListClusters", `{"Clusters": ["stage", "prod"]}`)
	stub.Register("eks", "ListNodegroups", func(params map[string]any) (string, error) {
		return `{"Nodegroups": ["workers"]}`, nil
	})
	stub.Register("eks", "DescribeNodegroup", func(params map[string]any) (string, error) {
		cluster, _ := params["ClusterName"].(string)
		nodegroup, _ := params["NodegroupName"].(string)
		return `{"Nodegroup": {"ClusterName": "` + cluster + `", "NodegroupName": "` + nodegroup + `"}}`, nil
	})
	return stub
}

func TestJSONModeEmitsFullMatchingRecords(t *testing.T) {
	stub := mock.New()
	stub.Respond("s3", "ListBuckets", `{"Buckets": [
		{"Name": "prod-backup", "CreationDate": "2024-01-01"},
		{"Name": "prod-logs", "CreationDate": "2024-02-01"}
	]}`)

	out, err := execute(t, stub, readonlyGate(t),
		[]string{"s3", "list-buckets", "backup"}, options{json: true})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if !strings.Contains(out, "prod-backup") || strings.Contains(out, "prod-logs") {
		t.Errorf("JSON output should carry only the matching bucket:\n%s", out)
	}
	if !strings.Contains(out, "2024-01-01") {
		t.Errorf("without column filters the whole record is emitted:\n%s", out)
	}
}

func TestDryRunResolvesSourcesButSkipsTarget(t *testing.T) {
	stub := mock.New()
	stub.Respond("iam", "ListUsers", `{"Users": [{"UserName": "alice"}, {"UserName": "bob"}]}`)
	stub.Declare("iam", "ListAccessKeys")

	out, err := execute(t, stub, readonlyGate(t),
		[]string{"iam", "list-access-keys"}, options{
			dryRun: true,
			hints:  []config.Hint{{Field: "username"}},
		})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	lines := rows(out)
	want := []string{
		"iam ListAccessKeys {UserName: alice}",
		"iam ListAccessKeys {UserName: bob}",
	}
	if len(lines) != 2 || lines[0] != want[0] || lines[1] != want[1] {
		t.Errorf("dry-run plan = %v, want %v", lines, want)
	}
	if got := len(stub.Calls("iam", "ListAccessKeys")); got != 0 {
		t.Errorf("ListAccessKeys was called %d times during dry-run", got)
	}
	if got := len(stub.Calls("iam", "ListUsers")); got != 1 {
		t.Errorf("ListUsers called %d times, want 1 resolution call", got)
	}
}

func TestHintLimitCapsHarvest(t *testing.T) {
	var names []string
	for _, n := range []string{"p01", "p02", "p03", "p04", "p05", "p06", "p07", "p08", "p09", "p10",
		"p11", "p12", "p13", "p14", "p15", "p16", "p17", "p18", "p19", "p20"} {
		names = append(names, `{"Name": "`+n+`"}`)
	}
	stub := mock.New()
	stub.Respond("ssm", "DescribeParameters", `{"Parameters": [`+strings.Join(names, ",")+`]}`)
	stub.Register("ssm", "GetParameters", func(params map[string]any) (string, error) {
		got, _ := params["Names"].([]string)
		return `{"Parameters": [{"Name": "` + got[0] + `", "Value": "v"}]}`, nil
	})

	_, err := execute(t, stub, readonlyGate(t),
		[]string{"ssm", "get-parameters"}, options{hints: []config.Hint{{Limit: 5}}})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	calls := stub.Calls("ssm", "GetParameters")
	if len(calls) != 5 {
		t.Fatalf("GetParameters called %d times, want the hinted limit of 5", len(calls))
	}
	for i, c := range calls {
		want := names[i]
		got, _ := c.Params["Names"].([]string)
		if len(got) != 1 || !strings.Contains(want, got[0]) {
			t.Errorf("call %d Names = %v", i, got)
		}
	}
}

func TestDeterministicOutputAcrossRuns(t *testing.T) {
	run := func() string {
		out, err := execute(t, newEKSStub(), readonlyGate(t),
			[]string{"eks", "describe-nodegroup"}, options{
				hints: []config.Hint{{Source: "list-clus", Field: "cluster"}},
			})
		if err != nil {
			t.Fatalf("execute failed: %v", err)
		}
		return out
	}
	first := run()
	for i := 0; i < 5; i++ {
		if again := run(); again != first {
			t.Fatalf("run %d differs:\n%q\nvs\n%q", i+2, again, first)
		}
	}
}

func TestKeysModeCoversProjectedColumns(t *testing.T) {
	stub := mock.New()
	stub.Respond("ec2", "DescribeInstances", ec2Instances)
	gate := readonlyGate(t)

	keysOut, err := execute(t, stub, gate, []string{"ec2", "describe-instances"}, options{keys: true})
	if err != nil {
		t.Fatalf("keys mode failed: %v", err)
	}
	tableOut, err := execute(t, stub, gate, []string{"ec2", "describe-instances"}, options{})
	if err != nil {
		t.Fatalf("table mode failed: %v", err)
	}

	var keys []string
	for _, line := range rows(keysOut) {
		keys = append(keys, strings.TrimSpace(line))
	}
	for _, header := range strings.Fields(rows(tableOut)[0]) {
		found := false
		for _, k := range keys {
			if k == header {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("table column %q missing from keys listing %v", header, keys)
		}
	}
}

func TestMutationsNeverReachTheStub(t *testing.T) {
	stub := mock.New()
	stub.Declare("ec2", "TerminateInstances")
	stub.Respond("ec2", "DescribeInstances", ec2Instances)
	gate, err := policy.Parse([]byte(`["ec2:*"]`))
	if err != nil {
		t.Fatal(err)
	}

	_, err = execute(t, stub, gate, []string{"ec2", "terminate-instances"}, options{})
	var denied *policy.DeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("execute = %v, want DeniedError even under a wildcard allow rule", err)
	}
	if got := len(stub.Calls("ec2", "TerminateInstances")); got != 0 {
		t.Errorf("TerminateInstances was invoked %d times", got)
	}
}

func TestUnresolvableParameterSurfaces(t *testing.T) {
	stub := mock.New()
	stub.Declare("eks", "DescribeNodegroup")

	_, err := execute(t, stub, readonlyGate(t), []string{"eks", "describe-nodegroup"}, options{})
	var unresolved *resolver.UnresolvedError
	if !errors.As(err, &unresolved) {
		t.Fatalf("execute = %v, want UnresolvedError", err)
	}
	if unresolved.Field != "ClusterName" {
		t.Errorf("Field = %q, want the first unsatisfied parameter", unresolved.Field)
	}
}

func TestThreeSegmentGrammar(t *testing.T) {
	stub := newEKSStub()

	out, err := execute(t, stub, readonlyGate(t),
		[]string{"eks", "describe-nodegroup", "prod", "--", "--", "ClusterName"}, options{
			params: map[string][]string{"NodegroupName": {"workers"}},
			hints:  []config.Hint{{Source: "list-clus", Field: "cluster"}},
		})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	lines := rows(out)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header plus the prod row only:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "prod") {
		t.Errorf("row = %q, want the prod cluster", lines[1])
	}
	if got := len(stub.Calls("eks", "DescribeNodegroup")); got != 1 {
		t.Errorf("DescribeNodegroup called %d times, want resource filter to narrow the fan-out", got)
	}
}
