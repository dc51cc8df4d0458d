// Package main implements the awsquery command line: a read-only query
// front end over AWS APIs with automatic parameter resolution.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/gurre/awsquery/awsapi"
	"github.com/gurre/awsquery/catalog"
	"github.com/gurre/awsquery/config"
	"github.com/gurre/awsquery/filters"
	"github.com/gurre/awsquery/invoke"
	"github.com/gurre/awsquery/policy"
	"github.com/gurre/awsquery/render"
	"github.com/gurre/awsquery/resolver"
	"github.com/gurre/awsquery/response"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Output is buffered so an interrupt never leaves a half-written table
	// on stdout.
	var out bytes.Buffer
	err := run(ctx, os.Args[1:], &out, os.Stderr)
	if ctx.Err() == nil {
		os.Stdout.Write(out.Bytes())
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(exitCode(ctx, err))
	}
}

// exitCode maps failure classes to the documented exit statuses.
func exitCode(ctx context.Context, err error) int {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return 130
	}
	var (
		argErr      *config.ArgumentError
		deniedErr   *policy.DeniedError
		unresolved  *resolver.UnresolvedError
		sdkErr      *awsapi.SDKError
		notFoundErr *catalog.NotFoundError
	)
	switch {
	case errors.As(err, &argErr):
		return 1
	case errors.As(err, &deniedErr):
		return 2
	case errors.As(err, &unresolved):
		return 3
	case errors.As(err, &sdkErr), errors.As(err, &notFoundErr):
		return 4
	default:
		return 1
	}
}

func run(ctx context.Context, args []string, out io.Writer, stderr io.Writer) error {
	fs := flag.NewFlagSet("awsquery", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var params config.ParamFlags
	var hints config.HintFlags
	fs.Var(&params, "p", "parameter override as key=value, repeatable")
	fs.Var(&hints, "i", "resolution hint as source:field:limit, repeatable")
	region := fs.String("region", "", "AWS region override")
	profile := fs.String("profile", "", "shared config profile")
	maxResolved := fs.Int("max-resolved", 100, "ceiling on resolved call fan-out")
	dryRun := fs.Bool("dry-run", false, "print the planned calls without running them")
	jsonShort := fs.Bool("j", false, "JSON output")
	jsonLong := fs.Bool("json", false, "JSON output")
	keysShort := fs.Bool("k", false, "list response keys instead of records")
	keysLong := fs.Bool("keys", false, "list response keys instead of records")
	debugShort := fs.Bool("d", false, "debug logging on stderr")
	debugLong := fs.Bool("debug", false, "debug logging on stderr")

	if err := fs.Parse(reorderArgs(args)); err != nil {
		return &config.ArgumentError{Msg: err.Error()}
	}

	split := filters.Parse(fs.Args())
	inv := &config.Invocation{
		Service:         split.Service,
		Action:          split.Action,
		ResourceFilters: split.ResourceFilters,
		ValueFilters:    split.ValueFilters,
		ColumnFilters:   split.ColumnFilters,
		Params:          params.Values,
		Hints:           hints.Hints,
		Region:          *region,
		Profile:         *profile,
		JSON:            *jsonShort || *jsonLong,
		Keys:            *keysShort || *keysLong,
		DryRun:          *dryRun,
		Debug:           *debugShort || *debugLong,
		MaxResolved:     *maxResolved,
	}
	if err := inv.Validate(); err != nil {
		return err
	}

	debugf := func(string, ...any) {}
	if inv.Debug {
		debugf = func(format string, args ...any) {
			fmt.Fprintf(stderr, "[DEBUG] "+format+"\n", args...)
		}
	}

	policyPath, err := policy.Locate()
	if err != nil {
		return err
	}
	gate, err := policy.Load(policyPath)
	if err != nil {
		return err
	}
	debugf("loaded policy from %s", policyPath)

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if inv.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(inv.Region))
	}
	if inv.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(inv.Profile))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return fmt.Errorf("load AWS config: %w", err)
	}

	registry := awsapi.NewRegistry(awsCfg)
	cat := catalog.New(registry)

	if inv.Service == "" {
		var services []string
		for _, s := range cat.Services() {
			if gate.AllowsService(s) {
				services = append(services, s)
			}
		}
		return render.List(out, services)
	}

	if inv.Action == "" {
		ops, err := cat.Operations(inv.Service)
		if err != nil {
			return &catalog.NotFoundError{Service: inv.Service}
		}
		var allowed []string
		for _, op := range ops {
			if gate.Allows(inv.Service, op) {
				allowed = append(allowed, catalog.Kebab(op))
			}
		}
		return render.List(out, allowed)
	}

	shape, err := cat.Describe(inv.Service, inv.Action)
	if err != nil {
		return err
	}
	if err := gate.Check(inv.Service, shape.Name); err != nil {
		return err
	}

	exec := &invoke.Executor{
		Caller:       registry,
		DryRunOutput: out,
		Debugf:       debugf,
	}
	res := &resolver.Resolver{
		Catalog:     cat,
		Gate:        gate,
		Exec:        exec,
		MaxResolved: inv.MaxResolved,
		Stderr:      stderr,
		Debugf:      debugf,
	}

	calls, err := res.Resolve(ctx, resolver.Request{
		Service:         inv.Service,
		Action:          inv.Action,
		Params:          inv.Params,
		Hints:           inv.Hints,
		ResourceFilters: inv.ResourceFilters,
	})
	if err != nil {
		return err
	}
	debugf("planned %d call(s)", len(calls))

	results := exec.ExecuteAll(ctx, calls, inv.DryRun)
	if inv.DryRun {
		return nil
	}

	var trees []any
	var firstErr error
	for _, result := range results {
		if result.Err != nil {
			if firstErr == nil {
				firstErr = result.Err
			}
			fmt.Fprintf(stderr, "warning: %s: %v\n", invoke.FormatCall(result.Call), result.Err)
			continue
		}
		trees = append(trees, result.Tree)
	}
	if len(trees) == 0 {
		if firstErr != nil {
			return firstErr
		}
		return nil
	}

	var records []*response.Record
	for _, tree := range trees {
		records = append(records, response.Flatten(tree)...)
	}
	records = filters.Apply(records, inv.ValueFilters)

	if inv.Keys {
		return render.Keys(out, records)
	}
	columns := filters.SelectColumns(records, inv.ColumnFilters)
	if inv.JSON {
		// JSON projects only when the user named columns.
		return render.JSON(out, records, columns)
	}
	if len(inv.ColumnFilters) == 0 {
		columns = filters.DefaultColumns(records)
	}
	return render.Table(out, records, columns)
}

// valueFlags are the flags that consume the following token as their value.
var valueFlags = map[string]bool{
	"p": true, "i": true, "region": true, "profile": true, "max-resolved": true,
}

// reorderArgs moves flag tokens ahead of positional tokens so flags may be
// written anywhere on the command line. The "--" separators belong to the
// filter grammar and stay positional.
func reorderArgs(args []string) []string {
	var flagTokens, positional []string
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if tok == "--" || !strings.HasPrefix(tok, "-") {
			positional = append(positional, tok)
			continue
		}
		flagTokens = append(flagTokens, tok)
		name := strings.TrimLeft(tok, "-")
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			continue
		}
		if valueFlags[name] && i+1 < len(args) {
			i++
			flagTokens = append(flagTokens, args[i])
		}
	}
	return append(flagTokens, positional...)
}
