// Package awsapi holds the live AWS surface: one SDK client per supported
// service, discovered and invoked through reflection so new operations on a
// client are available without per-operation glue code.
package awsapi

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Registry maps service names to their SDK clients and exposes the client
// method sets as callable operations.
type Registry struct {
	clients map[string]any
}

// NewRegistry builds the client set from one resolved SDK config.
func NewRegistry(cfg aws.Config) *Registry {
	return &Registry{clients: map[string]any{
		"cloudformation": cloudformation.NewFromConfig(cfg),
		"dynamodb":       dynamodb.NewFromConfig(cfg),
		"ec2":            ec2.NewFromConfig(cfg),
		"eks":            eks.NewFromConfig(cfg),
		"iam":            iam.NewFromConfig(cfg),
		"s3":             s3.NewFromConfig(cfg),
		"ssm":            ssm.NewFromConfig(cfg),
	}}
}

// Services lists the supported service names, sorted.
func (r *Registry) Services() []string {
	out := make([]string, 0, len(r.clients))
	for s := range r.clients {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Operations enumerates the API operations a service client exposes, by
// inspecting its method set. A method counts as an operation when it has the
// SDK call shape: (ctx, *Input, ...optFns) returning (*Output, error).
func (r *Registry) Operations(service string) ([]string, error) {
	client, ok := r.clients[strings.ToLower(service)]
	if !ok {
		return nil, fmt.Errorf("no client for service %s", service)
	}
	t := reflect.TypeOf(client)
	var out []string
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if isOperation(m) {
			out = append(out, m.Name)
		}
	}
	sort.Strings(out)
	return out, nil
}

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// isOperation matches the generated SDK method shape. The receiver is
// included in the method type, so the input struct sits at position 2.
func isOperation(m reflect.Method) bool {
	if m.Name == "Options" {
		return false
	}
	ft := m.Type
	if !ft.IsVariadic() || ft.NumIn() != 4 || ft.NumOut() != 2 {
		return false
	}
	if !ft.In(1).Implements(ctxType) {
		return false
	}
	if ft.In(2).Kind() != reflect.Pointer || ft.In(2).Elem().Kind() != reflect.Struct {
		return false
	}
	return ft.Out(0).Kind() == reflect.Pointer && ft.Out(1) == errType
}

// method resolves an operation method on a service client, matching the
// name without regard to case.
func (r *Registry) method(service, action string) (reflect.Value, error) {
	client, ok := r.clients[strings.ToLower(service)]
	if !ok {
		return reflect.Value{}, fmt.Errorf("no client for service %s", service)
	}
	cv := reflect.ValueOf(client)
	t := cv.Type()
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if isOperation(m) && strings.EqualFold(m.Name, action) {
			return cv.Method(i), nil
		}
	}
	return reflect.Value{}, fmt.Errorf("service %s has no operation %s", service, action)
}
