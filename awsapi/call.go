package awsapi

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/aws/smithy-go"
)

// SDKError wraps a failed SDK call with the service, action and the API
// error code when the failure carried one.
type SDKError struct {
	Service string
	Action  string
	Code    string
	Err     error
}

func (e *SDKError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Service, e.Action, e.Code, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Service, e.Action, e.Err)
}

func (e *SDKError) Unwrap() error { return e.Err }

// Call invokes one operation with params applied to its input struct and
// returns the response as an untyped tree. Param names are matched to input
// fields without regard to case; values are converted to the field type.
func (r *Registry) Call(ctx context.Context, service, action string, params map[string]any) (any, error) {
	method, err := r.method(service, action)
	if err != nil {
		return nil, err
	}
	inputType := method.Type().In(1).Elem()
	input := reflect.New(inputType)
	for name, value := range params {
		if err := setField(input.Elem(), name, value); err != nil {
			return nil, fmt.Errorf("%s %s: %w", service, action, err)
		}
	}

	outs := method.Call([]reflect.Value{reflect.ValueOf(ctx), input})
	if errv := outs[1]; !errv.IsNil() {
		callErr := errv.Interface().(error)
		sdkErr := &SDKError{Service: service, Action: action, Err: callErr}
		var apiErr smithy.APIError
		if errors.As(callErr, &apiErr) {
			sdkErr.Code = apiErr.ErrorCode()
		}
		return nil, sdkErr
	}
	return Treeify(outs[0].Interface()), nil
}

// setField assigns value to the input struct field matching name.
func setField(input reflect.Value, name string, value any) error {
	t := input.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !strings.EqualFold(f.Name, name) {
			continue
		}
		converted, err := convert(value, f.Type)
		if err != nil {
			return fmt.Errorf("parameter %s: %w", f.Name, err)
		}
		input.Field(i).Set(converted)
		return nil
	}
	return fmt.Errorf("no input field matches parameter %s", name)
}

// convert coerces a resolved parameter value, a string or a string slice,
// into the SDK field type. Enum fields are named string types and convert
// directly.
func convert(value any, target reflect.Type) (reflect.Value, error) {
	switch v := value.(type) {
	case string:
		return convertString(v, target)
	case []string:
		if target.Kind() != reflect.Slice {
			if len(v) == 1 {
				return convertString(v[0], target)
			}
			return reflect.Value{}, fmt.Errorf("cannot assign %d values to a scalar field", len(v))
		}
		out := reflect.MakeSlice(target, 0, len(v))
		for _, s := range v {
			elem, err := convertString(s, target.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out = reflect.Append(out, elem)
		}
		return out, nil
	default:
		rv := reflect.ValueOf(value)
		if rv.Type().ConvertibleTo(target) {
			return rv.Convert(target), nil
		}
		return reflect.Value{}, fmt.Errorf("unsupported value type %T", value)
	}
}

func convertString(s string, target reflect.Type) (reflect.Value, error) {
	if target.Kind() == reflect.Pointer {
		elem, err := convertString(s, target.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	}
	switch target.Kind() {
	case reflect.String:
		return reflect.ValueOf(s).Convert(target), nil
	case reflect.Int32, reflect.Int64, reflect.Int:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%q is not an integer", s)
		}
		return reflect.ValueOf(n).Convert(target), nil
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%q is not a boolean", s)
		}
		return reflect.ValueOf(b).Convert(target), nil
	case reflect.Slice:
		elem, err := convertString(s, target.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.MakeSlice(target, 0, 1)
		return reflect.Append(out, elem), nil
	default:
		return reflect.Value{}, fmt.Errorf("cannot convert %q to %s", s, target)
	}
}
