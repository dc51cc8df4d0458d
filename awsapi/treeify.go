package awsapi

import (
	"encoding/base64"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	json "github.com/goccy/go-json"

	"github.com/gurre/awsquery/response"
)

// Treeify converts a typed SDK output struct into the untyped tree form the
// rest of the pipeline works on. Struct fields keep their declaration order,
// map keys are sorted, zero-valued and unexported fields are dropped.
func Treeify(v any) any {
	if v == nil {
		return nil
	}
	return treeify(reflect.ValueOf(v))
}

var (
	timeType      = reflect.TypeOf(time.Time{})
	attrValueType = reflect.TypeOf((*ddbtypes.AttributeValue)(nil)).Elem()
)

func treeify(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		if v.Type().Implements(attrValueType) {
			return treeifyAttribute(v)
		}
		return treeify(v.Elem())
	case reflect.Struct:
		if v.Type() == timeType {
			return v.Interface().(time.Time).UTC().Format(time.RFC3339)
		}
		return treeifyStruct(v)
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			return base64.StdEncoding.EncodeToString(v.Bytes())
		}
		out := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			out = append(out, treeify(v.Index(i)))
		}
		return out
	case reflect.Map:
		return treeifyMap(v)
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return json.Number(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return json.Number(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		return json.Number(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	default:
		return nil
	}
}

func treeifyStruct(v reflect.Value) any {
	obj := response.NewObject()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Name == "ResultMetadata" {
			continue
		}
		fv := v.Field(i)
		if fv.IsZero() {
			continue
		}
		obj.Set(f.Name, treeify(fv))
	}
	return obj
}

func treeifyMap(v reflect.Value) any {
	keys := make([]string, 0, v.Len())
	byKey := make(map[string]reflect.Value, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		keys = append(keys, k)
		byKey[k] = iter.Value()
	}
	sort.Strings(keys)
	obj := response.NewObject()
	for _, k := range keys {
		obj.Set(k, treeify(byKey[k]))
	}
	return obj
}

// treeifyAttribute decodes one DynamoDB attribute value into plain data and
// normalizes it into the tree shape.
func treeifyAttribute(v reflect.Value) any {
	var decoded any
	if err := attributevalue.Unmarshal(v.Interface().(ddbtypes.AttributeValue), &decoded); err != nil {
		return nil
	}
	return normalize(decoded)
}

// normalize converts decoded attribute data: maps get sorted keys and
// numbers become json.Number so they render like the rest of the tree.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := response.NewObject()
		for _, k := range keys {
			obj.Set(k, normalize(t[k]))
		}
		return obj
	case []any:
		out := make([]any, 0, len(t))
		for _, e := range t {
			out = append(out, normalize(e))
		}
		return out
	case float64:
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64))
	case []byte:
		return base64.StdEncoding.EncodeToString(t)
	default:
		return v
	}
}
