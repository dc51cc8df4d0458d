package response

import (
	"reflect"
	"testing"
)

func TestExtractTiers(t *testing.T) {
	records := Flatten(mustDecode(t, `{
		"Stacks": [
			{"StackName": "web", "StackId": "arn:web", "Tags": [{"Key": "env", "Value": "prod"}]},
			{"StackName": "db", "StackId": "arn:db", "Tags": [{"Key": "env", "Value": "prod"}]}
		]
	}`))

	tests := []struct {
		name  string
		field string
		want  []string
	}{
		{"exact dotted path", "Stacks.0.StackName", []string{"web"}},
		{"exact last segment", "StackName", []string{"web", "db"}},
		{"substring last segment", "stackid", []string{"arn:web", "arn:db"}},
		{"no match", "Bucket", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(records, tt.field); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.field, got, tt.want)
			}
		})
	}
}

func TestExtractDeduplicates(t *testing.T) {
	records := Flatten(mustDecode(t, `{
		"Items": [{"Region": "eu-west-1"}, {"Region": "eu-west-1"}, {"Region": "us-east-1"}]
	}`))
	got := Extract(records, "Region")
	want := []string{"eu-west-1", "us-east-1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}

func TestExtractDropsNulls(t *testing.T) {
	records := Flatten(mustDecode(t, `{
		"Items": [{"Name": null}, {"Name": "kept"}]
	}`))
	if got := Extract(records, "Name"); !reflect.DeepEqual(got, []string{"kept"}) {
		t.Errorf("Extract = %v", got)
	}
}

func TestExtractForParamFallbacks(t *testing.T) {
	t.Run("standard name field", func(t *testing.T) {
		records := Flatten(mustDecode(t, `{
			"Parameters": [{"Name": "p1", "Type": "String"}, {"Name": "p2", "Type": "String"}]
		}`))
		got := ExtractForParam(records, "Names", "Parameter")
		if !reflect.DeepEqual(got, []string{"p1", "p2"}) {
			t.Errorf("ExtractForParam = %v", got)
		}
	})

	t.Run("entity qualified field", func(t *testing.T) {
		records := Flatten(mustDecode(t, `{
			"TableList": [{"TableId": "t-1"}, {"TableId": "t-2"}]
		}`))
		got := ExtractForParam(records, "", "Table")
		if !reflect.DeepEqual(got, []string{"t-1", "t-2"}) {
			t.Errorf("ExtractForParam = %v", got)
		}
	})

	t.Run("bare string list", func(t *testing.T) {
		records := Flatten(mustDecode(t, `{"clusters": ["prod", "stage"]}`))
		got := ExtractForParam(records, "cluster", "Cluster")
		if !reflect.DeepEqual(got, []string{"prod", "stage"}) {
			t.Errorf("ExtractForParam = %v", got)
		}
	})

	t.Run("fallbacks stay exact", func(t *testing.T) {
		records := Flatten(mustDecode(t, `{
			"Items": [{"KeyName": "kp-1", "StateName": "ok"}]
		}`))
		if got := ExtractForParam(records, "", "Widget"); got != nil {
			t.Errorf("Name fallback must not substring-match KeyName/StateName, got %v", got)
		}
	})
}

func TestFlattenExtractRoundTrip(t *testing.T) {
	// Every leaf path must extract exactly its own values.
	body := `{
		"Groups": [
			{"GroupName": "admins", "Members": [{"UserName": "alice"}, {"UserName": "bob"}]},
			{"GroupName": "devs", "Members": [{"UserName": "carol"}]}
		]
	}`
	records := Flatten(mustDecode(t, body))
	for _, rec := range records {
		for _, p := range rec.Paths() {
			v, _ := rec.Get(p)
			got := Extract(records, p)
			if len(got) != 1 || got[0] != ScalarString(v) {
				t.Errorf("Extract(%q) = %v, want [%v]", p, got, ScalarString(v))
			}
		}
	}
}
