package catalog

var cloudformationShapes = map[string]Shape{
	"DescribeStacks": {
		Name:      "DescribeStacks",
		Inputs:    []Field{{Name: "StackName", Kind: KindScalar}},
		OutputKey: "Stacks",
	},
	"ListStacks": {
		Name:      "ListStacks",
		Inputs:    []Field{{Name: "StackStatusFilter", Kind: KindList}},
		OutputKey: "StackSummaries",
	},
	// StackName is nominally optional (PhysicalResourceId is the alternative)
	// but the call fails without one of them; requiring it routes the call
	// through stack resolution.
	"DescribeStackResources": {
		Name:      "DescribeStackResources",
		Inputs:    []Field{{Name: "StackName", Required: true, Kind: KindScalar}},
		OutputKey: "StackResources",
	},
	"DescribeStackEvents": {
		Name:      "DescribeStackEvents",
		Inputs:    []Field{{Name: "StackName", Required: true, Kind: KindScalar}},
		OutputKey: "StackEvents",
	},
	"ListStackResources": {
		Name:      "ListStackResources",
		Inputs:    []Field{{Name: "StackName", Required: true, Kind: KindScalar}},
		OutputKey: "StackResourceSummaries",
	},
	"GetTemplateSummary": {
		Name:   "GetTemplateSummary",
		Inputs: []Field{{Name: "StackName", Kind: KindScalar}},
	},
	"ListExports": {
		Name:      "ListExports",
		OutputKey: "Exports",
	},
}
