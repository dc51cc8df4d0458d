package catalog

var ssmShapes = map[string]Shape{
	"DescribeParameters": {
		Name:      "DescribeParameters",
		Inputs:    []Field{{Name: "ParameterFilters", Kind: KindList}},
		OutputKey: "Parameters",
	},
	"GetParameter": {
		Name: "GetParameter",
		Inputs: []Field{
			{Name: "Name", Required: true, Kind: KindScalar},
			{Name: "WithDecryption", Kind: KindScalar},
		},
	},
	"GetParameters": {
		Name: "GetParameters",
		Inputs: []Field{
			{Name: "Names", Required: true, Kind: KindList},
			{Name: "WithDecryption", Kind: KindScalar},
		},
		OutputKey: "Parameters",
	},
	"DescribeInstanceInformation": {
		Name:      "DescribeInstanceInformation",
		Inputs:    []Field{{Name: "Filters", Kind: KindList}},
		OutputKey: "InstanceInformationList",
	},
	"ListDocuments": {
		Name:      "ListDocuments",
		Inputs:    []Field{{Name: "Filters", Kind: KindList}},
		OutputKey: "DocumentIdentifiers",
	},
	"ListAssociations": {
		Name:      "ListAssociations",
		OutputKey: "Associations",
	},
	"DescribePatchBaselines": {
		Name:      "DescribePatchBaselines",
		OutputKey: "BaselineIdentities",
	},
}
