package catalog

var dynamodbShapes = map[string]Shape{
	"ListTables": {
		Name:      "ListTables",
		OutputKey: "TableNames",
	},
	"DescribeTable": {
		Name:   "DescribeTable",
		Inputs: []Field{{Name: "TableName", Required: true, Kind: KindScalar}},
	},
	"DescribeContinuousBackups": {
		Name:   "DescribeContinuousBackups",
		Inputs: []Field{{Name: "TableName", Required: true, Kind: KindScalar}},
	},
	"DescribeTimeToLive": {
		Name:   "DescribeTimeToLive",
		Inputs: []Field{{Name: "TableName", Required: true, Kind: KindScalar}},
	},
	"ListBackups": {
		Name:      "ListBackups",
		Inputs:    []Field{{Name: "TableName", Kind: KindScalar}},
		OutputKey: "BackupSummaries",
	},
	"ListTagsOfResource": {
		Name:      "ListTagsOfResource",
		Inputs:    []Field{{Name: "ResourceArn", Required: true, Kind: KindScalar}},
		OutputKey: "Tags",
	},
	"Scan": {
		Name: "Scan",
		Inputs: []Field{
			{Name: "TableName", Required: true, Kind: KindScalar},
			{Name: "Limit", Kind: KindScalar},
		},
		OutputKey: "Items",
	},
}
