package catalog

var eksShapes = map[string]Shape{
	"ListClusters": {
		Name:      "ListClusters",
		OutputKey: "Clusters",
	},
	"DescribeCluster": {
		Name:   "DescribeCluster",
		Inputs: []Field{{Name: "Name", Required: true, Kind: KindScalar}},
	},
	"ListNodegroups": {
		Name:      "ListNodegroups",
		Inputs:    []Field{{Name: "ClusterName", Required: true, Kind: KindScalar}},
		OutputKey: "Nodegroups",
	},
	"DescribeNodegroup": {
		Name: "DescribeNodegroup",
		Inputs: []Field{
			{Name: "ClusterName", Required: true, Kind: KindScalar},
			{Name: "NodegroupName", Required: true, Kind: KindScalar},
		},
	},
	"ListFargateProfiles": {
		Name:      "ListFargateProfiles",
		Inputs:    []Field{{Name: "ClusterName", Required: true, Kind: KindScalar}},
		OutputKey: "FargateProfileNames",
	},
	"ListAddons": {
		Name:      "ListAddons",
		Inputs:    []Field{{Name: "ClusterName", Required: true, Kind: KindScalar}},
		OutputKey: "Addons",
	},
	"DescribeAddon": {
		Name: "DescribeAddon",
		Inputs: []Field{
			{Name: "ClusterName", Required: true, Kind: KindScalar},
			{Name: "AddonName", Required: true, Kind: KindScalar},
		},
	},
}
