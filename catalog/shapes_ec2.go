package catalog

var ec2Shapes = map[string]Shape{
	"DescribeInstances": {
		Name: "DescribeInstances",
		Inputs: []Field{
			{Name: "Filters", Kind: KindList},
			{Name: "InstanceIds", Kind: KindList},
			{Name: "MaxResults", Kind: KindScalar},
		},
		OutputKey: "Reservations",
	},
	"DescribeInstanceStatus": {
		Name: "DescribeInstanceStatus",
		Inputs: []Field{
			{Name: "InstanceIds", Kind: KindList},
			{Name: "IncludeAllInstances", Kind: KindScalar},
		},
		OutputKey: "InstanceStatuses",
	},
	"DescribeVpcs": {
		Name: "DescribeVpcs",
		Inputs: []Field{
			{Name: "Filters", Kind: KindList},
			{Name: "VpcIds", Kind: KindList},
		},
		OutputKey: "Vpcs",
	},
	"DescribeSubnets": {
		Name: "DescribeSubnets",
		Inputs: []Field{
			{Name: "Filters", Kind: KindList},
			{Name: "SubnetIds", Kind: KindList},
		},
		OutputKey: "Subnets",
	},
	"DescribeSecurityGroups": {
		Name: "DescribeSecurityGroups",
		Inputs: []Field{
			{Name: "Filters", Kind: KindList},
			{Name: "GroupIds", Kind: KindList},
			{Name: "GroupNames", Kind: KindList},
		},
		OutputKey: "SecurityGroups",
	},
	"DescribeVolumes": {
		Name: "DescribeVolumes",
		Inputs: []Field{
			{Name: "Filters", Kind: KindList},
			{Name: "VolumeIds", Kind: KindList},
		},
		OutputKey: "Volumes",
	},
	"DescribeSnapshots": {
		Name: "DescribeSnapshots",
		Inputs: []Field{
			{Name: "Filters", Kind: KindList},
			{Name: "OwnerIds", Kind: KindList},
			{Name: "SnapshotIds", Kind: KindList},
		},
		OutputKey: "Snapshots",
	},
	"DescribeImages": {
		Name: "DescribeImages",
		Inputs: []Field{
			{Name: "Filters", Kind: KindList},
			{Name: "ImageIds", Kind: KindList},
			{Name: "Owners", Kind: KindList},
		},
		OutputKey: "Images",
	},
	"DescribeAvailabilityZones": {
		Name:      "DescribeAvailabilityZones",
		Inputs:    []Field{{Name: "ZoneNames", Kind: KindList}},
		OutputKey: "AvailabilityZones",
	},
	"DescribeRegions": {
		Name:      "DescribeRegions",
		Inputs:    []Field{{Name: "RegionNames", Kind: KindList}},
		OutputKey: "Regions",
	},
	"DescribeTags": {
		Name:      "DescribeTags",
		Inputs:    []Field{{Name: "Filters", Kind: KindList}},
		OutputKey: "Tags",
	},
	"DescribeInstanceAttribute": {
		Name: "DescribeInstanceAttribute",
		Inputs: []Field{
			{Name: "InstanceId", Required: true, Kind: KindScalar},
			{Name: "Attribute", Required: true, Kind: KindScalar},
		},
	},
}
