package catalog

var s3Shapes = map[string]Shape{
	"ListBuckets": {
		Name:      "ListBuckets",
		OutputKey: "Buckets",
	},
	"ListObjectsV2": {
		Name: "ListObjectsV2",
		Inputs: []Field{
			{Name: "Bucket", Required: true, Kind: KindScalar},
			{Name: "Prefix", Kind: KindScalar},
			{Name: "MaxKeys", Kind: KindScalar},
		},
		OutputKey: "Contents",
	},
	"GetBucketLocation": {
		Name:   "GetBucketLocation",
		Inputs: []Field{{Name: "Bucket", Required: true, Kind: KindScalar}},
	},
	"GetBucketTagging": {
		Name:      "GetBucketTagging",
		Inputs:    []Field{{Name: "Bucket", Required: true, Kind: KindScalar}},
		OutputKey: "TagSet",
	},
	"GetBucketVersioning": {
		Name:   "GetBucketVersioning",
		Inputs: []Field{{Name: "Bucket", Required: true, Kind: KindScalar}},
	},
	"GetBucketEncryption": {
		Name:   "GetBucketEncryption",
		Inputs: []Field{{Name: "Bucket", Required: true, Kind: KindScalar}},
	},
	"ListObjectVersions": {
		Name: "ListObjectVersions",
		Inputs: []Field{
			{Name: "Bucket", Required: true, Kind: KindScalar},
			{Name: "Prefix", Kind: KindScalar},
		},
		OutputKey: "Versions",
	},
	"ListMultipartUploads": {
		Name:      "ListMultipartUploads",
		Inputs:    []Field{{Name: "Bucket", Required: true, Kind: KindScalar}},
		OutputKey: "Uploads",
	},
}
