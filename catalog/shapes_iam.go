package catalog

var iamShapes = map[string]Shape{
	"ListUsers": {
		Name:      "ListUsers",
		Inputs:    []Field{{Name: "PathPrefix", Kind: KindScalar}},
		OutputKey: "Users",
	},
	"ListRoles": {
		Name:      "ListRoles",
		Inputs:    []Field{{Name: "PathPrefix", Kind: KindScalar}},
		OutputKey: "Roles",
	},
	"ListGroups": {
		Name:      "ListGroups",
		Inputs:    []Field{{Name: "PathPrefix", Kind: KindScalar}},
		OutputKey: "Groups",
	},
	"ListPolicies": {
		Name:      "ListPolicies",
		Inputs:    []Field{{Name: "Scope", Kind: KindScalar}, {Name: "OnlyAttached", Kind: KindScalar}},
		OutputKey: "Policies",
	},
	// The service accepts a missing UserName by defaulting to the caller,
	// which is useless for an inventory query; requiring it here routes the
	// call through user resolution instead.
	"ListAccessKeys": {
		Name:      "ListAccessKeys",
		Inputs:    []Field{{Name: "UserName", Required: true, Kind: KindScalar}},
		OutputKey: "AccessKeyMetadata",
	},
	"ListMFADevices": {
		Name:      "ListMFADevices",
		Inputs:    []Field{{Name: "UserName", Kind: KindScalar}},
		OutputKey: "MFADevices",
	},
	"ListAttachedUserPolicies": {
		Name:      "ListAttachedUserPolicies",
		Inputs:    []Field{{Name: "UserName", Required: true, Kind: KindScalar}},
		OutputKey: "AttachedPolicies",
	},
	"ListAttachedRolePolicies": {
		Name:      "ListAttachedRolePolicies",
		Inputs:    []Field{{Name: "RoleName", Required: true, Kind: KindScalar}},
		OutputKey: "AttachedPolicies",
	},
	"GetUser": {
		Name:   "GetUser",
		Inputs: []Field{{Name: "UserName", Kind: KindScalar}},
	},
	"GetRole": {
		Name:   "GetRole",
		Inputs: []Field{{Name: "RoleName", Required: true, Kind: KindScalar}},
	},
	"GetAccountSummary": {
		Name: "GetAccountSummary",
	},
}
