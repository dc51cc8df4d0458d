package catalog

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	lowerToUpper    = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// Canonical maps kebab-case, snake_case and camelCase action spellings to
// the CamelCase form the SDK uses. Already-canonical input passes through
// unchanged.
func Canonical(name string) string {
	if name == "" {
		return name
	}
	if !strings.ContainsAny(name, "-_") {
		r := []rune(name)
		r[0] = unicode.ToUpper(r[0])
		return string(r)
	}
	words := strings.FieldsFunc(name, func(c rune) bool { return c == '-' || c == '_' })
	var b strings.Builder
	for _, w := range words {
		r := []rune(strings.ToLower(w))
		if len(r) > 0 {
			r[0] = unicode.ToUpper(r[0])
		}
		b.WriteString(string(r))
	}
	return b.String()
}

// Kebab renders a CamelCase name in kebab-case, keeping acronym runs intact:
// HTTPSListener becomes https-listener, VPCId becomes vpc-id.
func Kebab(name string) string {
	s := acronymBoundary.ReplaceAllString(name, "$1-$2")
	s = lowerToUpper.ReplaceAllString(s, "$1-$2")
	s = strings.ReplaceAll(s, "_", "-")
	return strings.ToLower(s)
}

// Singularize strips a plural suffix from a lowercase resource word.
func Singularize(word string) string {
	switch {
	case strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ses"), strings.HasSuffix(word, "shes"),
		strings.HasSuffix(word, "ches"), strings.HasSuffix(word, "xes"),
		strings.HasSuffix(word, "zes"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss"):
		return word[:len(word)-1]
	default:
		return word
	}
}

// Pluralize appends a plural suffix to a lowercase resource word.
func Pluralize(word string) string {
	switch {
	case strings.HasSuffix(word, "y"):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(word, "s"), strings.HasSuffix(word, "sh"),
		strings.HasSuffix(word, "ch"), strings.HasSuffix(word, "x"),
		strings.HasSuffix(word, "z"):
		return word + "es"
	default:
		return word + "s"
	}
}

var operationPrefixes = []string{"Describe", "List", "Get", "Create", "Update", "Delete"}

// Entity derives the resource a canonical operation name is about:
// ListClusters yields Cluster, DescribeStackResources yields StackResource.
// The result keeps CamelCase so it can qualify identifier fields.
func Entity(action string) string {
	rest := action
	for _, p := range operationPrefixes {
		if strings.HasPrefix(action, p) && len(action) > len(p) {
			rest = action[len(p):]
			break
		}
	}
	segs := splitCamel(rest)
	if len(segs) == 0 {
		return rest
	}
	last := segs[len(segs)-1]
	segs[len(segs)-1] = Canonical(Singularize(strings.ToLower(last)))
	return strings.Join(segs, "")
}

// ParamEntity derives the resource entity from a parameter name by stripping
// a trailing Name/Id/Arn qualifier: clusterName yields Cluster. Generic
// parameters (plain name, id, arn) yield the empty string.
func ParamEntity(param string) string {
	base := param
	for _, suffix := range []string{"Names", "Ids", "Arns", "ARNs", "Name", "Id", "Arn", "ARN"} {
		if strings.HasSuffix(base, suffix) && len(base) > len(suffix) {
			base = base[:len(base)-len(suffix)]
			break
		}
	}
	if base == "" {
		return ""
	}
	lower := strings.ToLower(base)
	if lower == "name" || lower == "id" || lower == "arn" || lower == "names" || lower == "ids" || lower == "arns" {
		return ""
	}
	return Canonical(Singularize(lower))
}

func splitCamel(s string) []string {
	marked := acronymBoundary.ReplaceAllString(s, "$1 $2")
	marked = lowerToUpper.ReplaceAllString(marked, "$1 $2")
	return strings.Fields(marked)
}
