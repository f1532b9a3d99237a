// Package variables finds and fills {name} placeholders in prompt templates.
package variables

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// placeholderPattern matches a single brace pair with a non-empty, brace-free
// interior. An unterminated "{" never matches; with nested braces only the
// innermost pair does.
var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Extract returns the distinct placeholder names in content, sorted.
func Extract(content string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(content, -1)
	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	sort.Strings(names)
	return names
}

// Substitute replaces every {name} in content with values[name]. Replacement is
// a single pass, so placeholders inside a value are left as written.
// Placeholders without a value stay verbatim.
func Substitute(content string, values map[string]string) string {
	if len(values) == 0 {
		return content
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", values[k])
	}
	return strings.NewReplacer(pairs...).Replace(content)
}

// Stringify renders decoded JSON values as substitution text. Strings are
// used as is, null becomes empty, numbers keep their shortest exact form and
// objects or arrays are written back as JSON.
func Stringify(values map[string]interface{}) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		switch v := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = v
		case float64:
			out[k] = strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			out[k] = v.String()
		case bool:
			out[k] = strconv.FormatBool(v)
		case map[string]interface{}, []interface{}:
			raw, err := json.Marshal(v)
			if err != nil {
				out[k] = fmt.Sprint(v)
				continue
			}
			out[k] = string(raw)
		default:
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}
