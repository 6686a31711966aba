package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TemplateParams fills {{name}} placeholders in SQL text.
type TemplateParams map[string]any

var placeholderRegex = regexp.MustCompile(`\{\{(\w+)\}\}`)

// RenderSQL substitutes placeholders in the query's SQL. Values are inserted
// verbatim, so identifiers must be quoted by the caller.
func (q Query) RenderSQL(params TemplateParams) (string, error) {
	return render(q.Name, q.SQL, params)
}

// RequiredParams lists the distinct placeholders of the query's SQL.
func (q Query) RequiredParams() []string {
	return placeholders(q.SQL)
}

func render(name, text string, params TemplateParams) (string, error) {
	result := placeholderRegex.ReplaceAllStringFunc(text, func(match string) string {
		key := match[2 : len(match)-2]
		if val, ok := params[key]; ok {
			return formatValue(val)
		}
		return match
	})

	if missing := placeholders(result); len(missing) > 0 {
		return "", fmt.Errorf("query %q missing template params: %v", name, missing)
	}

	return result, nil
}

func placeholders(s string) []string {
	matches := placeholderRegex.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var names []string
	for _, m := range matches {
		if len(m) > 1 && !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []string:
		return strings.Join(val, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
