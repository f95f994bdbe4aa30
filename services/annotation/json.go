package annotation

import (
	"strconv"
	"strings"

	"github.com/Jeffail/gabs"
)

// children returns the elements found at path. A single object found at
// path is returned as a one-element list, since several apis return
// either an object or an array for the same key.
func children(c *gabs.Container, path ...string) []*gabs.Container {
	if c == nil {
		return nil
	}

	target := c
	if len(path) > 0 {
		target = c.Search(path...)
	}
	if target == nil || target.Data() == nil {
		return nil
	}

	if _, isArray := target.Data().([]interface{}); !isArray {
		return []*gabs.Container{target}
	}

	kids, err := target.Children()
	if err != nil {
		return nil
	}
	return kids
}

// stringAt returns the string at path, or the first string of an array
// found at path.
func stringAt(c *gabs.Container, path ...string) string {
	all := stringsAt(c, path...)
	if len(all) == 0 {
		return ""
	}
	return all[0]
}

// stringsAt flattens whatever is found at path into its non-blank strings.
func stringsAt(c *gabs.Container, path ...string) []string {
	if c == nil {
		return nil
	}
	return flattenStrings(c.Search(path...).Data())
}

func flattenStrings(data interface{}) []string {
	switch v := data.(type) {
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return []string{trimmed}
		}
	case float64:
		return []string{strconv.FormatFloat(v, 'f', -1, 64)}
	case []interface{}:
		var out []string
		for _, item := range v {
			out = append(out, flattenStrings(item)...)
		}
		return out
	}
	return nil
}
