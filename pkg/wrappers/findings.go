package wrappers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/user/stigscore/pkg/xccdf"
)

// FindingsWrapper implements the Tool interface for listing controls by status
type FindingsWrapper struct {
	Scan *xccdf.ParsedResult
}

func (f *FindingsWrapper) Name() string {
	return "ListFindings"
}

func (f *FindingsWrapper) Description() string {
	return "Lists controls from the loaded scan that have a given result status, in document order."
}

func (f *FindingsWrapper) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"status": map[string]interface{}{
				"type":        "string",
				"description": "Result status to match: pass, fail, notapplicable, notchecked, notselected. Defaults to fail.",
			},
			"max_results": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum number of controls to return. Defaults to 50.",
			},
		},
	}
}

func (f *FindingsWrapper) Execute(ctx context.Context, args map[string]interface{}, progress func(string)) (string, error) {
	if f.Scan == nil {
		return "Error: no scan loaded.", nil
	}

	status := xccdf.DefaultFilterStatus
	if s, ok := args["status"].(string); ok && s != "" {
		status = xccdf.Status(s)
	}
	limit, err := intArg(args, "max_results", xccdf.DefaultMaxFindings)
	if err != nil {
		return "", err
	}

	found := xccdf.FilterFindings(*f.Scan, xccdf.WithStatus(status), xccdf.WithMaxResults(limit))
	if len(found) == 0 {
		return fmt.Sprintf("No controls with status '%s'.", status), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Controls with status '%s' (%d shown):\n", status, len(found)))
	for _, c := range found {
		sb.WriteString(fmt.Sprintf("- [%s] %s (severity %s)\n", c.Category, c.ControlID, c.Severity))
	}
	return sb.String(), nil
}

// CategorizeWrapper implements the Tool interface for grouping controls by STIG category
type CategorizeWrapper struct {
	Scan *xccdf.ParsedResult
}

func (c *CategorizeWrapper) Name() string {
	return "CategorizeFindings"
}

func (c *CategorizeWrapper) Description() string {
	return "Groups all controls of the loaded scan into CAT1, CAT2 and CAT3 with their result status. Optionally restricts the listing to one status."
}

func (c *CategorizeWrapper) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"status": map[string]interface{}{
				"type":        "string",
				"description": "Only list controls with this status (e.g. 'fail'). Counts always cover every control.",
			},
		},
	}
}

func (c *CategorizeWrapper) Execute(ctx context.Context, args map[string]interface{}, progress func(string)) (string, error) {
	if c.Scan == nil {
		return "Error: no scan loaded.", nil
	}
	only, _ := args["status"].(string)

	groups := xccdf.CategorizeFindings(*c.Scan)

	var sb strings.Builder
	for _, cat := range xccdf.Categories {
		controls := groups.Get(cat)
		sb.WriteString(fmt.Sprintf("%s: %d controls\n", cat, len(controls)))
		for _, ctl := range controls {
			if only != "" && string(ctl.Status) != only {
				continue
			}
			sb.WriteString(fmt.Sprintf("  - %s: %s\n", ctl.ControlID, ctl.Status))
		}
	}
	return sb.String(), nil
}

// intArg reads an integer argument. Model function calls deliver JSON numbers as float64.
func intArg(args map[string]interface{}, key string, def int) (int, error) {
	switch v := args[key].(type) {
	case nil:
		return def, nil
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("invalid %s: %v", key, v)
	}
}
