package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	htmlPolicyOnce sync.Once
	htmlPolicy     *bluemonday.Policy
)

// Formatter renders a template against an argument list.
type Formatter interface {
	VFormat(tpl string, args []any) (string, error)
}

// SanitizeHTML strips markup outside a small inline formatting allow-list
// (emphasis, links, code, line breaks and spans carrying a class).
func SanitizeHTML(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(sanitizer().Sanitize(trimmed))
}

// HTML formats tpl with args and sanitizes the result.
func HTML(f Formatter, tpl string, args []any) (string, error) {
	if f == nil {
		return "", fmt.Errorf("render: formatter is nil")
	}
	out, err := f.VFormat(tpl, args)
	if err != nil {
		return "", err
	}
	return SanitizeHTML(out), nil
}

func sanitizer() *bluemonday.Policy {
	htmlPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "u", "s", "small", "mark",
			"code", "kbd", "samp", "sub", "sup", "br", "span", "abbr")
		policy.AllowAttrs("class").OnElements("span", "code", "mark")
		policy.AllowAttrs("title").OnElements("abbr")
		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		htmlPolicy = policy
	})
	return htmlPolicy
}
