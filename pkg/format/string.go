package format

import (
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-strfmt/pkg/specifier"
)

// String pads value to the specifier's minimum width. Precision truncates
// the value first. Widths count runes and strings default to left alignment.
// String does not fail, so widths above specifier.MaxWidth pad to MaxWidth.
func String(value string, spec specifier.Specifier) string {
	if spec.HasPrecision {
		value = truncateRunes(value, spec.Precision)
	}

	width := min(spec.MinWidth, specifier.MaxWidth)
	length := utf8.RuneCountInString(value)
	if width <= length {
		return value
	}

	fill := spec.Fill
	if !spec.HasFill || fill == 0 {
		fill = ' '
	}
	pad := width - length

	switch spec.Align {
	case specifier.AlignNone, specifier.AlignLeft:
		return value + strings.Repeat(string(fill), pad)
	case specifier.AlignCenter:
		before := pad / 2
		return strings.Repeat(string(fill), before) + value + strings.Repeat(string(fill), pad-before)
	default:
		return strings.Repeat(string(fill), pad) + value
	}
}

func truncateRunes(value string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range value {
		if count == n {
			return value[:i]
		}
		count++
	}
	return value
}
