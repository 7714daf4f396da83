// Package format renders single values under a parsed format specifier.
//
// Strings are padded and truncated by String, numbers go through Number
// (signs, rounding, radix and exponent forms, locale grouping), and time.Time
// values through the strftime-like Time. Value picks the renderer for an
// arbitrary Go value, giving precedence to types implementing Formattable.
package format
