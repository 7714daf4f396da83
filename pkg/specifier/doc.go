// Package specifier parses the format-specifier mini language used after the
// colon of a template field:
//
//	[[fill]align][sign][#][0][width][.precision][type]
//
// align is one of `<`, `>`, `^` or `=`, sign one of `+`, `-` or space, and type
// one of `b c d o x X e E f F g G % n s`. A `0` before the width without an
// explicit fill selects `0` as fill and, unless an alignment was given, `=`.
package specifier
