// Package diag holds the error taxonomy shared by the formatter, the template
// engine and the path tokenizer. Parse errors carry the offending source, a
// 0-based offset and render a caret line pointing at the failing character.
package diag
