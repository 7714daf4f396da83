// Package template implements `{}` format templates.
//
// A field is written `{reference:specifier}`. An empty reference takes the
// next positional argument, while a property path such as `0.name` or
// `user['display name']` is resolved against the arguments that remain:
//
//	engine := template.New()
//	out, err := engine.Format("{0.name:>10} owes {1:.2f}", user, 12.5)
//
// Specifiers may embed fields of their own (`{:>{width}}`); those are
// rendered first and consume arguments before the outer field does. Doubled
// braces produce literal braces. Unbalanced braces and malformed references
// fail with a diag.MalformedTemplateError whose caret points into the
// original template.
package template
