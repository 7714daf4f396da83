// Package path tokenizes property paths (`a.b[0]['c d']`) and resolves them
// against maps, slices, structs and cty values.
package path
