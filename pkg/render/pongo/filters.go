package pongo

import (
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-strfmt/pkg/render"
	strtemplate "github.com/goliatone/go-strfmt/pkg/template"
)

var filtersOnce sync.Once

var filterEngine = strtemplate.New()

// registerDefaultFilters installs the strformat filters once per process.
// The piped value is the argument list when it is a []any and the single
// argument otherwise; the filter parameter is the template.
func registerDefaultFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists(FormatName) {
			_ = pongo2.RegisterFilter(FormatName, filterFormat)
		}
		if !pongo2.FilterExists(FormatHTMLName) {
			_ = pongo2.RegisterFilter(FormatHTMLName, filterFormatHTML)
		}
	})
}

func filterFormat(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	out, err := filterEngine.VFormat(param.String(), filterArgs(in))
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:" + FormatName, OrigError: err}
	}
	return pongo2.AsValue(out), nil
}

func filterFormatHTML(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	out, err := render.HTML(filterEngine, param.String(), filterArgs(in))
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:" + FormatHTMLName, OrigError: err}
	}
	return pongo2.AsSafeValue(out), nil
}

func filterArgs(in *pongo2.Value) []any {
	if in == nil || in.IsNil() {
		return []any{nil}
	}
	switch v := in.Interface().(type) {
	case []any:
		return v
	default:
		return []any{v}
	}
}
