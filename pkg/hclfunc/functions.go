// Package hclfunc exposes the formatter to HCL configurations as the
// `strformat` and `strpath` functions.
package hclfunc

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/goliatone/go-strfmt/pkg/path"
	"github.com/goliatone/go-strfmt/pkg/template"
)

// FormatFunc returns `strformat(template, args...)`, rendering cty arguments
// through engine. A nil engine uses the defaults.
func FormatFunc(engine *template.Engine) function.Function {
	if engine == nil {
		engine = template.New()
	}
	return function.New(&function.Spec{
		Description: "Formats the remaining arguments according to a `{}` template.",
		Params: []function.Parameter{
			{Name: "template", Type: cty.String},
		},
		VarParam: &function.Parameter{
			Name:             "args",
			Type:             cty.DynamicPseudoType,
			AllowNull:        true,
			AllowDynamicType: true,
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			values := make([]any, 0, len(args)-1)
			for _, arg := range args[1:] {
				values = append(values, arg)
			}
			out, err := engine.VFormat(args[0].AsString(), values)
			if err != nil {
				return cty.UnknownVal(cty.String), function.NewArgError(0, err)
			}
			return cty.StringVal(out), nil
		},
	})
}

// PathFunc is `strpath(value, path)`. Missing properties yield null.
var PathFunc = function.New(&function.Spec{
	Description: "Returns the value found at a property path such as `a.b[0]['c d']`.",
	Params: []function.Parameter{
		{Name: "value", Type: cty.DynamicPseudoType, AllowNull: true},
		{Name: "path", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.DynamicPseudoType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		tokens, err := path.Tokenize(args[1].AsString())
		if err != nil {
			return cty.DynamicVal, function.NewArgError(1, err)
		}
		found, ok := path.LookupTokens(args[0], tokens)
		if !ok {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
		if v, isCty := found.(cty.Value); isCty {
			return v, nil
		}
		return cty.NullVal(cty.DynamicPseudoType), nil
	},
})

// Functions returns the function table keyed by HCL name.
func Functions(engine *template.Engine) map[string]function.Function {
	return map[string]function.Function{
		"strformat": FormatFunc(engine),
		"strpath":   PathFunc,
	}
}

// EvalContext builds an evaluation context exposing vars under `var` and the
// formatter functions.
func EvalContext(engine *template.Engine, vars map[string]cty.Value) *hcl.EvalContext {
	variables := map[string]cty.Value{}
	if len(vars) > 0 {
		variables["var"] = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{
		Variables: variables,
		Functions: Functions(engine),
	}
}
