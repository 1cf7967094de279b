// Package hclfunc provides the functions available inside stackgen.hcl
// input files.
package hclfunc

import (
	"os"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// stringFunc wraps a single-argument string transform.
func stringFunc(param string, fn func(string) string) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{
				Name: param,
				Type: cty.String,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			return cty.StringVal(fn(args[0].AsString())), nil
		},
	})
}

// EnvFunc returns the value of an environment variable, or an empty string
// when it is unset.
//
//	redis_password = env("REDIS_PASSWORD")
func EnvFunc() function.Function {
	return stringFunc("varname", os.Getenv)
}

// LowerFunc converts a string to lowercase.
func LowerFunc() function.Function {
	return stringFunc("str", strings.ToLower)
}

// UpperFunc converts a string to uppercase.
func UpperFunc() function.Function {
	return stringFunc("str", strings.ToUpper)
}

// ConcatFunc concatenates any number of strings. Null arguments are skipped.
//
//	n8n_editor = concat("n8n.", var.base_domain)
func ConcatFunc() function.Function {
	return function.New(&function.Spec{
		VarParam: &function.Parameter{
			Name:      "values",
			Type:      cty.String,
			AllowNull: true,
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			var builder strings.Builder
			for _, arg := range args {
				if arg.IsNull() {
					continue
				}
				builder.WriteString(arg.AsString())
			}
			return cty.StringVal(builder.String()), nil
		},
	})
}

// CoalesceFunc returns the first non-empty argument.
//
//	minio_root_user = coalesce(env("MINIO_USER"), "admin")
func CoalesceFunc() function.Function {
	return function.New(&function.Spec{
		VarParam: &function.Parameter{
			Name:      "values",
			Type:      cty.String,
			AllowNull: true,
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			for _, arg := range args {
				if arg.IsNull() {
					continue
				}
				if s := arg.AsString(); s != "" {
					return cty.StringVal(s), nil
				}
			}
			return cty.StringVal(""), nil
		},
	})
}

// Functions returns every function exposed to input files.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"env":      EnvFunc(),
		"lower":    LowerFunc(),
		"upper":    UpperFunc(),
		"concat":   ConcatFunc(),
		"coalesce": CoalesceFunc(),
	}
}
