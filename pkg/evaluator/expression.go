package evaluator

import (
	"fmt"
	"reflect"

	"github.com/antonmedv/expr"
)

// Expression is an expr-lang snippet. Variables are referenced with a "$" prefix, e.g. "$document.amount > 100".
type Expression string

func (e Expression) String() string {
	return string(e)
}

// EvaluateWithVars runs the expression with every params key exposed as "$<key>".
func (e Expression) EvaluateWithVars(params map[string]interface{}) (interface{}, error) {
	env := make(map[string]interface{}, len(params))
	for key, value := range params {
		env[fmt.Sprintf("$%s", key)] = value
	}

	program, err := expr.Compile(e.String(), expr.Env(env), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compiling expression %q: %w", e, err)
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("evaluating expression %q: %w", e, err)
	}
	return result, nil
}

// IsTruthy evaluates the expression and reports whether the result is a non-zero value.
func (e Expression) IsTruthy(params map[string]interface{}) (bool, error) {
	result, err := e.EvaluateWithVars(params)
	if err != nil {
		return false, err
	}
	if result == nil {
		return false, nil
	}
	return !reflect.ValueOf(result).IsZero(), nil
}
