// Package script executes user-supplied version scripts against a bound
// read-only metadata context and parses their textual output back into
// version components.
//
// Scripts see the metadata set under a single fixed binding: a plain string
// map, not a live object graph. That keeps the execution surface narrow and
// auditable.
package script

import (
	"fmt"

	"github.com/dop251/goja"
	"github.com/expr-lang/expr"

	"github.com/calcver/calcver/internal/errs"
)

// Kind selects the embedded script engine.
type Kind string

const (
	// KindExpr evaluates the script as an expr-lang expression.
	KindExpr Kind = "expr"
	// KindJS evaluates the script as an ECMAScript program.
	KindJS Kind = "js"
)

// Binding is the name under which the metadata map is exposed to scripts.
const Binding = "metadata"

// Engine executes one configured script.
type Engine struct {
	kind   Kind
	source string
}

// NewEngine creates an engine for the given kind and script source.
func NewEngine(kind Kind, source string) (*Engine, error) {
	switch kind {
	case KindExpr, KindJS:
	default:
		return nil, errs.Configuration("unknown script kind %q", string(kind))
	}
	if source == "" {
		return nil, errs.Configuration("script source is empty")
	}
	return &Engine{kind: kind, source: source}, nil
}

// Run executes the script with the metadata map bound and returns its
// textual output. Script failures of any sort are calculation errors
// carrying the engine's native error as cause.
func (e *Engine) Run(meta map[string]string) (string, error) {
	switch e.kind {
	case KindExpr:
		return e.runExpr(meta)
	case KindJS:
		return e.runJS(meta)
	default:
		return "", errs.Configuration("unknown script kind %q", string(e.kind))
	}
}

func (e *Engine) runExpr(meta map[string]string) (string, error) {
	env := map[string]any{Binding: meta}

	program, err := expr.Compile(e.source, expr.Env(env))
	if err != nil {
		return "", errs.WrapCalculation("compiling script", err)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return "", errs.WrapCalculation("running script", err)
	}

	return fmt.Sprint(out), nil
}

func (e *Engine) runJS(meta map[string]string) (string, error) {
	vm := goja.New()
	if err := vm.Set(Binding, meta); err != nil {
		return "", errs.WrapCalculation("binding metadata", err)
	}

	value, err := vm.RunString(e.source)
	if err != nil {
		return "", errs.WrapCalculation("running script", err)
	}
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return "", errs.Calculation("script produced no value")
	}

	return value.String(), nil
}
