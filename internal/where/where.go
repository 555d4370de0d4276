// Package where narrows a catalog with a CEL predicate evaluated once per
// instrument at startup. The instrument is bound to "_" as a map keyed by its
// serialized field names, e.g. `_.currency == "USD" && _.maturity < "2030"`.
package where

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/bondpick/pkg/catalog"
)

// ErrNotBoolean is returned when an expression does not yield a bool.
var ErrNotBoolean = errors.New("expression must evaluate to a bool")

// Predicate is a compiled scope expression.
type Predicate struct {
	expr string
	prg  cel.Program
}

// newEnv declares "_" as dyn and enables the string/list/math extensions.
func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Lists(),
		celext.Math(),
	)
}

// Compile parses and type-checks expr.
func Compile(expr string) (*Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("compilation error: empty expression")
	}
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	out := ast.OutputType()
	if !out.IsExactType(types.BoolType) && !out.IsExactType(types.DynType) {
		return nil, fmt.Errorf("%w, got %s", ErrNotBoolean, out)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (p *Predicate) String() string {
	return p.expr
}

// Eval reports whether the instrument satisfies the predicate.
func (p *Predicate) Eval(in catalog.Instrument) (bool, error) {
	val, _, err := p.prg.Eval(map[string]any{"_": in.Map()})
	if err != nil {
		return false, fmt.Errorf("eval error on %s: %w", in.ID, err)
	}
	b, ok := val.(types.Bool)
	if !ok {
		return false, fmt.Errorf("%s: %w, got %s", in.ID, ErrNotBoolean, val.Type().TypeName())
	}
	return bool(b), nil
}

// Apply returns the sub-catalog of instruments the predicate accepts,
// preserving catalog order. The first evaluation error aborts the scope.
func (p *Predicate) Apply(cat *catalog.Catalog) (*catalog.Catalog, error) {
	var evalErr error
	scoped := cat.Where(func(in catalog.Instrument) bool {
		if evalErr != nil {
			return false
		}
		ok, err := p.Eval(in)
		if err != nil {
			evalErr = err
			return false
		}
		return ok
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return scoped, nil
}

// Scope compiles expr and applies it to cat. A blank expression returns cat unchanged.
func Scope(cat *catalog.Catalog, expr string) (*catalog.Catalog, error) {
	if strings.TrimSpace(expr) == "" {
		return cat, nil
	}
	p, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return p.Apply(cat)
}
