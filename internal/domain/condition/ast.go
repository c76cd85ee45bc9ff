package condition

import "fmt"

type Op int

const (
	OpEq Op = iota
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	}
	return "?"
}

type ValueKind int

const (
	ValueInt ValueKind = iota
	ValueString
	ValueBool
)

// Value is a typed literal. Exactly one of the payload fields is meaningful
// depending on Kind.
type Value struct {
	Kind ValueKind
	Int  int64
	Str  string
	Bool bool
}

// Expr is a node of the compiled predicate tree. Evaluation is pure and
// bounded by the tree size; an error indicates an internal invariant
// violation, never user input.
type Expr interface {
	Eval(ctx *Context) (bool, error)
}

type Compare struct {
	Field     string
	FieldKind FieldKind
	Op        Op
	Value     Value
}

func (e *Compare) Eval(ctx *Context) (bool, error) {
	switch e.FieldKind {
	case FieldInt:
		v, err := ctx.intField(e.Field)
		if err != nil {
			return false, err
		}
		return compareInt(v, e.Op, e.Value.Int), nil
	case FieldString:
		v, err := ctx.stringField(e.Field)
		if err != nil {
			return false, err
		}
		if e.Op == OpEq {
			return v == e.Value.Str, nil
		}
		return v != e.Value.Str, nil
	case FieldBool:
		v, err := ctx.boolField(e.Field)
		if err != nil {
			return false, err
		}
		if e.Op == OpEq {
			return v == e.Value.Bool, nil
		}
		return v != e.Value.Bool, nil
	}
	return false, fmt.Errorf("comparison on unsupported field %q", e.Field)
}

func compareInt(a int64, op Op, b int64) bool {
	switch op {
	case OpEq:
		return a == b
	case OpNeq:
		return a != b
	case OpLt:
		return a < b
	case OpLte:
		return a <= b
	case OpGt:
		return a > b
	case OpGte:
		return a >= b
	}
	return false
}

// In tests membership. For scalar fields the field value must be listed;
// for categories it holds when any line-item category is listed.
type In struct {
	Field     string
	FieldKind FieldKind
	Values    []Value
}

func (e *In) Eval(ctx *Context) (bool, error) {
	switch e.FieldKind {
	case FieldInt:
		v, err := ctx.intField(e.Field)
		if err != nil {
			return false, err
		}
		for _, lit := range e.Values {
			if lit.Int == v {
				return true, nil
			}
		}
		return false, nil
	case FieldString:
		v, err := ctx.stringField(e.Field)
		if err != nil {
			return false, err
		}
		for _, lit := range e.Values {
			if lit.Str == v {
				return true, nil
			}
		}
		return false, nil
	case FieldStringSet:
		for _, cat := range ctx.Categories {
			for _, lit := range e.Values {
				if lit.Str == cat {
					return true, nil
				}
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("membership test on unsupported field %q", e.Field)
}

type Not struct {
	X Expr
}

func (e *Not) Eval(ctx *Context) (bool, error) {
	v, err := e.X.Eval(ctx)
	if err != nil {
		return false, err
	}
	return !v, nil
}

type And struct {
	X, Y Expr
}

func (e *And) Eval(ctx *Context) (bool, error) {
	v, err := e.X.Eval(ctx)
	if err != nil || !v {
		return false, err
	}
	return e.Y.Eval(ctx)
}

type Or struct {
	X, Y Expr
}

func (e *Or) Eval(ctx *Context) (bool, error) {
	v, err := e.X.Eval(ctx)
	if err != nil || v {
		return v, err
	}
	return e.Y.Eval(ctx)
}
