// Package condition implements the campaign condition language: a small,
// side-effect-free expression language over order and customer attributes.
// Expressions are compiled once at campaign-save time into a tagged tree and
// evaluated many times against a read-only Context.
package condition

import (
	"errors"
)

var ErrSyntax = errors.New("invalid condition expression")

// FieldKind is the static type of a named context field.
type FieldKind int

const (
	FieldInt FieldKind = iota
	FieldString
	FieldBool
	FieldStringSet
)

// Fields enumerates every name the language may reference. Unknown names
// fail compilation, never evaluation.
var Fields = map[string]FieldKind{
	"subtotal":         FieldInt,
	"item_count":       FieldInt,
	"hour":             FieldInt,
	"customer_segment": FieldString,
	"day_of_week":      FieldString,
	"first_order":      FieldBool,
	"categories":       FieldStringSet,
}

type Predicate struct {
	source string
	root   Expr
}

// Compile parses and type-checks an expression. The returned predicate is
// immutable and safe for concurrent evaluation.
func Compile(text string) (*Predicate, error) {
	p := newParser(text)
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return &Predicate{source: text, root: root}, nil
}

func (p *Predicate) Source() string {
	return p.source
}

func (p *Predicate) Eval(ctx *Context) (bool, error) {
	return p.root.Eval(ctx)
}
