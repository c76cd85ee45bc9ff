package condition

import "fmt"

// Recursive descent with standard precedence: not > and > or. Type checking
// happens during the parse so a compiled predicate can never fail on a
// well-formed context.
type parser struct {
	lex *lexer
	tok token
}

func newParser(src string) *parser {
	return &parser{lex: newLexer(src)}
}

func (p *parser) parse() (Expr, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %q at position %d", ErrSyntax, p.tok.text, p.tok.pos)
	}
	return expr, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) isKeyword(kw string) bool {
	return p.tok.kind == tokIdent && p.tok.text == kw
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("or") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Or{X: left, Y: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("and") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &And{X: left, Y: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.isKeyword("not") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Not{X: expr}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	switch p.tok.kind {
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, fmt.Errorf("%w: missing closing parenthesis at position %d", ErrSyntax, p.tok.pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return expr, nil
	case tokIdent:
		return p.parseComparison()
	}
	return nil, fmt.Errorf("%w: expected field or group at position %d", ErrSyntax, p.tok.pos)
}

func (p *parser) parseComparison() (Expr, error) {
	field := p.tok.text
	fieldPos := p.tok.pos
	kind, ok := Fields[field]
	if !ok {
		return nil, fmt.Errorf("%w: unknown field %q at position %d", ErrSyntax, field, fieldPos)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.isKeyword("in") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseIn(field, kind)
	}

	if kind == FieldStringSet {
		return nil, fmt.Errorf("%w: field %q only supports 'in'", ErrSyntax, field)
	}

	op, ok := comparisonOp(p.tok.kind)
	if !ok {
		return nil, fmt.Errorf("%w: expected comparison operator at position %d", ErrSyntax, p.tok.pos)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	value, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	if err := checkComparison(field, kind, op, value); err != nil {
		return nil, err
	}
	return &Compare{Field: field, FieldKind: kind, Op: op, Value: value}, nil
}

func (p *parser) parseIn(field string, kind FieldKind) (Expr, error) {
	if kind == FieldBool {
		return nil, fmt.Errorf("%w: field %q does not support 'in'", ErrSyntax, field)
	}
	if p.tok.kind != tokLBracket {
		return nil, fmt.Errorf("%w: expected '[' after 'in' at position %d", ErrSyntax, p.tok.pos)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var values []Value
	for {
		v, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		if err := checkListElement(field, kind, v); err != nil {
			return nil, err
		}
		values = append(values, v)

		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if p.tok.kind != tokRBracket {
		return nil, fmt.Errorf("%w: expected ']' at position %d", ErrSyntax, p.tok.pos)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &In{Field: field, FieldKind: kind, Values: values}, nil
}

func (p *parser) parseLiteral() (Value, error) {
	switch p.tok.kind {
	case tokNumber:
		v := Value{Kind: ValueInt, Int: p.tok.num}
		return v, p.advance()
	case tokString:
		v := Value{Kind: ValueString, Str: p.tok.text}
		return v, p.advance()
	case tokIdent:
		switch p.tok.text {
		case "true":
			return Value{Kind: ValueBool, Bool: true}, p.advance()
		case "false":
			return Value{Kind: ValueBool, Bool: false}, p.advance()
		}
	}
	return Value{}, fmt.Errorf("%w: expected literal at position %d", ErrSyntax, p.tok.pos)
}

func comparisonOp(kind tokenKind) (Op, bool) {
	switch kind {
	case tokEq:
		return OpEq, true
	case tokNeq:
		return OpNeq, true
	case tokLt:
		return OpLt, true
	case tokLte:
		return OpLte, true
	case tokGt:
		return OpGt, true
	case tokGte:
		return OpGte, true
	}
	return 0, false
}

func checkComparison(field string, kind FieldKind, op Op, v Value) error {
	switch kind {
	case FieldInt:
		if v.Kind != ValueInt {
			return fmt.Errorf("%w: field %q requires an integer literal", ErrSyntax, field)
		}
	case FieldString:
		if v.Kind != ValueString {
			return fmt.Errorf("%w: field %q requires a string literal", ErrSyntax, field)
		}
		if op != OpEq && op != OpNeq {
			return fmt.Errorf("%w: field %q only supports '=' and '!='", ErrSyntax, field)
		}
		if err := checkDayName(field, v.Str); err != nil {
			return err
		}
	case FieldBool:
		if v.Kind != ValueBool {
			return fmt.Errorf("%w: field %q requires true or false", ErrSyntax, field)
		}
		if op != OpEq && op != OpNeq {
			return fmt.Errorf("%w: field %q only supports '=' and '!='", ErrSyntax, field)
		}
	}
	return nil
}

func checkListElement(field string, kind FieldKind, v Value) error {
	switch kind {
	case FieldInt:
		if v.Kind != ValueInt {
			return fmt.Errorf("%w: list for field %q requires integer literals", ErrSyntax, field)
		}
	case FieldString, FieldStringSet:
		if v.Kind != ValueString {
			return fmt.Errorf("%w: list for field %q requires string literals", ErrSyntax, field)
		}
		if err := checkDayName(field, v.Str); err != nil {
			return err
		}
	}
	return nil
}

func checkDayName(field, s string) error {
	if field != "day_of_week" {
		return nil
	}
	for _, d := range dayNames {
		if s == d {
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not a day name (mon..sun)", ErrSyntax, s)
}
