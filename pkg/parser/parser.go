// Package parser turns a pkg/lexer token stream into pkg/ast nodes.
//
// spec.md §1 frames the parser as an external collaborator, "specified
// only by the tokens it consumes and the node kinds it constructs" — no
// grammar is pinned down beyond the token/AST vocabulary and the six
// literal end-to-end scenarios. This is a direct hand-written
// recursive-descent consumer of that token stream, grounded in shape (one
// parseX method per grammar rule, a single current-token field, an
// expect helper) on the teacher's pkg/parser/statements_parser.go, without
// its tree-sitter dependency (see DESIGN.md for why that dependency was
// dropped rather than carried).
package parser

import (
	"fmt"
	"io"

	"mython/interpreter-go/pkg/ast"
	"mython/interpreter-go/pkg/lexer"
	"mython/interpreter-go/pkg/runtime"
	"mython/interpreter-go/pkg/token"
)

// ParseError is a message-only parse failure. spec.md §1's Non-goals rule
// out user-visible source-location diagnostics, so unlike the teacher's
// ParseError (which carries a SourceLocation), this one carries only text.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }

func errf(format string, args ...any) error {
	return &ParseError{Message: fmt.Sprintf("parser: "+format, args...)}
}

// Parser is a single-lookahead recursive-descent parser. It is not safe
// for concurrent use, matching the lexer it wraps.
type Parser struct {
	lex     *lexer.Lexer
	classes map[string]*runtime.ClassValue
}

// New constructs a Parser reading from r.
func New(r io.Reader) *Parser {
	return &Parser{
		lex:     lexer.New(r),
		classes: make(map[string]*runtime.ClassValue),
	}
}

// Parse reads all of r and returns the program as a single Compound.
func Parse(r io.Reader) (*ast.Compound, error) {
	p := New(r)
	stmts, err := p.parseStatementList(func(t token.Token) bool { return t.Kind == token.Eof })
	if err != nil {
		return nil, err
	}
	return &ast.Compound{Args: stmts}, nil
}

func (p *Parser) cur() token.Token { return p.lex.CurrentToken() }

func (p *Parser) advance() token.Token { return p.lex.NextToken() }

func (p *Parser) isChar(c byte) bool {
	t := p.cur()
	return t.Kind == token.Char && t.ChVal == c
}

func (p *Parser) expect(k token.Kind) error {
	if p.cur().Kind != k {
		return errf("expected %s, got %s", k, p.cur())
	}
	p.advance()
	return nil
}

func (p *Parser) expectChar(c byte) error {
	if !p.isChar(c) {
		return errf("expected %q, got %s", c, p.cur())
	}
	p.advance()
	return nil
}

// parseStatementList consumes statements (skipping the blank separator
// Newlines between them) until stop reports true on the lookahead token.
func (p *Parser) parseStatementList(stop func(token.Token) bool) ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !stop(p.cur()) {
		if p.cur().Kind == token.Newline {
			p.advance()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// parseColonBlock parses ":" Newline Indent <statements> Dedent — the
// shared suite shape used by if/else, class, and def bodies.
func (p *Parser) parseColonBlock() (*ast.Compound, error) {
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if err := p.expect(token.Newline); err != nil {
		return nil, err
	}
	if err := p.expect(token.Indent); err != nil {
		return nil, err
	}
	stmts, err := p.parseStatementList(func(t token.Token) bool {
		return t.Kind == token.Dedent || t.Kind == token.Eof
	})
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Dedent); err != nil {
		return nil, err
	}
	return &ast.Compound{Args: stmts}, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur().Kind {
	case token.Print:
		return p.parsePrint()
	case token.If:
		return p.parseIf()
	case token.Class:
		return p.parseClass()
	case token.Return:
		return p.parseReturn()
	case token.Id:
		return p.parseIdentifierStatement()
	default:
		return nil, errf("unexpected token %s at start of statement", p.cur())
	}
}

func (p *Parser) parsePrint() (ast.Statement, error) {
	p.advance()
	args, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}
	return &ast.Print{Args: args}, nil
}

func (p *Parser) parseExpressionList() ([]ast.Statement, error) {
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	args := []ast.Statement{first}
	for p.isChar(',') {
		p.advance()
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	thenBlock, err := p.parseColonBlock()
	if err != nil {
		return nil, err
	}
	ifElse := &ast.IfElse{Cond: cond, Then: thenBlock}
	if p.cur().Kind == token.Else {
		p.advance()
		elseBlock, err := p.parseColonBlock()
		if err != nil {
			return nil, err
		}
		ifElse.Else = elseBlock
	}
	return ifElse, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	p.advance()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Expr: expr}, nil
}

// parseClass parses "class Name ['(' Parent ')'] :" and its suite of
// method definitions, registering the resulting *runtime.ClassValue so
// NewInstance expressions can resolve it by name. The name is registered
// as soon as the header is parsed, so the class's own method bodies may
// instantiate it; the registered value is filled in once its methods are
// parsed.
func (p *Parser) parseClass() (ast.Statement, error) {
	p.advance()
	if p.cur().Kind != token.Id {
		return nil, errf("expected class name, got %s", p.cur())
	}
	name := p.cur().StrVal
	p.advance()

	var parent *runtime.ClassValue
	if p.isChar('(') {
		p.advance()
		if p.cur().Kind != token.Id {
			return nil, errf("expected parent class name, got %s", p.cur())
		}
		parentName := p.cur().StrVal
		cls, ok := p.classes[parentName]
		if !ok {
			return nil, errf("parent class %q is not defined before %q", parentName, name)
		}
		parent = cls
		p.advance()
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
	}

	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if err := p.expect(token.Newline); err != nil {
		return nil, err
	}
	if err := p.expect(token.Indent); err != nil {
		return nil, err
	}
	cls := &runtime.ClassValue{Name: name, Parent: parent}
	p.classes[name] = cls
	var methods []*runtime.Method
	for p.cur().Kind == token.Def {
		m, err := p.parseMethod()
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if err := p.expect(token.Dedent); err != nil {
		return nil, err
	}

	*cls = *runtime.NewClass(name, methods, parent)
	return &ast.ClassDefinition{Class: cls}, nil
}

func (p *Parser) parseMethod() (*runtime.Method, error) {
	p.advance() // 'def'
	if p.cur().Kind != token.Id {
		return nil, errf("expected method name, got %s", p.cur())
	}
	name := p.cur().StrVal
	p.advance()
	if err := p.expectChar('('); err != nil {
		return nil, err
	}
	var params []string
	if !p.isChar(')') {
		for {
			if p.cur().Kind != token.Id {
				return nil, errf("expected parameter name, got %s", p.cur())
			}
			params = append(params, p.cur().StrVal)
			p.advance()
			if p.isChar(',') {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expectChar(')'); err != nil {
		return nil, err
	}
	// A leading "self" is not a formal parameter: ClassInstance.Call binds
	// it itself, and arity is checked against the call's explicit arguments.
	if len(params) > 0 && params[0] == "self" {
		params = params[1:]
	}
	body, err := p.parseColonBlock()
	if err != nil {
		return nil, err
	}
	return &runtime.Method{Name: name, Params: params, Body: &ast.MethodBody{Body: body}}, nil
}

// parseIdentifierStatement handles the three statement shapes that begin
// with an identifier: plain assignment, field assignment, and a bare
// expression evaluated for its side effect (e.g. a method call).
func (p *Parser) parseIdentifierStatement() (ast.Statement, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.isChar('=') {
		return expr, nil
	}
	target, ok := expr.(*ast.VariableValue)
	if !ok {
		return nil, errf("left side of '=' must be a variable or field")
	}
	p.advance()
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if len(target.Dotted) == 0 {
		return &ast.Assignment{Var: target.Name, Rv: rhs}, nil
	}
	field := target.Dotted[len(target.Dotted)-1]
	objectPath := append([]string{target.Name}, target.Dotted[:len(target.Dotted)-1]...)
	return &ast.FieldAssignment{
		Object: ast.NewDottedVariableValue(objectPath),
		Field:  field,
		Rv:     rhs,
	}, nil
}

//-----------------------------------------------------------------------------
// Expressions, precedence low to high:
//   or  ->  and  ->  not  ->  comparison  ->  additive  ->  term  ->  unary  ->  postfix/primary
//-----------------------------------------------------------------------------

func (p *Parser) parseExpression() (ast.Statement, error) { return p.parseOr() }

func (p *Parser) parseOr() (ast.Statement, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.Or {
		p.advance()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = &ast.Or{BinaryOperation: ast.BinaryOperation{Lhs: lhs, Rhs: rhs}}
	}
	return lhs, nil
}

func (p *Parser) parseAnd() (ast.Statement, error) {
	lhs, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.And {
		p.advance()
		rhs, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		lhs = &ast.And{BinaryOperation: ast.BinaryOperation{Lhs: lhs, Rhs: rhs}}
	}
	return lhs, nil
}

func (p *Parser) parseNot() (ast.Statement, error) {
	if p.cur().Kind == token.Not {
		p.advance()
		arg, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.Not{Arg: arg}, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (ast.Statement, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	cmp, matched := p.matchComparator()
	if !matched {
		return lhs, nil
	}
	p.advance()
	rhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &ast.Comparison{BinaryOperation: ast.BinaryOperation{Lhs: lhs, Rhs: rhs}, Cmp: cmp}, nil
}

// matchComparator inspects (without consuming) the lookahead for one of the
// six comparators: the compound tokens Eq/NotEq/LessOrEq/GreaterOrEq, or a
// bare '<'/'>' Char.
func (p *Parser) matchComparator() (ast.Comparator, bool) {
	switch p.cur().Kind {
	case token.Eq:
		return ast.CmpEq, true
	case token.NotEq:
		return ast.CmpNotEq, true
	case token.LessOrEq:
		return ast.CmpLessOrEq, true
	case token.GreaterOrEq:
		return ast.CmpGreaterOrEq, true
	case token.Char:
		switch p.cur().ChVal {
		case '<':
			return ast.CmpLess, true
		case '>':
			return ast.CmpGreater, true
		}
	}
	return 0, false
}

func (p *Parser) parseAdditive() (ast.Statement, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.isChar('+') || p.isChar('-') {
		op := p.cur().ChVal
		p.advance()
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		binop := ast.BinaryOperation{Lhs: lhs, Rhs: rhs}
		if op == '+' {
			lhs = &ast.Add{BinaryOperation: binop}
		} else {
			lhs = &ast.Sub{BinaryOperation: binop}
		}
	}
	return lhs, nil
}

func (p *Parser) parseTerm() (ast.Statement, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isChar('*') || p.isChar('/') {
		op := p.cur().ChVal
		p.advance()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		binop := ast.BinaryOperation{Lhs: lhs, Rhs: rhs}
		if op == '*' {
			lhs = &ast.Mult{BinaryOperation: binop}
		} else {
			lhs = &ast.Div{BinaryOperation: binop}
		}
	}
	return lhs, nil
}

// parseUnary handles a leading '-'. spec.md §4.1 says the lexer "does not
// fuse" a '-' with a following Number into a negative literal — that fusion
// is the parser's job, expressed here as `0 - operand` through the existing
// Sub node rather than a new AST node spec.md never names.
func (p *Parser) parseUnary() (ast.Statement, error) {
	if p.isChar('-') {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		zero := &ast.Literal{Value: runtime.Own(runtime.Number(0))}
		return &ast.Sub{BinaryOperation: ast.BinaryOperation{Lhs: zero, Rhs: operand}}, nil
	}
	return p.parsePostfix()
}

// parsePostfix handles identifier-rooted chains: a bare Id, dotted field
// access on it, a call (class instantiation or the str() builtin), or a
// chain of method calls. Field access is only ever a chain of plain names
// rooted at an identifier (ast.VariableValue's shape); once the chain
// produces a method call, only further method calls may follow it.
func (p *Parser) parsePostfix() (ast.Statement, error) {
	if p.cur().Kind != token.Id {
		return p.parsePrimary()
	}
	name := p.cur().StrVal
	p.advance()

	if p.isChar('(') {
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return p.resolveCall(name, args)
	}

	var dotted []string
	for p.isChar('.') {
		p.advance()
		if p.cur().Kind != token.Id {
			return nil, errf("expected identifier after '.', got %s", p.cur())
		}
		seg := p.cur().StrVal
		p.advance()
		if p.isChar('(') {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			receiver := ast.NewDottedVariableValue(append([]string{name}, dotted...))
			return p.parseMethodCallChain(&ast.MethodCall{Receiver: receiver, Name: seg, Args: args})
		}
		dotted = append(dotted, seg)
	}
	return ast.NewDottedVariableValue(append([]string{name}, dotted...)), nil
}

// parseMethodCallChain allows repeated ".name(args)" after an initial
// method call, e.g. `a.next().value()`.
func (p *Parser) parseMethodCallChain(recv ast.Statement) (ast.Statement, error) {
	for p.isChar('.') {
		p.advance()
		if p.cur().Kind != token.Id {
			return nil, errf("expected method name after '.', got %s", p.cur())
		}
		name := p.cur().StrVal
		p.advance()
		if !p.isChar('(') {
			return nil, errf("expected '(' after %q in call chain", name)
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		recv = &ast.MethodCall{Receiver: recv, Name: name, Args: args}
	}
	return recv, nil
}

func (p *Parser) parseArgs() ([]ast.Statement, error) {
	if err := p.expectChar('('); err != nil {
		return nil, err
	}
	var args []ast.Statement
	if !p.isChar(')') {
		list, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		args = list
	}
	if err := p.expectChar(')'); err != nil {
		return nil, err
	}
	return args, nil
}

// resolveCall distinguishes the str() builtin from a class instantiation.
// Free functions do not otherwise exist in the Language (spec.md §1).
func (p *Parser) resolveCall(name string, args []ast.Statement) (ast.Statement, error) {
	if name == "str" {
		if len(args) != 1 {
			return nil, errf("str() takes exactly one argument, got %d", len(args))
		}
		return &ast.Stringify{Arg: args[0]}, nil
	}
	cls, ok := p.classes[name]
	if !ok {
		return nil, errf("%q is not a defined class", name)
	}
	return &ast.NewInstance{Class: cls, Args: args}, nil
}

func (p *Parser) parsePrimary() (ast.Statement, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.Number:
		p.advance()
		return &ast.Literal{Value: runtime.Own(runtime.Number(tok.NumVal))}, nil
	case token.String:
		p.advance()
		return &ast.Literal{Value: runtime.Own(runtime.String(tok.StrVal))}, nil
	case token.True:
		p.advance()
		return &ast.Literal{Value: runtime.Own(runtime.Bool(true))}, nil
	case token.False:
		p.advance()
		return &ast.Literal{Value: runtime.Own(runtime.Bool(false))}, nil
	case token.None:
		p.advance()
		return &ast.Literal{Value: runtime.None()}, nil
	case token.Char:
		if tok.ChVal == '(' {
			p.advance()
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expectChar(')'); err != nil {
				return nil, err
			}
			return expr, nil
		}
	}
	return nil, errf("unexpected token %s", tok)
}
