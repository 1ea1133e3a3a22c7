package parser

import (
	"fmt"

	"github.com/ceelang/cee/pkg/compiler/ast"
	"github.com/ceelang/cee/pkg/compiler/lexer"
)

// Parser builds a program tree from the token stream. The grammar:
//
//	program      := statement*
//	statement    := assignment ';' | print_stmt ';'
//	assignment   := IDENT '=' expression
//	print_stmt   := 'print' expression
//	expression   := term (('+' | '-') term)*
//	term         := factor (('*' | '/') factor)*
//	factor       := ('+' | '-') factor | primary
//	primary      := NUMBER | IDENT | '(' expression ')'
//
// Both expression levels are left-associative.
type Parser struct {
	scanner *lexer.Scanner
	curTok  lexer.Token
}

// NewParser creates a parser reading from the given scanner.
func NewParser(s *lexer.Scanner) *Parser {
	p := &Parser{scanner: s}
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curTok = p.scanner.Next()
}

// Parse consumes the whole token stream and returns the program tree.
func (p *Parser) Parse() (*ast.Program, error) {
	pos := ast.At(p.curTok.Line, p.curTok.Column)
	list := &ast.StatementList{Pos: pos}

	for p.curTok.Kind != lexer.KindEOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		list.Append(stmt)
	}

	return &ast.Program{Pos: pos, Statements: list}, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curTok.Kind {
	case lexer.KindIdentifier:
		return p.parseAssignment()
	case lexer.KindPrint:
		return p.parsePrint()
	default:
		return nil, p.errorf("expected a statement but found %s", p.curTok.Kind)
	}
}

func (p *Parser) parseAssignment() (ast.Statement, error) {
	ident := p.curTok
	p.nextToken()

	if p.curTok.Kind != lexer.KindAssign {
		return nil, p.errorf("expected '=' after %q but found %s", ident.Lexeme, p.curTok.Kind)
	}
	p.nextToken()

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}

	pos := ast.At(ident.Line, ident.Column)
	return &ast.Assignment{
		Pos:    pos,
		Target: &ast.Variable{Pos: pos, Name: ident.Lexeme},
		Value:  value,
	}, nil
}

func (p *Parser) parsePrint() (ast.Statement, error) {
	tok := p.curTok
	p.nextToken()

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}

	return &ast.Print{Pos: ast.At(tok.Line, tok.Column), Value: value}, nil
}

func (p *Parser) expectSemicolon() error {
	if p.curTok.Kind != lexer.KindSemicolon {
		return p.errorf("expected ';' but found %s", p.curTok.Kind)
	}
	p.nextToken()
	return nil
}

func (p *Parser) parseExpression() (ast.Expr, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.curTok.Kind == lexer.KindPlus || p.curTok.Kind == lexer.KindMinus {
		opTok := p.curTok
		p.nextToken()

		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryExpr{
			Pos: ast.At(opTok.Line, opTok.Column),
			Lhs: lhs,
			Op:  operatorFor(opTok.Kind),
			Rhs: rhs,
		}
	}

	return lhs, nil
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	lhs, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.curTok.Kind == lexer.KindStar || p.curTok.Kind == lexer.KindSlash {
		opTok := p.curTok
		p.nextToken()

		rhs, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryExpr{
			Pos: ast.At(opTok.Line, opTok.Column),
			Lhs: lhs,
			Op:  operatorFor(opTok.Kind),
			Rhs: rhs,
		}
	}

	return lhs, nil
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	if p.curTok.Kind == lexer.KindPlus || p.curTok.Kind == lexer.KindMinus {
		opTok := p.curTok
		p.nextToken()

		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{
			Pos:     ast.At(opTok.Line, opTok.Column),
			Op:      operatorFor(opTok.Kind),
			Operand: operand,
		}, nil
	}

	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.curTok.Kind {
	case lexer.KindNumber:
		tok := p.curTok
		p.nextToken()
		return &ast.Number{Pos: ast.At(tok.Line, tok.Column), Lexeme: tok.Lexeme}, nil

	case lexer.KindIdentifier:
		tok := p.curTok
		p.nextToken()
		return &ast.Variable{Pos: ast.At(tok.Line, tok.Column), Name: tok.Lexeme}, nil

	case lexer.KindLParen:
		p.nextToken()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.curTok.Kind != lexer.KindRParen {
			return nil, p.errorf("expected ')' but found %s", p.curTok.Kind)
		}
		p.nextToken()
		return expr, nil

	default:
		return nil, p.errorf("expected an expression but found %s", p.curTok.Kind)
	}
}

func (p *Parser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("Syntax error at %d:%d; %s", p.curTok.Line, p.curTok.Column, msg)
}

func operatorFor(k lexer.Kind) ast.Operator {
	switch k {
	case lexer.KindPlus:
		return ast.Plus
	case lexer.KindMinus:
		return ast.Minus
	case lexer.KindStar:
		return ast.Mul
	default:
		return ast.Div
	}
}
