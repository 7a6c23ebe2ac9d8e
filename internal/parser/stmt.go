package parser

import (
	"netuno/internal/ast"
	"netuno/internal/token"
)

// declaration parses one top-level or block-level item: an import, a
// def/sub, a var/global declaration, a public/private marker, or (as a
// fallback) a statement. Mirrors original_source/ntc/source/parser.c's
// declaration()/block() split between declarations and statements.
func (p *Parser) declaration() *ast.Node {
	switch {
	case p.matchKeyword(token.KwImport):
		return p.importDeclaration()
	case p.matchKeyword(token.KwDef):
		return p.functionDeclaration(true)
	case p.matchKeyword(token.KwSub):
		return p.functionDeclaration(false)
	case p.matchKeyword(token.KwVar):
		return p.varDeclaration(ast.KindVar)
	case p.matchKeyword(token.KwGlobal):
		p.consumeKeyword(token.KwVar, "expect 'var' after 'global'")
		return p.varDeclaration(ast.KindGlobal)
	case p.matchKeyword(token.KwPublic):
		return &ast.Node{Class: ast.ClassStmt, Kind: ast.KindPublic, Token: ast.TokenFrom(p.previous())}
	case p.matchKeyword(token.KwPrivate):
		return &ast.Node{Class: ast.ClassStmt, Kind: ast.KindPrivate, Token: ast.TokenFrom(p.previous())}
	}
	return p.statement()
}

func (p *Parser) statement() *ast.Node {
	switch {
	case p.matchKeyword(token.KwFor):
		return p.forStatement()
	case p.matchKeyword(token.KwIf):
		return p.ifStatement()
	case p.matchKeyword(token.KwWhile):
		return p.whileStatement()
	case p.matchKeyword(token.KwUntil):
		return p.untilStatement()
	case p.matchKeyword(token.KwReturn):
		return p.returnStatement()
	case p.matchKeyword(token.KwBreak):
		return &ast.Node{Class: ast.ClassStmt, Kind: ast.KindBreak, Token: ast.TokenFrom(p.previous())}
	case p.matchKeyword(token.KwContinue):
		return &ast.Node{Class: ast.ClassStmt, Kind: ast.KindContinue, Token: ast.TokenFrom(p.previous())}
	case p.matchKeyword(token.KwVar):
		return p.varDeclaration(ast.KindVar)
	case p.checkSymbol("{"):
		return p.blockStatement()
	}
	return p.expressionStatement()
}

func (p *Parser) expressionStatement() *ast.Node {
	expr := p.expression()
	return &ast.Node{Class: ast.ClassStmt, Kind: ast.KindExpr, Token: expr.Token, Left: expr}
}

// blockStatement parses a brace-delimited sequence of declarations; the
// opening '{' must be the current token.
func (p *Parser) blockStatement() *ast.Node {
	open := p.consumeSymbol("{", "expect '{' to start a block")
	var stmts []*ast.Node
	for !p.checkSymbol("}") && !p.isAtEnd() {
		stmts = append(stmts, p.declaration())
	}
	p.consumeSymbol("}", "expect '}' after block")
	return &ast.Node{Class: ast.ClassStmt, Kind: ast.KindBlock, Token: ast.TokenFrom(open), Children: stmts}
}

// singleStatementBlock wraps one statement in a synthetic block, used
// for the "=>" single-expression-body shorthand.
func singleStatementBlock(stmt *ast.Node) *ast.Node {
	return &ast.Node{Class: ast.ClassStmt, Kind: ast.KindBlock, Token: stmt.Token, Children: []*ast.Node{stmt}}
}

func (p *Parser) bodyBlock() *ast.Node {
	if p.matchSymbol("=>") {
		return singleStatementBlock(p.statement())
	}
	return p.blockStatement()
}

func (p *Parser) ifStatement() *ast.Node {
	tok := p.previous()
	condition := p.expression()
	thenBranch := p.bodyBlock()
	var elseBranch *ast.Node
	if p.matchKeyword(token.KwElse) {
		switch {
		case p.matchKeyword(token.KwIf):
			elseBranch = p.ifStatement()
		default:
			elseBranch = p.bodyBlock()
		}
	}
	return &ast.Node{Class: ast.ClassStmt, Kind: ast.KindIf, Token: ast.TokenFrom(tok), Condition: condition, Left: thenBranch, Right: elseBranch}
}

func (p *Parser) whileStatement() *ast.Node {
	tok := p.previous()
	condition := p.expression()
	body := p.bodyBlock()
	return &ast.Node{Class: ast.ClassStmt, Kind: ast.KindWhile, Token: ast.TokenFrom(tok), Condition: condition, Left: body}
}

func (p *Parser) untilStatement() *ast.Node {
	tok := p.previous()
	condition := p.expression()
	body := p.bodyBlock()
	return &ast.Node{Class: ast.ClassStmt, Kind: ast.KindUntil, Token: ast.TokenFrom(tok), Condition: condition, Left: body}
}

func (p *Parser) returnStatement() *ast.Node {
	tok := p.previous()
	var value *ast.Node
	if !p.checkSymbol("}") && !p.isAtEnd() {
		value = p.expression()
	}
	return &ast.Node{Class: ast.ClassStmt, Kind: ast.KindReturn, Token: ast.TokenFrom(tok), Left: value}
}

// forStatement desugars "for i = a to b step s { body }" into
// "{ var i = a; until i == b { body; i = i + s } }" at parse time, so
// the lowering engine never sees "for" at all. The increment is
// expressed as "i == b" / "i = i + s", matching
// original_source/ntc/source/parser.c's forStatement exactly (it loops
// until the counter equals the bound, not while it is less than it).
func (p *Parser) forStatement() *ast.Node {
	tok := p.previous()
	name := p.consume(token.Identifier, "expect an identifier to iterate")
	p.consumeSymbol("=", "expect '=' after the loop variable")
	start := p.expression()
	p.consumeKeyword(token.KwTo, "expect 'to' after the loop start value")
	limit := p.expression()

	var step *ast.Node
	if p.matchKeyword(token.KwStep) {
		step = p.expression()
	} else {
		step = &ast.Node{Class: ast.ClassExpr, Kind: ast.KindLiteral, LiteralType: ast.LiteralI32, Token: ast.Token{Lexeme: "1", Line: name.Line}}
	}

	body := p.bodyBlock()

	variable := func() *ast.Node { return &ast.Node{Class: ast.ClassExpr, Kind: ast.KindVariable, Token: ast.TokenFrom(name)} }
	increment := &ast.Node{
		Class: ast.ClassStmt, Kind: ast.KindExpr, Token: ast.TokenFrom(name),
		Left: &ast.Node{
			Class: ast.ClassExpr, Kind: ast.KindAssign, Token: ast.TokenFrom(name), Left: variable(),
			Right: &ast.Node{Class: ast.ClassExpr, Kind: ast.KindBinary, Token: ast.Token{Lexeme: "+", Line: name.Line}, Left: variable(), Right: step},
		},
	}
	loopBody := &ast.Node{Class: ast.ClassStmt, Kind: ast.KindBlock, Token: body.Token, Children: append(append([]*ast.Node{}, body.Children...), increment)}

	condition := &ast.Node{Class: ast.ClassExpr, Kind: ast.KindBinary, Token: ast.Token{Lexeme: "==", Line: name.Line}, Left: variable(), Right: limit}
	until := &ast.Node{Class: ast.ClassStmt, Kind: ast.KindUntil, Token: ast.TokenFrom(tok), Condition: condition, Left: loopBody}

	decl := &ast.Node{Class: ast.ClassStmt, Kind: ast.KindVar, Token: ast.TokenFrom(name), Right: start}
	return &ast.Node{Class: ast.ClassStmt, Kind: ast.KindBlock, Token: ast.TokenFrom(tok), Children: []*ast.Node{decl, until}}
}

func (p *Parser) typeAnnotation() *ast.Node {
	switch {
	case p.matchKeyword(token.KwBool), p.matchKeyword(token.KwI32), p.matchKeyword(token.KwI64),
		p.matchKeyword(token.KwU32), p.matchKeyword(token.KwU64), p.matchKeyword(token.KwF32),
		p.matchKeyword(token.KwF64), p.matchKeyword(token.KwString), p.matchKeyword(token.KwObject):
	default:
		p.consume(token.Identifier, "expect an identifier as a type")
	}
	return &ast.Node{Class: ast.ClassType, Kind: ast.KindType, Token: ast.TokenFrom(p.previous())}
}

func (p *Parser) parameter() *ast.Node {
	name := p.consume(token.Identifier, "expect a parameter name")
	p.consumeSymbol(":", "expect ':' and a parameter type")
	typ := p.typeAnnotation()
	return &ast.Node{Class: ast.ClassStmt, Kind: ast.KindParam, Token: ast.TokenFrom(name), Right: typ}
}

// functionDeclaration parses both "def" (isFunction=true, has a return
// type and requires returning a value on every path) and "sub"
// (procedure, no return type).
func (p *Parser) functionDeclaration(isFunction bool) *ast.Node {
	name := p.consume(token.Identifier, "expect a function or subroutine name")
	p.consumeSymbol("(", "expect '(' after the name")

	var params []*ast.Node
	if !p.checkSymbol(")") {
		params = append(params, p.parameter())
		for p.matchSymbol(",") {
			params = append(params, p.parameter())
		}
	}
	p.consumeSymbol(")", "expect ')' after parameters")

	var returnType *ast.Node
	if isFunction {
		if p.matchSymbol(":") {
			returnType = p.typeAnnotation()
		}
	} else if p.matchSymbol(":") {
		p.errorf(p.previous(), "a subroutine has no return type")
	}

	body := p.functionBody()

	kind := ast.KindSub
	if isFunction {
		kind = ast.KindDef
	}
	return &ast.Node{Class: ast.ClassStmt, Kind: kind, Token: ast.TokenFrom(name), Children: params, Right: returnType, Left: body}
}

// functionBody parses a def/sub body. Unlike bodyBlock's "=>" shorthand
// (used by if/while/until, where the arrow just introduces a single bare
// statement), a function's arrow body implicitly returns the expression,
// mirroring functionDeclaration's "body = makeNode(NC_STMT, NK_RETURN,
// ...)" wrapping in parser.c.
func (p *Parser) functionBody() *ast.Node {
	if p.matchSymbol("=>") {
		expr := p.expression()
		ret := &ast.Node{Class: ast.ClassStmt, Kind: ast.KindReturn, Token: expr.Token, Left: expr}
		return singleStatementBlock(ret)
	}
	return p.blockStatement()
}

func (p *Parser) varDeclaration(kind ast.Kind) *ast.Node {
	name := p.consume(token.Identifier, "expect a variable name")

	var typ, init *ast.Node
	if p.matchSymbol(":") {
		typ = p.typeAnnotation()
	}
	if p.matchSymbol("=") {
		init = p.expression()
	}
	if typ == nil && init == nil {
		p.errorf(p.previous(), "a variable declaration needs a type or an initializer")
	}
	return &ast.Node{Class: ast.ClassStmt, Kind: kind, Token: ast.TokenFrom(name), Left: typ, Right: init}
}

func (p *Parser) importDeclaration() *ast.Node {
	tok := p.previous()
	var path *ast.Node
	if p.check(token.LiteralString) {
		str := p.advance()
		path = &ast.Node{Class: ast.ClassExpr, Kind: ast.KindLiteral, LiteralType: ast.LiteralString, Token: ast.TokenFrom(str)}
	} else {
		path = p.packagePath()
	}
	return &ast.Node{Class: ast.ClassStmt, Kind: ast.KindImport, Token: ast.TokenFrom(tok), Left: path}
}

// packagePath parses a dotted module path (e.g. "string.utf8") as a
// right-leaning chain of "get" nodes, mirroring the original parser's
// packagePath().
func (p *Parser) packagePath() *ast.Node {
	name := p.consume(token.Identifier, "expect a module identifier")
	node := &ast.Node{Class: ast.ClassExpr, Kind: ast.KindVariable, Token: ast.TokenFrom(name)}
	for p.matchSymbol(".") {
		member := p.consume(token.Identifier, "expect a module identifier")
		node = &ast.Node{Class: ast.ClassExpr, Kind: ast.KindGet, Token: ast.TokenFrom(member), Left: node}
	}
	return node
}
