package parser

import (
	"testing"

	"moonlint/internal/ast"
)

func TestStatementKinds(t *testing.T) {
	tests := []struct {
		src  string
		want ast.StmtKind
	}{
		{"local x = 1", ast.StmtLocal},
		{"local a <const>, b <close> = 1, 2", ast.StmtLocal},
		{"x, y = 1, 2", ast.StmtAssign},
		{"t.a[1] = 3", ast.StmtAssign},
		{"x += 1", ast.StmtCompoundAssign},
		{"s ..= 'x'", ast.StmtCompoundAssign},
		{"print('hi')", ast.StmtCall},
		{"obj:method{1}", ast.StmtCall},
		{"require 'mod'", ast.StmtCall},
		{"do end", ast.StmtDo},
		{"while true do break end", ast.StmtWhile},
		{"repeat local z = 1 until z", ast.StmtRepeat},
		{"if a then elseif b then else end", ast.StmtIf},
		{"for i = 1, 10, 2 do end", ast.StmtNumericFor},
		{"for k, v in pairs(t) do end", ast.StmtGenericFor},
		{"function a.b.c:d(x, ...) end", ast.StmtFunction},
		{"local function f() end", ast.StmtLocalFunction},
		{"return 1, 2", ast.StmtReturn},
		{"goto done", ast.StmtGoto},
		{"::done::", ast.StmtLabel},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree := parseOK(t, tt.src)
			stmts := rootStmts(t, tree)
			if len(stmts) != 1 {
				t.Fatalf("got %d statements", len(stmts))
			}
			if got := tree.Stmts.Get(stmts[0]).Kind; got != tt.want {
				t.Fatalf("kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContinueIsContextual(t *testing.T) {
	tree := parseOK(t, "for i = 1, 3 do continue end")
	loop, _ := tree.Stmts.NumericFor(rootStmts(t, tree)[0])
	body := tree.Stmts.Block(loop.Body)
	if len(body.Stmts) != 1 || tree.Stmts.Get(body.Stmts[0]).Kind != ast.StmtContinue {
		t.Fatalf("expected a continue statement")
	}

	tree = parseOK(t, "continue = 1\ncontinue()")
	stmts := rootStmts(t, tree)
	if tree.Stmts.Get(stmts[0]).Kind != ast.StmtAssign || tree.Stmts.Get(stmts[1]).Kind != ast.StmtCall {
		t.Fatalf("continue used as a variable must parse as an expression")
	}
}

func TestFunctionStatementName(t *testing.T) {
	tree := parseOK(t, "function a.b:c(x, y, ...) return x end")
	fn, ok := tree.Stmts.Function(rootStmts(t, tree)[0])
	if !ok {
		t.Fatalf("not a function statement")
	}
	if len(fn.Name.Path) != 2 || fn.Name.Path[1].Text != "b" || fn.Name.Method.Text != "c" {
		t.Fatalf("bad name %+v", fn.Name)
	}
	if len(fn.Func.Params) != 2 || !fn.Func.IsVararg {
		t.Fatalf("bad params %+v", fn.Func)
	}
	if tree.Text(fn.Func.VarargSpan) != "..." {
		t.Fatalf("vararg span = %q", tree.Text(fn.Func.VarargSpan))
	}
}

func TestLocalAttribs(t *testing.T) {
	tree := parseOK(t, "local a <const>, b = 1")
	local, _ := tree.Stmts.Local(rootStmts(t, tree)[0])
	if len(local.Names) != 2 || local.Attribs[0] != "const" || local.Attribs[1] != "" {
		t.Fatalf("bad local %+v", local)
	}
}

func TestIfBlocksAndComments(t *testing.T) {
	src := "if x then\n\t-- nothing yet\nelse\n\tprint(1)\nend"
	tree := parseOK(t, src)
	stmt := rootStmts(t, tree)[0]
	data, _ := tree.Stmts.If(stmt)
	then := tree.Stmts.Block(data.Then)
	if len(then.Stmts) != 0 {
		t.Fatalf("then block must be empty")
	}
	comments := tree.CommentsIn(then.Span)
	if len(comments) != 1 || comments[0].Text != "-- nothing yet" {
		t.Fatalf("comments in then block = %+v", comments)
	}
	if len(tree.CommentsIn(tree.Stmts.Block(data.Else).Span)) != 0 {
		t.Fatalf("else block has no comments")
	}
	if tree.Text(tree.Stmts.Get(stmt).Span) != src {
		t.Fatalf("if span does not cover the statement")
	}
}

func TestSemicolonsAndReturn(t *testing.T) {
	tree := parseOK(t, "local a = 1; local b = 2;; return a;")
	if n := len(rootStmts(t, tree)); n != 3 {
		t.Fatalf("got %d statements", n)
	}
}
