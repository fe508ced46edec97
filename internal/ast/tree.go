package ast

import (
	"bytes"

	"moonlint/internal/source"
)

type Hints struct{ Stmts, Exprs uint }

// Comment is a `--` or `--[[ ]]` comment kept for rules that care about them.
type Comment struct {
	Span source.Span
	Text string
}

// Tree is one parsed source unit. Spans of every node are byte offsets into Source.
type Tree struct {
	File     source.FileID
	Source   []byte
	Exprs    *Exprs
	Stmts    *Stmts
	Root     BlockID
	Comments []Comment
}

// NewTree returns an empty tree for file; the parser fills it and sets Root.
func NewTree(file source.FileID, src []byte, hints Hints) *Tree {
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 9
	}
	return &Tree{
		File:   file,
		Source: src,
		Exprs:  NewExprs(hints.Exprs),
		Stmts:  NewStmts(hints.Stmts),
	}
}

// Text returns the source text covered by span.
func (t *Tree) Text(span source.Span) string {
	if span.End > uint32(len(t.Source)) || span.Start > span.End { //nolint:gosec // len is bounded by FileSet
		return ""
	}
	return string(t.Source[span.Start:span.End])
}

// ExprText is Text for an expression node.
func (t *Tree) ExprText(id ExprID) string {
	e := t.Exprs.Get(id)
	if e == nil {
		return ""
	}
	return t.Text(e.Span)
}

// SameLine reports whether no newline lies between byte offsets a and b.
func (t *Tree) SameLine(a, b uint32) bool {
	if a > b {
		a, b = b, a
	}
	if b > uint32(len(t.Source)) { //nolint:gosec // len is bounded by FileSet
		b = uint32(len(t.Source)) //nolint:gosec // same
	}
	if a > b {
		return false
	}
	return !bytes.Contains(t.Source[a:b], []byte{'\n'})
}

// CommentsIn returns the comments lying inside span.
func (t *Tree) CommentsIn(span source.Span) []Comment {
	var out []Comment
	for _, c := range t.Comments {
		if span.Contains(c.Span) {
			out = append(out, c)
		}
	}
	return out
}

// DottedPath returns the name path of a chain of dotted member accesses rooted
// at a plain name, e.g. ["math", "ceil"] for math.ceil. Parentheses, brackets
// and method calls break the chain.
func (t *Tree) DottedPath(id ExprID) ([]string, bool) {
	var rev []string
	for {
		expr := t.Exprs.Get(id)
		if expr == nil {
			return nil, false
		}
		switch expr.Kind {
		case ExprName:
			name, _ := t.Exprs.Name(id)
			rev = append(rev, name.Name)
			out := make([]string, len(rev))
			for i, s := range rev {
				out[len(rev)-1-i] = s
			}
			return out, true
		case ExprMember:
			member, _ := t.Exprs.Member(id)
			rev = append(rev, member.Field.Text)
			id = member.Target
		default:
			return nil, false
		}
	}
}

// RootName returns the plain name at the bottom of a member/index/call chain.
func (t *Tree) RootName(id ExprID) (Name, bool) {
	for {
		expr := t.Exprs.Get(id)
		if expr == nil {
			return Name{}, false
		}
		switch expr.Kind {
		case ExprName:
			name, _ := t.Exprs.Name(id)
			return Name{Text: name.Name, Span: expr.Span}, true
		case ExprMember:
			member, _ := t.Exprs.Member(id)
			id = member.Target
		case ExprIndex:
			index, _ := t.Exprs.Index(id)
			id = index.Target
		default:
			return Name{}, false
		}
	}
}
