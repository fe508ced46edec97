package parser

import (
	"moonlint/internal/ast"
	"moonlint/internal/diag"
	"moonlint/internal/lexer"
	"moonlint/internal/source"
	"moonlint/internal/token"
)

// maxDepth ограничивает вложенность блоков и выражений.
const maxDepth = 200

type Options struct {
	// MaxErrors ограничивает число ошибок разбора; 0: без ограничения.
	MaxErrors uint
	// Reporter получает копию каждой диагностики; может быть nil.
	Reporter diag.Reporter
}

type Result struct {
	Tree *ast.Tree
	Bag  *diag.Bag
}

// Parser: состояние парсера на один файл
type Parser struct {
	file     *source.File
	tree     *ast.Tree
	toks     []token.Token // весь файл заранее: Luau `continue` требует lookahead
	pos      int
	opts     Options
	reporter diag.Reporter
	errors   uint
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	depth    int
	tooDeep  bool
}

// ParseFile: входная точка для разбора одного файла.
// Дерево возвращается всегда, даже при ошибках разбора.
func ParseFile(file *source.File, opts Options) Result {
	bag := diag.NewBag(0)
	var sink diag.Reporter = diag.BagReporter{Bag: bag}
	if opts.Reporter != nil {
		sink = teeReporter{sink, opts.Reporter}
	}
	reporter := diag.NewDedupReporter(sink)

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	toks := lx.All()

	tree := ast.NewTree(file.ID, file.Content, ast.Hints{
		Stmts: uint(len(toks)/6 + 1),
		Exprs: uint(len(toks)/2 + 1),
	})
	for _, tok := range toks {
		for _, tr := range tok.Leading {
			if tr.IsComment() {
				tree.Comments = append(tree.Comments, ast.Comment{Span: tr.Span, Text: tr.Text})
			}
		}
	}

	p := Parser{
		file:     file,
		tree:     tree,
		toks:     toks,
		opts:     opts,
		reporter: reporter,
		lastSpan: source.Span{File: file.ID},
	}
	tree.Root = p.parseChunk()
	return Result{Tree: tree, Bag: bag}
}

// ParseSource регистрирует src в fs как виртуальный файл и разбирает его.
func ParseSource(fs *source.FileSet, path string, src []byte, opts Options) Result {
	id := fs.AddVirtual(path, src)
	return ParseFile(fs.Get(id), opts)
}

func (p *Parser) parseChunk() ast.BlockID {
	block := p.parseBlock()
	if !p.at(token.EOF) {
		p.err("expected <eof>")
		// добираем остаток, чтобы не потерять операторы после лишнего `end`
		for !p.at(token.EOF) {
			p.advance()
		}
	}
	return block
}

type teeReporter struct{ a, b diag.Reporter }

func (t teeReporter) Report(d diag.Diagnostic) {
	t.a.Report(d)
	t.b.Report(d)
}
