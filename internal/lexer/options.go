package lexer

import (
	"moonlint/internal/diag"
	"moonlint/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) report(sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, diag.ParseError, sp, msg).Emit()
	}
}
