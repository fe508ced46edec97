package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"moonlint/internal/token"
)

// scanString сканирует "..." или '...'. Escape-последовательности только
// пропускаются; декодирование делает Unquote.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая кавычка

	closed := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			closed = true
			break
		}
		if b == '\n' {
			break
		}
		if b == '\\' {
			lx.cursor.Bump()
			// \<newline> допустим внутри строки
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	if !closed {
		lx.report(sp, "unfinished string")
	}
	return token.Token{Kind: token.String, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) scanLongString() token.Token {
	start := lx.cursor.Mark()
	level := lx.longBracketLevel()
	if !lx.skipLongBracket(level) {
		lx.report(lx.cursor.SpanFrom(start), "unfinished long string")
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.String, Span: sp, Text: lx.text(sp)}
}

// ErrUnterminated is returned by Unquote for a literal missing its closing delimiter.
var ErrUnterminated = errors.New("unterminated string literal")

// Unquote decodes a string token text (quoted or long-bracket) into its value.
func Unquote(raw string) (string, error) {
	if raw == "" {
		return "", ErrUnterminated
	}
	if raw[0] == '[' {
		return unquoteLong(raw)
	}
	quote := raw[0]
	if len(raw) < 2 || raw[len(raw)-1] != quote {
		return "", ErrUnterminated
	}
	body := raw[1 : len(raw)-1]
	if !strings.Contains(body, `\`) {
		return body, nil
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return sb.String(), errors.New("trailing backslash in string")
		}
		switch e := body[i]; e {
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n', '\n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case '\\', '"', '\'':
			sb.WriteByte(e)
		case 'z':
			for i+1 < len(body) && (isSpace(body[i+1]) || body[i+1] == '\n') {
				i++
			}
		case 'x':
			if i+2 >= len(body) || !isHex(body[i+1]) || !isHex(body[i+2]) {
				return sb.String(), errors.New(`\x escape needs two hex digits`)
			}
			v, _ := strconv.ParseUint(body[i+1:i+3], 16, 8)
			sb.WriteByte(byte(v))
			i += 2
		case 'u':
			if i+1 >= len(body) || body[i+1] != '{' {
				return sb.String(), errors.New(`\u escape needs '{'`)
			}
			end := strings.IndexByte(body[i:], '}')
			if end < 0 {
				return sb.String(), errors.New(`unterminated \u escape`)
			}
			v, err := strconv.ParseUint(body[i+2:i+end], 16, 32)
			if err != nil || v > utf8.MaxRune {
				return sb.String(), fmt.Errorf(`invalid \u escape %q`, body[i-1:i+end+1])
			}
			sb.WriteRune(rune(v))
			i += end
		default:
			if !isDec(e) {
				return sb.String(), fmt.Errorf(`invalid escape sequence '\%c'`, e)
			}
			j := i
			for j < len(body) && j < i+3 && isDec(body[j]) {
				j++
			}
			v, _ := strconv.Atoi(body[i:j])
			if v > 255 {
				return sb.String(), errors.New("decimal escape too large")
			}
			sb.WriteByte(byte(v))
			i = j - 1
		}
	}
	return sb.String(), nil
}

func unquoteLong(raw string) (string, error) {
	level := 0
	for level+1 < len(raw) && raw[level+1] == '=' {
		level++
	}
	open := level + 2
	closer := "]" + strings.Repeat("=", level) + "]"
	if len(raw) < 2*open || !strings.HasSuffix(raw, closer) {
		return "", ErrUnterminated
	}
	body := raw[open : len(raw)-open]
	// первый перевод строки сразу после открывающей скобки пропускается
	body = strings.TrimPrefix(body, "\r")
	body = strings.TrimPrefix(body, "\n")
	return body, nil
}
