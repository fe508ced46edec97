// Package token defines lexical token kinds and trivia for Lua source.
// Invariants:
//   - Token.Text is the exact source text covered by Token.Span.
//   - Comments and whitespace never appear in the main token stream; they are
//     attached to the following token as leading Trivia.
//   - `continue` is lexed as an identifier; the parser decides whether it is
//     a statement (Luau treats it as a contextual keyword).
package token
