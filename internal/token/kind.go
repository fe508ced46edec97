package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	Number
	String // quoted or long-bracket string, Text keeps the delimiters

	KwAnd
	KwBreak
	KwDo
	KwElse
	KwElseif
	KwEnd
	KwFalse
	KwFor
	KwFunction
	KwGoto
	KwIf
	KwIn
	KwLocal
	KwNil
	KwNot
	KwOr
	KwRepeat
	KwReturn
	KwThen
	KwTrue
	KwUntil
	KwWhile

	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	SlashSlash  // //
	Percent     // %
	Caret       // ^
	Hash        // #
	Amp         // &
	Tilde       // ~
	Pipe        // |
	Shl         // <<
	Shr         // >>
	EqEq        // ==
	TildeEq     // ~=
	LtEq        // <=
	GtEq        // >=
	Lt          // <
	Gt          // >
	Assign      // =
	LParen      // (
	RParen      // )
	LBrace      // {
	RBrace      // }
	LBracket    // [
	RBracket    // ]
	ColonColon  // ::
	Semicolon   // ;
	Colon       // :
	Comma       // ,
	Dot         // .
	DotDot      // ..
	DotDotDot   // ...
	PlusAssign  // +=
	MinusAssign // -=
	StarAssign  // *=
	SlashAssign // /=
	SlashSlashAssign
	PercentAssign
	CaretAssign
	DotDotAssign
)

var kindText = map[Kind]string{
	Invalid: "invalid", EOF: "<eof>", Ident: "identifier", Number: "number", String: "string",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", SlashSlash: "//", Percent: "%", Caret: "^",
	Hash: "#", Amp: "&", Tilde: "~", Pipe: "|", Shl: "<<", Shr: ">>", EqEq: "==", TildeEq: "~=",
	LtEq: "<=", GtEq: ">=", Lt: "<", Gt: ">", Assign: "=", LParen: "(", RParen: ")",
	LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]", ColonColon: "::", Semicolon: ";",
	Colon: ":", Comma: ",", Dot: ".", DotDot: "..", DotDotDot: "...",
	PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
	SlashSlashAssign: "//=", PercentAssign: "%=", CaretAssign: "^=", DotDotAssign: "..=",
}

func (k Kind) String() string {
	if s, ok := kindText[k]; ok {
		return s
	}
	for word, kw := range keywords {
		if kw == k {
			return word
		}
	}
	return "unknown"
}

// IsCompoundAssign reports +=, -= and the other Luau compound operators.
func (k Kind) IsCompoundAssign() bool {
	return k >= PlusAssign && k <= DotDotAssign
}
