package parser

import "github.com/midbel/monkey/token"

// Seven ranks, lowest to highest. Prefix rank is consulted only inside
// prefix parsing and never appears in the table below.
const (
	Lowest int = iota
	Equals
	LessGreater
	Sum
	Product
	Prefix
	Call
)

// precedences maps a token kind to its infix binding power. Any kind
// absent from the map defaults to Lowest.
var precedences = map[token.Kind]int{
	token.Equal:       Equals,
	token.NotEqual:    Equals,
	token.LessThan:    LessGreater,
	token.GreaterThan: LessGreater,
	token.Plus:        Sum,
	token.Minus:       Sum,
	token.Asterisk:    Product,
	token.Slash:       Product,
	token.LeftParen:   Call,
	token.LeftBracket: Call,
}

func precedenceOf(kind token.Kind) int {
	if p, ok := precedences[kind]; ok {
		return p
	}
	return Lowest
}
