package netlist

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// netlistLexer tokenizes the line-oriented card format. Lines are
// significant: EOL is a real token so the grammar can group fields into
// cards. Comment and directive lines are ordinary field sequences here;
// they are recognized by their leading field during conversion, which
// keeps the line-start semantics exact.
var netlistLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Field", Pattern: `[^\s]+`},
})
