package script

import (
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"([^"\\]|\\.)*"`},
		{Name: "Float", Pattern: `-?\d+\.\d+`},
		{Name: "Int", Pattern: `-?\d+`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.]*`},
		{Name: "Punct", Pattern: `[(),=*\[\]]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser = participle.MustBuild[Script](
		participle.Lexer(scriptLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
		participle.CaseInsensitive("Ident"),
		participle.UseLookahead(2),
	)
)

type (
	// Script is a parsed sequence of commands.
	Script struct {
		Commands []*Command `parser:"@@*"`
	}

	// Command is a single instruction. Exactly one field is set.
	Command struct {
		Pos lexer.Position

		DB         *string    `parser:"  'db' @Ident"`
		Dialect    *string    `parser:"| 'dialect' @Ident"`
		InMode     *string    `parser:"| 'inmode' @Ident"`
		Hint       *Hint      `parser:"| 'hint' @@"`
		Disable    *string    `parser:"| 'disable' @('meltdown' | 'spacing')"`
		Select     *Select    `parser:"| 'select' @@"`
		From       *TableRef  `parser:"| 'from' @@"`
		Table      *TableRef  `parser:"| 'table' @@"`
		Column     *ColumnRef `parser:"| 'column' @@"`
		Where      bool       `parser:"| @'where'"`
		OrderBy    *OrderBy   `parser:"| 'order' 'by' @@"`
		GroupBy    *string    `parser:"| 'group' 'by' @Ident"`
		Having     *string    `parser:"| 'having' @String"`
		Text       *string    `parser:"| 'text' @String"`
		Expr       *Expr      `parser:"| 'expr' @@"`
		IncludeAll bool       `parser:"| @'includeall'"`
		ExcludeAll bool       `parser:"| @'excludeall'"`
		Operator   *string    `parser:"| @('and' | 'or' | 'not' | '(' | ')')"`
		Unary      *Unary     `parser:"| @@"`
		Compare    *Compare   `parser:"| @@"`
		Set        *Set       `parser:"| 'set' @@"`
		SetIn      *Set       `parser:"| 'setin' @@"`
	}

	// Hint sets a routing hint.
	Hint struct {
		Shard  *string     `parser:"  'shard' @(Ident | Int)"`
		Value  *Value      `parser:"| 'value' @@"`
		Column *ColumnHint `parser:"| @@"`
	}

	// ColumnHint is a routing value for a column.
	ColumnHint struct {
		Name  string `parser:"@Ident '='"`
		Value *Value `parser:"@@"`
	}

	// Select lists the selected columns.
	Select struct {
		Columns []*ColumnRef `parser:"@@ ( ',' @@ )*"`
	}

	// ColumnRef is a column with an optional alias.
	ColumnRef struct {
		Name  string  `parser:"@(Ident | '*')"`
		Alias *string `parser:"( 'as' @Ident )?"`
	}

	// TableRef is a logical table with optional shard targeting and alias.
	TableRef struct {
		Name       string  `parser:"@Ident"`
		Shard      *string `parser:"( 'shard' @(Ident | Int) )?"`
		ShardValue *Value  `parser:"( 'shardvalue' @@ )?"`
		Alias      *string `parser:"( 'as' @Ident )?"`
	}

	// OrderBy is an ORDER BY column.
	OrderBy struct {
		Column    string  `parser:"@Ident"`
		Direction *string `parser:"@('asc' | 'desc')?"`
	}

	// Expr is a free-form expression with an optional validity binding.
	Expr struct {
		Template string  `parser:"@String"`
		When     *string `parser:"( 'when' @('true' | 'false') )?"`
		Nullable *Value  `parser:"( 'nullable' @@ )?"`
	}

	// Unary is an IS NULL or IS NOT NULL check.
	Unary struct {
		Op     string  `parser:"@('isnull' | 'isnotnull')"`
		Column string  `parser:"@Ident"`
		When   *string `parser:"( 'when' @('true' | 'false') )?"`
	}

	// Compare is a column comparison.
	Compare struct {
		Op        string   `parser:"@('equal' | 'notequal' | 'gt' | 'gte' | 'lt' | 'lte' | 'like' | 'notlike' | 'in' | 'notin' | 'between' | 'notbetween')"`
		Column    string   `parser:"@Ident"`
		Type      string   `parser:"@Ident"`
		Values    []*Value `parser:"@@ @@?"`
		Mode      *string  `parser:"@('nullable' | 'required')?"`
		Sensitive bool     `parser:"@'sensitive'?"`
		When      *string  `parser:"( 'when' @('true' | 'false') )?"`
	}

	// Set records a parameter for a placeholder in free-form text.
	Set struct {
		Name     string `parser:"@Ident"`
		Type     string `parser:"@Ident"`
		Value    *Value `parser:"@@"`
		Nullable bool   `parser:"@'nullable'?"`
	}

	// Value is a literal.
	Value struct {
		Null   bool     `parser:"  @'null'"`
		Bool   *string  `parser:"| @('true' | 'false')"`
		String *string  `parser:"| @String"`
		Float  *float64 `parser:"| @Float"`
		Int    *int64   `parser:"| @Int"`
		List   []*Value `parser:"| '[' ( @@ ( ',' @@ )* )? ']'"`
	}
)

// Parse reads a script.
func Parse(r io.Reader) (*Script, error) {
	s, err := parser.Parse("", r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse script")
	}

	return s, nil
}

// ParseString parses a script held in a string.
func ParseString(src string) (*Script, error) {
	s, err := parser.ParseString("", src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse script")
	}

	return s, nil
}

// Go returns the literal as a Go value: nil, bool, string, float64, int64 or []any.
func (v *Value) Go() any {
	switch {
	case v == nil || v.Null:
		return nil
	case v.Bool != nil:
		b, _ := strconv.ParseBool(*v.Bool)
		return b
	case v.String != nil:
		return *v.String
	case v.Float != nil:
		return *v.Float
	case v.Int != nil:
		return *v.Int
	}

	out := make([]any, len(v.List))
	for i, item := range v.List {
		out[i] = item.Go()
	}
	return out
}
