package sqlbuilder

import (
	"strings"

	"github.com/pseudomuto/dalsql/pkg/clause"
	"github.com/pseudomuto/dalsql/pkg/meltdown"
	"github.com/pseudomuto/dalsql/pkg/params"
)

// Build prunes the clause sequence, renders it and returns the statement together
// with the valid parameters, re-indexed from 1. Building twice without changes
// yields the same statement.
func (b *Builder) Build() (*Statement, error) {
	if b.err != nil {
		return nil, b.err
	}

	sql, err := b.render()
	if err != nil {
		return nil, err
	}

	ps := b.ctx.Params.Build()
	if b.ctx.InMode == params.InExpanded {
		ps = params.Expand(ps)
	}

	return &Statement{
		SQL:     sql,
		Dialect: b.ctx.Dialect.Name(),
		InMode:  b.ctx.InMode,
		Params:  ps,
	}, nil
}

// SQL renders the statement text only.
func (b *Builder) SQL() (string, error) {
	if b.err != nil {
		return "", b.err
	}

	return b.render()
}

type fragment struct {
	clause clause.Clause
	text   string
}

func (b *Builder) render() (string, error) {
	clauses := b.clauses
	if !b.noMeltdown {
		clauses = meltdown.Apply(clauses, clause.Classify)
	}

	frags := make([]fragment, 0, len(clauses))
	for _, c := range clauses {
		text, err := c.Render(b.ctx)
		if err != nil {
			return "", err
		}

		// dialect-only fragments such as the post-table hint may render nothing
		if text == "" {
			continue
		}

		frags = append(frags, fragment{clause: c, text: text})
	}

	var sb strings.Builder
	for i, f := range frags {
		sb.WriteString(f.text)

		var next clause.Clause
		if i+1 < len(frags) {
			next = frags[i+1].clause
		}

		if !b.skipSpace(f.clause, next) {
			sb.WriteByte(' ')
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

// skipSpace reports whether the separator after cur is dropped: after "(", before
// ")" or a comma, and at the end. Operators are always followed by a space.
func (b *Builder) skipSpace(cur, next clause.Clause) bool {
	if b.noSpaceSkipping || clause.IsOperator(cur) {
		return false
	}

	if cur == clause.LeftBracket {
		return true
	}

	return next == nil || next == clause.RightBracket || next == clause.Comma
}
