// Package meltdown prunes dangling connectives and empty groups from a classified
// clause sequence.
//
// The engine knows nothing about clause types. Callers supply a classification for
// every item and Apply returns the surviving items in their original order. A single
// forward pass over the input maintains a working stack:
//
//   - an invalid expression removes every operator (AND, OR, NOT) at the top of the
//     stack and is itself discarded
//   - a right bracket removes the operators at the top of the stack; when a left
//     bracket is then found, that bracket and the operators governing the now empty
//     group are removed as well and the right bracket is discarded, otherwise the
//     right bracket is kept
//   - AND / OR is discarded when nothing precedes it, when it directly follows a left
//     bracket, another operator or a section keyword such as WHERE
//   - everything else is kept
//
// Example, where the expression on b is invalid:
//
//	WHERE a = ? AND ( b = ? ) OR c = ?   =>   WHERE a = ? OR c = ?
//
// Apply is idempotent: applying it to its own output returns the same sequence.
package meltdown

// Class is the meltdown-relevant classification of a clause.
type Class int

const (
	// Operand is any clause that can stand on either side of a connective: text,
	// columns, tables, commas and valid expressions.
	Operand Class = iota

	// Keyword opens a section (WHERE, HAVING, ON). A connective can not follow it.
	Keyword

	// Invalid is an expression whose governing condition is false.
	Invalid

	// Connective is AND or OR.
	Connective

	// Not is the unary NOT operator.
	Not

	// LeftBracket is "(".
	LeftBracket

	// RightBracket is ")".
	RightBracket
)

func (c Class) String() string {
	switch c {
	case Operand:
		return "operand"
	case Keyword:
		return "keyword"
	case Invalid:
		return "invalid"
	case Connective:
		return "connective"
	case Not:
		return "not"
	case LeftBracket:
		return "left bracket"
	case RightBracket:
		return "right bracket"
	default:
		return "unknown"
	}
}

// IsOperator reports whether c is AND, OR or NOT.
func (c Class) IsOperator() bool {
	return c == Connective || c == Not
}

// Apply filters items according to the rules described in the package documentation.
// The input slice is not modified.
func Apply[T any](items []T, classify func(T) Class) []T {
	s := stack[T]{
		items:   make([]T, 0, len(items)),
		classes: make([]Class, 0, len(items)),
	}

	for _, item := range items {
		c := classify(item)
		switch c {
		case Invalid:
			s.popOperators()
			continue
		case RightBracket:
			if s.closeGroup() {
				continue
			}
		case Connective:
			if s.danglingConnective() {
				continue
			}
		}

		s.push(item, c)
	}

	return s.items
}

type stack[T any] struct {
	items   []T
	classes []Class
}

func (s *stack[T]) push(item T, c Class) {
	s.items = append(s.items, item)
	s.classes = append(s.classes, c)
}

func (s *stack[T]) pop() {
	n := len(s.items) - 1
	s.items = s.items[:n]
	s.classes = s.classes[:n]
}

func (s *stack[T]) tail() (Class, bool) {
	if len(s.classes) == 0 {
		return 0, false
	}

	return s.classes[len(s.classes)-1], true
}

func (s *stack[T]) popOperators() {
	for {
		c, ok := s.tail()
		if !ok || !c.IsOperator() {
			return
		}
		s.pop()
	}
}

// closeGroup reports whether the right bracket being processed closed an empty group.
// One right bracket removes at most one left bracket.
func (s *stack[T]) closeGroup() bool {
	open := 1
	for {
		c, ok := s.tail()
		switch {
		case !ok:
			return open == 0
		case c == LeftBracket && open == 1:
			s.pop()
			open--
		case c.IsOperator():
			s.pop()
		default:
			return open == 0
		}
	}
}

func (s *stack[T]) danglingConnective() bool {
	c, ok := s.tail()
	if !ok {
		return true
	}

	return c == LeftBracket || c == Keyword || c.IsOperator()
}
