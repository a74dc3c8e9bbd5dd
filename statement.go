package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

type Kind int

const (
	KindInsert Kind = iota + 1
	KindSelect
	KindUpdate
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindSelect:
		return "select"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Statement is SQL text using '?' placeholders together with the values bound
// to them, in placeholder order. It is immutable once built.
type Statement struct {
	kind    Kind
	text    string
	args    []any
	columns []string
}

func newStatement(kind Kind, text string, args []any, columns []string) (Statement, error) {
	if n := PlaceholderCount(text); n != len(args) {
		return Statement{}, validationErrorf("statement", "has %d placeholders but %d parameters", n, len(args))
	}

	return Statement{kind: kind, text: text, args: args, columns: columns}, nil
}

func (s Statement) Kind() Kind {
	return s.kind
}

func (s Statement) SQL() string {
	return s.text
}

// Args returns a copy of the bound parameters.
func (s Statement) Args() []any {
	if s.args == nil {
		return nil
	}

	args := make([]any, len(s.args))
	copy(args, s.args)
	return args
}

// Columns returns the explicitly requested result columns of a select, or nil
// when every column was requested.
func (s Statement) Columns() []string {
	if s.columns == nil {
		return nil
	}

	cols := make([]string, len(s.columns))
	copy(cols, s.columns)
	return cols
}

func (s Statement) IsZero() bool {
	return s.kind == 0
}

// Rebind returns the SQL text using the bindvar style of bindType
// (sqlx.QUESTION, sqlx.DOLLAR, sqlx.NAMED or sqlx.AT).
func (s Statement) Rebind(bindType int) string {
	return rebind(bindType, s.text)
}

// String never renders parameter values.
func (s Statement) String() string {
	return fmt.Sprintf("%s [%d args]", s.text, len(s.args))
}

// PlaceholderCount counts '?' placeholders outside single quoted literals and
// double quoted names.
func PlaceholderCount(text string) int {
	count := 0
	forEachPlaceholder(text, func(int) {
		count++
	})

	return count
}

// rebind rewrites placeholders like sqlx.Rebind, except that a '?' inside a
// quoted literal or name is left alone, matching PlaceholderCount.
func rebind(bindType int, query string) string {
	var prefix string
	switch bindType {
	case sqlx.DOLLAR:
		prefix = "$"
	case sqlx.NAMED:
		prefix = ":arg"
	case sqlx.AT:
		prefix = "@p"
	default:
		return query
	}

	var qry strings.Builder
	qry.Grow(len(query) + 10)
	last, n := 0, 0
	forEachPlaceholder(query, func(pos int) {
		n++
		qry.WriteString(query[last:pos])
		qry.WriteString(prefix)
		qry.WriteString(strconv.Itoa(n))
		last = pos + 1
	})
	qry.WriteString(query[last:])

	return qry.String()
}

func forEachPlaceholder(text string, fn func(pos int)) {
	var quote byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '?':
			fn(i)
		}
	}
}
