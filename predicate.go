package store

import "strings"

// Predicate is a condition fragment such as "id = ?" together with the values
// for its placeholders. The fragment is used verbatim and never parsed.
type Predicate struct {
	Text string
	Args []any
}

func Where(text string, args ...any) Predicate {
	return Predicate{Text: text, Args: args}
}

func (p Predicate) IsZero() bool {
	return strings.TrimSpace(p.Text) == ""
}

func validatePredicate(p Predicate) error {
	if p.IsZero() && len(p.Args) > 0 {
		return validationErrorf("predicate", "has %d parameters but no condition text", len(p.Args))
	}

	return nil
}

// And joins the non empty predicates with AND, wrapping each in parentheses.
// Parameters keep the order of the predicates. Parameters of a predicate with
// blank text are kept at the end, so the result fails the placeholder check
// instead of losing them.
func And(preds ...Predicate) Predicate {
	var nonEmpty []Predicate
	var stray []any
	for _, p := range preds {
		if p.IsZero() {
			stray = append(stray, p.Args...)
			continue
		}
		nonEmpty = append(nonEmpty, p)
	}

	switch len(nonEmpty) {
	case 0:
		return Predicate{Args: stray}
	case 1:
		p := nonEmpty[0]
		if len(stray) > 0 {
			p.Args = append(append([]any{}, p.Args...), stray...)
		}
		return p
	}

	parts := make([]string, len(nonEmpty))
	var args []any
	for i, p := range nonEmpty {
		parts[i] = "(" + p.Text + ")"
		args = append(args, p.Args...)
	}
	args = append(args, stray...)

	return Predicate{Text: strings.Join(parts, " AND "), Args: args}
}
