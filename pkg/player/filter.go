package player

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// Filter evaluates an expr-lang predicate against each track and returns
// the ones it accepts. Fields are referenced by their Go names, e.g.
// `Rating >= 80 && Genre == "Rock"`.
func Filter(tracks []Track, expression string) ([]Track, error) {
	program, err := expr.Compile(expression, expr.Env(Track{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, err)
	}

	matched := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		out, err := expr.Run(program, t)
		if err != nil {
			return nil, fmt.Errorf("evaluate filter against %q: %w", t.Title, err)
		}
		if keep, ok := out.(bool); ok && keep {
			matched = append(matched, t)
		}
	}
	return matched, nil
}
