package pricing

import (
	"errors"
	"fmt"
)

var (
	ErrOrderRequired  = errors.New("exactly one order is required")
	ErrInvalidProduct = errors.New("invalid product reference")
)

// RuleError reports a recomputation rule that could not be applied to a line.
// The line's fields are left as they were before the rule ran.
type RuleError struct {
	Rule   string
	LineID int32
	Err    error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s on line %d: %v", e.Rule, e.LineID, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}
