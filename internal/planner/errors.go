package planner

import "errors"

// ErrBudgetExceeded documents the non-error nature of a timed-out or
// solutions-capped run; the planner never actually returns it; it exists so
// callers can name the condition in logs without it flowing through the
// error type system.
var ErrBudgetExceeded = errors.New("budget exceeded: engine stopped early, frontier reflects partial search")
