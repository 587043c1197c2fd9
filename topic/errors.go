package topic

import "errors"

// ErrNoCondition indicates that a query mentioned no recognized condition.
var ErrNoCondition = errors.New("no recognized condition in query")
