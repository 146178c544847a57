package sym

import "errors"

// ErrUnboundSymbol indicates an expression was evaluated without a value for
// one of its free symbols.
var ErrUnboundSymbol = errors.New("sym: unbound symbol")
