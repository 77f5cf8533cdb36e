package stocks

import "errors"

var (
	// ErrInvalidInput is returned before any mutation when a ticker is empty or a quantity or price is not positive.
	ErrInvalidInput = errors.New("invalid input")
	// ErrResolution is returned when free text could not be resolved to a ticker.
	ErrResolution = errors.New("cannot resolve ticker")
	// ErrPriceUnavailable marks a price the feed could not provide.
	ErrPriceUnavailable = errors.New("price unavailable")
	// ErrPersistenceCorrupt marks persisted state that could not be read. It is advisory: the ledger starts empty.
	ErrPersistenceCorrupt = errors.New("persisted ledger is corrupt")
	// ErrDivideByZero is returned when a ratio has a zero or missing denominator.
	ErrDivideByZero = errors.New("division by zero")
	// ErrNotFound is returned when removing a ticker that is not in the ledger.
	ErrNotFound = errors.New("not found")
)
