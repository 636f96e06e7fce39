package ledger

// LedgerError is a custom error type for ledger service configuration errors
type LedgerError string

// Error implements the error interface
func (e LedgerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig         LedgerError = "config cannot be nil"
	ErrNilRepository     LedgerError = "ledger repository cannot be nil"
	ErrNilClock          LedgerError = "clock cannot be nil"
	ErrNegativeBalance   LedgerError = "default balance cannot be negative"
	ErrInvalidMultiplier LedgerError = "payout multiplier must be at least 1"
)
