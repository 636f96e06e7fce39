package roll

// RollError is a custom error type for roll service configuration errors
type RollError string

// Error implements the error interface
func (e RollError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig            RollError = "config cannot be nil"
	ErrNilCommitmentService RollError = "commitment service cannot be nil"
	ErrNilLedgerService     RollError = "ledger service cannot be nil"
	ErrNilClock             RollError = "clock cannot be nil"
	ErrNilUUIDGenerator     RollError = "UUID generator cannot be nil"
	ErrInvalidMultiplier    RollError = "payout multiplier must be at least 1"
	ErrInvalidWinThreshold  RollError = "win threshold must be between 1 and 6"
)
