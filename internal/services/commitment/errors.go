package commitment

// CommitmentError is a custom error type for commitment service configuration errors
type CommitmentError string

// Error implements the error interface
func (e CommitmentError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig        CommitmentError = "config cannot be nil"
	ErrNilRepository    CommitmentError = "commitment repository cannot be nil"
	ErrNilSeedGenerator CommitmentError = "seed generator cannot be nil"
	ErrNilClock         CommitmentError = "clock cannot be nil"
	ErrNilCommitment    CommitmentError = "commitment cannot be nil"
)
