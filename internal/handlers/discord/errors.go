package discord

// BotError is a custom error type for bot configuration errors
type BotError string

// Error implements the error interface
func (e BotError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig      BotError = "config cannot be nil"
	ErrEmptyToken     BotError = "token cannot be empty"
	ErrNilRollService BotError = "roll service cannot be nil"
)
