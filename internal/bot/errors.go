package bot

import "errors"

var (
	// ErrInsufficientRank means the actor's top role does not outrank the target's.
	ErrInsufficientRank = errors.New("actor does not outrank target")
	// ErrBotRankTooLow means the bot's own top role is below the role it must manage.
	ErrBotRankTooLow = errors.New("bot role too low")
	// ErrOutOfRange means a numeric argument fell outside its accepted bounds.
	ErrOutOfRange = errors.New("value out of range")
	// ErrPermissionDenied wraps a platform-side permission rejection.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrDuplicateSuppressed means the same command invocation was already handled.
	ErrDuplicateSuppressed = errors.New("duplicate command suppressed")
)
