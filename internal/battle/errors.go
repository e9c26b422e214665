package battle

import "errors"

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// CodeRosterFull indicates Stage was called with two combatants staged.
	CodeRosterFull ErrorCode = "ROSTER_FULL"

	// CodeNotEnoughCombatants indicates Resolve was called with fewer than two combatants.
	CodeNotEnoughCombatants ErrorCode = "NOT_ENOUGH_COMBATANTS"

	// CodeUnknownDifficulty indicates a meal with an illegal difficulty reached scoring.
	// This means upstream validation was bypassed.
	CodeUnknownDifficulty ErrorCode = "UNKNOWN_DIFFICULTY"
)

// Error is returned for engine precondition and domain violations.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error with the same code, so callers can compare against
// the exported sentinels even when the message carries extra detail.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrRosterFull = &Error{
		Code:    CodeRosterFull,
		Message: "Combatant list is full, cannot add more combatants.",
	}

	ErrNotEnoughCombatants = &Error{
		Code:    CodeNotEnoughCombatants,
		Message: "Two combatants must be prepped for a battle.",
	}

	ErrUnknownDifficulty = &Error{
		Code:    CodeUnknownDifficulty,
		Message: "unknown difficulty",
	}
)

// CodeOf returns the engine error code carried by err, or "" if err is not
// an engine error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
