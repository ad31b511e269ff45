package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidationFailed       = errors.New("ballot validation failed")
	ErrAlreadyVoted           = errors.New("this phone number has already voted")
	ErrMalformedImportRow     = errors.New("import row has no id")
	ErrPersistenceUnavailable = errors.New("ballot storage unavailable")
	ErrInvalidAdminPIN        = errors.New("invalid admin pin")
	ErrNothingToExport        = errors.New("no ballots to export on this device")
	ErrInvalidConfig          = errors.New("invalid election config")
)

// ValidationError lists every reason a submission was refused.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(e.Reasons, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// AlreadyVotedError carries the receipt of the ballot that already holds the phone number.
type AlreadyVotedError struct {
	BallotID string
}

func (e *AlreadyVotedError) Error() string {
	return fmt.Sprintf("%s (receipt %s)", ErrAlreadyVoted, e.BallotID)
}

func (e *AlreadyVotedError) Is(target error) bool {
	return target == ErrAlreadyVoted
}
