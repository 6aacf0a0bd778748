package ledger

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid_credentials")
	ErrAlreadyExists        = errors.New("already_exists")
	ErrPlayerNotFound       = errors.New("player_not_found")
	ErrBadCredentials       = errors.New("bad_credentials")
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidAmount        = errors.New("invalid_amount")
	ErrDuplicateTransaction = errors.New("duplicate_transaction")
	ErrInsufficientFunds    = errors.New("insufficient_funds")
	ErrEmptyHistory         = errors.New("empty_history")
	ErrInternal             = errors.New("internal_error")
)

var domainErrors = []error{
	ErrInvalidCredentials,
	ErrAlreadyExists,
	ErrPlayerNotFound,
	ErrBadCredentials,
	ErrInvalidID,
	ErrInvalidAmount,
	ErrDuplicateTransaction,
	ErrInsufficientFunds,
	ErrEmptyHistory,
}

func isDomainError(err error) bool {
	for _, d := range domainErrors {
		if errors.Is(err, d) {
			return true
		}
	}
	return false
}
