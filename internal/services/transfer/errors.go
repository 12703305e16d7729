package transfer

import "errors"

// Service errors. All are validation outcomes the caller cannot retry
// into success; infrastructure failures surface separately as wrapped
// repository errors.
var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInvalidType       = errors.New("unknown transfer type")
	ErrInvalidParties    = errors.New("both parties must have distinct existing accounts")
	ErrSelfTransfer      = errors.New("cannot transfer to the same account")
	ErrNotPending        = errors.New("transfer is not pending")
	ErrInsufficientFunds = errors.New("insufficient balance")
)
