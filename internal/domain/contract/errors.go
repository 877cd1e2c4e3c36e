package contract

import "errors"

var (
	ErrContractNotFound    = errors.New("contract not found")
	ErrContractTypeInvalid = errors.New("contract type does not exist")
)
