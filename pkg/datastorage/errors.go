package datastorage

import (
	"errors"
	"fmt"
)

// client-side errors
var (
	ErrLayout                 = errors.New("ErrLayout")
	ErrDataTooLong            = errors.New("ErrDataTooLong")
	ErrLabelTooLong           = errors.New("ErrLabelTooLong")
	ErrInvalidLabel           = errors.New("ErrInvalidLabel")
	ErrUnknownInstruction     = errors.New("ErrUnknownInstruction")
	ErrInvalidInstructionData = errors.New("ErrInvalidInstructionData")
	ErrMissingAccount         = errors.New("ErrMissingAccount")
	ErrImmutableAccount       = errors.New("ErrImmutableAccount")
	ErrAccountNotFound        = errors.New("ErrAccountNotFound")
	ErrInvalidAccountOwner    = errors.New("ErrInvalidAccountOwner")
	ErrUninitializedAccount   = errors.New("ErrUninitializedAccount")
	ErrAddressMismatch        = errors.New("ErrAddressMismatch")
)

// Custom error codes returned by the on-chain program.
const (
	ProgramErrImmutableDataStorage       = 70
	ProgramErrFailedToFindProgramAddress = 71
	ProgramErrInvalidLabel               = 72
	ProgramErrInvalidData                = 73
)

// ProgramError is an InstructionError::Custom code raised by the program.
type ProgramError struct {
	Code uint32
}

func (e *ProgramError) Error() string {
	switch e.Code {
	case ProgramErrImmutableDataStorage:
		return "immutable data storage account"
	case ProgramErrFailedToFindProgramAddress:
		return "find_program_address failed"
	case ProgramErrInvalidLabel:
		return "invalid account label (invalid utf-8)"
	case ProgramErrInvalidData:
		return "invalid data"
	}
	return fmt.Sprintf("unknown data storage program error %d", e.Code)
}

// Is lets errors.Is match a program error against the equivalent
// client-side sentinel.
func (e *ProgramError) Is(target error) bool {
	switch e.Code {
	case ProgramErrImmutableDataStorage:
		return target == ErrImmutableAccount
	case ProgramErrInvalidLabel:
		return target == ErrInvalidLabel
	case ProgramErrInvalidData:
		return target == ErrInvalidInstructionData
	}
	return false
}

// ProgramErrorFromCode translates a custom program error code. Codes the
// program does not define yield nil.
func ProgramErrorFromCode(code uint32) error {
	switch code {
	case ProgramErrImmutableDataStorage,
		ProgramErrFailedToFindProgramAddress,
		ProgramErrInvalidLabel,
		ProgramErrInvalidData:
		return &ProgramError{Code: code}
	}
	return nil
}
