// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// Kind classifies a rejected operation.
type Kind uint8

const (
	Precondition Kind = iota
	Authorization
	Configuration
	Transfer
)

func (k Kind) String() string {
	switch k {
	case Authorization:
		return "authorization"
	case Configuration:
		return "configuration"
	case Transfer:
		return "transfer"
	default:
		return "precondition"
	}
}

// ErrRevert is a named rejection. The operation that returns it leaves no state behind.
type ErrRevert struct {
	kind    Kind
	message string
	cause   error
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		kind:    Precondition,
		message: message,
	}
}

func NewUnauthorized(message string) *ErrRevert {
	return &ErrRevert{
		kind:    Authorization,
		message: message,
	}
}

func NewConfiguration(message string) *ErrRevert {
	return &ErrRevert{
		kind:    Configuration,
		message: message,
	}
}

// NewTransfer reports a failed asset movement. The asset's error stays reachable through Unwrap.
func NewTransfer(cause error) *ErrRevert {
	return &ErrRevert{
		kind:    Transfer,
		message: "transfer error",
		cause:   cause,
	}
}

func (e *ErrRevert) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *ErrRevert) Unwrap() error {
	return e.cause
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// Reason returns the message of the revert wrapped in err, or "" if err is not a revert.
func Reason(err error) string {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.message
	}
	return ""
}
