package errcode

import (
	"fmt"

	"github.com/pkg/errors"
)

// Err is a business error carrying a stable numeric code. Handlers hand it to
// xhttp which maps the code onto an HTTP status.
type Err struct {
	code uint32
	msg  string
}

func NewErr(code uint32, msg string) *Err {
	return &Err{code: code, msg: msg}
}

// NewCustomErr wraps a free-form message under the custom error code.
func NewCustomErr(msg string) *Err {
	return NewErr(CodeCustom, msg)
}

func (e *Err) Error() string {
	return fmt.Sprintf("err: code: %d, msg: %s", e.code, e.msg)
}

func (e *Err) Code() uint32 {
	return e.code
}

func (e *Err) Msg() string {
	return e.msg
}

const (
	CodeOK         uint32 = 200
	CodeUnexpected uint32 = 10001
	CodeBadParams  uint32 = 10002
	CodeCustom     uint32 = 10003

	CodeUnauthorized uint32 = 10004

	CodeNotFound      uint32 = 20001
	CodeStateConflict uint32 = 20002
	CodeConcurrency   uint32 = 20003
	CodePersistence   uint32 = 20004
)

var (
	NoErr            = NewErr(CodeOK, "OK")
	ErrUnexpected    = NewErr(CodeUnexpected, "internal server error")
	ErrInvalidParams = NewErr(CodeBadParams, "invalid params")
	ErrUnauthorized  = NewErr(CodeUnauthorized, "identity required")

	ErrAuctionNotFound = NewErr(CodeNotFound, "auction not found")

	ErrAuctionNotActive   = NewErr(CodeStateConflict, "auction is not active")
	ErrAuctionNotStarted  = NewErr(CodeStateConflict, "auction has not started yet")
	ErrAuctionEnded       = NewErr(CodeStateConflict, "auction has ended")
	ErrSelfTrade          = NewErr(CodeStateConflict, "seller cannot bid on or buy their own auction")
	ErrBidNotAllowed      = NewErr(CodeStateConflict, "bidding is not available for this listing")
	ErrBuyNowNotAvailable = NewErr(CodeStateConflict, "buy now is not available for this listing")
	ErrBidTooLow          = NewErr(CodeStateConflict, "bid is below the required minimum")
	ErrAuctionHasBids     = NewErr(CodeStateConflict, "auction with bids cannot be cancelled")
	ErrNotAuctionSeller   = NewErr(CodeStateConflict, "only the seller can cancel this auction")
	ErrAlreadyResolved    = NewErr(CodeStateConflict, "auction is already resolved")

	ErrConflict    = NewErr(CodeConcurrency, "concurrent update conflict, please retry")
	ErrPersistence = NewErr(CodePersistence, "storage unavailable")
)

// IsErr reports whether err is a coded business error, unwrapping any
// context added along the way.
func IsErr(err error) bool {
	_, ok := errors.Cause(err).(*Err)
	return ok
}

// ParseErr normalizes any error into a coded error. Unknown errors collapse
// into ErrUnexpected so internals never leak to clients.
func ParseErr(err error) *Err {
	if err == nil {
		return NoErr
	}
	if e, ok := errors.Cause(err).(*Err); ok {
		return e
	}
	return ErrUnexpected
}
