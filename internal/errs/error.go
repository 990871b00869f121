package errs

import (
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrBookUnavailable: borrow requested against a book that is out on loan.
	ErrBookUnavailable = errors.New("book is not available for borrowing")
	// ErrBookIsAvailable: reservation requested against a book on the shelf.
	ErrBookIsAvailable = errors.New("book is available, no need to reserve")
	// ErrBookNoLongerAvailable: the book was taken between request and approval.
	ErrBookNoLongerAvailable = errors.New("book is no longer available")
	ErrDuplicateRequest      = errors.New("an open request already exists")
	ErrAlreadyReturned       = errors.New("loan is already closed")
	ErrMemberIneligible      = errors.New("member is not eligible to borrow")
	// ErrRequestProcessed: approve/deny attempted on a non-pending request.
	ErrRequestProcessed = errors.New("request has already been processed")
)
