package model

import (
	"time"
)

// FineCeiling is the outstanding-fines threshold above which a member
// may not borrow.
const FineCeiling = 50.00

// DefaultLoanDays is the borrowing period applied when a request does
// not ask for one.
const DefaultLoanDays = 14

// ReservationTTLDays is how long an active reservation is held before
// it expires.
const ReservationTTLDays = 7

type LoanStatus string

const (
	LoanBorrowed LoanStatus = "borrowed"
	LoanReturned LoanStatus = "returned"
	LoanLost     LoanStatus = "lost"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestDenied    RequestStatus = "denied"
	RequestCancelled RequestStatus = "cancelled"
)

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationFulfilled ReservationStatus = "fulfilled"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationExpired   ReservationStatus = "expired"
)

type MemberStatus string

const (
	MemberActive    MemberStatus = "active"
	MemberSuspended MemberStatus = "suspended"
	MemberExpired   MemberStatus = "expired"
	MemberPending   MemberStatus = "pending"
)

// BookStatus is the derived availability reported on reads. It is
// recomputed from the book row and its active loan, never stored.
type BookStatus string

const (
	BookAvailable BookStatus = "available"
	BookBorrowed  BookStatus = "borrowed"
	BookOverdue   BookStatus = "overdue"
	// out of circulation with no open loan, e.g. marked lost
	BookUnavailable BookStatus = "unavailable"
)

type Book struct {
	ID          int     `json:"-" db:"id"`
	BookUid     string  `json:"bookUid" db:"book_uid"`
	Serial      string  `json:"serial" db:"serial"`
	Title       string  `json:"title" db:"title"`
	Author      string  `json:"author" db:"author"`
	ISBN        *string `json:"isbn,omitempty" db:"isbn"`
	Barcode     *string `json:"barcode,omitempty" db:"barcode"`
	Shelf       string  `json:"shelf" db:"shelf"`
	Condition   string  `json:"condition" db:"condition"`
	IsAvailable bool    `json:"isAvailable" db:"is_available"`
}

// BookView is a Book plus its derived status for API reads.
type BookView struct {
	Book
	Status BookStatus `json:"status"`
}

type Member struct {
	ID                int          `json:"-" db:"id"`
	MemberUid         string       `json:"memberUid" db:"member_uid"`
	Status            MemberStatus `json:"status" db:"status"`
	MaxBooksAllowed   int          `json:"maxBooksAllowed" db:"max_books_allowed"`
	CurrentBooksCount int          `json:"currentBooksCount" db:"current_books_count"`
	TotalFines        float64      `json:"totalFines" db:"total_fines"`
}

// CanBorrow reports whether the member is eligible to take another
// loan: active status, under the book limit and under the fine ceiling.
func (m Member) CanBorrow() bool {
	return m.Status == MemberActive &&
		m.CurrentBooksCount < m.MaxBooksAllowed &&
		m.TotalFines < FineCeiling
}

type Loan struct {
	ID         int        `json:"-" db:"id"`
	LoanUid    string     `json:"loanUid" db:"loan_uid"`
	BookID     int        `json:"-" db:"book_id"`
	BookUid    string     `json:"bookUid" db:"book_uid"`
	MemberID   int        `json:"-" db:"member_id"`
	MemberUid  string     `json:"memberUid" db:"member_uid"`
	BorrowDate time.Time  `json:"borrowDate" db:"borrow_date"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate *time.Time `json:"returnDate,omitempty" db:"return_date"`
	Status     LoanStatus `json:"status" db:"status"`
	FineAmount float64    `json:"fineAmount" db:"fine_amount"`
}

// IsOverdue reports whether an open loan is past due as of the given time.
func (l Loan) IsOverdue(asOf time.Time) bool {
	return l.Status == LoanBorrowed && l.DueDate.Before(truncateDay(asOf))
}

// CalculateFine returns the fine owed if the loan were closed asOf:
// whole days past the due date times the daily rate, never negative.
func (l Loan) CalculateFine(asOf time.Time, dailyRate float64) float64 {
	overdue := int(truncateDay(asOf).Sub(truncateDay(l.DueDate)).Hours() / 24)
	if overdue <= 0 {
		return 0
	}
	return float64(overdue) * dailyRate
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

type BorrowRequest struct {
	ID            int           `json:"-" db:"id"`
	RequestUid    string        `json:"requestUid" db:"request_uid"`
	BookID        int           `json:"-" db:"book_id"`
	BookUid       string        `json:"bookUid" db:"book_uid"`
	MemberID      int           `json:"-" db:"member_id"`
	MemberUid     string        `json:"memberUid" db:"member_uid"`
	RequestDate   time.Time     `json:"requestDate" db:"request_date"`
	DurationDays  int           `json:"durationDays" db:"duration_days"`
	Status        RequestStatus `json:"status" db:"status"`
	Notes         *string       `json:"notes,omitempty" db:"notes"`
	AdminNotes    *string       `json:"adminNotes,omitempty" db:"admin_notes"`
	ProcessedDate *time.Time    `json:"processedDate,omitempty" db:"processed_date"`
}

type ReturnRequest struct {
	ID            int           `json:"-" db:"id"`
	RequestUid    string        `json:"requestUid" db:"request_uid"`
	LoanID        int           `json:"-" db:"loan_id"`
	LoanUid       string        `json:"loanUid" db:"loan_uid"`
	MemberID      int           `json:"-" db:"member_id"`
	MemberUid     string        `json:"memberUid" db:"member_uid"`
	RequestDate   time.Time     `json:"requestDate" db:"request_date"`
	Status        RequestStatus `json:"status" db:"status"`
	Notes         *string       `json:"notes,omitempty" db:"notes"`
	AdminNotes    *string       `json:"adminNotes,omitempty" db:"admin_notes"`
	ProcessedDate *time.Time    `json:"processedDate,omitempty" db:"processed_date"`
}

type Reservation struct {
	ID              int               `json:"-" db:"id"`
	ReservationUid  string            `json:"reservationUid" db:"reservation_uid"`
	BookID          int               `json:"-" db:"book_id"`
	BookUid         string            `json:"bookUid" db:"book_uid"`
	MemberID        int               `json:"-" db:"member_id"`
	MemberUid       string            `json:"memberUid" db:"member_uid"`
	ReservationDate time.Time         `json:"reservationDate" db:"reservation_date"`
	ExpiryDate      time.Time         `json:"expiryDate" db:"expiry_date"`
	Status          ReservationStatus `json:"status" db:"status"`
	Notes           *string           `json:"notes,omitempty" db:"notes"`
}

type CreateBorrowRequest struct {
	BookUid      string `json:"bookUid" validate:"required,uuid"`
	MemberUid    string `json:"memberUid" validate:"required,uuid"`
	DurationDays int    `json:"durationDays" validate:"omitempty,min=1,max=90"`
	Notes        string `json:"notes"`
}

type ApproveBorrowRequest struct {
	DurationOverrideDays int `json:"durationOverrideDays" validate:"omitempty,min=1,max=90"`
}

type DenyRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type CreateReturnRequest struct {
	LoanUid   string `json:"loanUid" validate:"required,uuid"`
	MemberUid string `json:"memberUid" validate:"required,uuid"`
	Notes     string `json:"notes"`
}

type CreateReservationRequest struct {
	BookUid   string `json:"bookUid" validate:"required,uuid"`
	MemberUid string `json:"memberUid" validate:"required,uuid"`
	Notes     string `json:"notes"`
}
