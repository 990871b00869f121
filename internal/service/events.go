package service

import (
	"time"
)

const (
	EventLoanReturned         = "loan.returned"
	EventReservationFulfilled = "reservation.fulfilled"
)

type LoanReturnedEvent struct {
	Event      string    `json:"event"`
	LoanUid    string    `json:"loanUid"`
	BookUid    string    `json:"bookUid"`
	MemberUid  string    `json:"memberUid"`
	ReturnDate time.Time `json:"returnDate"`
	FineAmount float64   `json:"fineAmount"`
}

type ReservationFulfilledEvent struct {
	Event          string    `json:"event"`
	ReservationUid string    `json:"reservationUid"`
	BookUid        string    `json:"bookUid"`
	MemberUid      string    `json:"memberUid"`
	ExpiryDate     time.Time `json:"expiryDate"`
}
