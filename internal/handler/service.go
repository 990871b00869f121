package handler

import (
	"context"

	"github.com/hsalamardi/lending-service/internal/model"
	"github.com/hsalamardi/lending-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LendingService interface {
	SubmitBorrowRequest(ctx context.Context, req model.CreateBorrowRequest) (model.BorrowRequest, error)
	ApproveBorrowRequest(ctx context.Context, requestUid string, req model.ApproveBorrowRequest) (model.Loan, error)
	DenyBorrowRequest(ctx context.Context, requestUid, reason string) (model.BorrowRequest, error)
	ListBorrowRequests(ctx context.Context, status model.RequestStatus) ([]model.BorrowRequest, error)
	ListMemberLoans(ctx context.Context, memberUid string) ([]model.Loan, error)
	ReturnLoan(ctx context.Context, loanUid string) (model.Loan, error)
	SubmitReturnRequest(ctx context.Context, req model.CreateReturnRequest) (model.ReturnRequest, error)
	ApproveReturnRequest(ctx context.Context, requestUid string) (model.Loan, error)
	DenyReturnRequest(ctx context.Context, requestUid, reason string) (model.ReturnRequest, error)
	GetBook(ctx context.Context, bookUid string) (model.BookView, error)
}

type ReservationService interface {
	Reserve(ctx context.Context, req model.CreateReservationRequest) (model.Reservation, error)
	ListMemberReservations(ctx context.Context, memberUid string) ([]model.Reservation, error)
	CancelReservation(ctx context.Context, reservationUid, memberUid string) (model.Reservation, error)
}

var (
	_ LendingService     = (*service.Service)(nil)
	_ ReservationService = (*service.Service)(nil)
)
