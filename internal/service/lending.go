package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hsalamardi/lending-service/internal/errs"
	"github.com/hsalamardi/lending-service/internal/model"
	"github.com/hsalamardi/lending-service/pkg/kafka"
)

// SubmitBorrowRequest records a member's intent to borrow. Nothing is
// mutated on the book or member yet: the loan is only created when a
// librarian approves the request.
func (s *Service) SubmitBorrowRequest(ctx context.Context, req model.CreateBorrowRequest) (model.BorrowRequest, error) {
	book, err := s.repo.GetBook(ctx, req.BookUid)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	if !book.IsAvailable {
		return model.BorrowRequest{}, errs.ErrBookUnavailable
	}

	member, err := s.repo.GetMember(ctx, req.MemberUid)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	if !member.CanBorrow() {
		return model.BorrowRequest{}, errs.ErrMemberIneligible
	}

	open, err := s.repo.HasOpenLoan(ctx, book.ID, member.ID)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	if open {
		return model.BorrowRequest{}, errs.ErrDuplicateRequest
	}

	days := req.DurationDays
	if days == 0 {
		days = model.DefaultLoanDays
	}
	return s.repo.CreateBorrowRequest(ctx, book, member, days, req.Notes)
}

// ApproveBorrowRequest re-checks availability and eligibility under a row
// lock and creates the loan. Losing the availability race leaves the
// request pending so the librarian can retry or deny it.
func (s *Service) ApproveBorrowRequest(ctx context.Context, requestUid string, req model.ApproveBorrowRequest) (model.Loan, error) {
	return s.repo.ApproveBorrowRequest(ctx, requestUid, req.DurationOverrideDays)
}

func (s *Service) DenyBorrowRequest(ctx context.Context, requestUid, reason string) (model.BorrowRequest, error) {
	return s.repo.DenyBorrowRequest(ctx, requestUid, reason)
}

func (s *Service) ListBorrowRequests(ctx context.Context, status model.RequestStatus) ([]model.BorrowRequest, error) {
	return s.repo.ListBorrowRequests(ctx, status)
}

func (s *Service) ListMemberLoans(ctx context.Context, memberUid string) ([]model.Loan, error) {
	return s.repo.ListMemberLoans(ctx, memberUid)
}

func (s *Service) ReturnLoan(ctx context.Context, loanUid string) (model.Loan, error) {
	loan, fulfilled, err := s.repo.ReturnLoan(ctx, loanUid, s.cfg.DailyFineRate)
	if err != nil {
		return model.Loan{}, err
	}
	s.publishReturn(loan, fulfilled)
	return loan, nil
}

func (s *Service) SubmitReturnRequest(ctx context.Context, req model.CreateReturnRequest) (model.ReturnRequest, error) {
	loan, err := s.repo.GetLoan(ctx, req.LoanUid)
	if err != nil {
		return model.ReturnRequest{}, err
	}
	if loan.Status != model.LoanBorrowed {
		return model.ReturnRequest{}, errs.ErrAlreadyReturned
	}
	if loan.MemberUid != req.MemberUid {
		return model.ReturnRequest{}, errs.ErrNotFound
	}

	member, err := s.repo.GetMember(ctx, req.MemberUid)
	if err != nil {
		return model.ReturnRequest{}, err
	}
	return s.repo.CreateReturnRequest(ctx, loan, member, req.Notes)
}

func (s *Service) ApproveReturnRequest(ctx context.Context, requestUid string) (model.Loan, error) {
	loan, fulfilled, err := s.repo.ApproveReturnRequest(ctx, requestUid, s.cfg.DailyFineRate)
	if err != nil {
		return model.Loan{}, err
	}
	s.publishReturn(loan, fulfilled)
	return loan, nil
}

func (s *Service) DenyReturnRequest(ctx context.Context, requestUid, reason string) (model.ReturnRequest, error) {
	return s.repo.DenyReturnRequest(ctx, requestUid, reason)
}

// GetBook returns the book with its availability derived from the loan
// table rather than trusting the cached flag alone.
func (s *Service) GetBook(ctx context.Context, bookUid string) (model.BookView, error) {
	book, err := s.repo.GetBook(ctx, bookUid)
	if err != nil {
		return model.BookView{}, err
	}

	view := model.BookView{Book: book, Status: model.BookAvailable}
	if book.IsAvailable {
		return view, nil
	}

	loan, err := s.repo.ActiveLoanForBook(ctx, book.ID)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		view.Status = model.BookUnavailable
	case err != nil:
		return model.BookView{}, err
	case loan.IsOverdue(time.Now().UTC()):
		view.Status = model.BookOverdue
	default:
		view.Status = model.BookBorrowed
	}
	return view, nil
}

// publishReturn emits the post-commit notification events. Failures are
// logged and swallowed: dispatch is best-effort.
func (s *Service) publishReturn(loan model.Loan, fulfilled *model.Reservation) {
	returnDate := time.Now().UTC()
	if loan.ReturnDate != nil {
		returnDate = *loan.ReturnDate
	}
	if err := s.pub.Enqueue(kafka.EventsTopic, LoanReturnedEvent{
		Event:      EventLoanReturned,
		LoanUid:    loan.LoanUid,
		BookUid:    loan.BookUid,
		MemberUid:  loan.MemberUid,
		ReturnDate: returnDate,
		FineAmount: loan.FineAmount,
	}); err != nil {
		s.log.Warn("publish loan.returned", zap.String("loanUid", loan.LoanUid), zap.Error(err))
	}

	if fulfilled == nil {
		return
	}
	if err := s.pub.Enqueue(kafka.EventsTopic, ReservationFulfilledEvent{
		Event:          EventReservationFulfilled,
		ReservationUid: fulfilled.ReservationUid,
		BookUid:        fulfilled.BookUid,
		MemberUid:      fulfilled.MemberUid,
		ExpiryDate:     fulfilled.ExpiryDate,
	}); err != nil {
		s.log.Warn("publish reservation.fulfilled",
			zap.String("reservationUid", fulfilled.ReservationUid), zap.Error(err))
	}
}
