package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hsalamardi/lending-service/internal/errs"
	"github.com/hsalamardi/lending-service/internal/model"
)

// Reserve queues a member for a book that is currently out on loan.
// Reserving an available book is rejected: it can simply be borrowed.
func (s *Service) Reserve(ctx context.Context, req model.CreateReservationRequest) (model.Reservation, error) {
	book, err := s.repo.GetBook(ctx, req.BookUid)
	if err != nil {
		return model.Reservation{}, err
	}
	if book.IsAvailable {
		return model.Reservation{}, errs.ErrBookIsAvailable
	}

	member, err := s.repo.GetMember(ctx, req.MemberUid)
	if err != nil {
		return model.Reservation{}, err
	}

	return s.repo.CreateReservation(ctx, book, member, req.Notes, s.cfg.ReservationTTL)
}

func (s *Service) ListMemberReservations(ctx context.Context, memberUid string) ([]model.Reservation, error) {
	return s.repo.ListMemberReservations(ctx, memberUid)
}

func (s *Service) CancelReservation(ctx context.Context, reservationUid, memberUid string) (model.Reservation, error) {
	return s.repo.CancelReservation(ctx, reservationUid, memberUid)
}

// ExpireStaleReservations transitions active reservations past their
// expiry to expired. Idempotent; run by the periodic sweeper.
func (s *Service) ExpireStaleReservations(ctx context.Context, asOf time.Time) (int64, error) {
	n, err := s.repo.ExpireStaleReservations(ctx, asOf)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("expired stale reservations", zap.Int64("count", n))
	}
	return n, nil
}
