package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hsalamardi/lending-service/internal/errs"
	"github.com/hsalamardi/lending-service/internal/model"
)

const reservationColumns = `r.id, r.reservation_uid, r.book_id, b.book_uid, r.member_id, m.member_uid,
	r.reservation_date, r.expiry_date, r.status, r.notes`

func (r *repository) CreateReservation(ctx context.Context, book model.Book, member model.Member, notes string, ttl time.Duration) (model.Reservation, error) {
	q := `
	insert into reservations (reservation_uid, book_id, member_id, expiry_date, notes)
	values ($1, $2, $3, $4, nullif($5, ''))
	returning id, reservation_uid, reservation_date, expiry_date, status, notes`

	expiry := time.Now().UTC().Add(ttl)
	var res model.Reservation
	if err := r.db.GetContext(ctx, &res, q, uuid.New(), book.ID, member.ID, expiry, notes); err != nil {
		// one active reservation per (book, member)
		if isUniqueViolation(err) {
			return model.Reservation{}, errs.ErrDuplicateRequest
		}
		r.log.Error("CreateReservation", zap.Error(err))
		return model.Reservation{}, err
	}
	res.BookID, res.BookUid = book.ID, book.BookUid
	res.MemberID, res.MemberUid = member.ID, member.MemberUid
	return res, nil
}

func (r *repository) ListMemberReservations(ctx context.Context, memberUid string) ([]model.Reservation, error) {
	q := `
	select ` + reservationColumns + `
	from reservations r
	join books b on b.id = r.book_id
	join members m on m.id = r.member_id
	where m.member_uid = $1
	order by r.reservation_date desc`

	var items []model.Reservation
	if err := r.db.SelectContext(ctx, &items, q, memberUid); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) CancelReservation(ctx context.Context, reservationUid, memberUid string) (model.Reservation, error) {
	q := `
	update reservations r
	set status = 'cancelled'
	from members m
	where r.reservation_uid = $1 and m.id = r.member_id and m.member_uid = $2 and r.status = 'active'
	returning r.id`

	var id int
	if err := r.db.QueryRowContext(ctx, q, reservationUid, memberUid).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, errs.ErrNotFound
		}
		return model.Reservation{}, err
	}
	return r.getReservationByID(ctx, id)
}

func (r *repository) getReservationByID(ctx context.Context, id int) (model.Reservation, error) {
	q := `
	select ` + reservationColumns + `
	from reservations r
	join books b on b.id = r.book_id
	join members m on m.id = r.member_id
	where r.id = $1`

	var res model.Reservation
	if err := r.db.GetContext(ctx, &res, q, id); err != nil {
		return model.Reservation{}, err
	}
	return res, nil
}

// fulfillNextTx picks the earliest active reservation for the book, FIFO by
// reservation_date with id as the tiebreak, and marks it fulfilled. Runs
// inside the return transaction so the pick is consistent with the release
// of the book. Fulfilment only notifies; it never creates a loan.
func fulfillNextTx(ctx context.Context, tx *sqlx.Tx, bookID int) (*model.Reservation, error) {
	var id int
	err := tx.QueryRowContext(ctx, `
	select id from reservations
	where book_id = $1 and status = 'active'
	order by reservation_date asc, id asc
	limit 1
	for update`, bookID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `update reservations set status = 'fulfilled' where id = $1`, id); err != nil {
		return nil, err
	}

	q := `
	select ` + reservationColumns + `
	from reservations r
	join books b on b.id = r.book_id
	join members m on m.id = r.member_id
	where r.id = $1`

	var res model.Reservation
	if err := tx.GetContext(ctx, &res, q, id); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repository) ExpireStaleReservations(ctx context.Context, asOf time.Time) (int64, error) {
	q := `
	update reservations set status = 'expired'
	where status = 'active' and expiry_date < $1`

	res, err := r.db.ExecContext(ctx, q, asOf)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
