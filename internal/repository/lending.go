package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hsalamardi/lending-service/internal/errs"
	"github.com/hsalamardi/lending-service/internal/model"
)

const borrowRequestColumns = `r.id, r.request_uid, r.book_id, b.book_uid, r.member_id, m.member_uid,
	r.request_date, r.duration_days, r.status, r.notes, r.admin_notes, r.processed_date`

func (r *repository) CreateBorrowRequest(ctx context.Context, book model.Book, member model.Member, durationDays int, notes string) (model.BorrowRequest, error) {
	q := `
	insert into borrow_requests (request_uid, book_id, member_id, duration_days, notes)
	values ($1, $2, $3, $4, nullif($5, ''))
	returning id, request_uid, request_date, duration_days, status, notes, admin_notes, processed_date`

	var req model.BorrowRequest
	if err := r.db.GetContext(ctx, &req, q, uuid.New(), book.ID, member.ID, durationDays, notes); err != nil {
		if isUniqueViolation(err) {
			return model.BorrowRequest{}, errs.ErrDuplicateRequest
		}
		r.log.Error("CreateBorrowRequest", zap.Error(err))
		return model.BorrowRequest{}, err
	}
	req.BookID, req.BookUid = book.ID, book.BookUid
	req.MemberID, req.MemberUid = member.ID, member.MemberUid
	return req, nil
}

func (r *repository) GetBorrowRequest(ctx context.Context, requestUid string) (model.BorrowRequest, error) {
	q := `
	select ` + borrowRequestColumns + `
	from borrow_requests r
	join books b on b.id = r.book_id
	join members m on m.id = r.member_id
	where r.request_uid = $1`

	var req model.BorrowRequest
	if err := r.db.GetContext(ctx, &req, q, requestUid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BorrowRequest{}, errs.ErrNotFound
		}
		return model.BorrowRequest{}, err
	}
	return req, nil
}

func (r *repository) ListBorrowRequests(ctx context.Context, status model.RequestStatus) ([]model.BorrowRequest, error) {
	q := qb.Select("r.id", "r.request_uid", "r.book_id", "b.book_uid", "r.member_id", "m.member_uid",
		"r.request_date", "r.duration_days", "r.status", "r.notes", "r.admin_notes", "r.processed_date").
		From(borrowRequestsTableName + " r").
		Join(booksTableName + " b on b.id = r.book_id").
		Join(membersTableName + " m on m.id = r.member_id").
		OrderBy("r.request_date desc")

	if status != "" {
		q = q.Where(sq.Eq{"r.status": status})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.BorrowRequest
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) HasOpenLoan(ctx context.Context, bookID, memberID int) (bool, error) {
	q := `
	select count(*) from loans
	where book_id = $1 and member_id = $2 and status = 'borrowed'`

	var count int
	if err := r.db.QueryRowContext(ctx, q, bookID, memberID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// ApproveBorrowRequest turns a pending request into a loan. The book row
// is locked for the whole transaction so two approvals racing over the
// same book cannot both succeed; availability is re-read under the lock.
// A lost race leaves the request pending for the librarian to retry or deny.
func (r *repository) ApproveBorrowRequest(ctx context.Context, requestUid string, durationOverrideDays int) (model.Loan, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Loan{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	var req struct {
		ID           int                 `db:"id"`
		BookID       int                 `db:"book_id"`
		MemberID     int                 `db:"member_id"`
		DurationDays int                 `db:"duration_days"`
		Status       model.RequestStatus `db:"status"`
	}
	if err := tx.GetContext(ctx, &req,
		`select id, book_id, member_id, duration_days, status from borrow_requests where request_uid = $1 for update`,
		requestUid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrNotFound
		}
		return model.Loan{}, err
	}
	if req.Status != model.RequestPending {
		return model.Loan{}, errs.ErrRequestProcessed
	}

	var available bool
	if err := tx.QueryRowContext(ctx,
		`select is_available from books where id = $1 for update`, req.BookID).Scan(&available); err != nil {
		return model.Loan{}, err
	}
	if !available {
		return model.Loan{}, errs.ErrBookNoLongerAvailable
	}

	var member model.Member
	if err := tx.GetContext(ctx, &member,
		`select id, member_uid, status, max_books_allowed, current_books_count, total_fines
		 from members where id = $1 for update`, req.MemberID); err != nil {
		return model.Loan{}, err
	}
	if !member.CanBorrow() {
		return model.Loan{}, errs.ErrMemberIneligible
	}

	days := req.DurationDays
	if durationOverrideDays > 0 {
		days = durationOverrideDays
	}
	dueDate := time.Now().UTC().AddDate(0, 0, days)

	var loanID int
	if err := tx.QueryRowContext(ctx,
		`insert into loans (loan_uid, book_id, member_id, due_date) values ($1, $2, $3, $4) returning id`,
		uuid.New(), req.BookID, req.MemberID, dueDate.Format(time.DateOnly)).Scan(&loanID); err != nil {
		// partial unique index on open loans backs up the row lock
		if isUniqueViolation(err) {
			return model.Loan{}, errs.ErrBookNoLongerAvailable
		}
		return model.Loan{}, err
	}

	if _, err := tx.ExecContext(ctx, `update books set is_available = false where id = $1`, req.BookID); err != nil {
		return model.Loan{}, err
	}
	if _, err := tx.ExecContext(ctx,
		`update members set current_books_count = current_books_count + 1 where id = $1`, req.MemberID); err != nil {
		return model.Loan{}, err
	}
	if _, err := tx.ExecContext(ctx,
		`update borrow_requests set status = 'approved', processed_date = now() where id = $1`, req.ID); err != nil {
		return model.Loan{}, err
	}

	loan, err := getLoanByID(ctx, tx, loanID)
	if err != nil {
		return model.Loan{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *repository) DenyBorrowRequest(ctx context.Context, requestUid, reason string) (model.BorrowRequest, error) {
	q := `
	update borrow_requests set status = 'denied', admin_notes = $2, processed_date = now()
	where request_uid = $1 and status = 'pending'
	returning id`

	var id int
	if err := r.db.QueryRowContext(ctx, q, requestUid, reason).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r.deniedRequestErr(ctx, requestUid)
		}
		return model.BorrowRequest{}, err
	}
	return r.GetBorrowRequest(ctx, requestUid)
}

// deniedRequestErr distinguishes a missing request from one already processed.
func (r *repository) deniedRequestErr(ctx context.Context, requestUid string) (model.BorrowRequest, error) {
	if _, err := r.GetBorrowRequest(ctx, requestUid); err != nil {
		return model.BorrowRequest{}, err
	}
	return model.BorrowRequest{}, errs.ErrRequestProcessed
}

func (r *repository) GetLoan(ctx context.Context, loanUid string) (model.Loan, error) {
	q := `
	select ` + loanColumns + `
	from loans l
	join books b on b.id = l.book_id
	join members m on m.id = l.member_id
	where l.loan_uid = $1`

	var loan model.Loan
	if err := r.db.GetContext(ctx, &loan, q, loanUid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrNotFound
		}
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *repository) ListMemberLoans(ctx context.Context, memberUid string) ([]model.Loan, error) {
	q := `
	select ` + loanColumns + `
	from loans l
	join books b on b.id = l.book_id
	join members m on m.id = l.member_id
	where m.member_uid = $1
	order by l.borrow_date desc, l.id desc`

	var items []model.Loan
	if err := r.db.SelectContext(ctx, &items, q, memberUid); err != nil {
		return nil, err
	}
	return items, nil
}

// ReturnLoan closes an open loan: computes the fine under the row lock,
// releases the book and hands it to the earliest active reservation, all
// in one transaction. Calling it again for the same loan fails with
// ErrAlreadyReturned, so fines and counters are applied exactly once.
func (r *repository) ReturnLoan(ctx context.Context, loanUid string, dailyRate float64) (model.Loan, *model.Reservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Loan{}, nil, err
	}
	defer tx.Rollback() //nolint:errcheck

	var loanID int
	if err := tx.QueryRowContext(ctx,
		`select id from loans where loan_uid = $1 for update`, loanUid).Scan(&loanID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, nil, errs.ErrNotFound
		}
		return model.Loan{}, nil, err
	}

	loan, fulfilled, err := r.returnLoanTx(ctx, tx, loanID, dailyRate)
	if err != nil {
		return model.Loan{}, nil, err
	}
	if err := tx.Commit(); err != nil {
		return model.Loan{}, nil, err
	}
	return loan, fulfilled, nil
}

func (r *repository) returnLoanTx(ctx context.Context, tx *sqlx.Tx, loanID int, dailyRate float64) (model.Loan, *model.Reservation, error) {
	var loan model.Loan
	if err := tx.GetContext(ctx, &loan,
		`select id, loan_uid, book_id, member_id, borrow_date, due_date, return_date, status, fine_amount
		 from loans where id = $1 for update`, loanID); err != nil {
		return model.Loan{}, nil, err
	}
	if loan.Status != model.LoanBorrowed {
		return model.Loan{}, nil, errs.ErrAlreadyReturned
	}

	// lock ordering matches ApproveBorrowRequest: loan row, then book row
	if _, err := tx.ExecContext(ctx,
		`select id from books where id = $1 for update`, loan.BookID); err != nil {
		return model.Loan{}, nil, err
	}

	now := time.Now().UTC()
	fine := loan.CalculateFine(now, dailyRate)

	if _, err := tx.ExecContext(ctx,
		`update loans set status = 'returned', return_date = $2, fine_amount = $3 where id = $1`,
		loan.ID, now.Format(time.DateOnly), fine); err != nil {
		return model.Loan{}, nil, err
	}
	if _, err := tx.ExecContext(ctx, `update books set is_available = true where id = $1`, loan.BookID); err != nil {
		return model.Loan{}, nil, err
	}

	var count int
	if err := tx.QueryRowContext(ctx,
		`select current_books_count from members where id = $1 for update`, loan.MemberID).Scan(&count); err != nil {
		return model.Loan{}, nil, err
	}
	if count == 0 {
		// drifted counter, clamp instead of going negative
		r.log.Warn("current_books_count already zero on return",
			zap.Int("member_id", loan.MemberID), zap.Int("loan_id", loan.ID))
	}
	if _, err := tx.ExecContext(ctx,
		`update members
		 set current_books_count = greatest(current_books_count - 1, 0), total_fines = total_fines + $2
		 where id = $1`, loan.MemberID, fine); err != nil {
		return model.Loan{}, nil, err
	}

	fulfilled, err := fulfillNextTx(ctx, tx, loan.BookID)
	if err != nil {
		return model.Loan{}, nil, err
	}

	out, err := getLoanByID(ctx, tx, loan.ID)
	if err != nil {
		return model.Loan{}, nil, err
	}
	return out, fulfilled, nil
}

func getLoanByID(ctx context.Context, tx *sqlx.Tx, loanID int) (model.Loan, error) {
	q := `
	select ` + loanColumns + `
	from loans l
	join books b on b.id = l.book_id
	join members m on m.id = l.member_id
	where l.id = $1`

	var loan model.Loan
	if err := tx.GetContext(ctx, &loan, q, loanID); err != nil {
		return model.Loan{}, err
	}
	return loan, nil
}

const returnRequestColumns = `r.id, r.request_uid, r.loan_id, l.loan_uid, r.member_id, m.member_uid,
	r.request_date, r.status, r.notes, r.admin_notes, r.processed_date`

func (r *repository) CreateReturnRequest(ctx context.Context, loan model.Loan, member model.Member, notes string) (model.ReturnRequest, error) {
	q := `
	insert into return_requests (request_uid, loan_id, member_id, notes)
	values ($1, $2, $3, nullif($4, ''))
	returning id, request_uid, request_date, status, notes, admin_notes, processed_date`

	var req model.ReturnRequest
	if err := r.db.GetContext(ctx, &req, q, uuid.New(), loan.ID, member.ID, notes); err != nil {
		if isUniqueViolation(err) {
			return model.ReturnRequest{}, errs.ErrDuplicateRequest
		}
		r.log.Error("CreateReturnRequest", zap.Error(err))
		return model.ReturnRequest{}, err
	}
	req.LoanID, req.LoanUid = loan.ID, loan.LoanUid
	req.MemberID, req.MemberUid = member.ID, member.MemberUid
	return req, nil
}

func (r *repository) GetReturnRequest(ctx context.Context, requestUid string) (model.ReturnRequest, error) {
	q := `
	select ` + returnRequestColumns + `
	from return_requests r
	join loans l on l.id = r.loan_id
	join members m on m.id = r.member_id
	where r.request_uid = $1`

	var req model.ReturnRequest
	if err := r.db.GetContext(ctx, &req, q, requestUid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ReturnRequest{}, errs.ErrNotFound
		}
		return model.ReturnRequest{}, err
	}
	return req, nil
}

// ApproveReturnRequest closes the referenced loan in the same transaction
// that marks the request approved.
func (r *repository) ApproveReturnRequest(ctx context.Context, requestUid string, dailyRate float64) (model.Loan, *model.Reservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Loan{}, nil, err
	}
	defer tx.Rollback() //nolint:errcheck

	var req struct {
		ID     int                 `db:"id"`
		LoanID int                 `db:"loan_id"`
		Status model.RequestStatus `db:"status"`
	}
	if err := tx.GetContext(ctx, &req,
		`select id, loan_id, status from return_requests where request_uid = $1 for update`,
		requestUid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, nil, errs.ErrNotFound
		}
		return model.Loan{}, nil, err
	}
	if req.Status != model.RequestPending {
		return model.Loan{}, nil, errs.ErrRequestProcessed
	}

	loan, fulfilled, err := r.returnLoanTx(ctx, tx, req.LoanID, dailyRate)
	if err != nil {
		return model.Loan{}, nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`update return_requests set status = 'approved', processed_date = now() where id = $1`, req.ID); err != nil {
		return model.Loan{}, nil, err
	}
	if err := tx.Commit(); err != nil {
		return model.Loan{}, nil, err
	}
	return loan, fulfilled, nil
}

func (r *repository) DenyReturnRequest(ctx context.Context, requestUid, reason string) (model.ReturnRequest, error) {
	q := `
	update return_requests set status = 'denied', admin_notes = $2, processed_date = now()
	where request_uid = $1 and status = 'pending'
	returning id`

	var id int
	if err := r.db.QueryRowContext(ctx, q, requestUid, reason).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, err := r.GetReturnRequest(ctx, requestUid); err != nil {
				return model.ReturnRequest{}, err
			}
			return model.ReturnRequest{}, errs.ErrRequestProcessed
		}
		return model.ReturnRequest{}, err
	}
	return r.GetReturnRequest(ctx, requestUid)
}
