package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hsalamardi/lending-service/internal/errs"
	"github.com/hsalamardi/lending-service/internal/model"
)

type Repository interface {
	// catalog / membership stores
	GetBook(ctx context.Context, bookUid string) (model.Book, error)
	GetMember(ctx context.Context, memberUid string) (model.Member, error)
	ActiveLoanForBook(ctx context.Context, bookID int) (model.Loan, error)

	// lending
	CreateBorrowRequest(ctx context.Context, book model.Book, member model.Member, durationDays int, notes string) (model.BorrowRequest, error)
	GetBorrowRequest(ctx context.Context, requestUid string) (model.BorrowRequest, error)
	ListBorrowRequests(ctx context.Context, status model.RequestStatus) ([]model.BorrowRequest, error)
	ApproveBorrowRequest(ctx context.Context, requestUid string, durationOverrideDays int) (model.Loan, error)
	DenyBorrowRequest(ctx context.Context, requestUid, reason string) (model.BorrowRequest, error)
	GetLoan(ctx context.Context, loanUid string) (model.Loan, error)
	ListMemberLoans(ctx context.Context, memberUid string) ([]model.Loan, error)
	HasOpenLoan(ctx context.Context, bookID, memberID int) (bool, error)
	ReturnLoan(ctx context.Context, loanUid string, dailyRate float64) (model.Loan, *model.Reservation, error)
	CreateReturnRequest(ctx context.Context, loan model.Loan, member model.Member, notes string) (model.ReturnRequest, error)
	GetReturnRequest(ctx context.Context, requestUid string) (model.ReturnRequest, error)
	ApproveReturnRequest(ctx context.Context, requestUid string, dailyRate float64) (model.Loan, *model.Reservation, error)
	DenyReturnRequest(ctx context.Context, requestUid, reason string) (model.ReturnRequest, error)

	// reservations
	CreateReservation(ctx context.Context, book model.Book, member model.Member, notes string, ttl time.Duration) (model.Reservation, error)
	ListMemberReservations(ctx context.Context, memberUid string) ([]model.Reservation, error)
	CancelReservation(ctx context.Context, reservationUid, memberUid string) (model.Reservation, error)
	ExpireStaleReservations(ctx context.Context, asOf time.Time) (int64, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	booksTableName          = `books`
	membersTableName        = `members`
	loansTableName          = `loans`
	borrowRequestsTableName = `borrow_requests`
	returnRequestsTableName = `return_requests`
	reservationsTableName   = `reservations`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (r *repository) GetBook(ctx context.Context, bookUid string) (model.Book, error) {
	query, args, err := qb.Select("id", "book_uid", "serial", "title", "author", "isbn", "barcode", "shelf", "condition", "is_available").
		From(booksTableName).
		Where(sq.Eq{"book_uid": bookUid}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) GetMember(ctx context.Context, memberUid string) (model.Member, error) {
	query, args, err := qb.Select("id", "member_uid", "status", "max_books_allowed", "current_books_count", "total_fines").
		From(membersTableName).
		Where(sq.Eq{"member_uid": memberUid}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Member{}, err
	}

	var member model.Member
	if err := r.db.GetContext(ctx, &member, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Member{}, errs.ErrNotFound
		}
		return model.Member{}, err
	}
	return member, nil
}

const loanColumns = `l.id, l.loan_uid, l.book_id, b.book_uid, l.member_id, m.member_uid,
	l.borrow_date, l.due_date, l.return_date, l.status, l.fine_amount`

func (r *repository) ActiveLoanForBook(ctx context.Context, bookID int) (model.Loan, error) {
	q := `
	select ` + loanColumns + `
	from loans l
	join books b on b.id = l.book_id
	join members m on m.id = l.member_id
	where l.book_id = $1 and l.status = 'borrowed'`

	var loan model.Loan
	if err := r.db.GetContext(ctx, &loan, q, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrNotFound
		}
		return model.Loan{}, err
	}
	return loan, nil
}
