package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hsalamardi/lending-service/internal/errs"
	"github.com/hsalamardi/lending-service/internal/model"
	"github.com/hsalamardi/lending-service/internal/service"
)

type fakeRepo struct {
	getBook              func(bookUid string) (model.Book, error)
	getMember            func(memberUid string) (model.Member, error)
	activeLoanForBook    func(bookID int) (model.Loan, error)
	hasOpenLoan          func(bookID, memberID int) (bool, error)
	createBorrowRequest  func(book model.Book, member model.Member, durationDays int, notes string) (model.BorrowRequest, error)
	approveBorrowRequest func(requestUid string, override int) (model.Loan, error)
	returnLoan           func(loanUid string, dailyRate float64) (model.Loan, *model.Reservation, error)
	getLoan              func(loanUid string) (model.Loan, error)
	createReturnRequest  func(loan model.Loan, member model.Member, notes string) (model.ReturnRequest, error)
	approveReturnRequest func(requestUid string, dailyRate float64) (model.Loan, *model.Reservation, error)
	createReservation    func(book model.Book, member model.Member, notes string, ttl time.Duration) (model.Reservation, error)
	expireStale          func(asOf time.Time) (int64, error)
}

func (f *fakeRepo) GetBook(_ context.Context, bookUid string) (model.Book, error) {
	return f.getBook(bookUid)
}

func (f *fakeRepo) GetMember(_ context.Context, memberUid string) (model.Member, error) {
	return f.getMember(memberUid)
}

func (f *fakeRepo) ActiveLoanForBook(_ context.Context, bookID int) (model.Loan, error) {
	return f.activeLoanForBook(bookID)
}

func (f *fakeRepo) CreateBorrowRequest(_ context.Context, book model.Book, member model.Member, durationDays int, notes string) (model.BorrowRequest, error) {
	return f.createBorrowRequest(book, member, durationDays, notes)
}

func (f *fakeRepo) GetBorrowRequest(context.Context, string) (model.BorrowRequest, error) {
	return model.BorrowRequest{}, nil
}

func (f *fakeRepo) ListBorrowRequests(context.Context, model.RequestStatus) ([]model.BorrowRequest, error) {
	return nil, nil
}

func (f *fakeRepo) ApproveBorrowRequest(_ context.Context, requestUid string, override int) (model.Loan, error) {
	return f.approveBorrowRequest(requestUid, override)
}

func (f *fakeRepo) DenyBorrowRequest(context.Context, string, string) (model.BorrowRequest, error) {
	return model.BorrowRequest{}, nil
}

func (f *fakeRepo) GetLoan(_ context.Context, loanUid string) (model.Loan, error) {
	return f.getLoan(loanUid)
}

func (f *fakeRepo) ListMemberLoans(context.Context, string) ([]model.Loan, error) {
	return nil, nil
}

func (f *fakeRepo) HasOpenLoan(_ context.Context, bookID, memberID int) (bool, error) {
	return f.hasOpenLoan(bookID, memberID)
}

func (f *fakeRepo) ReturnLoan(_ context.Context, loanUid string, dailyRate float64) (model.Loan, *model.Reservation, error) {
	return f.returnLoan(loanUid, dailyRate)
}

func (f *fakeRepo) CreateReturnRequest(_ context.Context, loan model.Loan, member model.Member, notes string) (model.ReturnRequest, error) {
	return f.createReturnRequest(loan, member, notes)
}

func (f *fakeRepo) GetReturnRequest(context.Context, string) (model.ReturnRequest, error) {
	return model.ReturnRequest{}, nil
}

func (f *fakeRepo) ApproveReturnRequest(_ context.Context, requestUid string, dailyRate float64) (model.Loan, *model.Reservation, error) {
	return f.approveReturnRequest(requestUid, dailyRate)
}

func (f *fakeRepo) DenyReturnRequest(context.Context, string, string) (model.ReturnRequest, error) {
	return model.ReturnRequest{}, nil
}

func (f *fakeRepo) CreateReservation(_ context.Context, book model.Book, member model.Member, notes string, ttl time.Duration) (model.Reservation, error) {
	return f.createReservation(book, member, notes, ttl)
}

func (f *fakeRepo) ListMemberReservations(context.Context, string) ([]model.Reservation, error) {
	return nil, nil
}

func (f *fakeRepo) CancelReservation(context.Context, string, string) (model.Reservation, error) {
	return model.Reservation{}, nil
}

func (f *fakeRepo) ExpireStaleReservations(_ context.Context, asOf time.Time) (int64, error) {
	return f.expireStale(asOf)
}

type captureEnqueuer struct {
	events []any
}

func (c *captureEnqueuer) Enqueue(_ string, v any) error {
	c.events = append(c.events, v)
	return nil
}

const (
	bookUid   = "0b11e074-5cf5-4f14-a92f-ec21a47a7a32"
	memberUid = "7c0a8c3e-11c7-4f37-8e8e-3a19ab9f0d11"
	loanUid   = "1f1d9a7b-2f7f-47ac-b41d-6f8b9a20cd55"
)

func activeMember() model.Member {
	return model.Member{ID: 2, MemberUid: memberUid, Status: model.MemberActive, MaxBooksAllowed: 5}
}

func newService(repo *fakeRepo, pub service.Enqueuer) *service.Service {
	cfg := service.Config{DailyFineRate: 1.00, ReservationTTL: 7 * 24 * time.Hour}
	return service.NewService(repo, pub, cfg, zap.NewExample().Named("test"))
}

func TestService_SubmitBorrowRequest(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name     string
		repo     *fakeRepo
		req      model.CreateBorrowRequest
		wantDays int
		wantErr  error
	}{
		{
			name: "ok default duration",
			repo: &fakeRepo{
				getBook: func(string) (model.Book, error) {
					return model.Book{ID: 1, BookUid: bookUid, IsAvailable: true}, nil
				},
				getMember:   func(string) (model.Member, error) { return activeMember(), nil },
				hasOpenLoan: func(int, int) (bool, error) { return false, nil },
				createBorrowRequest: func(_ model.Book, _ model.Member, days int, _ string) (model.BorrowRequest, error) {
					return model.BorrowRequest{DurationDays: days, Status: model.RequestPending}, nil
				},
			},
			req:      model.CreateBorrowRequest{BookUid: bookUid, MemberUid: memberUid},
			wantDays: model.DefaultLoanDays,
		},
		{
			name: "book unavailable",
			repo: &fakeRepo{
				getBook: func(string) (model.Book, error) {
					return model.Book{ID: 1, BookUid: bookUid, IsAvailable: false}, nil
				},
			},
			req:     model.CreateBorrowRequest{BookUid: bookUid, MemberUid: memberUid},
			wantErr: errs.ErrBookUnavailable,
		},
		{
			name: "member over fine ceiling",
			repo: &fakeRepo{
				getBook: func(string) (model.Book, error) {
					return model.Book{ID: 1, BookUid: bookUid, IsAvailable: true}, nil
				},
				getMember: func(string) (model.Member, error) {
					m := activeMember()
					m.TotalFines = model.FineCeiling
					return m, nil
				},
			},
			req:     model.CreateBorrowRequest{BookUid: bookUid, MemberUid: memberUid},
			wantErr: errs.ErrMemberIneligible,
		},
		{
			name: "already borrowed this book",
			repo: &fakeRepo{
				getBook: func(string) (model.Book, error) {
					return model.Book{ID: 1, BookUid: bookUid, IsAvailable: true}, nil
				},
				getMember:   func(string) (model.Member, error) { return activeMember(), nil },
				hasOpenLoan: func(int, int) (bool, error) { return true, nil },
			},
			req:     model.CreateBorrowRequest{BookUid: bookUid, MemberUid: memberUid},
			wantErr: errs.ErrDuplicateRequest,
		},
		{
			name: "unknown book",
			repo: &fakeRepo{
				getBook: func(string) (model.Book, error) { return model.Book{}, errs.ErrNotFound },
			},
			req:     model.CreateBorrowRequest{BookUid: bookUid, MemberUid: memberUid},
			wantErr: errs.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newService(tt.repo, service.NopEnqueuer{})

			got, err := svc.SubmitBorrowRequest(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantDays, got.DurationDays)
			require.Equal(t, model.RequestPending, got.Status)
		})
	}
}

func TestService_ReturnLoan_PublishesEvents(t *testing.T) {
	t.Parallel()

	returnDate := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	fulfilled := &model.Reservation{
		ReservationUid: "5a7e66a1-6a43-4dbb-9d1a-40fe27f66c0f",
		BookUid:        bookUid,
		MemberUid:      memberUid,
		Status:         model.ReservationFulfilled,
	}

	repo := &fakeRepo{
		returnLoan: func(uid string, dailyRate float64) (model.Loan, *model.Reservation, error) {
			require.Equal(t, loanUid, uid)
			require.Equal(t, 1.00, dailyRate)
			return model.Loan{
				LoanUid:    loanUid,
				BookUid:    bookUid,
				MemberUid:  memberUid,
				ReturnDate: &returnDate,
				Status:     model.LoanReturned,
				FineAmount: 3.00,
			}, fulfilled, nil
		},
	}
	pub := &captureEnqueuer{}
	svc := newService(repo, pub)

	loan, err := svc.ReturnLoan(context.Background(), loanUid)
	require.NoError(t, err)
	require.Equal(t, model.LoanReturned, loan.Status)
	require.Equal(t, 3.00, loan.FineAmount)

	require.Len(t, pub.events, 2)
	returned, ok := pub.events[0].(service.LoanReturnedEvent)
	require.True(t, ok)
	require.Equal(t, service.EventLoanReturned, returned.Event)
	require.Equal(t, 3.00, returned.FineAmount)

	res, ok := pub.events[1].(service.ReservationFulfilledEvent)
	require.True(t, ok)
	require.Equal(t, service.EventReservationFulfilled, res.Event)
	require.Equal(t, fulfilled.ReservationUid, res.ReservationUid)
}

func TestService_ReturnLoan_AlreadyReturned(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		returnLoan: func(string, float64) (model.Loan, *model.Reservation, error) {
			return model.Loan{}, nil, errs.ErrAlreadyReturned
		},
	}
	pub := &captureEnqueuer{}
	svc := newService(repo, pub)

	_, err := svc.ReturnLoan(context.Background(), loanUid)
	require.ErrorIs(t, err, errs.ErrAlreadyReturned)
	require.Empty(t, pub.events)
}

func TestService_GetBook_DerivedStatus(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name      string
		available bool
		loanErr   error
		dueDate   time.Time
		want      model.BookStatus
	}{
		{
			name:      "on the shelf",
			available: true,
			want:      model.BookAvailable,
		},
		{
			name:      "out on loan",
			available: false,
			dueDate:   time.Now().UTC().AddDate(0, 0, 7),
			want:      model.BookBorrowed,
		},
		{
			name:      "out and overdue",
			available: false,
			dueDate:   time.Now().UTC().AddDate(0, 0, -3),
			want:      model.BookOverdue,
		},
		{
			name:      "out of circulation without open loan",
			available: false,
			loanErr:   errs.ErrNotFound,
			want:      model.BookUnavailable,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := &fakeRepo{
				getBook: func(string) (model.Book, error) {
					return model.Book{ID: 1, BookUid: bookUid, IsAvailable: tt.available}, nil
				},
				activeLoanForBook: func(int) (model.Loan, error) {
					if tt.loanErr != nil {
						return model.Loan{}, tt.loanErr
					}
					return model.Loan{DueDate: tt.dueDate, Status: model.LoanBorrowed}, nil
				},
			}
			svc := newService(repo, service.NopEnqueuer{})

			view, err := svc.GetBook(context.Background(), bookUid)
			require.NoError(t, err)
			require.Equal(t, tt.want, view.Status)
		})
	}
}
