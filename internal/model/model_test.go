package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hsalamardi/lending-service/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLoan_CalculateFine(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name      string
		dueDate   time.Time
		asOf      time.Time
		dailyRate float64
		want      float64
	}{
		{
			name:      "returned before due date",
			dueDate:   date(2024, 1, 10),
			asOf:      date(2024, 1, 5),
			dailyRate: 1.00,
			want:      0,
		},
		{
			name:      "returned on due date",
			dueDate:   date(2024, 1, 1),
			asOf:      date(2024, 1, 1),
			dailyRate: 1.00,
			want:      0,
		},
		{
			name:      "three days overdue",
			dueDate:   date(2024, 1, 1),
			asOf:      date(2024, 1, 4),
			dailyRate: 1.00,
			want:      3.00,
		},
		{
			name:      "overdue with higher rate",
			dueDate:   date(2024, 1, 1),
			asOf:      date(2024, 1, 11),
			dailyRate: 2.50,
			want:      25.00,
		},
		{
			name:      "time of day ignored",
			dueDate:   date(2024, 1, 1),
			asOf:      time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC),
			dailyRate: 1.00,
			want:      1.00,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			loan := model.Loan{DueDate: tt.dueDate, Status: model.LoanBorrowed}
			require.Equal(t, tt.want, loan.CalculateFine(tt.asOf, tt.dailyRate))
		})
	}
}

func TestLoan_IsOverdue(t *testing.T) {
	t.Parallel()

	loan := model.Loan{DueDate: date(2024, 1, 1), Status: model.LoanBorrowed}
	require.False(t, loan.IsOverdue(date(2024, 1, 1)))
	require.True(t, loan.IsOverdue(date(2024, 1, 2)))

	returned := model.Loan{DueDate: date(2024, 1, 1), Status: model.LoanReturned}
	require.False(t, returned.IsOverdue(date(2024, 2, 1)))
}

func TestMember_CanBorrow(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name   string
		member model.Member
		want   bool
	}{
		{
			name:   "active under limits",
			member: model.Member{Status: model.MemberActive, MaxBooksAllowed: 5, CurrentBooksCount: 2, TotalFines: 10.00},
			want:   true,
		},
		{
			name:   "suspended",
			member: model.Member{Status: model.MemberSuspended, MaxBooksAllowed: 5},
			want:   false,
		},
		{
			name:   "at book limit",
			member: model.Member{Status: model.MemberActive, MaxBooksAllowed: 5, CurrentBooksCount: 5},
			want:   false,
		},
		{
			name:   "fines at ceiling",
			member: model.Member{Status: model.MemberActive, MaxBooksAllowed: 5, TotalFines: model.FineCeiling},
			want:   false,
		},
		{
			name:   "fines just under ceiling",
			member: model.Member{Status: model.MemberActive, MaxBooksAllowed: 5, TotalFines: 49.99},
			want:   true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.member.CanBorrow())
		})
	}
}
