package finance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"studiodesk/internal/domain"
	"studiodesk/internal/repository"
)

// Repository is the journal/expense access the reporting needs.
type Repository interface {
	ListPaymentsInRange(ctx context.Context, from, to time.Time) ([]repository.PaymentWithBooking, error)
	ListExpensesInRange(ctx context.Context, from, to time.Time) ([]domain.Expense, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type Stats struct {
	TotalIncome       int64 `json:"totalIncome"`
	TotalExpense      int64 `json:"totalExpense"`
	NetProfit         int64 `json:"netProfit"`
	NetDepositFlow    int64 `json:"netDepositFlow"`
	DepositsCollected int64 `json:"depositsCollected"`
	DepositsReturned  int64 `json:"depositsReturned"`
}

type Transaction struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Amount      int64     `json:"amount"`
}

type ChartPoint struct {
	Date    string `json:"date"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
}

type Report struct {
	Stats              Stats         `json:"stats"`
	ChartData          []ChartPoint  `json:"chartData"`
	RecentTransactions []Transaction `json:"recentTransactions"`
}

// Report builds the money overview for a period. Income counts RENT
// journal entries only; deposits held are the customer's money, not
// revenue, and deposit flow is reported separately.
func (s *Service) Report(ctx context.Context, from, to time.Time) (*Report, error) {
	payments, err := s.repo.ListPaymentsInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	expenses, err := s.repo.ListExpensesInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	var report Report
	txs := make([]Transaction, 0, len(payments)+len(expenses))

	for _, p := range payments {
		desc := "Payment"
		if p.BookingCode != "" {
			desc = fmt.Sprintf("Booking %s - %s", p.BookingCode, p.CustomerName)
		}

		switch p.Payment.Type {
		case domain.PaymentRent:
			// Rent settled out of the deposit still counts as realized
			// income; the matching DEPOSIT_OUT shows in the deposit flow.
			report.Stats.TotalIncome += p.Payment.Amount
			txs = append(txs, Transaction{
				ID:          p.Payment.ID,
				Date:        p.Payment.PaidAt,
				Description: desc,
				Category:    "Income",
				Type:        "INCOME",
				Amount:      p.Payment.Amount,
			})
		case domain.PaymentDepositIn:
			report.Stats.DepositsCollected += p.Payment.Amount
			txs = append(txs, Transaction{
				ID:          p.Payment.ID,
				Date:        p.Payment.PaidAt,
				Description: fmt.Sprintf("Deposit - %s", p.CustomerName),
				Category:    "Deposit",
				Type:        "DEPOSIT_IN",
				Amount:      p.Payment.Amount,
			})
		case domain.PaymentDepositOut, domain.PaymentRefund:
			report.Stats.DepositsReturned += p.Payment.Amount
			txs = append(txs, Transaction{
				ID:          p.Payment.ID,
				Date:        p.Payment.PaidAt,
				Description: fmt.Sprintf("Refund - %s", p.CustomerName),
				Category:    "Refund",
				Type:        "DEPOSIT_OUT",
				Amount:      -p.Payment.Amount,
			})
		}
	}

	for _, e := range expenses {
		report.Stats.TotalExpense += e.Amount
		txs = append(txs, Transaction{
			ID:          e.ID,
			Date:        e.Date,
			Description: e.Note,
			Category:    e.Category,
			Type:        "EXPENSE",
			Amount:      e.Amount,
		})
	}

	report.Stats.NetProfit = report.Stats.TotalIncome - report.Stats.TotalExpense
	report.Stats.NetDepositFlow = report.Stats.DepositsCollected - report.Stats.DepositsReturned

	sort.Slice(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })
	report.RecentTransactions = txs
	report.ChartData = buildChart(txs)
	return &report, nil
}

func buildChart(txs []Transaction) []ChartPoint {
	daily := make(map[string]*ChartPoint)
	for _, t := range txs {
		key := t.Date.Format("2006-01-02")
		point, ok := daily[key]
		if !ok {
			point = &ChartPoint{Date: key}
			daily[key] = point
		}
		switch t.Type {
		case "INCOME":
			point.Income += t.Amount
		case "EXPENSE":
			point.Expense += t.Amount
		}
	}

	out := make([]ChartPoint, 0, len(daily))
	for _, p := range daily {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ResolveRange turns the UI period filter into [from, to]. Explicit dates
// win over the named filter; the default window is the current month.
func (s *Service) ResolveRange(filter, startDate, endDate string) (time.Time, time.Time, error) {
	now := s.now()

	if startDate != "" && endDate != "" {
		from, err := time.ParseInLocation("2006-01-02", startDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid startDate: %w", err)
		}
		to, err := time.ParseInLocation("2006-01-02", endDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid endDate: %w", err)
		}
		return startOfDay(from), endOfDay(to), nil
	}

	switch filter {
	case "TODAY":
		return startOfDay(now), endOfDay(now), nil
	case "YESTERDAY":
		y := now.AddDate(0, 0, -1)
		return startOfDay(y), endOfDay(y), nil
	default: // THIS_MONTH
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		last := first.AddDate(0, 1, 0).Add(-time.Nanosecond)
		return first, last, nil
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(24*time.Hour - time.Nanosecond)
}
