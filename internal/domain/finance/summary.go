package finance

import "github.com/BruksfildServices01/daycare-manager/internal/models"

type Summary struct {
	TotalIncome     float64            `json:"totalIncome"`
	TotalExpenses   float64            `json:"totalExpenses"`
	NetBalance      float64            `json:"netBalance"`
	ByType          map[string]float64 `json:"byType"`
	ByMonth         map[string]float64 `json:"byMonth"`
	ByPaymentMethod map[string]float64 `json:"byPaymentMethod"`
}

// Summarize reduces records into totals. Payments are income; refunds and
// expenses are both counted as expenses. Months are keyed by English name.
func Summarize(records []models.Finance) Summary {
	s := Summary{
		ByType:          map[string]float64{},
		ByMonth:         map[string]float64{},
		ByPaymentMethod: map[string]float64{},
	}

	for _, r := range records {
		if r.Type == models.FinancePayment {
			s.TotalIncome += r.Amount
		} else {
			s.TotalExpenses += r.Amount
		}

		s.ByType[string(r.Type)] += r.Amount
		if !r.Date.IsZero() {
			s.ByMonth[r.Date.Month().String()] += r.Amount
		}
		s.ByPaymentMethod[string(r.PaymentMethod)] += r.Amount
	}

	s.NetBalance = s.TotalIncome - s.TotalExpenses
	return s
}
