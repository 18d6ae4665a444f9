package finance

import (
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
)

func ValidType(t models.FinanceType) bool {
	switch t {
	case models.FinancePayment, models.FinanceRefund, models.FinanceExpense:
		return true
	}
	return false
}

func ValidStatus(s models.FinanceStatus) bool {
	switch s {
	case models.FinancePending, models.FinanceCompleted, models.FinanceFailed, models.FinanceRefunded:
		return true
	}
	return false
}

func ValidMethod(m models.PaymentMethod) bool {
	switch m {
	case models.MethodCreditCard, models.MethodDebitCard, models.MethodBankTransfer, models.MethodCash:
		return true
	}
	return false
}

// CanCheckout allows online checkout only for pending payments.
func CanCheckout(f *models.Finance) error {
	if f.Type != models.FinancePayment {
		return httperr.ErrInvalid("invalid_type", "Only payments can be checked out")
	}
	if f.Status != models.FinancePending {
		return httperr.ErrInvalid("invalid_state", "Only pending payments can be checked out")
	}
	return nil
}

// StatusFromGateway maps a Mercado Pago payment status onto a record status.
// ok is false for in-flight states that must not change the record.
func StatusFromGateway(status string) (models.FinanceStatus, bool) {
	switch status {
	case "approved", "authorized":
		return models.FinanceCompleted, true
	case "rejected", "cancelled":
		return models.FinanceFailed, true
	case "refunded", "charged_back":
		return models.FinanceRefunded, true
	}
	return "", false
}
