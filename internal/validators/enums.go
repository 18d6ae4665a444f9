package validators

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/daycare-manager/internal/domain/attendance"
	"github.com/BruksfildServices01/daycare-manager/internal/domain/notification"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
)

var hhmm = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// oneOf accepts the empty string so optional and patch fields only fail on
// a value that is present and unknown. Pair with "required" when needed.
func oneOf(values ...string) validator.Func {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, ok := set[s]
		return ok
	}
}

func validHHMM(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || hhmm.MatchString(s)
}

var tags = map[string]validator.Func{
	"role":   oneOf(string(models.RoleAdmin), string(models.RoleBabysitter), string(models.RoleParent)),
	"gender": oneOf(string(models.GenderMale), string(models.GenderFemale), string(models.GenderOther)),
	"hhmm":   validHHMM,

	"weekday":   oneOf(models.Weekdays...),
	"frequency": oneOf("Daily", "Weekly", "Monthly"),

	"attendance_status": oneOf(
		string(models.AttendancePresent), string(models.AttendanceAbsent),
		string(models.AttendanceLate), string(models.AttendanceEarlyDeparture),
	),
	"meal_type":     oneOf(attendance.MealTypes...),
	"incident_type": oneOf(attendance.IncidentTypes...),

	"schedule_status": oneOf(
		string(models.SchedulePending), string(models.ScheduleConfirmed),
		string(models.ScheduleCancelled), string(models.ScheduleCompleted),
	),
	"payment_status": oneOf(
		string(models.PaymentPending), string(models.PaymentPaid),
		string(models.PaymentPartiallyPaid), string(models.PaymentRefunded),
	),

	"finance_type": oneOf(string(models.FinancePayment), string(models.FinanceRefund), string(models.FinanceExpense)),
	"finance_status": oneOf(
		string(models.FinancePending), string(models.FinanceCompleted),
		string(models.FinanceFailed), string(models.FinanceRefunded),
	),
	"payment_method": oneOf(
		string(models.MethodCreditCard), string(models.MethodDebitCard),
		string(models.MethodBankTransfer), string(models.MethodCash),
	),

	"notification_type": oneOf(
		string(models.NotificationSchedule), string(models.NotificationPayment),
		string(models.NotificationAttendance), string(models.NotificationMessage),
		string(models.NotificationSystem), string(models.NotificationEmergency),
		string(models.NotificationReview),
	),
	"priority": oneOf(
		string(models.PriorityLow), string(models.PriorityMedium),
		string(models.PriorityHigh), string(models.PriorityUrgent),
	),
	"notification_status": oneOf(
		string(models.NotificationUnread), string(models.NotificationRead), string(models.NotificationArchived),
	),
	"related_model": oneOf(notification.RelatedModels...),
}

var registerOnce sync.Once

// Register installs the custom tags on gin's validator engine.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		err = RegisterOn(v)
	})
	return err
}

func RegisterOn(v *validator.Validate) error {
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
