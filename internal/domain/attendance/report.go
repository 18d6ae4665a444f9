package attendance

import (
	"time"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
)

var MealTypes = []string{"Breakfast", "Lunch", "Snack", "Dinner"}

var IncidentTypes = []string{"Injury", "Illness", "Behavior", "Other"}

func ValidStatus(s models.AttendanceStatus) bool {
	switch s {
	case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate, models.AttendanceEarlyDeparture:
		return true
	}
	return false
}

type Summary struct {
	TotalRecords        int            `json:"totalRecords"`
	ByStatus            map[string]int `json:"byStatus"`
	ByChild             map[string]int `json:"byChild"`
	AverageCheckInTime  *string        `json:"averageCheckInTime"`
	AverageCheckOutTime *string        `json:"averageCheckOutTime"`
}

// Summarize counts records by status and by child name and averages the
// check-in/check-out time of day (UTC, HH:MM:SS). Averages are nil when no
// record carries that time.
func Summarize(records []models.Attendance) Summary {
	s := Summary{
		TotalRecords: len(records),
		ByStatus:     map[string]int{},
		ByChild:      map[string]int{},
	}

	var in, out clockMean
	for _, r := range records {
		s.ByStatus[string(r.Status)]++
		s.ByChild[childLabel(r)]++

		if r.CheckIn.Time != nil {
			in.add(*r.CheckIn.Time)
		}
		if r.CheckOut.Time != nil {
			out.add(*r.CheckOut.Time)
		}
	}

	s.AverageCheckInTime = in.value()
	s.AverageCheckOutTime = out.value()
	return s
}

func childLabel(r models.Attendance) string {
	if r.Child != nil {
		return r.Child.FullName()
	}
	return r.ChildID.String()
}

type clockMean struct {
	total time.Duration
	n     int
}

func (m *clockMean) add(t time.Time) {
	t = t.UTC()
	m.total += time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
	m.n++
}

func (m *clockMean) value() *string {
	if m.n == 0 {
		return nil
	}
	avg := m.total / time.Duration(m.n)
	v := time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(avg).Format("15:04:05")
	return &v
}
