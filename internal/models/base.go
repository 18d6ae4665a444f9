package models

import "github.com/google/uuid"

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// Weekday names used by availability windows and schedule time slots.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type TimeWindow struct {
	Day       string `json:"day" binding:"omitempty,weekday"`
	StartTime string `json:"startTime" binding:"omitempty,hhmm"`
	EndTime   string `json:"endTime" binding:"omitempty,hhmm"`
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
