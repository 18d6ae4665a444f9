package audit

import (
	"context"
	"encoding/json"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type Logger struct {
	logs store.ActivityLogRepository
}

func New(logs store.ActivityLogRepository) *Logger {
	return &Logger{logs: logs}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.ActivityLog{
		ActorID:  ev.ActorID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.logs.Create(ctx, &entry)
}
