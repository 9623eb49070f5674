// Package usersink forwards activity events to a go-users activity sink.
package usersink

import (
	"context"
	"maps"
	"strings"
	"time"

	"github.com/goliatone/go-composer/pkg/activity"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/google/uuid"
)

// Hook maps events onto go-users activity records.
type Hook struct {
	Sink interfaces.ActivitySink
}

// Notify logs event through the sink. Events without a verb are ignored.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil || strings.TrimSpace(event.Verb) == "" {
		return nil
	}
	data := map[string]any{}
	maps.Copy(data, event.Metadata)
	if event.DefinitionCode != "" {
		data["definition_code"] = event.DefinitionCode
	}
	if len(event.Recipients) > 0 {
		data["recipients"] = append([]string(nil), event.Recipients...)
	}
	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	return h.Sink.Log(ctx, interfaces.ActivityRecord{
		ActorID:    parseUUID(event.ActorID),
		UserID:     parseUUID(event.UserID),
		TenantID:   parseUUID(event.TenantID),
		Verb:       event.Verb,
		ObjectType: event.ObjectType,
		ObjectID:   event.ObjectID,
		Channel:    event.Channel,
		Data:       data,
		OccurredAt: occurred,
	})
}

func parseUUID(value string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return id
}
