package events

import "encoding/json"

// Pub/Sub channel constants
const (
	EventsChannel = "channel:events"
)

// Event types
const (
	TypeSnapshotExported = "snapshot_exported"
)

// Event represents a global message published via Pub/Sub.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// SnapshotExportedPayload is the payload for the "snapshot_exported" event.
type SnapshotExportedPayload struct {
	SnapshotID string `json:"snapshot_id"`
	Key        string `json:"key"`
}

// New builds an event with a JSON encoded payload.
func New(eventType string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: eventType, Payload: raw}, nil
}
