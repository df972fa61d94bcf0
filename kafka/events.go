package kafka

import "time"

// Topics
const (
	TopicExpiryAlert     = "medicinal.expiry.alert"
	TopicImportCompleted = "medicinal.import.completed"
)

// Event types
const (
	EventTypeExpiryAlert     = "expiry.alert"
	EventTypeImportCompleted = "import.completed"
)

// ExpiryAlertEvent is emitted once per notified record per scan cycle.
type ExpiryAlertEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	MedicinalID uint      `json:"medicinal_id"`
	Name        string    `json:"name"`
	BatchNumber string    `json:"batch_number"`
	Category    string    `json:"category"`
	Validity    string    `json:"validity"`
	Band        string    `json:"band"`
	Timestamp   time.Time `json:"timestamp"`
}

// ImportCompletedEvent summarizes one upload ingestion run.
type ImportCompletedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Filename  string    `json:"filename"`
	Category  string    `json:"category"`
	Attempted int       `json:"attempted"`
	Accepted  int       `json:"accepted"`
	Created   int       `json:"created"`
	Timestamp time.Time `json:"timestamp"`
}
