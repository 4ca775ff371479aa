package amqp

import (
	"encoding/json"
	"time"
)

// BillReminderMessage carries everything the notification worker needs
// to send one reminder email, so the worker stays database-free.
type BillReminderMessage struct {
	BillID    int64     `json:"bill_id"`
	OwnerID   int64     `json:"owner_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Title     string    `json:"title"`
	Amount    string    `json:"amount"`
	Category  string    `json:"category"`
	DueDate   string    `json:"due_date"`
	Timestamp time.Time `json:"timestamp"`
}

func (m *BillReminderMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BillReminderMessageFromJSON(data []byte) (*BillReminderMessage, error) {
	var msg BillReminderMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
