package messaging

import (
	"time"
)

// Message carries one event from a publisher to its subscribers
type Message struct {
	From      string    // ID of the publishing agent
	To        []string  // subscriber IDs (empty means broadcast)
	Content   any       // the event payload, e.g. an agent turn
	Timestamp time.Time // when the message was published
}

// Broker routes messages to subscribers
type Broker interface {
	// Publish delivers a message to its recipients
	Publish(msg Message) error
	// Subscribe registers a channel to receive messages for id
	Subscribe(id string, ch chan<- Message) error
	// Unsubscribe removes a subscription
	Unsubscribe(id string) error
}
