// Package events defines the messages published when mappings change.
package events

import "time"

// TopicMappingCreated is the stream newly created mappings are published to.
const TopicMappingCreated = "mapping.created"

// MappingCreatedEvent is emitted once per newly stored mapping. Requests that
// return an existing mapping publish nothing.
type MappingCreatedEvent struct {
	Code        string    `json:"code"`
	OriginalURL string    `json:"originalUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	RequestID   string    `json:"requestId,omitempty"`
}
