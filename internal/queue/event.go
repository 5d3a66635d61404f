// Package queue defines message payloads exchanged over the message broker.
package queue

// ReviewPostedEvent is published when a user posts a review. It carries
// enough detail for downstream consumers to log or aggregate activity
// without querying the primary database.
type ReviewPostedEvent struct {
	ReviewID  uint64 `json:"review_id"`
	UserID    uint64 `json:"user_id"`
	GameID    uint64 `json:"game_id"`
	GameTitle string `json:"game_title"`
	Stars     int    `json:"stars"`
	PostedAt  string `json:"posted_at"`
}
