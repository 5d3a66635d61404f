package model

// Tag represents a row in the `tag` table. Tags are linked to games through
// the `gametag` association table, one row per (tag, game) pair.
type Tag struct {
	ID          uint64 `json:"id"`          // tag.id
	Description string `json:"description"` // tag.description
}
