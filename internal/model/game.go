package model

// DefaultCoverURL is applied by the database when a game is created without
// cover art.
const DefaultCoverURL = "https://www.huber-online.com/daisy_website_files/_processed_/8/0/csm_no-image_d5c4ab1322.jpg"

// Game represents a row in the `games` table. TotalStars is an accumulator:
// every review bumps it by the review's star count, so the browse pages can
// rank games without aggregating reviews.
type Game struct {
	ID          uint64 `json:"id"`          // games.id
	Title       string `json:"title"`       // games.title
	Description string `json:"description"` // games.description
	Cover       string `json:"cover"`       // games.cover
	Developer   string `json:"developer"`   // games.developer
	ReleaseYear int    `json:"releaseYear"` // games.release_year
	TotalStars  int    `json:"totalStars"`  // games.total_stars
}
