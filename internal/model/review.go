package model

// Review represents a row in the `reviews` table. A user may review a given
// game at most once; the database enforces that with a unique key on
// (user_id, reviewed_game_id).
type Review struct {
	ID             uint64 `json:"id"`             // reviews.id
	UserID         uint64 `json:"userId"`         // reviews.user_id
	Title          string `json:"title"`          // reviews.title
	Likes          int    `json:"likes"`          // reviews.likes
	Review         string `json:"review"`         // reviews.review
	Stars          int    `json:"stars"`          // reviews.stars
	ReviewedGameID uint64 `json:"reviewedGameId"` // reviews.reviewed_game_id
}

// ReviewWithAuthor is a review joined with the author's display fields, used
// on the game page and the home page so reviews can be rendered with the
// reviewer's name and avatar without extra lookups.
type ReviewWithAuthor struct {
	Review
	Username string `json:"username"` // users.username
	Pfp      string `json:"pfp"`      // users.pfp
}
