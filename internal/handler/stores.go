package handler

import (
	"context"

	"github.com/videogamed/videogamed/internal/model"
	"github.com/videogamed/videogamed/internal/queue"
)

// Handlers depend on small store interfaces rather than the concrete repos,
// so tests can substitute in-memory fakes. The repository package satisfies
// all of them.

// UserStore is the slice of user persistence the handlers need.
type UserStore interface {
	Create(ctx context.Context, email, password string, cost int) (model.User, error)
	Authenticate(ctx context.Context, email, password string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	UpdateUsername(ctx context.Context, id uint64, username string) error
	UpdateAvatar(ctx context.Context, id uint64, url string) error
}

// GameStore covers the catalogue plus the wishlist and played lists.
type GameStore interface {
	Get(ctx context.Context, id uint64) (model.Game, error)
	List(ctx context.Context) ([]model.Game, error)
	SearchByTitle(ctx context.Context, q string) ([]model.Game, error)
	TopRated(ctx context.Context, n int) ([]model.Game, error)
	TopRecent(ctx context.Context, n int) ([]model.Game, error)
	AddStars(ctx context.Context, id uint64, n int) error
	AddToWishlist(ctx context.Context, userID, gameID uint64) error
	RemoveFromWishlist(ctx context.Context, userID, gameID uint64) error
	Wishlist(ctx context.Context, userID uint64) ([]model.Game, error)
	InWishlist(ctx context.Context, userID, gameID uint64) (bool, error)
	MarkPlayed(ctx context.Context, userID, gameID uint64) error
	RemovePlayed(ctx context.Context, userID, gameID uint64) error
	Played(ctx context.Context, userID uint64) ([]model.Game, error)
	HasPlayed(ctx context.Context, userID, gameID uint64) (bool, error)
}

// ReviewStore covers reviews and the like counter.
type ReviewStore interface {
	Create(ctx context.Context, v *model.Review) error
	Get(ctx context.Context, id uint64) (model.Review, error)
	ForGame(ctx context.Context, gameID uint64) ([]model.ReviewWithAuthor, error)
	ForUser(ctx context.Context, userID uint64) ([]model.Review, error)
	TopLiked(ctx context.Context, n int) ([]model.ReviewWithAuthor, error)
	Like(ctx context.Context, reviewID, userID uint64) (bool, error)
}

// TagStore covers tags and their game associations.
type TagStore interface {
	All(ctx context.Context) ([]model.Tag, error)
	Attach(ctx context.Context, tagID, gameID uint64) error
	ForGame(ctx context.Context, gameID uint64) ([]model.Tag, error)
}

// ActivityPublisher pushes domain events onto the message broker. Publishing
// is best-effort: handlers log failures and carry on.
type ActivityPublisher interface {
	PublishReviewPosted(ctx context.Context, ev queue.ReviewPostedEvent) error
}
