package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/videogamed/videogamed/internal/model"
)

// ErrAlreadyReviewed is returned when a user submits a second review for the
// same game; the unique key on (user_id, reviewed_game_id) rejects it.
var ErrAlreadyReviewed = errors.New("game already reviewed by this user")

// ErrReviewNotFound indicates that a review id has no row.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepo manages persistence for reviews and the liked_review
// deduplication table.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

const reviewColumns = "id, user_id, title, likes, review, stars, reviewed_game_id"

func scanReview(row *sql.Row) (model.Review, error) {
	var v model.Review
	err := row.Scan(&v.ID, &v.UserID, &v.Title, &v.Likes, &v.Review, &v.Stars, &v.ReviewedGameID)
	return v, err
}

// Create inserts a review and assigns the generated id back to the struct.
// The one-review-per-(user, game) rule lives in the database; a duplicate
// insert surfaces as ErrAlreadyReviewed.
func (r *ReviewRepo) Create(ctx context.Context, v *model.Review) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews (user_id, title, likes, review, stars, reviewed_game_id) VALUES (?,?,?,?,?,?)",
		v.UserID, v.Title, v.Likes, v.Review, v.Stars, v.ReviewedGameID)
	if err != nil {
		if isDuplicate(err) {
			return ErrAlreadyReviewed
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// Get fetches a single review by id.
func (r *ReviewRepo) Get(ctx context.Context, id uint64) (model.Review, error) {
	v, err := scanReview(r.DB.QueryRowContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Review{}, ErrReviewNotFound
	}
	return v, err
}

const reviewAuthorQuery = `SELECT r.id, r.user_id, r.title, r.likes, r.review, r.stars, r.reviewed_game_id,
	u.username, u.pfp
	FROM reviews r JOIN users u ON u.id = r.user_id`

func scanReviewsWithAuthor(rows *sql.Rows) ([]model.ReviewWithAuthor, error) {
	defer rows.Close()
	var out []model.ReviewWithAuthor
	for rows.Next() {
		var v model.ReviewWithAuthor
		if err := rows.Scan(&v.ID, &v.UserID, &v.Title, &v.Likes, &v.Review.Review, &v.Stars,
			&v.ReviewedGameID, &v.Username, &v.Pfp); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ForGame returns every review of a game joined with the author's display
// name and avatar, newest first.
func (r *ReviewRepo) ForGame(ctx context.Context, gameID uint64) ([]model.ReviewWithAuthor, error) {
	rows, err := r.DB.QueryContext(ctx,
		reviewAuthorQuery+" WHERE r.reviewed_game_id = ? ORDER BY r.id DESC", gameID)
	if err != nil {
		return nil, err
	}
	return scanReviewsWithAuthor(rows)
}

// ForUser returns every review written by the user.
func (r *ReviewRepo) ForUser(ctx context.Context, userID uint64) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE user_id=? ORDER BY id DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Review
	for rows.Next() {
		var v model.Review
		if err := rows.Scan(&v.ID, &v.UserID, &v.Title, &v.Likes, &v.Review, &v.Stars, &v.ReviewedGameID); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// TopLiked returns the n most liked reviews across all games, descending.
func (r *ReviewRepo) TopLiked(ctx context.Context, n int) ([]model.ReviewWithAuthor, error) {
	rows, err := r.DB.QueryContext(ctx,
		reviewAuthorQuery+" ORDER BY r.likes DESC LIMIT ?", n)
	if err != nil {
		return nil, err
	}
	return scanReviewsWithAuthor(rows)
}

// Like records that the user likes the review and bumps the counter, both in
// one transaction. The liked_review unique key deduplicates: a second like
// from the same user affects no rows and the counter stays untouched. The
// returned bool reports whether this call actually counted.
func (r *ReviewRepo) Like(ctx context.Context, reviewID, userID uint64) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT IGNORE INTO liked_review (user_id, review_id) VALUES (?,?)", userID, reviewID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		// Already liked; nothing to count.
		return false, tx.Commit()
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE reviews SET likes = likes + 1 WHERE id=?", reviewID); err != nil {
		return false, err
	}
	return true, tx.Commit()
}
