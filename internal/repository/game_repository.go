package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/videogamed/videogamed/internal/model"
)

// ErrGameNotFound indicates that a game was not located in the DB.
var ErrGameNotFound = errors.New("game not found")

// GameRepo manages persistence for games and the per-user wishlist and
// played association tables.
type GameRepo struct{ DB *sql.DB }

func NewGameRepo(db *sql.DB) *GameRepo { return &GameRepo{DB: db} }

const gameColumns = "id, title, description, cover, developer, release_year, total_stars"

func scanGames(rows *sql.Rows) ([]model.Game, error) {
	defer rows.Close()
	var games []model.Game
	for rows.Next() {
		var g model.Game
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.Cover, &g.Developer, &g.ReleaseYear, &g.TotalStars); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// Create inserts a game and populates database defaults (cover art) back
// onto the struct. An empty Cover keeps the DB default placeholder image.
func (r *GameRepo) Create(ctx context.Context, g *model.Game) error {
	var (
		res sql.Result
		err error
	)
	if g.Cover != "" {
		res, err = r.DB.ExecContext(ctx,
			"INSERT INTO games (title, description, cover, developer, release_year, total_stars) VALUES (?,?,?,?,?,?)",
			g.Title, g.Description, g.Cover, g.Developer, g.ReleaseYear, g.TotalStars)
	} else {
		res, err = r.DB.ExecContext(ctx,
			"INSERT INTO games (title, description, developer, release_year, total_stars) VALUES (?,?,?,?,?)",
			g.Title, g.Description, g.Developer, g.ReleaseYear, g.TotalStars)
	}
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.Get(ctx, uint64(id))
	if err != nil {
		return err
	}
	*g = stored
	return nil
}

// Get fetches a single game by id.
func (r *GameRepo) Get(ctx context.Context, id uint64) (model.Game, error) {
	var g model.Game
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+gameColumns+" FROM games WHERE id=? LIMIT 1", id).
		Scan(&g.ID, &g.Title, &g.Description, &g.Cover, &g.Developer, &g.ReleaseYear, &g.TotalStars)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Game{}, ErrGameNotFound
	}
	return g, err
}

// List returns the whole catalogue.
func (r *GameRepo) List(ctx context.Context) ([]model.Game, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+gameColumns+" FROM games")
	if err != nil {
		return nil, err
	}
	return scanGames(rows)
}

// SearchByTitle returns games whose title contains the query string.
func (r *GameRepo) SearchByTitle(ctx context.Context, q string) ([]model.Game, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+gameColumns+" FROM games WHERE title LIKE CONCAT('%', ?, '%')", q)
	if err != nil {
		return nil, err
	}
	return scanGames(rows)
}

// TopRated returns the n games with the highest total_stars, descending.
func (r *GameRepo) TopRated(ctx context.Context, n int) ([]model.Game, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+gameColumns+" FROM games ORDER BY total_stars DESC LIMIT ?", n)
	if err != nil {
		return nil, err
	}
	return scanGames(rows)
}

// TopRecent returns the n games with the latest release year, descending.
func (r *GameRepo) TopRecent(ctx context.Context, n int) ([]model.Game, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+gameColumns+" FROM games ORDER BY release_year DESC LIMIT ?", n)
	if err != nil {
		return nil, err
	}
	return scanGames(rows)
}

// AddStars bumps the game's star accumulator by n in a single UPDATE, so
// concurrent reviews never lose increments.
func (r *GameRepo) AddStars(ctx context.Context, id uint64, n int) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE games SET total_stars = total_stars + ? WHERE id=?", n, id)
	return err
}

// AddToWishlist records that the user wants to play the game. INSERT IGNORE
// plus the unique key make a second add a no-op rather than a duplicate row.
func (r *GameRepo) AddToWishlist(ctx context.Context, userID, gameID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO wishlist_games (user_id, game_id) VALUES (?,?)", userID, gameID)
	return err
}

// RemoveFromWishlist deletes the association; removing an absent entry is a
// no-op, not an error.
func (r *GameRepo) RemoveFromWishlist(ctx context.Context, userID, gameID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM wishlist_games WHERE user_id=? AND game_id=?", userID, gameID)
	return err
}

// Wishlist returns the user's wishlisted games.
func (r *GameRepo) Wishlist(ctx context.Context, userID uint64) ([]model.Game, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT g.id, g.title, g.description, g.cover, g.developer, g.release_year, g.total_stars
		 FROM games g JOIN wishlist_games w ON g.id = w.game_id
		 WHERE w.user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	return scanGames(rows)
}

// InWishlist reports whether the game is on the user's wishlist.
func (r *GameRepo) InWishlist(ctx context.Context, userID, gameID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM wishlist_games WHERE user_id=? AND game_id=? LIMIT 1",
		userID, gameID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// MarkPlayed moves a game onto the played list. The wishlist entry, if any,
// is removed in the same transaction so the game never appears on both lists.
func (r *GameRepo) MarkPlayed(ctx context.Context, userID, gameID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"INSERT IGNORE INTO played_games (user_id, game_id) VALUES (?,?)", userID, gameID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM wishlist_games WHERE user_id=? AND game_id=?", userID, gameID); err != nil {
		return err
	}
	return tx.Commit()
}

// RemovePlayed deletes the played association; absent entries are a no-op.
func (r *GameRepo) RemovePlayed(ctx context.Context, userID, gameID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM played_games WHERE user_id=? AND game_id=?", userID, gameID)
	return err
}

// Played returns the user's played games.
func (r *GameRepo) Played(ctx context.Context, userID uint64) ([]model.Game, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT g.id, g.title, g.description, g.cover, g.developer, g.release_year, g.total_stars
		 FROM games g JOIN played_games p ON g.id = p.game_id
		 WHERE p.user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	return scanGames(rows)
}

// HasPlayed reports whether the user has the game on their played list.
// Reviews are only accepted for played games.
func (r *GameRepo) HasPlayed(ctx context.Context, userID, gameID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM played_games WHERE user_id=? AND game_id=? LIMIT 1",
		userID, gameID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
