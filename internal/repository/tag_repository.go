package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/videogamed/videogamed/internal/model"
)

// ErrTagExists is returned when a tag is attached to a game it is already
// linked to. Handlers surface it as "This tag already exists."
var ErrTagExists = errors.New("tag already attached to game")

// TagRepo manages persistence for tags and the gametag association table.
type TagRepo struct{ DB *sql.DB }

func NewTagRepo(db *sql.DB) *TagRepo { return &TagRepo{DB: db} }

// Create inserts a tag and assigns the generated id back to the struct.
func (r *TagRepo) Create(ctx context.Context, t *model.Tag) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tag (description) VALUES (?)", t.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// All returns every tag, for the tag picker on the game page.
func (r *TagRepo) All(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, description FROM tag")
	if err != nil {
		return nil, err
	}
	return scanTags(rows)
}

// Attach links a tag to a game. INSERT IGNORE plus the unique key make the
// duplicate case affect zero rows, which is reported as ErrTagExists.
func (r *TagRepo) Attach(ctx context.Context, tagID, gameID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO gametag (tag_id, game_id) VALUES (?,?)", tagID, gameID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTagExists
	}
	return nil
}

// ForGame returns the tags linked to a game.
func (r *TagRepo) ForGame(ctx context.Context, gameID uint64) ([]model.Tag, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT t.id, t.description
		 FROM tag t JOIN gametag gt ON t.id = gt.tag_id
		 WHERE gt.game_id = ?`, gameID)
	if err != nil {
		return nil, err
	}
	return scanTags(rows)
}

func scanTags(rows *sql.Rows) ([]model.Tag, error) {
	defer rows.Close()
	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Description); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
