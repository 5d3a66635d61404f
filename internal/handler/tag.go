package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/videogamed/videogamed/internal/repository"
)

// TagHandler attaches catalogue tags to games.
type TagHandler struct {
	Tags  TagStore
	Games GameStore
}

func NewTagHandler(tags TagStore, games GameStore) *TagHandler {
	return &TagHandler{Tags: tags, Games: games}
}

// Attach adds an existing tag to a game. A tag already on the game is
// reported back rather than duplicated.
func (h *TagHandler) Attach(c echo.Context) error {
	if _, ok := contextUserID(c); !ok {
		return goToLogin(c)
	}
	gameID, err := paramID(c, "gameId")
	if err != nil {
		return badGameID(c)
	}
	tagID, err := strconv.ParseUint(c.FormValue("tag_id"), 10, 64)
	if err != nil {
		return Respond(c, Response{
			Status:   http.StatusBadRequest,
			Message:  "Invalid tag id",
			Payload:  echo.Map{"error": "Invalid tag."},
			Template: viewError,
		})
	}

	ctx, cancel := queryCtx(c)
	defer cancel()

	if _, err := h.Games.Get(ctx, gameID); err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return gameNotFound(c)
		}
		log.Printf("tag: game lookup failed: %v", err)
		return storageError(c)
	}

	if err := h.Tags.Attach(ctx, tagID, gameID); err != nil {
		if errors.Is(err, repository.ErrTagExists) {
			return Respond(c, Response{
				Status:   http.StatusConflict,
				Message:  "Tag already attached",
				Payload:  echo.Map{"error": "This tag already exists."},
				Template: viewError,
			})
		}
		log.Printf("tag: attach failed: %v", err)
		return storageError(c)
	}

	return Respond(c, Response{
		Status:   http.StatusCreated,
		Message:  "Tag added",
		Redirect: fmt.Sprintf("/games/%d", gameID),
	})
}
