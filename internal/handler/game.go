package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/videogamed/videogamed/internal/model"
	"github.com/videogamed/videogamed/internal/repository"
	"github.com/videogamed/videogamed/internal/session"
)

// GameHandler covers the landing pages, the catalogue, search, the game
// detail page and the per-user wishlist and played lists.
type GameHandler struct {
	Games    GameStore
	Reviews  ReviewStore
	Tags     TagStore
	Sessions *session.Store
}

func NewGameHandler(games GameStore, reviews ReviewStore, tags TagStore, sessions *session.Store) *GameHandler {
	return &GameHandler{Games: games, Reviews: reviews, Tags: tags, Sessions: sessions}
}

// Home renders the landing page: the three best-rated games, the three most
// recent releases and the three most-liked reviews. It serves both / and
// /home; the only difference is whether a viewer is logged in, which the
// payload reports so the client can swap the navigation.
func (h *GameHandler) Home(c echo.Context) error {
	ctx, cancel := queryCtx(c)
	defer cancel()

	rated, err := h.Games.TopRated(ctx, 3)
	if err != nil {
		log.Printf("game: top rated failed: %v", err)
		return storageError(c)
	}
	recent, err := h.Games.TopRecent(ctx, 3)
	if err != nil {
		log.Printf("game: top recent failed: %v", err)
		return storageError(c)
	}
	liked, err := h.Reviews.TopLiked(ctx, 3)
	if err != nil {
		log.Printf("game: top liked failed: %v", err)
		return storageError(c)
	}

	_, loggedIn := currentUserID(c, h.Sessions)
	return Respond(c, Response{
		Status:  http.StatusOK,
		Message: "Home page retrieved",
		Payload: echo.Map{
			"topRated":  rated,
			"topRecent": recent,
			"topLiked":  liked,
			"loggedIn":  loggedIn,
		},
		Template: viewHome,
	})
}

// List renders the full catalogue.
func (h *GameHandler) List(c echo.Context) error {
	ctx, cancel := queryCtx(c)
	defer cancel()

	games, err := h.Games.List(ctx)
	if err != nil {
		log.Printf("game: list failed: %v", err)
		return storageError(c)
	}
	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Game list retrieved",
		Payload:  echo.Map{"games": games},
		Template: viewSearch,
	})
}

// Search filters the catalogue by a case-insensitive title fragment. An
// empty query returns the whole catalogue, same as List.
func (h *GameHandler) Search(c echo.Context) error {
	ctx, cancel := queryCtx(c)
	defer cancel()

	q := strings.TrimSpace(c.FormValue("search"))
	var (
		games []model.Game
		err   error
	)
	if q == "" {
		games, err = h.Games.List(ctx)
	} else {
		games, err = h.Games.SearchByTitle(ctx, q)
	}
	if err != nil {
		log.Printf("game: search failed: %v", err)
		return storageError(c)
	}
	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Game list retrieved",
		Payload:  echo.Map{"games": games, "search": q},
		Template: viewSearch,
	})
}

// Show renders a single game with its reviews (newest first, with author
// names and avatars) and tags. The payload reports whether the viewer is
// logged in and whether the game already sits on their lists so the page
// can pick which action buttons to draw.
func (h *GameHandler) Show(c echo.Context) error {
	gameID, err := paramID(c, "gameId")
	if err != nil {
		return badGameID(c)
	}

	ctx, cancel := queryCtx(c)
	defer cancel()

	game, err := h.Games.Get(ctx, gameID)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return gameNotFound(c)
		}
		log.Printf("game: get failed: %v", err)
		return storageError(c)
	}

	reviews, err := h.Reviews.ForGame(ctx, gameID)
	if err != nil {
		log.Printf("game: reviews failed: %v", err)
		return storageError(c)
	}
	tags, err := h.Tags.ForGame(ctx, gameID)
	if err != nil {
		log.Printf("game: tags failed: %v", err)
		return storageError(c)
	}
	// The full tag list feeds the add-tag form on the page.
	allTags, err := h.Tags.All(ctx)
	if err != nil {
		log.Printf("game: tag list failed: %v", err)
		return storageError(c)
	}

	payload := echo.Map{
		"game":    game,
		"reviews": reviews,
		"tags":    tags,
		"allTags": allTags,
	}

	userID, loggedIn := currentUserID(c, h.Sessions)
	payload["loggedIn"] = loggedIn
	if loggedIn {
		wished, err := h.Games.InWishlist(ctx, userID, gameID)
		if err != nil {
			log.Printf("game: wishlist check failed: %v", err)
			return storageError(c)
		}
		payload["inWishlist"] = wished

		played, err := h.Games.HasPlayed(ctx, userID, gameID)
		if err != nil {
			log.Printf("game: played check failed: %v", err)
			return storageError(c)
		}
		payload["played"] = played
	}

	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Game retrieved",
		Payload:  payload,
		Template: viewGame,
	})
}

// Wishlist renders the viewer's wishlist.
func (h *GameHandler) Wishlist(c echo.Context) error {
	userID, ok := contextUserID(c)
	if !ok {
		return goToLogin(c)
	}

	ctx, cancel := queryCtx(c)
	defer cancel()

	games, err := h.Games.Wishlist(ctx, userID)
	if err != nil {
		log.Printf("game: wishlist failed: %v", err)
		return storageError(c)
	}
	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Wishlist retrieved",
		Payload:  echo.Map{"games": games},
		Template: viewWishlist,
	})
}

// AddToWishlist puts a game on the viewer's wishlist. Adding a game that is
// already there is a no-op, not an error.
func (h *GameHandler) AddToWishlist(c echo.Context) error {
	userID, ok := contextUserID(c)
	if !ok {
		return goToLogin(c)
	}
	gameID, err := paramFormGameID(c)
	if err != nil {
		return badGameID(c)
	}

	ctx, cancel := queryCtx(c)
	defer cancel()

	if err := h.Games.AddToWishlist(ctx, userID, gameID); err != nil {
		log.Printf("game: add to wishlist failed: %v", err)
		return storageError(c)
	}
	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Game added to wishlist",
		Redirect: "/wishlist",
	})
}

// RemoveFromWishlist takes a game off the viewer's wishlist. Removing a
// game that is not there is a no-op.
func (h *GameHandler) RemoveFromWishlist(c echo.Context) error {
	userID, ok := contextUserID(c)
	if !ok {
		return goToLogin(c)
	}
	gameID, err := paramID(c, "gameId")
	if err != nil {
		return badGameID(c)
	}

	ctx, cancel := queryCtx(c)
	defer cancel()

	if err := h.Games.RemoveFromWishlist(ctx, userID, gameID); err != nil {
		log.Printf("game: remove from wishlist failed: %v", err)
		return storageError(c)
	}
	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Game removed from wishlist",
		Redirect: "/wishlist",
	})
}

// Played renders the viewer's played list.
func (h *GameHandler) Played(c echo.Context) error {
	userID, ok := contextUserID(c)
	if !ok {
		return goToLogin(c)
	}

	ctx, cancel := queryCtx(c)
	defer cancel()

	games, err := h.Games.Played(ctx, userID)
	if err != nil {
		log.Printf("game: played failed: %v", err)
		return storageError(c)
	}
	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Played list retrieved",
		Payload:  echo.Map{"games": games},
		Template: viewPlayed,
	})
}

// MarkPlayed puts a game on the viewer's played list and, in the same
// transaction, drops it from the wishlist. Marking a game twice is a no-op.
func (h *GameHandler) MarkPlayed(c echo.Context) error {
	userID, ok := contextUserID(c)
	if !ok {
		return goToLogin(c)
	}
	gameID, err := paramFormGameID(c)
	if err != nil {
		return badGameID(c)
	}

	ctx, cancel := queryCtx(c)
	defer cancel()

	if err := h.Games.MarkPlayed(ctx, userID, gameID); err != nil {
		log.Printf("game: mark played failed: %v", err)
		return storageError(c)
	}
	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Game marked as played",
		Redirect: "/played",
	})
}

// RemovePlayed takes a game off the viewer's played list.
func (h *GameHandler) RemovePlayed(c echo.Context) error {
	userID, ok := contextUserID(c)
	if !ok {
		return goToLogin(c)
	}
	gameID, err := paramID(c, "gameId")
	if err != nil {
		return badGameID(c)
	}

	ctx, cancel := queryCtx(c)
	defer cancel()

	if err := h.Games.RemovePlayed(ctx, userID, gameID); err != nil {
		log.Printf("game: remove played failed: %v", err)
		return storageError(c)
	}
	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Game removed from played list",
		Redirect: "/played",
	})
}

// paramFormGameID reads the game id from the game_id form field, the shape
// the wishlist and played forms submit.
func paramFormGameID(c echo.Context) (uint64, error) {
	raw := strings.TrimSpace(c.FormValue("game_id"))
	if raw == "" {
		return 0, errors.New("missing game_id")
	}
	return strconv.ParseUint(raw, 10, 64)
}

// badGameID is the shared response for an unparseable game id.
func badGameID(c echo.Context) error {
	return Respond(c, Response{
		Status:   http.StatusBadRequest,
		Message:  "Invalid game id",
		Payload:  echo.Map{"error": "Invalid game."},
		Template: viewError,
	})
}

// gameNotFound is the shared response for a well-formed id that matches no game.
func gameNotFound(c echo.Context) error {
	return Respond(c, Response{
		Status:   http.StatusNotFound,
		Message:  "Game not found",
		Payload:  echo.Map{"error": "Game not found."},
		Template: viewError,
	})
}
