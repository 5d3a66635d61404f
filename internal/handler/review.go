package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/videogamed/videogamed/internal/model"
	"github.com/videogamed/videogamed/internal/queue"
	"github.com/videogamed/videogamed/internal/repository"
)

// ReviewHandler covers posting reviews and liking them.
type ReviewHandler struct {
	Reviews   ReviewStore
	Games     GameStore
	Publisher ActivityPublisher
}

func NewReviewHandler(reviews ReviewStore, games GameStore, pub ActivityPublisher) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews, Games: games, Publisher: pub}
}

// Form renders the review form for the game named by the gameId query
// parameter. Only games the viewer has played can be reviewed, so the form
// itself already enforces the rule.
func (h *ReviewHandler) Form(c echo.Context) error {
	userID, ok := contextUserID(c)
	if !ok {
		return goToLogin(c)
	}
	gameID, err := strconv.ParseUint(c.QueryParam("gameId"), 10, 64)
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
		log.Printf("review: form game lookup failed: %v", err)
		return storageError(c)
	}

	played, err := h.Games.HasPlayed(ctx, userID, gameID)
	if err != nil {
		log.Printf("review: played check failed: %v", err)
		return storageError(c)
	}
	if !played {
		return forbidden(c, "You can only review games you have played.")
	}

	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Going to review form",
		Payload:  echo.Map{"game": game},
		Template: viewReviewForm,
	})
}

// Create posts a review. The viewer must have played the game, and each
// user gets one review per game; the stars land on the game's running
// total. A review.posted event goes to the broker best-effort.
func (h *ReviewHandler) Create(c echo.Context) error {
	userID, ok := contextUserID(c)
	if !ok {
		return goToLogin(c)
	}
	gameID, err := paramFormGameID(c)
	if err != nil {
		return badGameID(c)
	}

	title := strings.TrimSpace(c.FormValue("title"))
	text := strings.TrimSpace(c.FormValue("review"))
	stars, err := strconv.Atoi(c.FormValue("stars"))
	if err != nil || stars < 1 || stars > 5 {
		return Respond(c, Response{
			Status:   http.StatusBadRequest,
			Message:  "Invalid stars",
			Payload:  echo.Map{"error": "Stars must be between 1 and 5."},
			Template: viewError,
		})
	}
	if title == "" || text == "" {
		return Respond(c, Response{
			Status:   http.StatusBadRequest,
			Message:  "Missing review fields",
			Payload:  echo.Map{"error": "Title and review text are required."},
			Template: viewError,
		})
	}

	ctx, cancel := queryCtx(c)
	defer cancel()

	game, err := h.Games.Get(ctx, gameID)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return gameNotFound(c)
		}
		log.Printf("review: game lookup failed: %v", err)
		return storageError(c)
	}

	played, err := h.Games.HasPlayed(ctx, userID, gameID)
	if err != nil {
		log.Printf("review: played check failed: %v", err)
		return storageError(c)
	}
	if !played {
		return forbidden(c, "You can only review games you have played.")
	}

	review := model.Review{
		UserID:         userID,
		Title:          title,
		Review:         text,
		Stars:          stars,
		ReviewedGameID: gameID,
	}
	if err := h.Reviews.Create(ctx, &review); err != nil {
		if errors.Is(err, repository.ErrAlreadyReviewed) {
			return Respond(c, Response{
				Status:   http.StatusConflict,
				Message:  "Already reviewed",
				Payload:  echo.Map{"error": "You have already reviewed this game."},
				Template: viewError,
			})
		}
		log.Printf("review: create failed: %v", err)
		return storageError(c)
	}

	if err := h.Games.AddStars(ctx, gameID, stars); err != nil {
		log.Printf("review: add stars failed: %v", err)
		return storageError(c)
	}

	if h.Publisher != nil {
		ev := queue.ReviewPostedEvent{
			ReviewID:  review.ID,
			UserID:    userID,
			GameID:    gameID,
			GameTitle: game.Title,
			Stars:     stars,
			PostedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Publisher.PublishReviewPosted(ctx, ev); err != nil {
			log.Printf("review: publish event failed: %v", err)
		}
	}

	return Respond(c, Response{
		Status:   http.StatusCreated,
		Message:  "Review created",
		Redirect: fmt.Sprintf("/games/%d", gameID),
	})
}

// Like adds the viewer's like to a review. Each user counts at most once
// per review; a repeat like leaves the counter unchanged. Either way the
// viewer lands back on the game page.
func (h *ReviewHandler) Like(c echo.Context) error {
	userID, ok := contextUserID(c)
	if !ok {
		return goToLogin(c)
	}
	reviewID, err := paramID(c, "reviewId")
	if err != nil {
		return Respond(c, Response{
			Status:   http.StatusBadRequest,
			Message:  "Invalid review id",
			Payload:  echo.Map{"error": "Invalid review."},
			Template: viewError,
		})
	}

	ctx, cancel := queryCtx(c)
	defer cancel()

	review, err := h.Reviews.Get(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return Respond(c, Response{
				Status:   http.StatusNotFound,
				Message:  "Review not found",
				Payload:  echo.Map{"error": "Review not found."},
				Template: viewError,
			})
		}
		log.Printf("review: like lookup failed: %v", err)
		return storageError(c)
	}

	counted, err := h.Reviews.Like(ctx, reviewID, userID)
	if err != nil {
		log.Printf("review: like failed: %v", err)
		return storageError(c)
	}

	msg := "Review liked"
	if !counted {
		msg = "Review already liked"
	}
	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  msg,
		Redirect: fmt.Sprintf("/games/%d", review.ReviewedGameID),
	})
}
