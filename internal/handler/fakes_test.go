package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/videogamed/videogamed/internal/model"
	"github.com/videogamed/videogamed/internal/queue"
	"github.com/videogamed/videogamed/internal/repository"
)

// In-memory fakes for the store interfaces. They reproduce the sentinel
// errors and idempotency rules the real repositories implement so handler
// tests exercise the same branches.

type fakeUserStore struct {
	nextID    uint64
	users     map[uint64]model.User
	passwords map[uint64]string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: map[uint64]model.User{}, passwords: map[uint64]string{}}
}

func (s *fakeUserStore) Create(_ context.Context, email, password string, _ int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return model.User{}, repository.ErrEmailExists
		}
	}
	u := model.User{ID: s.nextID, Email: email, Username: "Guest", Pfp: model.DefaultAvatarURL}
	s.users[u.ID] = u
	s.passwords[u.ID] = password
	s.nextID++
	return u, nil
}

func (s *fakeUserStore) Authenticate(_ context.Context, email, password string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for id, u := range s.users {
		if u.Email == email && s.passwords[id] == password {
			return u, nil
		}
	}
	return model.User{}, repository.ErrInvalidCredentials
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) UpdateUsername(_ context.Context, id uint64, username string) error {
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Username = username
	s.users[id] = u
	return nil
}

func (s *fakeUserStore) UpdateAvatar(_ context.Context, id uint64, url string) error {
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Pfp = url
	s.users[id] = u
	return nil
}

type fakeGameStore struct {
	games    map[uint64]model.Game
	wishlist map[uint64]map[uint64]bool
	played   map[uint64]map[uint64]bool
}

func newFakeGameStore(games ...model.Game) *fakeGameStore {
	s := &fakeGameStore{
		games:    map[uint64]model.Game{},
		wishlist: map[uint64]map[uint64]bool{},
		played:   map[uint64]map[uint64]bool{},
	}
	for _, g := range games {
		s.games[g.ID] = g
	}
	return s
}

func (s *fakeGameStore) Get(_ context.Context, id uint64) (model.Game, error) {
	g, ok := s.games[id]
	if !ok {
		return model.Game{}, repository.ErrGameNotFound
	}
	return g, nil
}

func (s *fakeGameStore) List(_ context.Context) ([]model.Game, error) {
	out := make([]model.Game, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeGameStore) SearchByTitle(_ context.Context, q string) ([]model.Game, error) {
	all, _ := s.List(context.Background())
	var out []model.Game
	for _, g := range all {
		if strings.Contains(strings.ToLower(g.Title), strings.ToLower(q)) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *fakeGameStore) TopRated(_ context.Context, n int) ([]model.Game, error) {
	all, _ := s.List(context.Background())
	sort.Slice(all, func(i, j int) bool { return all[i].TotalStars > all[j].TotalStars })
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (s *fakeGameStore) TopRecent(_ context.Context, n int) ([]model.Game, error) {
	all, _ := s.List(context.Background())
	sort.Slice(all, func(i, j int) bool { return all[i].ReleaseYear > all[j].ReleaseYear })
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (s *fakeGameStore) AddStars(_ context.Context, id uint64, n int) error {
	g, ok := s.games[id]
	if !ok {
		return repository.ErrGameNotFound
	}
	g.TotalStars += n
	s.games[id] = g
	return nil
}

func (s *fakeGameStore) AddToWishlist(_ context.Context, userID, gameID uint64) error {
	if s.wishlist[userID] == nil {
		s.wishlist[userID] = map[uint64]bool{}
	}
	s.wishlist[userID][gameID] = true
	return nil
}

func (s *fakeGameStore) RemoveFromWishlist(_ context.Context, userID, gameID uint64) error {
	delete(s.wishlist[userID], gameID)
	return nil
}

func (s *fakeGameStore) Wishlist(_ context.Context, userID uint64) ([]model.Game, error) {
	return s.listOf(s.wishlist[userID]), nil
}

func (s *fakeGameStore) InWishlist(_ context.Context, userID, gameID uint64) (bool, error) {
	return s.wishlist[userID][gameID], nil
}

func (s *fakeGameStore) MarkPlayed(_ context.Context, userID, gameID uint64) error {
	if s.played[userID] == nil {
		s.played[userID] = map[uint64]bool{}
	}
	s.played[userID][gameID] = true
	delete(s.wishlist[userID], gameID)
	return nil
}

func (s *fakeGameStore) RemovePlayed(_ context.Context, userID, gameID uint64) error {
	delete(s.played[userID], gameID)
	return nil
}

func (s *fakeGameStore) Played(_ context.Context, userID uint64) ([]model.Game, error) {
	return s.listOf(s.played[userID]), nil
}

func (s *fakeGameStore) HasPlayed(_ context.Context, userID, gameID uint64) (bool, error) {
	return s.played[userID][gameID], nil
}

func (s *fakeGameStore) listOf(ids map[uint64]bool) []model.Game {
	out := make([]model.Game, 0, len(ids))
	for id := range ids {
		if g, ok := s.games[id]; ok {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeReviewStore struct {
	nextID  uint64
	reviews map[uint64]model.Review
	liked   map[uint64]map[uint64]bool // reviewID -> userID -> liked
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{nextID: 1, reviews: map[uint64]model.Review{}, liked: map[uint64]map[uint64]bool{}}
}

func (s *fakeReviewStore) Create(_ context.Context, v *model.Review) error {
	for _, r := range s.reviews {
		if r.UserID == v.UserID && r.ReviewedGameID == v.ReviewedGameID {
			return repository.ErrAlreadyReviewed
		}
	}
	v.ID = s.nextID
	s.nextID++
	s.reviews[v.ID] = *v
	return nil
}

func (s *fakeReviewStore) Get(_ context.Context, id uint64) (model.Review, error) {
	r, ok := s.reviews[id]
	if !ok {
		return model.Review{}, repository.ErrReviewNotFound
	}
	return r, nil
}

func (s *fakeReviewStore) ForGame(_ context.Context, gameID uint64) ([]model.ReviewWithAuthor, error) {
	var out []model.ReviewWithAuthor
	for _, r := range s.reviews {
		if r.ReviewedGameID == gameID {
			out = append(out, model.ReviewWithAuthor{Review: r, Username: "Guest"})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeReviewStore) ForUser(_ context.Context, userID uint64) ([]model.Review, error) {
	var out []model.Review
	for _, r := range s.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeReviewStore) TopLiked(_ context.Context, n int) ([]model.ReviewWithAuthor, error) {
	var out []model.ReviewWithAuthor
	for _, r := range s.reviews {
		out = append(out, model.ReviewWithAuthor{Review: r, Username: "Guest"})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Likes > out[j].Likes })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *fakeReviewStore) Like(_ context.Context, reviewID, userID uint64) (bool, error) {
	r, ok := s.reviews[reviewID]
	if !ok {
		return false, repository.ErrReviewNotFound
	}
	if s.liked[reviewID] == nil {
		s.liked[reviewID] = map[uint64]bool{}
	}
	if s.liked[reviewID][userID] {
		return false, nil
	}
	s.liked[reviewID][userID] = true
	r.Likes++
	s.reviews[reviewID] = r
	return true, nil
}

type fakeTagStore struct {
	tags     map[uint64]model.Tag
	attached map[uint64]map[uint64]bool // gameID -> tagID -> attached
}

func newFakeTagStore(tags ...model.Tag) *fakeTagStore {
	s := &fakeTagStore{tags: map[uint64]model.Tag{}, attached: map[uint64]map[uint64]bool{}}
	for _, t := range tags {
		s.tags[t.ID] = t
	}
	return s
}

func (s *fakeTagStore) All(_ context.Context) ([]model.Tag, error) {
	out := make([]model.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeTagStore) Attach(_ context.Context, tagID, gameID uint64) error {
	if s.attached[gameID] == nil {
		s.attached[gameID] = map[uint64]bool{}
	}
	if s.attached[gameID][tagID] {
		return repository.ErrTagExists
	}
	s.attached[gameID][tagID] = true
	return nil
}

func (s *fakeTagStore) ForGame(_ context.Context, gameID uint64) ([]model.Tag, error) {
	var out []model.Tag
	for id := range s.attached[gameID] {
		if t, ok := s.tags[id]; ok {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakePublisher struct {
	events []queue.ReviewPostedEvent
}

func (p *fakePublisher) PublishReviewPosted(_ context.Context, ev queue.ReviewPostedEvent) error {
	p.events = append(p.events, ev)
	return nil
}

// c0 is shorthand for a background context in store setup calls.
func c0() context.Context { return context.Background() }

// newFormContext builds an Echo context for a form POST.
func newFormContext(method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}
