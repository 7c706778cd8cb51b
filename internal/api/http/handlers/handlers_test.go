package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campus-market/marketplace-service/internal/auth"
	"github.com/campus-market/marketplace-service/internal/config"
	"github.com/campus-market/marketplace-service/internal/domain"
	"github.com/campus-market/marketplace-service/internal/repository"
	"github.com/campus-market/marketplace-service/internal/service"
	"github.com/campus-market/marketplace-service/internal/validation"

	httptransport "github.com/campus-market/marketplace-service/internal/api/http"
	"github.com/campus-market/marketplace-service/internal/api/http/handlers"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}}
}

func (s *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) GetByAccountName(_ context.Context, accountName string) (*domain.User, error) {
	for _, user := range s.users {
		if user.AccountName == accountName {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type stubSessionStore struct {
	sessions map[string]string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: map[string]string{}}
}

func (s *stubSessionStore) Create(_ context.Context, userID string) (string, error) {
	sessionID := uuid.NewString()
	s.sessions[sessionID] = userID
	return sessionID, nil
}

func (s *stubSessionStore) Resolve(_ context.Context, sessionID string) (string, error) {
	userID, ok := s.sessions[sessionID]
	if !ok {
		return "", auth.ErrSessionNotFound
	}
	return userID, nil
}

func (s *stubSessionStore) Destroy(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

type stubPostRepo struct {
	posts       map[string]*domain.Post
	authorNames map[string]string
	createCalls int
	clock       time.Time
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{
		posts:       map[string]*domain.Post{},
		authorNames: map[string]string{},
		clock:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *stubPostRepo) Create(_ context.Context, post *domain.Post) error {
	s.createCalls++
	s.clock = s.clock.Add(time.Minute)
	post.ID = uuid.NewString()
	post.TimePosted = s.clock
	post.TimeUpdated = s.clock
	copied := *post
	s.posts[post.ID] = &copied
	return nil
}

func (s *stubPostRepo) GetByID(_ context.Context, id string) (*domain.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *post
	return &copied, nil
}

func (s *stubPostRepo) List(_ context.Context, limit, offset int) ([]domain.Post, int, error) {
	all := s.sorted()
	total := len(all)
	if offset > len(all) {
		return []domain.Post{}, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (s *stubPostRepo) ListByAuthor(_ context.Context, authorID string) ([]domain.Post, error) {
	out := make([]domain.Post, 0)
	for _, post := range s.sorted() {
		if post.AuthorID == authorID {
			out = append(out, post)
		}
	}
	return out, nil
}

func (s *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := s.posts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.posts, id)
	return nil
}

func (s *stubPostRepo) Search(_ context.Context, term string, limit int) ([]repository.SearchResult, error) {
	lowered := strings.ToLower(term)
	results := make([]repository.SearchResult, 0)
	for _, post := range s.sorted() {
		if strings.Contains(strings.ToLower(post.Title), lowered) ||
			strings.Contains(strings.ToLower(post.Description), lowered) {
			results = append(results, repository.SearchResult{
				Post:       post,
				AuthorName: s.authorNames[post.AuthorID],
			})
		}
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

func (s *stubPostRepo) sorted() []domain.Post {
	out := make([]domain.Post, 0, len(s.posts))
	for _, post := range s.posts {
		out = append(out, *post)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TimePosted.After(out[j].TimePosted)
	})
	return out
}

type stubRoommateRepo struct {
	roommates map[string]*domain.Roommate
}

func newStubRoommateRepo() *stubRoommateRepo {
	return &stubRoommateRepo{roommates: map[string]*domain.Roommate{}}
}

func (s *stubRoommateRepo) Create(_ context.Context, roommate *domain.Roommate) error {
	roommate.ID = uuid.NewString()
	roommate.TimePosted = time.Now()
	roommate.TimeUpdated = roommate.TimePosted
	copied := *roommate
	s.roommates[roommate.ID] = &copied
	return nil
}

func (s *stubRoommateRepo) GetByID(_ context.Context, id string) (*domain.Roommate, error) {
	roommate, ok := s.roommates[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *roommate
	return &copied, nil
}

func (s *stubRoommateRepo) List(_ context.Context, limit int) ([]domain.Roommate, error) {
	out := make([]domain.Roommate, 0, len(s.roommates))
	for _, roommate := range s.roommates {
		out = append(out, *roommate)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubTradeRepo struct {
	trades map[string]*domain.Trade
}

func newStubTradeRepo() *stubTradeRepo {
	return &stubTradeRepo{trades: map[string]*domain.Trade{}}
}

func (s *stubTradeRepo) Create(_ context.Context, trade *domain.Trade) error {
	trade.ID = uuid.NewString()
	trade.TimeInitiated = time.Now()
	copied := *trade
	s.trades[trade.ID] = &copied
	return nil
}

func (s *stubTradeRepo) GetByID(_ context.Context, id string) (*domain.Trade, error) {
	trade, ok := s.trades[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *trade
	return &copied, nil
}

func (s *stubTradeRepo) ListByUser(_ context.Context, userID string) ([]domain.Trade, error) {
	out := make([]domain.Trade, 0)
	for _, trade := range s.trades {
		if trade.SenderID == userID || trade.ReceiverID == userID {
			out = append(out, *trade)
		}
	}
	return out, nil
}

type testEnv struct {
	app      *fiber.App
	users    *stubUserRepo
	posts    *stubPostRepo
	sessions *stubSessionStore
}

func newTestApp(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			SessionTTLMinutes: 60,
			SessionCookie:     "session_id",
			BcryptCost:        bcrypt.MinCost,
			EmailDomain:       "nyu.edu",
		},
		Search: config.SearchConfig{MaxResults: 20},
	}

	users := newStubUserRepo()
	posts := newStubPostRepo()
	roommates := newStubRoommateRepo()
	trades := newStubTradeRepo()
	sessions := newStubSessionStore()

	accountService := service.NewAccountService(cfg, service.AccountDependencies{
		UserRepo: users,
		Sessions: sessions,
	})
	listingService := service.NewListingService(cfg, service.ListingDependencies{
		PostRepo:     posts,
		RoommateRepo: roommates,
	})
	tradeService := service.NewTradeService(service.TradeDependencies{
		TradeRepo: trades,
		PostRepo:  posts,
	})

	logger := zap.NewNop()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, nil, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler("marketplace-service", "test", nil, nil),
		Users:             handlers.NewUsersHandler(accountService, validation.NewUserValidator(cfg.Auth.EmailDomain), cfg.Auth.SessionCookie, cfg.Auth.SessionTTL()),
		Posts:             handlers.NewPostsHandler(listingService),
		Roommates:         handlers.NewRoommatesHandler(listingService, logger),
		Search:            handlers.NewSearchHandler(listingService),
		Trades:            handlers.NewTradesHandler(tradeService),
		SessionMiddleware: auth.NewSessionMiddleware(sessions, users, cfg.Auth.SessionCookie),
	})

	return &testEnv{app: app, users: users, posts: posts, sessions: sessions}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookie string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "session_id", Value: cookie})
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var envelope map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &envelope), "body: %s", raw)
	}
	return resp, envelope
}

func (e *testEnv) register(t *testing.T, email, username string) map[string]any {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/register", fiber.Map{
		"nyu_id":   "N1234567",
		"email":    email,
		"username": username,
		"password": "hunter22",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["data"].(map[string]any)
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	resp, _ := e.do(t, http.MethodPost, "/login", fiber.Map{
		"email":    email,
		"password": "hunter22",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" && c.Value != "" {
			return c.Value
		}
	}
	t.Fatal("login response did not set a session cookie")
	return ""
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	env := newTestApp(t)

	created := env.register(t, "bobcat@nyu.edu", "bobcat")
	assert.Equal(t, "bobcat@nyu.edu", created["email"])
	assert.Equal(t, "bobcat", created["account_name"])
	assert.NotContains(t, created, "password")

	cookie := env.login(t, "bobcat@nyu.edu")

	resp, body := env.do(t, http.MethodGet, "/api/users/profile", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := body["data"].(map[string]any)
	assert.Equal(t, "bobcat@nyu.edu", profile["email"])
	assert.NotContains(t, profile, "password")
	assert.NotContains(t, profile, "password_hash")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestApp(t)
	env.register(t, "bobcat@nyu.edu", "bobcat")

	resp, body := env.do(t, http.MethodPost, "/register", fiber.Map{
		"nyu_id":   "N7654321",
		"email":    "Bobcat@NYU.edu",
		"username": "otherbobcat",
		"password": "hunter22",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Email already registered", body["error"])
	assert.Len(t, env.users.users, 1)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestApp(t)
	env.register(t, "bobcat@nyu.edu", "bobcat")

	resp, body := env.do(t, http.MethodPost, "/login", fiber.Map{
		"email":    "bobcat@nyu.edu",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestCreatePostValidationShortCircuits(t *testing.T) {
	env := newTestApp(t)

	resp, body := env.do(t, http.MethodPost, "/api/posts", fiber.Map{
		"title":       "ab",
		"description": "A perfectly fine description.",
		"categories":  []string{"misc"},
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Title must be between 3 and 100 characters", body["error"])
	assert.Zero(t, env.posts.createCalls)
}

func TestCreatePostWithoutSession(t *testing.T) {
	env := newTestApp(t)

	resp, body := env.do(t, http.MethodPost, "/api/posts", fiber.Map{
		"title":       "Desk lamp",
		"description": "A barely used desk lamp.",
		"categories":  []string{"furniture"},
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "available", data["status"])
	assert.NotContains(t, data, "author_id")
}

func TestCreatePostWithSession(t *testing.T) {
	env := newTestApp(t)
	env.register(t, "bobcat@nyu.edu", "bobcat")
	cookie := env.login(t, "bobcat@nyu.edu")

	resp, body := env.do(t, http.MethodPost, "/api/posts", fiber.Map{
		"title":       "Desk lamp",
		"description": "A barely used desk lamp.",
		"categories":  []string{"furniture"},
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["author_id"])
}

func TestDeletePostRequiresSession(t *testing.T) {
	env := newTestApp(t)

	resp, body := env.do(t, http.MethodDelete, "/api/posts/some-id", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Not authorized, no session", body["error"])
}

func TestDeletePostForbiddenForNonOwner(t *testing.T) {
	env := newTestApp(t)
	env.register(t, "owner@nyu.edu", "owner")
	env.register(t, "intruder@nyu.edu", "intruder")
	ownerCookie := env.login(t, "owner@nyu.edu")
	intruderCookie := env.login(t, "intruder@nyu.edu")

	resp, body := env.do(t, http.MethodPost, "/api/posts", fiber.Map{
		"title":       "Desk lamp",
		"description": "A barely used desk lamp.",
		"categories":  []string{"furniture"},
	}, ownerCookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	postID := body["data"].(map[string]any)["_id"].(string)

	resp, body = env.do(t, http.MethodDelete, "/api/posts/"+postID, nil, intruderCookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Not authorized to delete this post", body["error"])

	resp, _ = env.do(t, http.MethodDelete, "/api/posts/"+postID, nil, ownerCookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSearchRequiresQuery(t *testing.T) {
	env := newTestApp(t)

	resp, body := env.do(t, http.MethodGet, "/api/search?q=%20", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Search query is required", body["error"])
}

func TestSearchAnonymousAuthorPlaceholder(t *testing.T) {
	env := newTestApp(t)

	resp, _ := env.do(t, http.MethodPost, "/api/posts", fiber.Map{
		"title":       "Wooden chair",
		"description": "Sturdy chair for a dorm desk.",
		"categories":  []string{"furniture"},
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := env.do(t, http.MethodGet, "/api/search?q=chair", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	results := body["results"].([]any)
	require.Len(t, results, 1)
	hit := results[0].(map[string]any)
	assert.Equal(t, "Wooden chair", hit["title"])
	assert.Equal(t, "Anonymous", hit["author_name"])
}

func TestCreateRoommateYearViolation(t *testing.T) {
	env := newTestApp(t)

	resp, body := env.do(t, http.MethodPost, "/api/roommates", fiber.Map{
		"title":        "Roommate wanted",
		"description":  "Two bedroom near campus.",
		"placesToLive": "Brooklyn",
		"region":       "NYC",
		"year":         9,
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "Year must be a number between 1 and 4")
}

func TestCreateRoommateWithoutSession(t *testing.T) {
	env := newTestApp(t)

	resp, body := env.do(t, http.MethodPost, "/api/roommates", fiber.Map{
		"title":        "Roommate wanted",
		"description":  "Two bedroom near campus.",
		"placesToLive": "Brooklyn",
		"region":       "NYC",
		"year":         3,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "searching", data["status"])
	assert.Equal(t, "Brooklyn", data["placesToLive"])
}

func TestTradeFlow(t *testing.T) {
	env := newTestApp(t)
	env.register(t, "seller@nyu.edu", "seller")
	env.register(t, "buyer@nyu.edu", "buyer")
	sellerCookie := env.login(t, "seller@nyu.edu")
	buyerCookie := env.login(t, "buyer@nyu.edu")

	resp, body := env.do(t, http.MethodPost, "/api/posts", fiber.Map{
		"title":         "Mini fridge",
		"description":   "Compact fridge, fits under a desk.",
		"categories":    []string{"appliances"},
		"exchange_type": "sell",
	}, sellerCookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	postID := body["data"].(map[string]any)["_id"].(string)

	resp, body = env.do(t, http.MethodPost, "/api/trades", fiber.Map{"post_id": postID}, sellerCookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Cannot initiate a trade on your own post", body["error"])

	resp, body = env.do(t, http.MethodPost, "/api/trades", fiber.Map{"post_id": postID}, buyerCookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	trade := body["data"].(map[string]any)
	assert.Equal(t, "ongoing", trade["status"])
	assert.Equal(t, postID, trade["item_being_traded"])

	resp, body = env.do(t, http.MethodGet, "/api/users/profile/trades", nil, buyerCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]any), 1)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	env := newTestApp(t)
	env.register(t, "bobcat@nyu.edu", "bobcat")
	cookie := env.login(t, "bobcat@nyu.edu")

	resp, _ := env.do(t, http.MethodPost, "/logout", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := env.do(t, http.MethodGet, "/api/users/profile", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Not authorized, no session", body["error"])
}
