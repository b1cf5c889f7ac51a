package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainErrors "piclips/internal/errors"
	"piclips/internal/middleware"
	"piclips/internal/models"
	"piclips/internal/services/auth"
	"piclips/internal/services/comment"
	"piclips/internal/services/tip"
	"piclips/internal/services/video"
	"piclips/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var alice = auth.Identity{AccountID: "alice-id", Username: "alice", Role: models.RoleUser}

// newApp returns an app whose requests are authenticated as id.
func newApp(id auth.Identity) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		middleware.SetIdentity(c, id)
		return c.Next()
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, headers ...string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func TestHandleError_StatusByKind(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domainErrors.ErrInvalidTipAmount, fiber.StatusBadRequest, "INVALID_TIP_AMOUNT"},
		{"business rule", domainErrors.ErrInsufficientTokens, fiber.StatusBadRequest, "INSUFFICIENT_TOKENS"},
		{"unauthorized", domainErrors.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"forbidden", domainErrors.ErrNotVideoOwner, fiber.StatusForbidden, "NOT_VIDEO_OWNER"},
		{"not found", domainErrors.ErrVideoNotFound, fiber.StatusNotFound, "VIDEO_NOT_FOUND"},
		{"conflict", domainErrors.ErrUsernameTaken, fiber.StatusConflict, "USERNAME_TAKEN"},
		{"idempotency key reuse", domainErrors.ErrIdempotencyKeyReused, fiber.StatusConflict, "IDEMPOTENCY_KEY_REUSED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return HandleError(c, tt.err) })

			resp, body := doJSON(t, app, http.MethodGet, "/", nil)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

func TestHandleError_InternalIsGeneric(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return HandleError(c, errors.New("pq: connection refused"))
	})

	resp, body := doJSON(t, app, http.MethodGet, "/", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal server error", body["error"])
}

func TestTipHandler_Create(t *testing.T) {
	svc := new(MockTipService)
	app := newApp(alice)
	app.Post("/videos/:id/tip", NewTipHandler(svc).Create)

	svc.On("Transfer", mock.Anything, tip.TransferRequest{
		SenderID:       alice.AccountID,
		VideoID:        "v1",
		Amount:         30,
		IdempotencyKey: "retry-1",
	}).Return(&models.Tip{ID: "t1", SenderID: alice.AccountID, ReceiverID: "bob-id", VideoID: "v1", Amount: 30}, nil)

	resp, body := doJSON(t, app, http.MethodPost, "/videos/v1/tip", fiber.Map{"amount": 30}, HeaderIdempotencyKey, "retry-1")

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "t1", body["id"])
	assert.Equal(t, float64(30), body["amount"])
	svc.AssertExpectations(t)
}

func TestTipHandler_CreateInsufficientTokens(t *testing.T) {
	svc := new(MockTipService)
	app := newApp(alice)
	app.Post("/videos/:id/tip", NewTipHandler(svc).Create)

	svc.On("Transfer", mock.Anything, mock.AnythingOfType("tip.TransferRequest")).Return(nil, domainErrors.ErrInsufficientTokens)

	resp, body := doJSON(t, app, http.MethodPost, "/videos/v1/tip", fiber.Map{"amount": 80})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Insufficient tokens", body["error"])
}

func TestTipHandler_CreateInvalidBody(t *testing.T) {
	svc := new(MockTipService)
	app := newApp(alice)
	app.Post("/videos/:id/tip", NewTipHandler(svc).Create)

	req := httptest.NewRequest(http.MethodPost, "/videos/v1/tip", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	svc.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything)
}

func TestTipHandler_Summary(t *testing.T) {
	svc := new(MockTipService)
	app := newApp(alice)
	app.Get("/videos/:id/tips/summary", NewTipHandler(svc).Summary)

	svc.On("Summarize", mock.Anything, "v1").Return(&models.TipSummary{TotalAmount: 50, TipCount: 3, UniqueSenders: 2}, nil)

	resp, body := doJSON(t, app, http.MethodGet, "/videos/v1/tips/summary", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(50), body["totalAmount"])
	assert.Equal(t, float64(3), body["tipCount"])
	assert.Equal(t, float64(2), body["uniqueSenders"])
}

func TestVideoHandler_Create(t *testing.T) {
	svc := new(MockVideoService)
	app := newApp(alice)
	app.Post("/videos", NewVideoHandler(svc).Create)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", "My clip"))
	require.NoError(t, w.WriteField("privacy", "private"))
	part, err := w.CreateFormFile("video", "clip.mp4")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake video bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	svc.On("Create", mock.Anything, alice.AccountID,
		video.CreateInput{Title: "My clip", Privacy: "private"},
		mock.MatchedBy(func(u *storage.Upload) bool {
			return u != nil && u.Filename == "clip.mp4" && u.Size == int64(len("fake video bytes"))
		}),
	).Return(&models.Video{ID: "v1", OwnerID: alice.AccountID, Title: "My clip", Privacy: "private"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/videos", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestVideoHandler_CreateWithoutFile(t *testing.T) {
	svc := new(MockVideoService)
	app := newApp(alice)
	app.Post("/videos", NewVideoHandler(svc).Create)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", "My clip"))
	require.NoError(t, w.Close())

	svc.On("Create", mock.Anything, alice.AccountID, video.CreateInput{Title: "My clip"}, (*storage.Upload)(nil)).
		Return(nil, domainErrors.ErrNoVideoFile)

	req := httptest.NewRequest(http.MethodPost, "/videos", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestVideoHandler_ListPaginates(t *testing.T) {
	svc := new(MockVideoService)
	app := newApp(alice)
	app.Get("/videos", NewVideoHandler(svc).List)

	svc.On("ListPublic", mock.Anything, video.Page{Limit: 10, Offset: 10}).Return([]models.Video{{ID: "v1"}}, nil)
	svc.On("ListPublic", mock.Anything, video.Page{}).Return([]models.Video{}, nil)

	resp, _ := doJSON(t, app, http.MethodGet, "/videos?page=2&limit=10", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/videos", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestVideoHandler_ListByUserPassesViewer(t *testing.T) {
	svc := new(MockVideoService)
	app := newApp(alice)
	app.Get("/videos/user/:userId", NewVideoHandler(svc).ListByUser)

	svc.On("ListByOwner", mock.Anything, "bob-id", alice.AccountID).Return([]models.Video{}, nil)

	resp, _ := doJSON(t, app, http.MethodGet, "/videos/user/bob-id", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestVideoHandler_DeleteForbidden(t *testing.T) {
	svc := new(MockVideoService)
	app := newApp(alice)
	app.Delete("/videos/:id", NewVideoHandler(svc).Delete)

	svc.On("Delete", mock.Anything, alice.AccountID, "v1").Return(domainErrors.ErrNotVideoOwner)

	resp, _ := doJSON(t, app, http.MethodDelete, "/videos/v1", nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestVideoHandler_ToggleLike(t *testing.T) {
	svc := new(MockVideoService)
	app := newApp(alice)
	app.Post("/videos/:id/like", NewVideoHandler(svc).ToggleLike)

	svc.On("ToggleLike", mock.Anything, alice.AccountID, "v1").Return(&models.LikeResult{Likes: 1, IsLiked: true}, nil)

	resp, body := doJSON(t, app, http.MethodPost, "/videos/v1/like", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["likes"])
	assert.Equal(t, true, body["isLiked"])
}

func TestCommentHandler_AddAndDelete(t *testing.T) {
	svc := new(MockCommentService)
	app := newApp(alice)
	h := NewCommentHandler(svc)
	app.Post("/videos/:id/comment", h.Add)
	app.Delete("/videos/:id/comments/:commentId", h.Delete)

	svc.On("Add", mock.Anything, alice.AccountID, "v1", "nice").
		Return(&comment.AddResult{Comment: &models.Comment{ID: "c1", Content: "nice"}, CommentCount: 1}, nil)
	svc.On("Delete", mock.Anything, alice.AccountID, "v1", "c1").Return(&comment.DeleteResult{CommentCount: 0}, nil).Once()
	svc.On("Delete", mock.Anything, alice.AccountID, "v1", "c1").Return(nil, domainErrors.ErrCommentNotFound)

	resp, body := doJSON(t, app, http.MethodPost, "/videos/v1/comment", fiber.Map{"content": "nice"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(1), body["commentCount"])

	resp, body = doJSON(t, app, http.MethodDelete, "/videos/v1/comments/c1", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Comment deleted successfully", body["message"])
	assert.Equal(t, float64(0), body["commentCount"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/videos/v1/comments/c1", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAuthHandler_LoginRequiresCredentials(t *testing.T) {
	svc := new(MockAuthService)
	app := fiber.New()
	app.Post("/login", NewAuthHandler(svc).Login)

	resp, _ := doJSON(t, app, http.MethodPost, "/login", fiber.Map{"username": "alice"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_RegisterConflict(t *testing.T) {
	svc := new(MockAuthService)
	app := fiber.New()
	app.Post("/register", NewAuthHandler(svc).Register)

	svc.On("Register", mock.Anything, auth.RegisterInput{Username: "alice", Password: "secret123"}).
		Return(nil, domainErrors.ErrUsernameTaken)

	resp, _ := doJSON(t, app, http.MethodPost, "/register", fiber.Map{"username": "alice", "password": "secret123"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestHealthHandler(t *testing.T) {
	t.Run("healthy without redis", func(t *testing.T) {
		db := new(MockPinger)
		db.On("Ping", mock.Anything).Return(nil)
		app := fiber.New()
		app.Get("/health", NewHealthHandler(db, nil).Check)

		resp, body := doJSON(t, app, http.MethodGet, "/health", nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("database down", func(t *testing.T) {
		db := new(MockPinger)
		db.On("Ping", mock.Anything).Return(errors.New("refused"))
		redis := new(MockPinger)
		redis.On("HealthCheck", mock.Anything).Return(nil)
		app := fiber.New()
		app.Get("/health", NewHealthHandler(db, redis).Check)

		resp, body := doJSON(t, app, http.MethodGet, "/health", nil)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "degraded", body["status"])
	})
}
