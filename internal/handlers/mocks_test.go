package handlers

import (
	"context"

	"piclips/internal/models"
	"piclips/internal/services/auth"
	"piclips/internal/services/comment"
	"piclips/internal/services/tip"
	"piclips/internal/services/video"
	"piclips/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockTipService struct {
	mock.Mock
}

func (m *MockTipService) Transfer(ctx context.Context, req tip.TransferRequest) (*models.Tip, error) {
	args := m.Called(ctx, req)
	t, _ := args.Get(0).(*models.Tip)
	return t, args.Error(1)
}

func (m *MockTipService) ListTips(ctx context.Context, videoID string) ([]models.Tip, error) {
	args := m.Called(ctx, videoID)
	tips, _ := args.Get(0).([]models.Tip)
	return tips, args.Error(1)
}

func (m *MockTipService) Summarize(ctx context.Context, videoID string) (*models.TipSummary, error) {
	args := m.Called(ctx, videoID)
	s, _ := args.Get(0).(*models.TipSummary)
	return s, args.Error(1)
}

type MockVideoService struct {
	mock.Mock
}

func (m *MockVideoService) Create(ctx context.Context, ownerID string, input video.CreateInput, upload *storage.Upload) (*models.Video, error) {
	args := m.Called(ctx, ownerID, input, upload)
	v, _ := args.Get(0).(*models.Video)
	return v, args.Error(1)
}

func (m *MockVideoService) Get(ctx context.Context, id string) (*models.Video, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*models.Video)
	return v, args.Error(1)
}

func (m *MockVideoService) ListPublic(ctx context.Context, page video.Page) ([]models.Video, error) {
	args := m.Called(ctx, page)
	v, _ := args.Get(0).([]models.Video)
	return v, args.Error(1)
}

func (m *MockVideoService) ListByOwner(ctx context.Context, ownerID, viewerID string) ([]models.Video, error) {
	args := m.Called(ctx, ownerID, viewerID)
	v, _ := args.Get(0).([]models.Video)
	return v, args.Error(1)
}

func (m *MockVideoService) ListLiked(ctx context.Context, accountID string) ([]models.Video, error) {
	args := m.Called(ctx, accountID)
	v, _ := args.Get(0).([]models.Video)
	return v, args.Error(1)
}

func (m *MockVideoService) Delete(ctx context.Context, actorID, videoID string) error {
	return m.Called(ctx, actorID, videoID).Error(0)
}

func (m *MockVideoService) ToggleLike(ctx context.Context, accountID, videoID string) (*models.LikeResult, error) {
	args := m.Called(ctx, accountID, videoID)
	r, _ := args.Get(0).(*models.LikeResult)
	return r, args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Add(ctx context.Context, authorID, videoID, content string) (*comment.AddResult, error) {
	args := m.Called(ctx, authorID, videoID, content)
	r, _ := args.Get(0).(*comment.AddResult)
	return r, args.Error(1)
}

func (m *MockCommentService) List(ctx context.Context, videoID string) ([]models.Comment, error) {
	args := m.Called(ctx, videoID)
	c, _ := args.Get(0).([]models.Comment)
	return c, args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, actorID, videoID, commentID string) (*comment.DeleteResult, error) {
	args := m.Called(ctx, actorID, videoID, commentID)
	r, _ := args.Get(0).(*comment.DeleteResult)
	return r, args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input auth.RegisterInput) (*models.Account, error) {
	args := m.Called(ctx, input)
	a, _ := args.Get(0).(*models.Account)
	return a, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*auth.LoginResult, error) {
	args := m.Called(ctx, username, password)
	r, _ := args.Get(0).(*auth.LoginResult)
	return r, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, accountID string) error {
	return m.Called(ctx, accountID).Error(0)
}

func (m *MockAuthService) Verify(ctx context.Context, token string) (auth.Identity, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(auth.Identity), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPinger) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
