package comment

import (
	"context"
	"strings"
	"testing"

	domainErrors "piclips/internal/errors"
	"piclips/internal/models"
	"piclips/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func commentCount(t *testing.T, db *gorm.DB, videoID string) int64 {
	var video models.Video
	require.NoError(t, db.First(&video, "id = ?", videoID).Error)
	return video.CommentCount
}

func TestAddListDelete(t *testing.T) {
	store, db := testutil.NewStore(t)
	svc := NewService(store)
	owner := testutil.CreateAccount(t, db, "owner", 0)
	fan := testutil.CreateAccount(t, db, "fan", 0)
	video := testutil.CreateVideo(t, db, owner.ID, "clip", models.PrivacyPublic)
	ctx := context.Background()

	first, err := svc.Add(ctx, fan.ID, video.ID, "  first!  ")
	require.NoError(t, err)
	assert.Equal(t, "first!", first.Comment.Content)
	assert.Equal(t, int64(1), first.CommentCount)
	require.NotNil(t, first.Comment.Author)
	assert.Equal(t, "fan", first.Comment.Author.Username)

	second, err := svc.Add(ctx, owner.ID, video.ID, "thanks")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.CommentCount)

	comments, err := svc.List(ctx, video.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.False(t, comments[0].CreatedAt.Before(comments[1].CreatedAt))
	assert.NotNil(t, comments[0].Author)

	t.Run("only the author may delete", func(t *testing.T) {
		_, err := svc.Delete(ctx, owner.ID, video.ID, first.Comment.ID)
		assert.ErrorIs(t, err, domainErrors.ErrNotCommentAuthor)
		assert.Equal(t, int64(2), commentCount(t, db, video.ID))
	})

	t.Run("comment must belong to the video", func(t *testing.T) {
		other := testutil.CreateVideo(t, db, owner.ID, "other", models.PrivacyPublic)
		_, err := svc.Delete(ctx, fan.ID, other.ID, first.Comment.ID)
		assert.ErrorIs(t, err, domainErrors.ErrCommentNotFound)
	})

	t.Run("delete removes from listing and count", func(t *testing.T) {
		res, err := svc.Delete(ctx, fan.ID, video.ID, first.Comment.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.CommentCount)

		comments, err := svc.List(ctx, video.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, second.Comment.ID, comments[0].ID)
		assert.Equal(t, int64(1), commentCount(t, db, video.ID))
	})

	t.Run("second delete is not found", func(t *testing.T) {
		_, err := svc.Delete(ctx, fan.ID, video.ID, first.Comment.ID)
		assert.ErrorIs(t, err, domainErrors.ErrCommentNotFound)
		assert.Equal(t, int64(1), commentCount(t, db, video.ID))
	})
}

func TestAdd_Rejections(t *testing.T) {
	store, db := testutil.NewStore(t)
	svc := NewService(store)
	owner := testutil.CreateAccount(t, db, "owner", 0)
	video := testutil.CreateVideo(t, db, owner.ID, "clip", models.PrivacyPublic)
	ctx := context.Background()

	_, err := svc.Add(ctx, owner.ID, video.ID, "   ")
	assert.ErrorIs(t, err, domainErrors.ErrValidation)

	_, err = svc.Add(ctx, owner.ID, video.ID, strings.Repeat("a", 1001))
	assert.ErrorIs(t, err, domainErrors.ErrValidation)

	_, err = svc.Add(ctx, owner.ID, "missing", "hi")
	assert.ErrorIs(t, err, domainErrors.ErrVideoNotFound)

	_, err = svc.Add(ctx, "missing", video.ID, "hi")
	assert.ErrorIs(t, err, domainErrors.ErrAccountNotFound)

	assert.Equal(t, int64(0), testutil.CountRows(t, db, &models.Comment{}))
	assert.Equal(t, int64(0), commentCount(t, db, video.ID))
}
