package service

import (
	"BridgeUS/internal/api/dto"
	"BridgeUS/internal/pkg/worker"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postEnv struct {
	postRepo    *fakePostRepo
	trRepo      *fakeTranslationRepo
	profileRepo *fakeProfileRepo
	notifyRepo  *fakeNotificationRepo
	llmClient   *fakeLLM
	pool        *worker.Pool
	svc         PostService
}

func newPostEnv(t *testing.T) *postEnv {
	setupTest(t)

	env := &postEnv{
		postRepo:    newFakePostRepo(),
		trRepo:      newFakeTranslationRepo(),
		profileRepo: newFakeProfileRepo(),
		notifyRepo:  newFakeNotificationRepo(),
		llmClient:   &fakeLLM{translateFn: echoTranslate, moderateFn: riskResult(5)},
		pool:        worker.NewPool(8, 1),
	}
	notificationSvc := NewNotificationService(env.notifyRepo, newFakeUserRepo())
	translationSvc := NewTranslationService(env.trRepo, env.postRepo, env.llmClient, testI18nCfg())
	moderationSvc := NewModerationService(
		newFakeModerationRepo(), env.postRepo, newFakeReplyRepo(), env.llmClient,
		translationSvc, notificationSvc, env.pool, testModerationCfg(),
	)
	submissionSvc := NewSubmissionService(
		env.postRepo, env.trRepo,
		moderationSvc, translationSvc, notificationSvc, env.pool,
	)
	env.svc = NewPostService(env.postRepo, env.trRepo, env.profileRepo, translationSvc, submissionSvc, testI18nCfg())
	t.Cleanup(env.pool.Stop)
	return env
}

func TestCreatePostRunsPipeline(t *testing.T) {
	env := newPostEnv(t)

	created, err := env.svc.CreatePost(context.Background(), 1, &dto.PostCreateDTO{
		Title:    "Driver license renewal",
		Content:  "Book an appointment online.",
		Language: "en",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "user", created.TranslatedBy)

	// 后台管线跑完后帖子被发布并扇出
	env.pool.Stop()

	got, _ := env.postRepo.GetPost(context.Background(), created.ID)
	assert.Equal(t, "published", got.Status)
	zh, _ := env.trRepo.GetTranslation(context.Background(), created.ID, "zh")
	assert.NotNil(t, zh)
}

func TestCreatePostUnsupportedLanguage(t *testing.T) {
	env := newPostEnv(t)

	_, err := env.svc.CreatePost(context.Background(), 1, &dto.PostCreateDTO{
		Title:    "t",
		Content:  "c",
		Language: "fr",
	})
	assert.ErrorIs(t, err, ErrLanguageNotSupported)
}

func TestUpdatePostRerunsPipeline(t *testing.T) {
	env := newPostEnv(t)

	created, err := env.svc.CreatePost(context.Background(), 1, &dto.PostCreateDTO{
		Title: "t", Content: "c", Language: "en",
	})
	require.NoError(t, err)
	env.pool.Stop()

	got, _ := env.postRepo.GetPost(context.Background(), created.ID)
	require.Equal(t, "published", got.Status)

	err = env.svc.UpdatePost(context.Background(), 1, created.ID, &dto.PostUpdateDTO{
		Title: "new title", Content: "new content",
	})
	require.NoError(t, err)

	original, _ := env.trRepo.GetTranslation(context.Background(), created.ID, "en")
	assert.Equal(t, "new title", original.Title)
	assert.Equal(t, "new content", original.Content)

	// 编辑后回到 pending，等待重新过审
	got, _ = env.postRepo.GetPost(context.Background(), created.ID)
	assert.Equal(t, "pending", got.Status)
}

func TestUpdatePostOnlyByAuthor(t *testing.T) {
	env := newPostEnv(t)

	created, err := env.svc.CreatePost(context.Background(), 1, &dto.PostCreateDTO{
		Title: "t", Content: "c", Language: "en",
	})
	require.NoError(t, err)

	err = env.svc.UpdatePost(context.Background(), 2, created.ID, &dto.PostUpdateDTO{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, ForbiddenError)
}

func TestGetPostVisibility(t *testing.T) {
	env := newPostEnv(t)

	created, err := env.svc.CreatePost(context.Background(), 1, &dto.PostCreateDTO{
		Title: "t", Content: "c", Language: "en",
	})
	require.NoError(t, err)

	// pending 帖子：路人不可见，作者和审核员可见
	_, err = env.svc.GetPost(context.Background(), 2, created.ID, "", false)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = env.svc.GetPost(context.Background(), 1, created.ID, "", false)
	assert.NoError(t, err)

	_, err = env.svc.GetPost(context.Background(), 2, created.ID, "", true)
	assert.NoError(t, err)
}

func TestGetPostLanguageFallback(t *testing.T) {
	env := newPostEnv(t)

	created, err := env.svc.CreatePost(context.Background(), 1, &dto.PostCreateDTO{
		Title: "Visa tips", Content: "c", Language: "en",
	})
	require.NoError(t, err)
	env.pool.Stop()

	// 按需命中已扇出的译文
	zh, err := env.svc.GetPost(context.Background(), 0, created.ID, "zh", false)
	require.NoError(t, err)
	assert.Equal(t, "zh", zh.Language)
	assert.Equal(t, "[zh] Visa tips", zh.Title)

	// 不支持的语言回退原文
	fr, err := env.svc.GetPost(context.Background(), 0, created.ID, "fr", false)
	require.NoError(t, err)
	assert.Equal(t, "en", fr.Language)
}

func TestDeletePostByModerator(t *testing.T) {
	env := newPostEnv(t)

	created, err := env.svc.CreatePost(context.Background(), 1, &dto.PostCreateDTO{
		Title: "t", Content: "c", Language: "en",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, env.svc.DeletePost(context.Background(), 2, created.ID, false), ForbiddenError)
	assert.NoError(t, env.svc.DeletePost(context.Background(), 2, created.ID, true))

	got, _ := env.postRepo.GetPost(context.Background(), created.ID)
	assert.Nil(t, got)
}
