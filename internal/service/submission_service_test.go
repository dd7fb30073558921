package service

import (
	"BridgeUS/internal/model"
	"BridgeUS/internal/pkg/worker"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type submissionEnv struct {
	postRepo       *fakePostRepo
	trRepo         *fakeTranslationRepo
	moderationRepo *fakeModerationRepo
	notifyRepo     *fakeNotificationRepo
	llmClient      *fakeLLM
	pool           *worker.Pool
	svc            SubmissionService
}

func newSubmissionEnv(t *testing.T) *submissionEnv {
	setupTest(t)

	env := &submissionEnv{
		postRepo:       newFakePostRepo(),
		trRepo:         newFakeTranslationRepo(),
		moderationRepo: newFakeModerationRepo(),
		notifyRepo:     newFakeNotificationRepo(),
		llmClient:      &fakeLLM{translateFn: echoTranslate, moderateFn: riskResult(5)},
		pool:           worker.NewPool(8, 1),
	}
	notificationSvc := NewNotificationService(env.notifyRepo, newFakeUserRepo())
	translationSvc := NewTranslationService(env.trRepo, env.postRepo, env.llmClient, testI18nCfg())
	moderationSvc := NewModerationService(
		env.moderationRepo, env.postRepo, newFakeReplyRepo(), env.llmClient,
		translationSvc, notificationSvc, env.pool, testModerationCfg(),
	)
	env.svc = NewSubmissionService(
		env.postRepo, env.trRepo,
		moderationSvc, translationSvc, notificationSvc, env.pool,
	)
	t.Cleanup(env.pool.Stop)
	return env
}

func (env *submissionEnv) addPendingPost(authorID uint64) *model.Post {
	post := env.postRepo.add(&model.Post{AuthorID: authorID, OriginalLanguage: "en", Status: "pending"})
	env.trRepo.rows[translationKey(post.ID, "en")] = &model.PostTranslation{
		PostID: post.ID, Language: "en", Title: "title", Content: "content", TranslatedBy: "user",
	}
	return post
}

func TestRunPublishesCleanPost(t *testing.T) {
	env := newSubmissionEnv(t)
	post := env.addPendingPost(1)

	require.NoError(t, env.svc.Run(context.Background(), post.ID))

	got, _ := env.postRepo.GetPost(context.Background(), post.ID)
	assert.Equal(t, "published", got.Status)
	assert.NotNil(t, got.PublishedAt)

	zh, _ := env.trRepo.GetTranslation(context.Background(), post.ID, "zh")
	ko, _ := env.trRepo.GetTranslation(context.Background(), post.ID, "ko")
	assert.NotNil(t, zh)
	assert.NotNil(t, ko)

	assert.Len(t, env.notifyRepo.byType("post_published"), 1)
}

func TestRunReviewSkipsFanout(t *testing.T) {
	env := newSubmissionEnv(t)
	env.llmClient.moderateFn = riskResult(70)
	post := env.addPendingPost(1)

	require.NoError(t, env.svc.Run(context.Background(), post.ID))

	got, _ := env.postRepo.GetPost(context.Background(), post.ID)
	assert.Equal(t, "pending", got.Status)

	zh, _ := env.trRepo.GetTranslation(context.Background(), post.ID, "zh")
	assert.Nil(t, zh)
	assert.Len(t, env.notifyRepo.byType("post_published"), 0)
}

func TestRunSkipsNonPendingPost(t *testing.T) {
	env := newSubmissionEnv(t)
	post := env.addPendingPost(1)
	_ = env.postRepo.UpdatePostStatus(context.Background(), post.ID, "published")

	require.NoError(t, env.svc.Run(context.Background(), post.ID))
	assert.Len(t, env.moderationRepo.logs, 0)
}

func TestRunMissingOriginal(t *testing.T) {
	env := newSubmissionEnv(t)
	post := env.postRepo.add(&model.Post{AuthorID: 1, OriginalLanguage: "en", Status: "pending"})

	err := env.svc.Run(context.Background(), post.ID)
	assert.ErrorIs(t, err, ErrOriginalMissing)
}

func TestRunPublishNotifiesOnce(t *testing.T) {
	env := newSubmissionEnv(t)
	post := env.addPendingPost(1)

	require.NoError(t, env.svc.Run(context.Background(), post.ID))

	// 编辑后重新提交，重新过审不产生第二条发布通知
	_ = env.postRepo.UpdatePostStatus(context.Background(), post.ID, "pending")
	require.NoError(t, env.svc.Run(context.Background(), post.ID))

	assert.Len(t, env.notifyRepo.byType("post_published"), 1)
	assert.Len(t, env.moderationRepo.logs, 2)
}

func TestEnqueueRunsInBackground(t *testing.T) {
	env := newSubmissionEnv(t)
	post := env.addPendingPost(1)

	assert.True(t, env.svc.Enqueue(post.ID))
	env.pool.Stop()

	got, _ := env.postRepo.GetPost(context.Background(), post.ID)
	assert.Equal(t, "published", got.Status)
}
