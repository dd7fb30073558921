package service

import (
	"BridgeUS/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type translationEnv struct {
	trRepo    *fakeTranslationRepo
	postRepo  *fakePostRepo
	llmClient *fakeLLM
	svc       TranslationService
}

func newTranslationEnv(t *testing.T) *translationEnv {
	setupTest(t)

	env := &translationEnv{
		trRepo:    newFakeTranslationRepo(),
		postRepo:  newFakePostRepo(),
		llmClient: &fakeLLM{translateFn: echoTranslate},
	}
	env.svc = NewTranslationService(env.trRepo, env.postRepo, env.llmClient, testI18nCfg())
	return env
}

func (env *translationEnv) addPublishedPost() *model.Post {
	post := env.postRepo.add(&model.Post{AuthorID: 1, OriginalLanguage: "en", Status: "published"})
	env.trRepo.rows[translationKey(post.ID, "en")] = &model.PostTranslation{
		PostID: post.ID, Language: "en", Title: "Visa renewal tips", Content: "Go early.", TranslatedBy: "user",
	}
	return post
}

func TestEnsureTranslationsFanout(t *testing.T) {
	env := newTranslationEnv(t)
	post := env.addPublishedPost()

	require.NoError(t, env.svc.EnsureTranslations(context.Background(), post.ID))

	zh, _ := env.trRepo.GetTranslation(context.Background(), post.ID, "zh")
	require.NotNil(t, zh)
	assert.Equal(t, "[zh] Visa renewal tips", zh.Title)
	assert.Equal(t, "[zh] Go early.", zh.Content)
	assert.Equal(t, "ai", zh.TranslatedBy)
	require.NotNil(t, zh.Model)
	assert.Equal(t, "fake-model", *zh.Model)

	ko, _ := env.trRepo.GetTranslation(context.Background(), post.ID, "ko")
	require.NotNil(t, ko)

	// 标题和正文各一次调用，两种目标语言
	assert.Equal(t, 4, env.llmClient.translateCalls)
}

func TestEnsureTranslationsSkipsExisting(t *testing.T) {
	env := newTranslationEnv(t)
	post := env.addPublishedPost()
	env.trRepo.rows[translationKey(post.ID, "zh")] = &model.PostTranslation{
		PostID: post.ID, Language: "zh", Title: "已有", Content: "已有", TranslatedBy: "ai",
	}

	require.NoError(t, env.svc.EnsureTranslations(context.Background(), post.ID))

	zh, _ := env.trRepo.GetTranslation(context.Background(), post.ID, "zh")
	assert.Equal(t, "已有", zh.Title)
	assert.Equal(t, 2, env.llmClient.translateCalls)
}

func TestEnsureTranslationsPartialFailureContinues(t *testing.T) {
	env := newTranslationEnv(t)
	post := env.addPublishedPost()
	env.llmClient.translateFn = func(text, sourceLang, targetLang string) (string, error) {
		if targetLang == "zh" {
			return "", errors.New("model overloaded")
		}
		return echoTranslate(text, sourceLang, targetLang)
	}

	require.NoError(t, env.svc.EnsureTranslations(context.Background(), post.ID))

	zh, _ := env.trRepo.GetTranslation(context.Background(), post.ID, "zh")
	assert.Nil(t, zh)
	ko, _ := env.trRepo.GetTranslation(context.Background(), post.ID, "ko")
	assert.NotNil(t, ko)
}

func TestEnsureTranslationsDuplicateInsertIsNotError(t *testing.T) {
	env := newTranslationEnv(t)
	post := env.addPublishedPost()
	env.trRepo.forceDup = true

	assert.NoError(t, env.svc.EnsureTranslations(context.Background(), post.ID))
}

func TestEnsureTranslationsMissingOriginal(t *testing.T) {
	env := newTranslationEnv(t)
	post := env.postRepo.add(&model.Post{AuthorID: 1, OriginalLanguage: "en", Status: "published"})

	err := env.svc.EnsureTranslations(context.Background(), post.ID)
	assert.ErrorIs(t, err, ErrOriginalMissing)
}

func TestEnsureLanguageOnDemand(t *testing.T) {
	env := newTranslationEnv(t)
	post := env.addPublishedPost()

	zh, err := env.svc.EnsureLanguage(context.Background(), post.ID, "zh")
	require.NoError(t, err)
	require.NotNil(t, zh)
	assert.Equal(t, "zh", zh.Language)

	// 第二次直接命中已有行，不再调用模型
	calls := env.llmClient.translateCalls
	again, err := env.svc.EnsureLanguage(context.Background(), post.ID, "zh")
	require.NoError(t, err)
	assert.Equal(t, zh.ID, again.ID)
	assert.Equal(t, calls, env.llmClient.translateCalls)
}

func TestResolveExactThenOriginalThenAny(t *testing.T) {
	env := newTranslationEnv(t)
	post := env.addPublishedPost()
	env.trRepo.rows[translationKey(post.ID, "zh")] = &model.PostTranslation{
		PostID: post.ID, Language: "zh", Title: "中文", Content: "内容", TranslatedBy: "ai",
	}

	zh, err := env.svc.Resolve(context.Background(), post.ID, "zh")
	require.NoError(t, err)
	assert.Equal(t, "zh", zh.Language)

	// 不支持的语言回退到原文
	fallback, err := env.svc.Resolve(context.Background(), post.ID, "fr")
	require.NoError(t, err)
	assert.Equal(t, "en", fallback.Language)

	empty, err := env.svc.Resolve(context.Background(), post.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "en", empty.Language)
}
