package service

import (
	"BridgeUS/internal/api/config"
	"BridgeUS/internal/api/dto"
	"BridgeUS/internal/model"
	"BridgeUS/internal/pkg/consts"
	"BridgeUS/internal/repository"
	"context"
	log "log/slog"
)

type PostService interface {
	CreatePost(ctx context.Context, authorID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error)
	// UpdatePost 编辑原文后帖子回到 pending，重新走一遍提交管线
	UpdatePost(ctx context.Context, userID, postID uint64, req *dto.PostUpdateDTO) error
	Resubmit(ctx context.Context, userID, postID uint64) error
	GetPost(ctx context.Context, viewerID, postID uint64, language string, isModerator bool) (*dto.PostDTO, error)
	GetPublishedPosts(ctx context.Context, language string, page, pageSize int) (*dto.PostListDTO, error)
	GetMyPosts(ctx context.Context, userID uint64, page, pageSize int) (*dto.PostListDTO, error)
	DeletePost(ctx context.Context, userID, postID uint64, isModerator bool) error
}

type postServiceImpl struct {
	postRepo        repository.PostRepo
	translationRepo repository.TranslationRepo
	profileRepo     repository.ProfileRepo
	translationSvc  TranslationService
	submissionSvc   SubmissionService
	i18n            config.I18nConfig
}

func NewPostService(
	postRepo repository.PostRepo,
	translationRepo repository.TranslationRepo,
	profileRepo repository.ProfileRepo,
	translationSvc TranslationService,
	submissionSvc SubmissionService,
	i18n config.I18nConfig,
) PostService {
	return &postServiceImpl{
		postRepo:        postRepo,
		translationRepo: translationRepo,
		profileRepo:     profileRepo,
		translationSvc:  translationSvc,
		submissionSvc:   submissionSvc,
		i18n:            i18n,
	}
}

func (s *postServiceImpl) CreatePost(ctx context.Context, authorID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error) {
	if !s.isSupportedLanguage(req.Language) {
		return nil, ErrLanguageNotSupported
	}

	post := &model.Post{
		AuthorID:         authorID,
		CategoryID:       req.CategoryID,
		OriginalLanguage: req.Language,
		Status:           consts.PostStatusPending,
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	// 原文行先于审核存在，管线对它的读取不能落空
	original := &model.PostTranslation{
		PostID:       post.ID,
		Language:     req.Language,
		Title:        req.Title,
		Content:      req.Content,
		TranslatedBy: consts.TranslatedByUser,
		Status:       "ready",
	}
	if err := s.translationRepo.CreateTranslation(ctx, original); err != nil {
		return nil, err
	}

	if !s.submissionSvc.Enqueue(post.ID) {
		log.WarnContext(ctx, "submission queue full, post stays pending", "post_id", post.ID)
	}

	return s.toPostDTO(ctx, post, original), nil
}

func (s *postServiceImpl) UpdatePost(ctx context.Context, userID, postID uint64, req *dto.PostUpdateDTO) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.AuthorID != userID {
		return ForbiddenError
	}

	if err := s.translationRepo.UpdateOriginalText(ctx, postID, post.OriginalLanguage, req.Title, req.Content); err != nil {
		return err
	}
	if err := s.postRepo.UpdatePostStatus(ctx, postID, consts.PostStatusPending); err != nil {
		return err
	}

	if !s.submissionSvc.Enqueue(postID) {
		log.WarnContext(ctx, "submission queue full, post stays pending", "post_id", postID)
	}
	return nil
}

func (s *postServiceImpl) Resubmit(ctx context.Context, userID, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.AuthorID != userID {
		return ForbiddenError
	}

	if err := s.postRepo.UpdatePostStatus(ctx, postID, consts.PostStatusPending); err != nil {
		return err
	}
	if !s.submissionSvc.Enqueue(postID) {
		log.WarnContext(ctx, "submission queue full, post stays pending", "post_id", postID)
	}
	return nil
}

func (s *postServiceImpl) GetPost(ctx context.Context, viewerID, postID uint64, language string, isModerator bool) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	// 未发布的帖子只对作者和审核员可见
	if post.Status != consts.PostStatusPublished && post.AuthorID != viewerID && !isModerator {
		return nil, ErrPostNotFound
	}

	translation := s.resolveForView(ctx, post, language)
	if translation == nil {
		return nil, ErrOriginalMissing
	}
	return s.toPostDTO(ctx, post, translation), nil
}

func (s *postServiceImpl) GetPublishedPosts(ctx context.Context, language string, page, pageSize int) (*dto.PostListDTO, error) {
	posts, err := s.postRepo.GetPostsByStatus(ctx, consts.PostStatusPublished, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.toPostListDTO(ctx, posts, language, pageSize), nil
}

func (s *postServiceImpl) GetMyPosts(ctx context.Context, userID uint64, page, pageSize int) (*dto.PostListDTO, error) {
	posts, err := s.postRepo.GetPostsByAuthor(ctx, userID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.toPostListDTO(ctx, posts, "", pageSize), nil
}

func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID uint64, isModerator bool) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.AuthorID != userID && !isModerator {
		return ForbiddenError
	}
	return s.postRepo.DeletePost(ctx, postID)
}

// resolveForView 已发布帖子按需补翻译，其余状态只做降级读取
func (s *postServiceImpl) resolveForView(ctx context.Context, post *model.Post, language string) *model.PostTranslation {
	if language != "" && language != post.OriginalLanguage &&
		post.Status == consts.PostStatusPublished && s.isSupportedLanguage(language) {
		translation, err := s.translationSvc.EnsureLanguage(ctx, post.ID, language)
		if err == nil && translation != nil {
			return translation
		}
		log.WarnContext(ctx, "on-demand translation unavailable, falling back", "post_id", post.ID, "language", language, "error", err)
	}

	translation, err := s.translationSvc.Resolve(ctx, post.ID, language)
	if err != nil {
		log.WarnContext(ctx, "failed to resolve translation", "post_id", post.ID, "language", language, "error", err)
		return nil
	}
	return translation
}

func (s *postServiceImpl) toPostDTO(ctx context.Context, post *model.Post, translation *model.PostTranslation) *dto.PostDTO {
	authorName, err := s.profileRepo.GetDisplayName(ctx, post.AuthorID)
	if err != nil {
		log.WarnContext(ctx, "failed to load author name", "user_id", post.AuthorID, "error", err)
	}

	item := &dto.PostDTO{
		ID:               post.ID,
		AuthorID:         post.AuthorID,
		AuthorName:       authorName,
		CategoryID:       post.CategoryID,
		Title:            translation.Title,
		Content:          translation.Content,
		Language:         translation.Language,
		OriginalLanguage: post.OriginalLanguage,
		TranslatedBy:     translation.TranslatedBy,
		Status:           post.Status,
		HelpfulCount:     post.HelpfulCount,
		AccuracyAvg:      post.AccuracyAvg,
		AccuracyCount:    post.AccuracyCount,
		CreatedAt:        post.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if post.PublishedAt != nil {
		item.PublishedAt = post.PublishedAt.Format("2006-01-02 15:04:05")
	}
	return item
}

func (s *postServiceImpl) toPostListDTO(ctx context.Context, posts []*model.Post, language string, pageSize int) *dto.PostListDTO {
	hasMore := len(posts) > pageSize
	if hasMore {
		posts = posts[:pageSize]
	}

	list := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		translation, err := s.translationSvc.Resolve(ctx, post.ID, language)
		if err != nil {
			log.WarnContext(ctx, "skipping post without translation", "post_id", post.ID, "error", err)
			continue
		}
		list = append(list, s.toPostDTO(ctx, post, translation))
	}
	return &dto.PostListDTO{List: list, HasMore: hasMore}
}

func (s *postServiceImpl) isSupportedLanguage(language string) bool {
	for _, l := range s.i18n.SupportedLanguages {
		if l == language {
			return true
		}
	}
	return false
}
