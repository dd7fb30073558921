package service

import (
	"BridgeUS/internal/api/config"
	"BridgeUS/internal/model"
	"BridgeUS/internal/pkg/llm"
	redispkg "BridgeUS/internal/pkg/redis"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-sql-driver/mysql"
	goredis "github.com/redis/go-redis/v9"
)

func setupTest(t *testing.T) {
	t.Helper()

	mr := miniredis.RunT(t)
	redispkg.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
}

// 各环境用同一套配置：阈值 60/85，语言 en/zh/ko
func testModerationCfg() config.ModerationConfig {
	return config.ModerationConfig{ReviewThreshold: 60, RejectThreshold: 85}
}

func testI18nCfg() config.I18nConfig {
	return config.I18nConfig{SupportedLanguages: []string{"en", "zh", "ko"}}
}

func duplicateKeyError() error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
}

// ---- post repo ----

type fakePostRepo struct {
	mu     sync.Mutex
	nextID uint64
	posts  map[uint64]*model.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uint64]*model.Post)}
}

func (s *fakePostRepo) CreatePost(_ context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	post.ID = s.nextID
	post.CreatedAt = time.Now()
	s.posts[post.ID] = post
	return nil
}

func (s *fakePostRepo) GetPost(_ context.Context, postID uint64) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return nil, nil
	}
	cp := *post
	return &cp, nil
}

func (s *fakePostRepo) DeletePost(_ context.Context, postID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, postID)
	return nil
}

func (s *fakePostRepo) UpdatePostStatus(_ context.Context, postID uint64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if post, ok := s.posts[postID]; ok {
		post.Status = status
	}
	return nil
}

func (s *fakePostRepo) MarkPublished(_ context.Context, postID uint64, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return nil
	}
	post.Status = "published"
	if post.PublishedAt == nil {
		post.PublishedAt = &publishedAt
	}
	return nil
}

func (s *fakePostRepo) GetPostsByStatus(_ context.Context, status string, limit, offset int) ([]*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Post
	for _, post := range s.posts {
		if post.Status == status {
			cp := *post
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakePostRepo) GetPostsByAuthor(_ context.Context, authorID uint64, limit, offset int) ([]*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Post
	for _, post := range s.posts {
		if post.AuthorID == authorID {
			cp := *post
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakePostRepo) GetPublishedPostIDsMissingTranslations(_ context.Context, languageCount int) ([]uint64, error) {
	return nil, nil
}

func (s *fakePostRepo) UpdateHelpfulCount(_ context.Context, postID uint64, count int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if post, ok := s.posts[postID]; ok {
		post.HelpfulCount = int(count)
	}
	return nil
}

func (s *fakePostRepo) UpdateAccuracy(_ context.Context, postID uint64, avg float64, count int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if post, ok := s.posts[postID]; ok {
		post.AccuracyAvg = avg
		post.AccuracyCount = int(count)
	}
	return nil
}

func (s *fakePostRepo) add(post *model.Post) *model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	post.ID = s.nextID
	s.posts[post.ID] = post
	return post
}

// ---- translation repo ----

type fakeTranslationRepo struct {
	mu       sync.Mutex
	nextID   uint64
	rows     map[string]*model.PostTranslation
	forceDup bool
}

func newFakeTranslationRepo() *fakeTranslationRepo {
	return &fakeTranslationRepo{rows: make(map[string]*model.PostTranslation)}
}

func translationKey(postID uint64, language string) string {
	return fmt.Sprintf("%d:%s", postID, language)
}

func (s *fakeTranslationRepo) CreateTranslation(_ context.Context, translation *model.PostTranslation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := translationKey(translation.PostID, translation.Language)
	if s.forceDup {
		return duplicateKeyError()
	}
	if _, ok := s.rows[key]; ok {
		return duplicateKeyError()
	}
	s.nextID++
	translation.ID = s.nextID
	s.rows[key] = translation
	return nil
}

func (s *fakeTranslationRepo) GetTranslation(_ context.Context, postID uint64, language string) (*model.PostTranslation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[translationKey(postID, language)]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (s *fakeTranslationRepo) GetTranslations(_ context.Context, postID uint64) ([]*model.PostTranslation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.PostTranslation
	for _, row := range s.rows {
		if row.PostID == postID {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeTranslationRepo) GetLanguages(_ context.Context, postID uint64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, row := range s.rows {
		if row.PostID == postID {
			out = append(out, row.Language)
		}
	}
	return out, nil
}

func (s *fakeTranslationRepo) UpdateOriginalText(_ context.Context, postID uint64, language, title, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[translationKey(postID, language)]; ok {
		row.Title = title
		row.Content = content
	}
	return nil
}

// ---- reply repo ----

type fakeReplyRepo struct {
	mu      sync.Mutex
	nextID  uint64
	replies map[uint64]*model.Reply
}

func newFakeReplyRepo() *fakeReplyRepo {
	return &fakeReplyRepo{replies: make(map[uint64]*model.Reply)}
}

func (s *fakeReplyRepo) CreateReply(_ context.Context, reply *model.Reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	reply.ID = s.nextID
	reply.CreatedAt = time.Now()
	s.replies[reply.ID] = reply
	return nil
}

func (s *fakeReplyRepo) GetReply(_ context.Context, replyID uint64) (*model.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reply, ok := s.replies[replyID]
	if !ok {
		return nil, nil
	}
	cp := *reply
	return &cp, nil
}

func (s *fakeReplyRepo) DeleteReply(_ context.Context, replyID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.replies, replyID)
	return nil
}

func (s *fakeReplyRepo) UpdateReplyStatus(_ context.Context, replyID uint64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reply, ok := s.replies[replyID]; ok {
		reply.Status = status
	}
	return nil
}

func (s *fakeReplyRepo) GetRepliesByPost(_ context.Context, postID uint64, includeHidden bool, limit, offset int) ([]*model.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Reply
	for _, reply := range s.replies {
		if reply.PostID != postID {
			continue
		}
		if !includeHidden && reply.Status != "visible" {
			continue
		}
		cp := *reply
		out = append(out, &cp)
	}
	return out, nil
}

func (s *fakeReplyRepo) GetRepliesByAuthor(_ context.Context, authorID uint64, limit, offset int) ([]*model.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Reply
	for _, reply := range s.replies {
		if reply.AuthorID == authorID {
			cp := *reply
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeReplyRepo) UpdateHelpfulCount(_ context.Context, replyID uint64, count int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reply, ok := s.replies[replyID]; ok {
		reply.HelpfulCount = int(count)
	}
	return nil
}

// ---- interaction repo ----

type fakeInteractionRepo struct {
	mu        sync.Mutex
	nextID    uint64
	votes     map[string]*model.HelpfulnessVote
	feedbacks map[string]*model.AccuracyFeedback

	postRepo  *fakePostRepo
	replyRepo *fakeReplyRepo
}

func newFakeInteractionRepo(postRepo *fakePostRepo, replyRepo *fakeReplyRepo) *fakeInteractionRepo {
	return &fakeInteractionRepo{
		votes:     make(map[string]*model.HelpfulnessVote),
		feedbacks: make(map[string]*model.AccuracyFeedback),
		postRepo:  postRepo,
		replyRepo: replyRepo,
	}
}

func voteKey(userID uint64, targetType string, targetID uint64) string {
	return fmt.Sprintf("%d:%s:%d", userID, targetType, targetID)
}

func (s *fakeInteractionRepo) CreateVote(_ context.Context, vote *model.HelpfulnessVote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := voteKey(vote.UserID, vote.TargetType, vote.TargetID)
	if _, ok := s.votes[key]; ok {
		return duplicateKeyError()
	}
	s.nextID++
	vote.ID = s.nextID
	s.votes[key] = vote
	return nil
}

func (s *fakeInteractionRepo) DeleteVote(_ context.Context, userID uint64, targetType string, targetID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.votes, voteKey(userID, targetType, targetID))
	return nil
}

func (s *fakeInteractionRepo) CountVotesForTarget(_ context.Context, targetType string, targetID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, vote := range s.votes {
		if vote.TargetType == targetType && vote.TargetID == targetID {
			count++
		}
	}
	return count, nil
}

func (s *fakeInteractionRepo) CountVotesForAuthor(ctx context.Context, authorID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, vote := range s.votes {
		switch vote.TargetType {
		case "post":
			if post, _ := s.postRepo.GetPost(ctx, vote.TargetID); post != nil && post.AuthorID == authorID {
				count++
			}
		case "reply":
			if reply, _ := s.replyRepo.GetReply(ctx, vote.TargetID); reply != nil && reply.AuthorID == authorID {
				count++
			}
		}
	}
	return count, nil
}

func feedbackKey(userID, postID uint64) string {
	return fmt.Sprintf("%d:%d", userID, postID)
}

func (s *fakeInteractionRepo) CreateFeedback(_ context.Context, feedback *model.AccuracyFeedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := feedbackKey(feedback.UserID, feedback.PostID)
	if _, ok := s.feedbacks[key]; ok {
		return duplicateKeyError()
	}
	s.nextID++
	feedback.ID = s.nextID
	s.feedbacks[key] = feedback
	return nil
}

func (s *fakeInteractionRepo) GetFeedback(_ context.Context, userID, postID uint64) (*model.AccuracyFeedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	feedback, ok := s.feedbacks[feedbackKey(userID, postID)]
	if !ok {
		return nil, nil
	}
	cp := *feedback
	return &cp, nil
}

func (s *fakeInteractionRepo) SaveFeedback(_ context.Context, feedback *model.AccuracyFeedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedbacks[feedbackKey(feedback.UserID, feedback.PostID)] = feedback
	return nil
}

func (s *fakeInteractionRepo) DeleteFeedback(_ context.Context, feedbackID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, feedback := range s.feedbacks {
		if feedback.ID == feedbackID {
			delete(s.feedbacks, key)
		}
	}
	return nil
}

func (s *fakeInteractionRepo) AggregateFeedbackForPost(_ context.Context, postID uint64) (float64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum, count int64
	for _, feedback := range s.feedbacks {
		if feedback.PostID == postID {
			sum += int64(feedback.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (s *fakeInteractionRepo) AvgFeedbackForAuthor(ctx context.Context, authorID uint64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum, count int64
	for _, feedback := range s.feedbacks {
		if post, _ := s.postRepo.GetPost(ctx, feedback.PostID); post != nil && post.AuthorID == authorID {
			sum += int64(feedback.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

// ---- moderation repo ----

type fakeModerationRepo struct {
	mu      sync.Mutex
	nextID  uint64
	logs    []*model.ModerationLog
	actions []*model.ModerationAction
	appeals map[uint64]*model.Appeal
}

func newFakeModerationRepo() *fakeModerationRepo {
	return &fakeModerationRepo{appeals: make(map[uint64]*model.Appeal)}
}

func (s *fakeModerationRepo) CreateLog(_ context.Context, log *model.ModerationLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	log.ID = s.nextID
	log.CreatedAt = time.Now()
	s.logs = append(s.logs, log)
	return nil
}

func (s *fakeModerationRepo) GetLog(_ context.Context, logID uint64) (*model.ModerationLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, log := range s.logs {
		if log.ID == logID {
			cp := *log
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeModerationRepo) GetLogs(_ context.Context, limit, offset int) ([]*model.ModerationLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.ModerationLog(nil), s.logs...), nil
}

func (s *fakeModerationRepo) GetLogsByUser(_ context.Context, userID uint64, limit, offset int) ([]*model.ModerationLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.ModerationLog
	for _, log := range s.logs {
		if log.UserID == userID {
			out = append(out, log)
		}
	}
	return out, nil
}

func (s *fakeModerationRepo) CreateAction(_ context.Context, action *model.ModerationAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	action.ID = s.nextID
	s.actions = append(s.actions, action)
	return nil
}

func (s *fakeModerationRepo) CreateAppeal(_ context.Context, appeal *model.Appeal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	appeal.ID = s.nextID
	s.appeals[appeal.ID] = appeal
	return nil
}

func (s *fakeModerationRepo) GetAppeal(_ context.Context, appealID uint64) (*model.Appeal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	appeal, ok := s.appeals[appealID]
	if !ok {
		return nil, nil
	}
	cp := *appeal
	return &cp, nil
}

func (s *fakeModerationRepo) SaveAppeal(_ context.Context, appeal *model.Appeal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appeals[appeal.ID] = appeal
	return nil
}

func (s *fakeModerationRepo) GetAppeals(_ context.Context, limit, offset int) ([]*model.Appeal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Appeal
	for _, appeal := range s.appeals {
		out = append(out, appeal)
	}
	return out, nil
}

func (s *fakeModerationRepo) GetAppealsByUser(_ context.Context, userID uint64, limit, offset int) ([]*model.Appeal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Appeal
	for _, appeal := range s.appeals {
		if appeal.UserID == userID {
			out = append(out, appeal)
		}
	}
	return out, nil
}

// ---- notification repo ----

type fakeNotificationRepo struct {
	mu            sync.Mutex
	nextID        uint64
	notifications []*model.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (s *fakeNotificationRepo) CreateNotification(_ context.Context, notification *model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if notification.DedupeKey != nil {
		for _, existing := range s.notifications {
			if existing.UserID == notification.UserID && existing.Type == notification.Type &&
				existing.DedupeKey != nil && *existing.DedupeKey == *notification.DedupeKey {
				return duplicateKeyError()
			}
		}
	}
	s.nextID++
	notification.ID = s.nextID
	notification.CreatedAt = time.Now()
	s.notifications = append(s.notifications, notification)
	return nil
}

func (s *fakeNotificationRepo) GetByDedupe(_ context.Context, userID uint64, notifyType, dedupeKey string) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.UserID == userID && n.Type == notifyType && n.DedupeKey != nil && *n.DedupeKey == dedupeKey {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeNotificationRepo) GetNotificationsByUser(_ context.Context, userID uint64, unreadOnly bool, limit, offset int) ([]*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Notification
	for _, n := range s.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.ReadAt != nil {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}

func (s *fakeNotificationRepo) CountUnread(_ context.Context, userID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, n := range s.notifications {
		if n.UserID == userID && n.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func (s *fakeNotificationRepo) MarkRead(_ context.Context, userID, notificationID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, n := range s.notifications {
		if n.ID == notificationID && n.UserID == userID && n.ReadAt == nil {
			n.ReadAt = &now
			return 1, nil
		}
	}
	return 0, nil
}

func (s *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	var affected int64
	for _, n := range s.notifications {
		if n.UserID == userID && n.ReadAt == nil {
			n.ReadAt = &now
			affected++
		}
	}
	return affected, nil
}

func (s *fakeNotificationRepo) byType(notifyType string) []*model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Notification
	for _, n := range s.notifications {
		if n.Type == notifyType {
			out = append(out, n)
		}
	}
	return out
}

// ---- user repo ----

// fakeUserRepo 默认任何用户都存在，deleted 标记模拟注销账号
type fakeUserRepo struct {
	mu      sync.Mutex
	deleted map[uint64]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{deleted: make(map[uint64]bool)}
}

func (s *fakeUserRepo) GetUser(_ context.Context, userID uint64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleted[userID] {
		return nil, nil
	}
	return &model.User{ID: userID}, nil
}

func (s *fakeUserRepo) markDeleted(userID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted[userID] = true
}

// ---- profile repo ----

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uint64]*model.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uint64]*model.Profile)}
}

func (s *fakeProfileRepo) GetProfile(_ context.Context, userID uint64) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *profile
	return &cp, nil
}

func (s *fakeProfileRepo) GetDisplayName(_ context.Context, userID uint64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile, ok := s.profiles[userID]; ok {
		return profile.DisplayName, nil
	}
	return "", nil
}

func (s *fakeProfileRepo) UpdateHelpfulnessScore(_ context.Context, userID uint64, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(userID).HelpfulnessScore = score
	return nil
}

func (s *fakeProfileRepo) UpdateAccuracyScore(_ context.Context, userID uint64, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(userID).AccuracyScore = score
	return nil
}

func (s *fakeProfileRepo) ensure(userID uint64) *model.Profile {
	if profile, ok := s.profiles[userID]; ok {
		return profile
	}
	profile := &model.Profile{UserID: userID}
	s.profiles[userID] = profile
	return profile
}

// ---- llm client ----

type fakeLLM struct {
	mu             sync.Mutex
	moderateFn     func(title, content string) (*llm.ModerationResult, error)
	translateFn    func(text, sourceLang, targetLang string) (string, error)
	translateCalls int
}

func (s *fakeLLM) Moderate(_ context.Context, title, content string) (*llm.ModerationResult, error) {
	if s.moderateFn == nil {
		return nil, llm.ErrNotConfigured
	}
	return s.moderateFn(title, content)
}

func (s *fakeLLM) Translate(_ context.Context, text, sourceLang, targetLang string) (string, error) {
	s.mu.Lock()
	s.translateCalls++
	s.mu.Unlock()
	if s.translateFn == nil {
		return "", llm.ErrNotConfigured
	}
	return s.translateFn(text, sourceLang, targetLang)
}

func (s *fakeLLM) Model() string {
	return "fake-model"
}

func echoTranslate(text, _, targetLang string) (string, error) {
	return fmt.Sprintf("[%s] %s", targetLang, text), nil
}

func riskResult(risk int) func(string, string) (*llm.ModerationResult, error) {
	return func(_, _ string) (*llm.ModerationResult, error) {
		return &llm.ModerationResult{RiskScore: risk, Decision: "pass", Reason: "test"}, nil
	}
}
