package dto

// PostCreateDTO 发帖请求，language 为作者原文语言
type PostCreateDTO struct {
	Title      string  `json:"title" binding:"required,max=255"`
	Content    string  `json:"content" binding:"required"`
	Language   string  `json:"language" binding:"required,max=8"`
	CategoryID *uint64 `json:"category_id"`
}

// PostUpdateDTO 编辑原文，编辑后重新走提交管线
type PostUpdateDTO struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

// PostDTO 帖子视图，标题正文来自按语言解析后的翻译行
type PostDTO struct {
	ID               uint64  `json:"id"`
	AuthorID         uint64  `json:"author_id"`
	AuthorName       string  `json:"author_name"`
	CategoryID       *uint64 `json:"category_id"`
	Title            string  `json:"title"`
	Content          string  `json:"content"`
	Language         string  `json:"language"`
	OriginalLanguage string  `json:"original_language"`
	TranslatedBy     string  `json:"translated_by"`
	Status           string  `json:"status"`
	HelpfulCount     int     `json:"helpful_count"`
	AccuracyAvg      float64 `json:"accuracy_avg"`
	AccuracyCount    int     `json:"accuracy_count"`
	PublishedAt      string  `json:"published_at"`
	CreatedAt        string  `json:"created_at"`
}

// PostListDTO 帖子列表
type PostListDTO struct {
	List    []*PostDTO `json:"list"`
	HasMore bool       `json:"has_more"`
}

// ReplyCreateDTO 回帖请求
type ReplyCreateDTO struct {
	Content string `json:"content" binding:"required"`
}

// ReplyDTO 回复视图
type ReplyDTO struct {
	ID           uint64 `json:"id"`
	PostID       uint64 `json:"post_id"`
	AuthorID     uint64 `json:"author_id"`
	AuthorName   string `json:"author_name"`
	Content      string `json:"content"`
	HelpfulCount int    `json:"helpful_count"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}
