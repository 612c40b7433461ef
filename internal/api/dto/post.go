package dto

import "time"

// PostCreateDTO 投稿，创建后进入待审核队列
type PostCreateDTO struct {
	Title       string     `json:"title" binding:"required" validate:"min=1,max=100"`
	Content     string     `json:"content" binding:"required" validate:"min=1,max=2000"`
	CategoryIDs []uint64   `json:"category_ids" binding:"required" validate:"min=1,max=10"`
	City        string     `json:"city" validate:"omitempty,max=100"`
	EventAt     *time.Time `json:"event_at"`
	MediaID     *string    `json:"media_id" validate:"omitempty,max=255"`
}

// PostDTO 帖子
type PostDTO struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	City        string   `json:"city"`
	Status      string   `json:"status"`
	Categories  []string `json:"categories"`
	MediaID     *string  `json:"media_id,omitempty"`
	EventAt     *string  `json:"event_at,omitempty"`
	PublishedAt *string  `json:"published_at,omitempty"`
	CreatedAt   string   `json:"created_at"`

	AuthorID   uint64 `json:"author_id"`
	AuthorName string `json:"author_name"`
}

// PostPageDTO 分页列表
type PostPageDTO struct {
	List  []*PostDTO `json:"list"`
	Total int64      `json:"total"`
}
