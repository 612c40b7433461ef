package model

type PostCategory struct {
	PostID     uint64 `gorm:"primaryKey" json:"postId"`
	CategoryID uint64 `gorm:"primaryKey;index:idx_category_id" json:"categoryId"`
}

func (PostCategory) TableName() string {
	return "post_categories"
}
