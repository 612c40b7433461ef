package model

type UserCategory struct {
	UserID     uint64 `gorm:"primaryKey" json:"userId"`
	CategoryID uint64 `gorm:"primaryKey;index:idx_category_id" json:"categoryId"`
}

func (UserCategory) TableName() string {
	return "user_categories"
}
