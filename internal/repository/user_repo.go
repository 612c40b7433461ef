package repository

import (
	"Townsquare/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo interface {
	GetUser(ctx context.Context, id uint64) (*model.User, error)
	GetUserWithCategories(ctx context.Context, id uint64) (*model.User, error)
	UpsertUser(ctx context.Context, user *model.User) error
	UpdateCity(ctx context.Context, id uint64, city string) error
	ReplaceCategories(ctx context.Context, userID uint64, categoryIDs []uint64) error
	GetSubscribers(ctx context.Context, city string, categoryIDs []uint64, excludeUserID uint64) ([]*model.User, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepoImpl) GetUserWithCategories(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Preload("Categories").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertUser 注册即登录：已存在则刷新昵称等展示字段
func (s *UserRepoImpl) UpsertUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "first_name", "is_active", "updated_at"}),
	}).Create(user).Error
}

func (s *UserRepoImpl) UpdateCity(ctx context.Context, id uint64, city string) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"city": city, "updated_at": time.Now()}).Error
}

// ReplaceCategories 全量替换用户订阅，删旧插新在同一事务内
func (s *UserRepoImpl) ReplaceCategories(ctx context.Context, userID uint64, categoryIDs []uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.UserCategory{}, "user_id = ?", userID).Error; err != nil {
			return err
		}
		if len(categoryIDs) == 0 {
			return nil
		}
		rows := make([]*model.UserCategory, 0, len(categoryIDs))
		for _, cid := range categoryIDs {
			rows = append(rows, &model.UserCategory{UserID: userID, CategoryID: cid})
		}
		return tx.Create(rows).Error
	})
}

// GetSubscribers 城市相同且订阅分类有交集的用户，排除作者；city 传入前已归一化
func (s *UserRepoImpl) GetSubscribers(ctx context.Context, city string, categoryIDs []uint64, excludeUserID uint64) ([]*model.User, error) {
	var users []*model.User
	err := s.db.WithContext(ctx).Model(&model.User{}).Distinct("users.*").
		Joins("JOIN user_categories ON user_categories.user_id = users.id").
		Where("users.city = ?", city).
		Where("user_categories.category_id IN ?", categoryIDs).
		Where("users.id <> ?", excludeUserID).
		Where("users.is_active = ?", true).
		Find(&users).Error
	return users, err
}
