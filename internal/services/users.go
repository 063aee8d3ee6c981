package services

// 用户服务：提供用户目录的查询、创建、部分更新与删除能力。

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Dakotapog/D20-solutions/internal/storage"
)

// UserService 提供用户目录的 CRUD。
type UserService struct{ db *gorm.DB }

func NewUserService(db *gorm.DB) *UserService { return &UserService{db: db} }

func (s *UserService) FindByID(ctx context.Context, id uint64) (*storage.User, error) {
	var u storage.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*storage.User, error) {
	var u storage.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *UserService) List(ctx context.Context) ([]storage.User, error) {
	var users []storage.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Create 在 username 或 email 已存在时返回 ErrDuplicate。
func (s *UserService) Create(ctx context.Context, username, email string) (*storage.User, error) {
	var existing storage.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicate
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	u := &storage.User{Username: username, Email: email}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// UserPatch 描述部分更新：nil 字段表示请求中未出现，保持原值。
type UserPatch struct {
	Username *string
	Email    *string
}

// Update 对指定用户做部分更新。与原系统一致，此处不再次校验
// username/email 的唯一性；完全重复的取值会触发底层唯一索引错误。
func (s *UserService) Update(ctx context.Context, id uint64, patch UserPatch) error {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	return s.db.WithContext(ctx).Save(u).Error
}

func (s *UserService) Delete(ctx context.Context, id uint64) error {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(u).Error
}
