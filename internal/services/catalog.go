package services

// 目录服务：提供服务目录（Service 行）的查询、创建、部分更新与删除能力。

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Dakotapog/D20-solutions/internal/metrics"
	"github.com/Dakotapog/D20-solutions/internal/storage"
)

// 未显式提供时使用的目录字段默认值。
const (
	DefaultCategory = "general"
	DefaultIconURL  = "images/icon-recursos.png"
)

// CatalogService 提供服务目录的 CRUD。
type CatalogService struct{ db *gorm.DB }

func NewCatalogService(db *gorm.DB) *CatalogService { return &CatalogService{db: db} }

func (s *CatalogService) FindByID(ctx context.Context, id uint64) (*storage.Service, error) {
	var svc storage.Service
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&svc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &svc, nil
}

// List 返回全部服务行，保持存储自然顺序（无显式排序）。
func (s *CatalogService) List(ctx context.Context) ([]storage.Service, error) {
	var list []storage.Service
	if err := s.db.WithContext(ctx).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// NewServiceInput 是创建服务所需的全部字段；调用方负责填充默认值前的校验。
type NewServiceInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	IconURL     string
	Badge       *string
}

// Create 持久化一个新服务行，Category/IconURL 为空时落默认值。
func (s *CatalogService) Create(ctx context.Context, in NewServiceInput) (*storage.Service, error) {
	if in.Category == "" {
		in.Category = DefaultCategory
	}
	if in.IconURL == "" {
		in.IconURL = DefaultIconURL
	}
	svc := &storage.Service{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		IconURL:     in.IconURL,
		Badge:       in.Badge,
	}
	if err := s.db.WithContext(ctx).Create(svc).Error; err != nil {
		return nil, err
	}
	metrics.CatalogWrites.WithLabelValues("create").Inc()
	return svc, nil
}

// ServicePatch 描述部分更新：nil 字段表示请求中未出现，保持原值。
// Badge 使用双重指针以区分「未提供」与「显式置空」。
type ServicePatch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	IconURL     *string
	Badge       **string
}

// Update 对指定服务行做部分更新。
func (s *CatalogService) Update(ctx context.Context, id uint64, patch ServicePatch) error {
	svc, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if patch.Name != nil {
		svc.Name = *patch.Name
	}
	if patch.Description != nil {
		svc.Description = *patch.Description
	}
	if patch.Price != nil {
		svc.Price = *patch.Price
	}
	if patch.Category != nil {
		svc.Category = *patch.Category
	}
	if patch.IconURL != nil {
		svc.IconURL = *patch.IconURL
	}
	if patch.Badge != nil {
		svc.Badge = *patch.Badge
	}
	if err := s.db.WithContext(ctx).Save(svc).Error; err != nil {
		return err
	}
	metrics.CatalogWrites.WithLabelValues("update").Inc()
	return nil
}

func (s *CatalogService) Delete(ctx context.Context, id uint64) error {
	svc, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(svc).Error; err != nil {
		return err
	}
	metrics.CatalogWrites.WithLabelValues("delete").Inc()
	return nil
}
