package service

import (
	"ModelHub/internal/repo"
	"ModelHub/model"
	"context"
)

// ListCategories returns the category reference data.
func ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := repo.Db.WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, err
}

// GetCategory loads a category by id.
func GetCategory(ctx context.Context, categoryID uint64) (*model.Category, error) {
	var category model.Category
	if err := repo.Db.WithContext(ctx).Where("id = ?", categoryID).First(&category).Error; err != nil {
		return nil, translate(err, "categoría")
	}
	return &category, nil
}
