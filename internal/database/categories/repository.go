// Package categories provides owner-scoped category persistence.
//
// Deleting a category clears the category reference on the owner's words in
// the same transaction, so a word never points at a missing category.
package categories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/wordbook/internal/entities"
	"github.com/mrlokans/wordbook/internal/storage"
)

// Repository handles category database operations.
type Repository struct {
	db *gorm.DB
}

var _ storage.CategoryStore = (*Repository)(nil)

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCategories returns the owner's categories ordered by id.
func (r *Repository) ListCategories(ctx context.Context, ownerID uint) ([]entities.Category, error) {
	categories := make([]entities.Category, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetCategory returns the category when it exists and belongs to the owner.
func (r *Repository) GetCategory(ctx context.Context, id, ownerID uint) (*entities.Category, error) {
	category, err := findOwned(r.db.WithContext(ctx), id, ownerID)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *Repository) CreateCategory(ctx context.Context, ownerID uint, in storage.NewCategory) (*entities.Category, error) {
	category := &entities.Category{
		UserID:      ownerID,
		Name:        in.Name,
		Description: in.Description,
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// UpdateCategory writes only the fields present in upd.
func (r *Repository) UpdateCategory(ctx context.Context, id, ownerID uint, upd storage.CategoryUpdate) (*entities.Category, error) {
	var updated *entities.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := findOwned(tx, id, ownerID)
		if err != nil {
			return err
		}
		if category == nil {
			return storage.ErrNotFound
		}

		if !upd.IsEmpty() {
			if err := tx.Model(category).Updates(upd.Columns()).Error; err != nil {
				return fmt.Errorf("failed to update category %d: %w", id, err)
			}
			category, err = findOwned(tx, id, ownerID)
			if err != nil {
				return err
			}
		}

		updated = category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteCategory removes the category and detaches the owner's words from it.
// Deleting a missing or foreign category is a no-op.
func (r *Repository) DeleteCategory(ctx context.Context, id, ownerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := findOwned(tx, id, ownerID)
		if err != nil {
			return err
		}
		if category == nil {
			return nil
		}

		err = tx.Model(&entities.Word{}).
			Where("user_id = ? AND category_id = ?", ownerID, id).
			Update("category_id", gorm.Expr("NULL")).Error
		if err != nil {
			return fmt.Errorf("failed to detach words from category %d: %w", id, err)
		}

		if err := tx.Delete(&entities.Category{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete category %d: %w", id, err)
		}
		return nil
	})
}

// Exists reports whether the owner has a category with the given id.
func Exists(tx *gorm.DB, id, ownerID uint) (bool, error) {
	var count int64
	err := tx.Model(&entities.Category{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check category %d: %w", id, err)
	}
	return count > 0, nil
}

func findOwned(tx *gorm.DB, id, ownerID uint) (*entities.Category, error) {
	var category entities.Category
	err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	return &category, nil
}
