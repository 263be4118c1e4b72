// Package words provides owner-scoped word persistence.
package words

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/wordbook/internal/database/categories"
	"github.com/mrlokans/wordbook/internal/entities"
	"github.com/mrlokans/wordbook/internal/storage"
)

// Repository handles word database operations.
type Repository struct {
	db *gorm.DB
}

var _ storage.WordStore = (*Repository)(nil)

// NewRepository creates a new words repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListWords returns the owner's words ordered by id. A non-nil categoryID
// narrows the result to that category.
func (r *Repository) ListWords(ctx context.Context, ownerID uint, categoryID *uint) ([]entities.Word, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	words := make([]entities.Word, 0)
	if err := query.Order("id").Find(&words).Error; err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	return words, nil
}

func (r *Repository) GetWord(ctx context.Context, id, ownerID uint) (*entities.Word, error) {
	return findOwned(r.db.WithContext(ctx), id, ownerID)
}

// CreateWord stores a new word. A category reference must name one of the
// owner's categories.
func (r *Repository) CreateWord(ctx context.Context, ownerID uint, in storage.NewWord) (*entities.Word, error) {
	word := &entities.Word{
		UserID:     ownerID,
		Japanese:   in.Japanese,
		Romaji:     in.Romaji,
		Spanish:    in.Spanish,
		CategoryID: in.CategoryID,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkCategory(tx, in.CategoryID, ownerID); err != nil {
			return err
		}
		if err := tx.Create(word).Error; err != nil {
			return fmt.Errorf("failed to create word: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return word, nil
}

// UpdateWord writes only the fields present in upd.
func (r *Repository) UpdateWord(ctx context.Context, id, ownerID uint, upd storage.WordUpdate) (*entities.Word, error) {
	var updated *entities.Word
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		word, err := findOwned(tx, id, ownerID)
		if err != nil {
			return err
		}
		if word == nil {
			return storage.ErrNotFound
		}

		if upd.IsEmpty() {
			updated = word
			return nil
		}

		if upd.CategoryID.Set {
			if err := checkCategory(tx, upd.CategoryID.Value, ownerID); err != nil {
				return err
			}
		}

		if err := tx.Model(word).Updates(upd.Columns()).Error; err != nil {
			return fmt.Errorf("failed to update word %d: %w", id, err)
		}
		updated, err = findOwned(tx, id, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteWord removes the owner's word. Missing or foreign ids are a no-op.
func (r *Repository) DeleteWord(ctx context.Context, id, ownerID uint) error {
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&entities.Word{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete word %d: %w", id, err)
	}
	return nil
}

// RepairCategoryRefs clears category references that point at a missing
// category or at another user's category. Returns the number of words fixed.
func (r *Repository) RepairCategoryRefs(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Word{}).
		Where("category_id IS NOT NULL").
		Where("NOT EXISTS (SELECT 1 FROM categories WHERE categories.id = words.category_id AND categories.user_id = words.user_id)").
		Update("category_id", gorm.Expr("NULL"))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to repair category references: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func checkCategory(tx *gorm.DB, categoryID *uint, ownerID uint) error {
	if categoryID == nil {
		return nil
	}
	ok, err := categories.Exists(tx, *categoryID, ownerID)
	if err != nil {
		return err
	}
	if !ok {
		return storage.ErrUnknownCategory
	}
	return nil
}

func findOwned(tx *gorm.DB, id, ownerID uint) (*entities.Word, error) {
	var word entities.Word
	err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&word).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word %d: %w", id, err)
	}
	return &word, nil
}
