package entities

import "time"

// Category groups a user's words. Names are free text and may repeat.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Category) TableName() string {
	return "categories"
}

// Word is a single vocabulary entry. CategoryID is a weak reference: it is
// cleared, never cascaded, when the category goes away.
type Word struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"userId"`
	Japanese   string    `gorm:"type:text;not null" json:"japanese"`
	Romaji     string    `gorm:"type:text;not null" json:"romaji"`
	Spanish    string    `gorm:"type:text;not null" json:"spanish"`
	CategoryID *uint     `gorm:"index" json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Word) TableName() string {
	return "words"
}

// HasCategory reports whether the word references the given category.
func (w Word) HasCategory(categoryID uint) bool {
	return w.CategoryID != nil && *w.CategoryID == categoryID
}
