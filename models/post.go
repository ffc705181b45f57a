package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a blog post created by a user. CreateDate is the sort key
// for listings (newest first) and is fixed at creation time.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"-"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	CreateDate time.Time `gorm:"index;not null" json:"createDate"`
	UpdatedAt  time.Time `json:"-"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
}

// BeforeCreate fixes the creation timestamp used for descending sort.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.CreateDate.IsZero() {
		p.CreateDate = time.Now()
	}
	return nil
}
