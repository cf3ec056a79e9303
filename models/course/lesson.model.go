package course

import "gorm.io/gorm"

// Lesson represents an atomic unit of content within a chapter.
// All content fields are optional; a lesson with none of them set is empty.
type Lesson struct {
	gorm.Model
	ChapterID    uint     `json:"chapter_id" gorm:"index;not null"`
	Chapter      *Chapter `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Title        string   `json:"title"`
	Content      string   `json:"content" gorm:"type:text"` // rich text
	VideoURL     string   `json:"video_url"`
	CodeExample  string   `json:"code_example" gorm:"type:text"`
	CodeLanguage string   `json:"code_language"`
	Assignment   string   `json:"assignment" gorm:"type:text"`
	OrderIndex   int      `json:"order_index" gorm:"default:0"` // Order within chapter
}
