package course

import "gorm.io/gorm"

// Material represents an uploaded downloadable file
type Material struct {
	gorm.Model
	Title      string `json:"title"`
	FileName   string `json:"file_name"`
	FilePath   string `json:"file_path"`
	FileSize   int64  `json:"file_size"`
	FileType   string `json:"file_type"` // MIME type
	UploadedBy uint   `json:"uploaded_by" gorm:"index"`
}

// LessonMaterial links materials to lessons (many-to-many)
type LessonMaterial struct {
	gorm.Model
	LessonID   uint      `json:"lesson_id" gorm:"index;not null"`
	Lesson     *Lesson   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	MaterialID uint      `json:"material_id" gorm:"index;not null"`
	Material   *Material `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
