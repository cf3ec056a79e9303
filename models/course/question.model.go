package course

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Question represents a multiple choice quiz question attached to a lesson
type Question struct {
	gorm.Model
	LessonID      uint    `json:"lesson_id" gorm:"index;not null"`
	Lesson        *Lesson `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Question      string  `json:"question" gorm:"type:text"`
	Options       string  `json:"-" gorm:"type:text"` // JSON array of option strings
	CorrectAnswer int     `json:"correct_answer"`     // index into Options
	Explanation   string  `json:"explanation" gorm:"type:text"`
	OrderIndex    int     `json:"order_index" gorm:"default:0"`
}

// OptionList decodes the stored JSON options array
func (q *Question) OptionList() []string {
	var options []string
	if q.Options == "" {
		return options
	}
	if err := json.Unmarshal([]byte(q.Options), &options); err != nil {
		return nil
	}
	return options
}

// SetOptions encodes the option strings for storage
func (q *Question) SetOptions(options []string) error {
	raw, err := json.Marshal(options)
	if err != nil {
		return err
	}
	q.Options = string(raw)
	return nil
}

// MarshalJSON exposes the decoded options under "options"
func (q Question) MarshalJSON() ([]byte, error) {
	type alias Question
	return json.Marshal(struct {
		alias
		DecodedOptions []string `json:"options"`
	}{
		alias:          alias(q),
		DecodedOptions: q.OptionList(),
	})
}
