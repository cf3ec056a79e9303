package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// ErrCourseNotFound is returned when the course id does not resolve
var ErrCourseNotFound = errors.New("course not found")

var (
	nonAlphanumeric    = regexp.MustCompile(`[^a-zA-Z0-9]`)
	nonAlphanumericRun = regexp.MustCompile(`[^a-zA-Z0-9]+`)
)

// Service renders a course's full content tree into a zip archive of
// Markdown files. The database handle is injected for testability.
type Service struct {
	db *gorm.DB
}

// NewService creates an export service bound to the given database
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ExportCourse serializes the course into zip bytes. The second return value
// is the suggested archive file name derived from the course title.
//
// Archive layout:
//
//	README.md                    course title, description, table of contents
//	{n}-{chapter}/README.md      chapter title and description
//	{n}-{chapter}/{n}-{lesson}.md
//	materials/{fileName}         raw bytes of uploaded materials
//
// Materials whose backing file is missing or unreadable are skipped without
// failing the export.
func (s *Service) ExportCourse(courseID uint) ([]byte, string, error) {
	var c courseModels.Course
	if err := s.db.Where("id = ?", courseID).First(&c).Error; err != nil {
		return nil, "", ErrCourseNotFound
	}

	var chapters []courseModels.Chapter
	if err := s.db.Where("course_id = ?", c.ID).Order("order_index asc").Find(&chapters).Error; err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	lessonsByChapter := make(map[uint][]courseModels.Lesson, len(chapters))
	for _, chapter := range chapters {
		var lessons []courseModels.Lesson
		if err := s.db.Where("chapter_id = ?", chapter.ID).Order("order_index asc").Find(&lessons).Error; err != nil {
			return nil, "", err
		}
		lessonsByChapter[chapter.ID] = lessons
	}

	if err := writeFile(zw, "README.md", courseReadme(&c, chapters, lessonsByChapter)); err != nil {
		return nil, "", err
	}

	for _, chapter := range chapters {
		dir := fmt.Sprintf("%d-%s", chapter.OrderIndex+1, sanitizeTitle(chapter.Title))

		if err := writeFile(zw, dir+"/README.md", chapterReadme(&chapter)); err != nil {
			return nil, "", err
		}

		for _, lesson := range lessonsByChapter[chapter.ID] {
			name := fmt.Sprintf("%s/%d-%s.md", dir, lesson.OrderIndex+1, sanitizeTitle(lesson.Title))
			content, err := s.lessonMarkdown(&lesson)
			if err != nil {
				return nil, "", err
			}
			if err := writeFile(zw, name, content); err != nil {
				return nil, "", err
			}
		}
	}

	if err := s.writeMaterials(zw); err != nil {
		return nil, "", err
	}

	if err := zw.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), sanitizeTitle(c.Title) + ".zip", nil
}

// courseReadme builds the root README with a table of contents linking each
// lesson by its lowercase-hyphenated title anchor
func courseReadme(c *courseModels.Course, chapters []courseModels.Chapter, lessonsByChapter map[uint][]courseModels.Lesson) string {
	var b strings.Builder

	b.WriteString("# " + c.Title + "\n\n")
	if c.Description != "" {
		b.WriteString(c.Description + "\n\n")
	}

	b.WriteString("## Table of Contents\n\n")
	for _, chapter := range chapters {
		b.WriteString("- " + chapter.Title + "\n")
		for _, lesson := range lessonsByChapter[chapter.ID] {
			b.WriteString(fmt.Sprintf("  - [%s](#%s)\n", lesson.Title, anchor(lesson.Title)))
		}
	}

	return b.String()
}

func chapterReadme(chapter *courseModels.Chapter) string {
	var b strings.Builder
	b.WriteString("# " + chapter.Title + "\n\n")
	if chapter.Description != "" {
		b.WriteString(chapter.Description + "\n")
	}
	return b.String()
}

// lessonMarkdown renders one lesson file, emitting only the sections whose
// source field is set
func (s *Service) lessonMarkdown(lesson *courseModels.Lesson) (string, error) {
	var b strings.Builder

	b.WriteString("# " + lesson.Title + "\n\n")

	if lesson.VideoURL != "" {
		b.WriteString("## Video\n\n")
		b.WriteString(fmt.Sprintf("[Watch on YouTube](%s)\n\n", lesson.VideoURL))
	}

	if lesson.Content != "" {
		b.WriteString("## Content\n\n")
		b.WriteString(lesson.Content + "\n\n")
	}

	if lesson.CodeExample != "" {
		language := lesson.CodeLanguage
		if language == "" {
			language = "javascript"
		}
		b.WriteString("## Code Example\n\n")
		b.WriteString("```" + language + "\n")
		b.WriteString(lesson.CodeExample + "\n")
		b.WriteString("```\n\n")
	}

	var questions []courseModels.Question
	if err := s.db.Where("lesson_id = ?", lesson.ID).Order("order_index asc").Find(&questions).Error; err != nil {
		return "", err
	}
	if len(questions) > 0 {
		b.WriteString("## Assessment Questions\n\n")
		for i, q := range questions {
			b.WriteString(fmt.Sprintf("### Question %d\n\n", i+1))
			b.WriteString(q.Question + "\n\n")
			for j, option := range q.OptionList() {
				line := fmt.Sprintf("%c. %s", 'A'+j, option)
				if j == q.CorrectAnswer {
					line += " ✓"
				}
				b.WriteString(line + "\n")
			}
			b.WriteString("\n")
			if q.Explanation != "" {
				b.WriteString("**Explanation:** " + q.Explanation + "\n\n")
			}
		}
	}

	if lesson.Assignment != "" {
		b.WriteString("## Practice Assignment\n\n")
		b.WriteString(lesson.Assignment + "\n\n")
	}

	var materials []courseModels.Material
	err := s.db.Model(&courseModels.Material{}).
		Joins("JOIN lesson_materials ON lesson_materials.material_id = materials.id").
		Where("lesson_materials.lesson_id = ? AND lesson_materials.deleted_at IS NULL", lesson.ID).
		Order("materials.id asc").
		Find(&materials).Error
	if err != nil {
		return "", err
	}
	if len(materials) > 0 {
		b.WriteString("## Materials\n\n")
		for _, material := range materials {
			b.WriteString(fmt.Sprintf("- [%s](../materials/%s)\n", material.Title, material.FileName))
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// writeMaterials copies the raw bytes of every stored material into the
// archive's materials/ directory. Unreadable files are skipped.
func (s *Service) writeMaterials(zw *zip.Writer) error {
	var materials []courseModels.Material
	if err := s.db.Order("id asc").Find(&materials).Error; err != nil {
		return err
	}

	for _, material := range materials {
		data, err := os.ReadFile(material.FilePath)
		if err != nil {
			log.Printf("Skipping material %d (%s): %v", material.ID, material.FileName, err)
			continue
		}
		if err := writeBytes(zw, "materials/"+material.FileName, data); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(zw *zip.Writer, name, content string) error {
	return writeBytes(zw, name, []byte(content))
}

func writeBytes(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// sanitizeTitle replaces each non-alphanumeric character with an underscore,
// the form used for chapter directory and lesson file names
func sanitizeTitle(title string) string {
	return nonAlphanumeric.ReplaceAllString(title, "_")
}

// anchor derives a lowercase-hyphenated markdown anchor from a title
func anchor(title string) string {
	return strings.Trim(strings.ToLower(nonAlphanumericRun.ReplaceAllString(title, "-")), "-")
}
