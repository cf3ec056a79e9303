package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDb(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Chapter{},
		&courseModels.Lesson{},
		&courseModels.Question{},
		&courseModels.Material{},
		&courseModels.LessonMaterial{},
		&courseModels.Enrollment{},
		&courseModels.StudentProgress{},
	))

	return db
}

func readZip(t *testing.T, archive []byte) map[string]string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)

	files := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		files[f.Name] = string(data)
	}
	return files
}

func TestExportCourseNotFound(t *testing.T) {
	db := testDb(t)
	svc := NewService(db)

	_, _, err := svc.ExportCourse(42)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestExportCourseArchiveLayout(t *testing.T) {
	db := testDb(t)
	svc := NewService(db)

	course := courseModels.Course{Title: "Intro to Go", Description: "Learn the basics.", InstructorID: 1}
	require.NoError(t, db.Create(&course).Error)

	first := courseModels.Chapter{CourseID: course.ID, Title: "Getting Started", Description: "Setup and tooling.", OrderIndex: 0}
	second := courseModels.Chapter{CourseID: course.ID, Title: "Control Flow", OrderIndex: 1}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	lessons := []courseModels.Lesson{
		{ChapterID: first.ID, Title: "Installing Go", Content: "Download the toolchain.", OrderIndex: 0},
		{ChapterID: first.ID, Title: "Hello World", VideoURL: "https://youtu.be/abc", OrderIndex: 1},
		{ChapterID: second.ID, Title: "If Statements", Assignment: "Write a fizzbuzz.", OrderIndex: 0},
	}
	for i := range lessons {
		require.NoError(t, db.Create(&lessons[i]).Error)
	}

	archive, fileName, err := svc.ExportCourse(course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Intro_to_Go.zip", fileName)

	files := readZip(t, archive)

	wantNames := []string{
		"README.md",
		"1-Getting_Started/README.md",
		"1-Getting_Started/1-Installing_Go.md",
		"1-Getting_Started/2-Hello_World.md",
		"2-Control_Flow/README.md",
		"2-Control_Flow/1-If_Statements.md",
	}
	for _, name := range wantNames {
		assert.Contains(t, files, name)
	}
	assert.Len(t, files, len(wantNames))

	root := files["README.md"]
	assert.Contains(t, root, "# Intro to Go")
	assert.Contains(t, root, "Learn the basics.")
	assert.Contains(t, root, "## Table of Contents")
	assert.Contains(t, root, "- Getting Started")
	assert.Contains(t, root, "  - [Installing Go](#installing-go)")
	assert.Contains(t, root, "  - [If Statements](#if-statements)")

	assert.Contains(t, files["1-Getting_Started/README.md"], "# Getting Started")
	assert.Contains(t, files["1-Getting_Started/README.md"], "Setup and tooling.")

	video := files["1-Getting_Started/2-Hello_World.md"]
	assert.Contains(t, video, "## Video")
	assert.Contains(t, video, "[Watch on YouTube](https://youtu.be/abc)")
	assert.NotContains(t, video, "## Content")

	assignment := files["2-Control_Flow/1-If_Statements.md"]
	assert.Contains(t, assignment, "## Practice Assignment")
	assert.Contains(t, assignment, "Write a fizzbuzz.")
}

func TestExportLessonQuizMarksOnlyCorrectOption(t *testing.T) {
	db := testDb(t)
	svc := NewService(db)

	course := courseModels.Course{Title: "Quiz Course", InstructorID: 1}
	require.NoError(t, db.Create(&course).Error)
	chapter := courseModels.Chapter{CourseID: course.ID, Title: "Basics", OrderIndex: 0}
	require.NoError(t, db.Create(&chapter).Error)
	lesson := courseModels.Lesson{ChapterID: chapter.ID, Title: "Types", OrderIndex: 0}
	require.NoError(t, db.Create(&lesson).Error)

	question := courseModels.Question{
		LessonID:      lesson.ID,
		Question:      "Which type holds text?",
		CorrectAnswer: 1,
		Explanation:   "Strings hold text.",
		OrderIndex:    0,
	}
	require.NoError(t, question.SetOptions([]string{"int", "string", "bool"}))
	require.NoError(t, db.Create(&question).Error)

	archive, _, err := svc.ExportCourse(course.ID)
	require.NoError(t, err)

	files := readZip(t, archive)
	content := files["1-Basics/1-Types.md"]

	assert.Contains(t, content, "## Assessment Questions")
	assert.Contains(t, content, "### Question 1")
	assert.Contains(t, content, "Which type holds text?")
	assert.Contains(t, content, "A. int\n")
	assert.Contains(t, content, "B. string ✓\n")
	assert.Contains(t, content, "C. bool\n")
	assert.NotContains(t, content, "A. int ✓")
	assert.NotContains(t, content, "C. bool ✓")
	assert.Contains(t, content, "**Explanation:** Strings hold text.")
}

func TestExportCodeExampleDefaultsToJavascript(t *testing.T) {
	db := testDb(t)
	svc := NewService(db)

	course := courseModels.Course{Title: "Code Course", InstructorID: 1}
	require.NoError(t, db.Create(&course).Error)
	chapter := courseModels.Chapter{CourseID: course.ID, Title: "Snippets", OrderIndex: 0}
	require.NoError(t, db.Create(&chapter).Error)

	tagged := courseModels.Lesson{ChapterID: chapter.ID, Title: "Go Sample", CodeExample: `fmt.Println("hi")`, CodeLanguage: "go", OrderIndex: 0}
	untagged := courseModels.Lesson{ChapterID: chapter.ID, Title: "JS Sample", CodeExample: `console.log("hi")`, OrderIndex: 1}
	require.NoError(t, db.Create(&tagged).Error)
	require.NoError(t, db.Create(&untagged).Error)

	archive, _, err := svc.ExportCourse(course.ID)
	require.NoError(t, err)

	files := readZip(t, archive)
	assert.Contains(t, files["1-Snippets/1-Go_Sample.md"], "```go\n")
	assert.Contains(t, files["1-Snippets/2-JS_Sample.md"], "```javascript\n")
}

func TestExportMaterialsSkipsMissingFiles(t *testing.T) {
	db := testDb(t)
	svc := NewService(db)

	course := courseModels.Course{Title: "Files Course", InstructorID: 1}
	require.NoError(t, db.Create(&course).Error)
	chapter := courseModels.Chapter{CourseID: course.ID, Title: "Docs", OrderIndex: 0}
	require.NoError(t, db.Create(&chapter).Error)
	lesson := courseModels.Lesson{ChapterID: chapter.ID, Title: "Reading", Content: "Read the handout.", OrderIndex: 0}
	require.NoError(t, db.Create(&lesson).Error)

	dir := t.TempDir()
	present := filepath.Join(dir, "handout.pdf")
	require.NoError(t, os.WriteFile(present, []byte("pdf bytes"), 0644))

	materials := []courseModels.Material{
		{Title: "Handout", FileName: "handout.pdf", FilePath: present, UploadedBy: 1},
		{Title: "Gone", FileName: "gone.pdf", FilePath: filepath.Join(dir, "gone.pdf"), UploadedBy: 1},
	}
	for i := range materials {
		require.NoError(t, db.Create(&materials[i]).Error)
	}

	link := courseModels.LessonMaterial{LessonID: lesson.ID, MaterialID: materials[0].ID}
	require.NoError(t, db.Create(&link).Error)

	archive, _, err := svc.ExportCourse(course.ID)
	require.NoError(t, err)

	files := readZip(t, archive)

	assert.Equal(t, "pdf bytes", files["materials/handout.pdf"])
	assert.NotContains(t, files, "materials/gone.pdf")

	lessonFile := files["1-Docs/1-Reading.md"]
	assert.Contains(t, lessonFile, "## Materials")
	assert.Contains(t, lessonFile, "- [Handout](../materials/handout.pdf)")
}
