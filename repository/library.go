package repository

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Library serves novel assets from the file tree rooted at NOVEL_PATH:
//
//	<root>/<novel>/Cover.png
//	<root>/<novel>/Markdown/<novel> Chapter <n>.md
//
// The tree is read-only to this service, so no locking is needed and
// concurrent reads are safe.
type Library struct {
	Root string
}

func NewLibrary(root string) *Library {
	return &Library{Root: root}
}

var chapterPattern = regexp.MustCompile(`(?i)Chapter\s+(\d+)`)

// novelDir resolves the directory for a novel name. Names that would escape
// the library root are treated as nonexistent rather than reported as a
// distinct error.
func (l *Library) novelDir(novelName string) (string, error) {
	if novelName == "" || novelName != filepath.Base(novelName) || strings.Contains(novelName, "..") {
		return "", fs.ErrNotExist
	}
	return filepath.Join(l.Root, novelName), nil
}

// Cover returns the raw PNG bytes of the novel's cover image.
func (l *Library) Cover(novelName string) ([]byte, error) {
	dir, err := l.novelDir(novelName)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(dir, "Cover.png"))
}

// Chapters lists the chapter names found in the novel's Markdown directory,
// sorted by the numeric value of the chapter number, never lexicographically.
func (l *Library) Chapters(novelName string) ([]string, error) {
	dir, err := l.novelDir(novelName)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(dir, "Markdown"))
	if err != nil {
		return nil, err
	}

	type chapter struct {
		name   string
		number int
	}

	var chapters []chapter
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		match := chapterPattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		number, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		chapters = append(chapters, chapter{
			name:   fmt.Sprintf("Chapter %d", number),
			number: number,
		})
	}

	sort.Slice(chapters, func(i, j int) bool {
		return chapters[i].number < chapters[j].number
	})

	names := make([]string, len(chapters))
	for i, ch := range chapters {
		names[i] = ch.name
	}
	return names, nil
}

// Chapter returns the markdown text of a single chapter.
func (l *Library) Chapter(novelName string, chapterNumber int) (string, error) {
	dir, err := l.novelDir(novelName)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s Chapter %d.md", novelName, chapterNumber)
	content, err := os.ReadFile(filepath.Join(dir, "Markdown", filename))
	if err != nil {
		return "", err
	}
	return string(content), nil
}
