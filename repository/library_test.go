package repository

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func setupLibrary(t *testing.T) *Library {
	t.Helper()
	root := t.TempDir()

	novelDir := filepath.Join(root, "Sword Saga")
	markdown := filepath.Join(novelDir, "Markdown")
	if err := os.MkdirAll(markdown, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(novelDir, "Cover.png"), []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	chapters := map[string]string{
		"Sword Saga Chapter 2.md":  "second",
		"Sword Saga Chapter 10.md": "tenth",
		"Sword Saga Chapter 1.md":  "first",
		"notes.txt":                "ignored",
		"README.md":                "ignored too",
	}
	for name, content := range chapters {
		if err := os.WriteFile(filepath.Join(markdown, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return NewLibrary(root)
}

func TestLibraryChaptersSortNumerically(t *testing.T) {
	library := setupLibrary(t)

	chapters, err := library.Chapters("Sword Saga")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Chapter 1", "Chapter 2", "Chapter 10"}
	if !reflect.DeepEqual(chapters, want) {
		t.Errorf("chapters = %v, want numeric order %v", chapters, want)
	}
}

func TestLibraryChaptersMissingNovel(t *testing.T) {
	library := setupLibrary(t)

	_, err := library.Chapters("No Such Novel")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestLibraryChapterContent(t *testing.T) {
	library := setupLibrary(t)

	content, err := library.Chapter("Sword Saga", 10)
	if err != nil {
		t.Fatal(err)
	}
	if content != "tenth" {
		t.Errorf("content = %q, want %q", content, "tenth")
	}

	if _, err := library.Chapter("Sword Saga", 99); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing chapter err = %v, want fs.ErrNotExist", err)
	}
}

func TestLibraryCover(t *testing.T) {
	library := setupLibrary(t)

	cover, err := library.Cover("Sword Saga")
	if err != nil {
		t.Fatal(err)
	}
	if string(cover) != "png-bytes" {
		t.Errorf("cover = %q", cover)
	}

	if _, err := library.Cover("No Such Novel"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing cover err = %v, want fs.ErrNotExist", err)
	}
}

func TestLibraryRejectsPathTraversal(t *testing.T) {
	library := setupLibrary(t)

	names := []string{
		"../secret",
		"..",
		"a/b",
		"",
	}
	for _, name := range names {
		if _, err := library.Cover(name); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Cover(%q) err = %v, want fs.ErrNotExist", name, err)
		}
		if _, err := library.Chapters(name); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Chapters(%q) err = %v, want fs.ErrNotExist", name, err)
		}
	}
}
