package usecase

import (
	"context"
	"errors"
	"io/fs"
	"log"

	"main/dto"
	"main/model"
	"main/services"

	"go.mongodb.org/mongo-driver/bson"
)

// NovelStore is the document-store surface the catalog needs.
type NovelStore interface {
	Search(ctx context.Context, filter bson.M, titleQuery string, skip, limit int) ([]*model.Novel, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	FindBestMatch(ctx context.Context, name string) (*model.Novel, error)
	Random(ctx context.Context) (*model.Novel, error)
}

// NovelLibrary is the file-tree surface the catalog needs.
type NovelLibrary interface {
	Cover(novelName string) ([]byte, error)
	Chapters(novelName string) ([]string, error)
	Chapter(novelName string, chapterNumber int) (string, error)
}

type NovelsService struct {
	Store   NovelStore
	Library NovelLibrary
	Cache   *services.CatalogCache // nil disables caching
}

// Search runs the full filter + ranking pipeline and reports pagination
// totals. Empty result sets are a success, not an error.
func (s *NovelsService) Search(ctx context.Context, opts SearchOptions) (*dto.SearchResponse, error) {
	filter := opts.BuildFilter()

	results, err := s.Store.Search(ctx, filter, opts.TitleQuery, opts.Skip(), opts.PageSize)
	if err != nil {
		return nil, err
	}

	totalCount, err := s.Store.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.SearchResponse{
		Results:     results,
		TotalCount:  totalCount,
		CurrentPage: opts.Page,
		TotalPages:  opts.TotalPages(totalCount),
	}, nil
}

// FindByName returns the best title match, or nil when nothing matches.
func (s *NovelsService) FindByName(ctx context.Context, name string) (*model.Novel, error) {
	if cached, err := s.Cache.GetNovel(ctx, name); err != nil {
		log.Printf("novel cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	novel, err := s.Store.FindBestMatch(ctx, name)
	if err != nil {
		return nil, err
	}

	if novel != nil {
		if err := s.Cache.SetNovel(ctx, name, novel); err != nil {
			log.Printf("novel cache write failed: %v", err)
		}
	}
	return novel, nil
}

// Random samples one novel uniformly from the whole collection.
func (s *NovelsService) Random(ctx context.Context) (*model.Novel, error) {
	novel, err := s.Store.Random(ctx)
	if err != nil {
		return nil, err
	}
	if novel == nil {
		return nil, ErrNoNovels
	}
	return novel, nil
}

// Cover returns the cover image bytes for a novel.
func (s *NovelsService) Cover(novelName string) ([]byte, error) {
	content, err := s.Library.Cover(novelName)
	if err != nil {
		return nil, mapFileError(err)
	}
	return content, nil
}

// ChapterList enumerates chapters in ascending numeric order.
func (s *NovelsService) ChapterList(novelName string) ([]string, error) {
	chapters, err := s.Library.Chapters(novelName)
	if err != nil {
		return nil, mapFileError(err)
	}
	return chapters, nil
}

// ChapterContent returns the text of one chapter.
func (s *NovelsService) ChapterContent(ctx context.Context, novelName string, chapterNumber int) (string, error) {
	if cached, err := s.Cache.GetChapter(ctx, novelName, chapterNumber); err != nil {
		log.Printf("chapter cache read failed: %v", err)
	} else if cached != "" {
		return cached, nil
	}

	content, err := s.Library.Chapter(novelName, chapterNumber)
	if err != nil {
		return "", mapFileError(err)
	}

	if err := s.Cache.SetChapter(ctx, novelName, chapterNumber, content); err != nil {
		log.Printf("chapter cache write failed: %v", err)
	}
	return content, nil
}

// mapFileError collapses every missing-file condition to ErrNotFound so the
// handlers never turn a bad novel name into a 500.
func mapFileError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return err
}
