package dto

import "main/model"

// SearchResponse is the paginated search payload shared by the listing and
// query endpoints.
type SearchResponse struct {
	Results     []*model.Novel `json:"results"`
	TotalCount  int64          `json:"totalCount"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
}

type ChapterListResponse struct {
	Chapters []string `json:"chapters"`
}

type ChapterContentResponse struct {
	Content string `json:"content"`
}
