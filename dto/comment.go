package dto

import "main/model"

type CreateCommentRequest struct {
	Username string `json:"username" binding:"required"`
	Comment  string `json:"comment" binding:"required"`
	NovelID  string `json:"novelId" binding:"required"`

	// Omitted means a chapter-less thread, stored under chapter -1.
	ChapterNum *int `json:"chapterNum"`
}

type CommentListResponse struct {
	Comments []*model.Comment `json:"comments"`
}
