package usecase

import (
	"context"
	"time"

	"main/dto"
	"main/model"
	"main/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentStore is the document-store surface the comment service needs.
type CommentStore interface {
	CreateComment(ctx context.Context, comment *model.Comment) (string, error)
	FindComment(ctx context.Context, commentID string) (*model.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
	ListComments(ctx context.Context, novelID string, chapterNum int) ([]*model.Comment, error)
}

type CommentsService struct {
	CommentsRepo CommentStore
	Sanitizer    services.Sanitizer
}

// Create stores a sanitized comment with a server-assigned timestamp. The
// caller has already verified that identity matches req.Username.
func (s *CommentsService) Create(ctx context.Context, req *dto.CreateCommentRequest) (*model.Comment, error) {
	chapterNum := -1
	if req.ChapterNum != nil {
		chapterNum = *req.ChapterNum
	}

	comment := &model.Comment{
		Username:   req.Username,
		Comment:    s.Sanitizer.Sanitize(req.Comment),
		NovelID:    req.NovelID,
		ChapterNum: chapterNum,
		CreatedAt:  time.Now(),
	}

	id, err := s.CommentsRepo.CreateComment(ctx, comment)
	if err != nil {
		return nil, err
	}
	if id != "" {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			comment.ID = oid
		}
	}
	return comment, nil
}

// Delete removes a comment after checking that the requester wrote it.
// Unknown ids are ErrNotFound; someone else's comments are ErrNotOwner.
func (s *CommentsService) Delete(ctx context.Context, commentID, requester string) error {
	comment, err := s.CommentsRepo.FindComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrNotFound
	}
	if comment.Username != requester {
		return ErrNotOwner
	}
	return s.CommentsRepo.DeleteComment(ctx, commentID)
}

// List returns every comment for the novel/chapter pair, unpaginated.
func (s *CommentsService) List(ctx context.Context, novelID string, chapterNum int) ([]*model.Comment, error) {
	return s.CommentsRepo.ListComments(ctx, novelID, chapterNum)
}
