package handler

import (
	"errors"
	"net/http"
	"strconv"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// CreateCommentHandler stores a comment. AuthMiddleware has already verified
// the token; the claimed username must still match the payload.
func CreateCommentHandler(c *gin.Context, commentsService *usecase.CommentsService) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	if c.GetString("username") != req.Username {
		utils.Unauthorized(c, "Access token does not belong to this user")
		return
	}

	comment, err := commentsService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.TrackError("comments", "creation_failed")
		utils.InternalError(c, "Failed to create comment")
		return
	}

	utils.Success(c, gin.H{
		"message": "Successfully created comment",
		"comment": comment,
	})
}

// DeleteCommentHandler removes a comment owned by the requester.
func DeleteCommentHandler(c *gin.Context, commentsService *usecase.CommentsService) {
	commentID := c.Param("commentId")

	err := commentsService.Delete(c.Request.Context(), commentID, c.GetString("username"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			utils.NotFound(c, "Comment does not exist.")
		case errors.Is(err, usecase.ErrNotOwner):
			utils.Unauthorized(c, "Comment was not created by this user")
		default:
			utils.TrackError("comments", "delete_failed")
			utils.InternalError(c, "Failed to delete comment")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ListCommentsHandler returns every comment for a novel/chapter pair.
func ListCommentsHandler(c *gin.Context, commentsService *usecase.CommentsService) {
	novelID := c.Query("novelId")
	if novelID == "" {
		utils.BadRequest(c, "novelId is required")
		return
	}

	// Chapter-less comment threads live under chapter -1.
	chapterNum := -1
	if raw := c.Query("chapterNum"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.BadRequest(c, "chapterNum must be a number")
			return
		}
		chapterNum = parsed
	}

	comments, err := commentsService.List(c.Request.Context(), novelID, chapterNum)
	if err != nil {
		utils.TrackError("comments", "list_failed")
		utils.InternalError(c, "Failed to retrieve comments")
		return
	}

	c.JSON(http.StatusOK, dto.CommentListResponse{Comments: comments})
}
