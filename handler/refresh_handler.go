package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func RefreshTokenHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "refresh")
		utils.Unauthorized(c, "Token is invalid or expired.")
		return
	}

	accessToken, err := userService.Refresh(req.RefreshToken)
	if err != nil {
		utils.TrackAuthAttempt("failure", "refresh")
		utils.Unauthorized(c, "Token is invalid or expired.")
		return
	}

	utils.TrackAuthAttempt("success", "refresh")
	utils.Success(c, dto.AccessTokenResponse{AccessToken: accessToken})
}
