package handler

import (
	"errors"
	"time"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func LoginHandler(c *gin.Context, userService *usecase.UserService) {
	start := time.Now()
	defer func() {
		utils.HTTPRequestDuration.WithLabelValues("POST", "/auth/login").Observe(time.Since(start).Seconds())
	}()

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "validation")
		utils.BadRequest(c, "Invalid request")
		return
	}

	tokens, err := userService.Login(c.Request.Context(), &req)
	if err != nil {
		// Unknown email and wrong password share one response body.
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			utils.TrackAuthAttempt("failure", "login")
			utils.Unauthorized(c, "Invalid email or password.")
			return
		}
		utils.TrackError("auth", "login_failed")
		utils.InternalError(c, "Internal server error")
		return
	}

	utils.TrackAuthAttempt("success", "login")
	utils.Success(c, tokens)
}
