package handler

import (
	"errors"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func RegistrationHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "register")
		c.JSON(400, gin.H{"error": "validation failed", "fields": validationMessages(err)})
		return
	}

	user, err := userService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailTaken):
			utils.TrackAuthAttempt("failure", "register")
			utils.Conflict(c, "User already exists")
		case errors.Is(err, usecase.ErrUsernameTaken):
			utils.TrackAuthAttempt("failure", "register")
			utils.Conflict(c, "Username is taken")
		default:
			utils.TrackError("auth", "registration_failed")
			utils.InternalError(c, "Error registering user")
		}
		return
	}

	utils.TrackAuthAttempt("success", "register")

	// No sensitive data is echoed back.
	utils.Created(c, gin.H{
		"message":  "User registered successfully",
		"username": user.Username,
	})
}

// validationMessages turns binding failures into per-field messages.
func validationMessages(err error) map[string]string {
	fields := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["body"] = "invalid request body"
		return fields
	}

	for _, fe := range verrs {
		switch fe.Field() {
		case "Username":
			fields["username"] = "Username is required and must be a non-empty string"
		case "Email":
			fields["email"] = "Valid email is required"
		case "Password":
			fields["password"] = "Password must be at least 6 characters long"
		}
	}
	return fields
}
