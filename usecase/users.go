package usecase

import (
	"context"
	"time"

	"main/dto"
	"main/model"
	"main/services"
	"main/utils"
)

// UserStore is the document-store surface the account service needs.
type UserStore interface {
	AddUser(ctx context.Context, user *model.User) error
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
}

type UserService struct {
	UsersRepo UserStore
}

// Register validates uniqueness, hashes the password and stores the account.
// Field-shape validation happens at the binding layer before this runs.
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error) {
	existing, err := s.UsersRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	existing, err = s.UsersRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:    utils.GenerateUserID(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		CreatedAt: time.Now(),
	}

	if err := s.UsersRepo.AddUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues an access + refresh token pair.
// Unknown email and wrong password both return ErrInvalidCredentials so the
// response cannot reveal which one failed.
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.UsersRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !services.ComparePasswords(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := services.GenerateToken(user.UserID, user.Username)
	if err != nil {
		return nil, err
	}

	refreshToken, err := services.GenerateRefreshToken(user.UserID, user.Username)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{Token: token, RefreshToken: refreshToken}, nil
}

// Refresh verifies a refresh token and issues a new access token carrying
// the same identity claims.
func (s *UserService) Refresh(refreshToken string) (string, error) {
	claims, err := services.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	return services.GenerateToken(claims.UserID, claims.Username)
}
