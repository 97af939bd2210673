package usecase

import (
	"context"
	"errors"
	"os"
	"testing"

	"main/dto"
	"main/model"
	"main/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()
	os.Exit(m.Run())
}

// fakeUserStore is an in-memory UserStore for tests.
type fakeUserStore struct {
	users  []*model.User
	addErr error
}

func (f *fakeUserStore) AddUser(ctx context.Context, user *model.User) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func registerAlice(t *testing.T, service *UserService) *model.User {
	t.Helper()
	user, err := service.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatal(err)
	}
	return user
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	store := &fakeUserStore{}
	service := &UserService{UsersRepo: store}

	user := registerAlice(t, service)

	if user.UserID == "" {
		t.Error("user has no generated ID")
	}
	if user.Password == "secret123" {
		t.Error("password stored in plain text")
	}
	if len(store.users) != 1 {
		t.Fatalf("store has %d users, want 1", len(store.users))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := &fakeUserStore{}
	service := &UserService{UsersRepo: store}
	registerAlice(t, service)

	_, err := service.Register(context.Background(), &dto.RegisterRequest{
		Username: "other",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := &fakeUserStore{}
	service := &UserService{UsersRepo: store}
	registerAlice(t, service)

	_, err := service.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	store := &fakeUserStore{}
	service := &UserService{UsersRepo: store}
	registerAlice(t, service)

	tokens, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatal(err)
	}
	if tokens.Token == "" || tokens.RefreshToken == "" {
		t.Errorf("tokens = %+v", tokens)
	}
	if tokens.Token == tokens.RefreshToken {
		t.Error("access and refresh tokens are identical")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	store := &fakeUserStore{}
	service := &UserService{UsersRepo: store}
	registerAlice(t, service)

	_, unknownErr := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	_, wrongErr := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "not-the-password",
	})

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Error("login failures leak which credential was wrong")
	}
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	store := &fakeUserStore{}
	service := &UserService{UsersRepo: store}
	registerAlice(t, service)

	tokens, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatal(err)
	}

	accessToken, err := service.Refresh(tokens.RefreshToken)
	if err != nil {
		t.Fatal(err)
	}
	if accessToken == "" {
		t.Error("empty access token from refresh")
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	store := &fakeUserStore{}
	service := &UserService{UsersRepo: store}
	registerAlice(t, service)

	tokens, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := service.Refresh(tokens.Token); err == nil {
		t.Error("access token accepted by refresh")
	}
}
