package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/stefanv/moneta/internal/domain"
	"github.com/stefanv/moneta/internal/usecase"
	"github.com/stefanv/moneta/internal/usecase/mocks"
)

func newUserUseCase(ctrl *gomock.Controller) (*usecase.UserUseCase, *mocks.MockUserRepository) {
	userRepo := mocks.NewMockUserRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)
	idGen.EXPECT().Generate().Return("user-1").AnyTimes()

	return usecase.NewUserUseCase(userRepo, idGen, nil), userRepo
}

func TestUserUseCase_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, userRepo := newUserUseCase(ctrl)

	userRepo.EXPECT().GetByEmail(gomock.Any(), "new@example.com").Return(nil, domain.ErrUserNotFound)
	userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user *domain.User) error {
			if user.HashedPassword == "" || user.HashedPassword == "Password1" {
				t.Error("password must be stored hashed")
			}
			if !user.Active {
				t.Error("new users must be active")
			}
			return nil
		})

	user, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "new@example.com",
		Name:     "New User",
		Password: "Password1",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.HashedPassword != "" {
		t.Error("hashed password must not leak out of the use case")
	}
}

func TestUserUseCase_RegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"bad email", "not-an-email", "Password1", domain.ErrInvalidEmail},
		{"short password", "a@example.com", "Pw1", domain.ErrPasswordTooWeak},
		{"no uppercase", "a@example.com", "password1", domain.ErrPasswordTooWeak},
		{"no digit", "a@example.com", "Passwordx", domain.ErrPasswordTooWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc, _ := newUserUseCase(ctrl)

			_, err := uc.Register(context.Background(), usecase.RegisterInput{
				Email:    tt.email,
				Password: tt.password,
			})

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUserUseCase_RegisterDuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, userRepo := newUserUseCase(ctrl)

	userRepo.EXPECT().GetByEmail(gomock.Any(), "taken@example.com").Return(&domain.User{
		ID:    "existing",
		Email: "taken@example.com",
	}, nil)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "taken@example.com",
		Password: "Password1",
	})

	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserUseCase_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	stored := &domain.User{
		ID:             "user-1",
		Email:          "a@example.com",
		HashedPassword: string(hash),
		Active:         true,
	}

	t.Run("valid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, userRepo := newUserUseCase(ctrl)
		u := *stored
		userRepo.EXPECT().GetByEmail(gomock.Any(), "a@example.com").Return(&u, nil)

		user, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
			Email:    "a@example.com",
			Password: "Password1",
		})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.HashedPassword != "" {
			t.Error("hashed password must not leak out of the use case")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, userRepo := newUserUseCase(ctrl)
		u := *stored
		userRepo.EXPECT().GetByEmail(gomock.Any(), "a@example.com").Return(&u, nil)

		_, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
			Email:    "a@example.com",
			Password: "Wrong1Password",
		})

		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, userRepo := newUserUseCase(ctrl)
		userRepo.EXPECT().GetByEmail(gomock.Any(), "missing@example.com").Return(nil, domain.ErrUserNotFound)

		_, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
			Email:    "missing@example.com",
			Password: "Password1",
		})

		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("inactive account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, userRepo := newUserUseCase(ctrl)
		u := *stored
		u.Active = false
		userRepo.EXPECT().GetByEmail(gomock.Any(), "a@example.com").Return(&u, nil)

		_, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
			Email:    "a@example.com",
			Password: "Password1",
		})

		if err == nil {
			t.Error("expected error for inactive account")
		}
	})
}
