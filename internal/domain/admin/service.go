package admin

import (
	"context"
	"errors"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type tokenIssuer interface {
	GenerateToken(adminID int64, username string) (string, error)
}

type Service struct {
	repo Repository
	jwt  tokenIssuer
}

func NewService(repo Repository, jwt tokenIssuer) *Service {
	return &Service{repo: repo, jwt: jwt}
}

// Login verifies the credentials and issues a bearer token carrying the
// admin id. Unknown username and wrong password are indistinguishable to
// the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*Admin, string, error) {
	admin, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}

// ChangePassword verifies the current password before replacing it.
func (s *Service) ChangePassword(ctx context.Context, adminID int64, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return ErrMissingPassword
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	admin, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin.PasswordHash = string(hash)

	return s.repo.Update(ctx, admin)
}

func (s *Service) GetByID(ctx context.Context, adminID int64) (*Admin, error) {
	admin, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

// EnsureDefaultAdmin creates the bootstrap account when the admins table
// is empty so a fresh deployment is reachable. Change the password right
// after first login.
func (s *Service) EnsureDefaultAdmin(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &Admin{Username: "admin", PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, admin); err != nil {
		return err
	}

	log.Println("Default admin user created: username='admin', password='admin123'. Change this password!")
	return nil
}
