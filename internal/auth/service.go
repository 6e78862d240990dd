package auth

import (
	"errors"
	"time"

	"admin-dashboard/internal"
	"admin-dashboard/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// Repository is the persistence boundary for administrator accounts.
// Create must perform its duplicate-email check atomically with the write.
type Repository interface {
	GetByEmail(email string) (*store.Admin, error)
	Create(admin *store.Admin) error
}

// Service performs administrator registration and authentication.
type Service struct {
	repo           Repository
	tokenGenerator TokenGenerator
	bcryptCost     int
}

func NewService(repo Repository, tokenGen TokenGenerator, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
	}
}

// Signup registers a new administrator. Only the admin role may register;
// the duplicate check happens inside the repository's critical section.
func (s *Service) Signup(dto SignupDTO) (*Admin, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.Role != RoleAdmin {
		return nil, internal.ErrRoleNotAllowed
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	record := &store.Admin{
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         dto.Role,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(record); err != nil {
		return nil, err
	}

	return fromRecord(record), nil
}

// Login verifies credentials and issues a token with subject and role
// claims. An unknown email reports not-found; a wrong password does not.
func (s *Service) Login(dto LoginDTO) (string, error) {
	if err := dto.Validate(); err != nil {
		return "", err
	}

	record, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(dto.Password)); err != nil {
		return "", internal.ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateToken(record.Email, record.Role)
	if err != nil {
		return "", internal.NewInternalError("failed to sign token", err)
	}

	return token, nil
}

// ValidateToken verifies a bearer token, translating token failures into
// the shared error taxonomy.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims, err := s.tokenGenerator.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}

// HashPassword creates a bcrypt hash of the password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func fromRecord(record *store.Admin) *Admin {
	return &Admin{
		ID:        record.ID,
		Email:     record.Email,
		Role:      record.Role,
		CreatedAt: record.CreatedAt,
	}
}
