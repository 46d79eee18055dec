// Package auth implementa registro y login de usuarios con bcrypt y JWT.
package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmcastro/stockpilot-api/internal/application/dto"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
	"github.com/jmcastro/stockpilot-api/pkg/config"
	"github.com/jmcastro/stockpilot-api/pkg/jwt"
)

// UseCase casos de uso de autenticación.
type UseCase struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	jwtCfg    config.JWTConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(users repository.UserRepository, companies repository.CompanyRepository, jwtCfg config.JWTConfig) *UseCase {
	return &UseCase{users: users, companies: companies, jwtCfg: jwtCfg}
}

// Register crea una compañía nueva y su primer usuario (rol admin), y emite
// el token de sesión.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 || in.Name == "" || in.CompanyName == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.CompanyName,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companies.Create(company); err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	return uc.issue(user)
}

// Login valida credenciales y emite el token de sesión.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	return uc.issue(user)
}

func (uc *UseCase) issue(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.Expiration * 60,
		User: dto.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Role:      user.Role,
			CompanyID: user.CompanyID,
		},
	}, nil
}
