package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastro/stockpilot-api/internal/application/auth"
	"github.com/jmcastro/stockpilot-api/internal/application/dto"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/infrastructure/memory"
	"github.com/jmcastro/stockpilot-api/pkg/config"
	pkgjwt "github.com/jmcastro/stockpilot-api/pkg/jwt"
)

var testJWT = config.JWTConfig{
	Secret:     "test-secret-key-for-unit-tests",
	Expiration: 60,
	Issuer:     "stockpilot-test",
}

func newUseCase(store *memory.Store) *auth.UseCase {
	return auth.NewUseCase(memory.NewUserRepo(store), memory.NewCompanyRepo(store), testJWT)
}

func registerReq() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:       "Dueno@Ferreteria.co",
		Password:    "contrasena-larga",
		Name:        "Dueño",
		CompanyName: "Ferretería Central",
	}
}

func TestRegister_CreaCompaniaYAdmin(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)

	resp, err := uc.Register(registerReq())
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, 60*60, resp.ExpiresIn, "segundos")
	assert.Equal(t, "dueno@ferreteria.co", resp.User.Email, "email normalizado a minúsculas")
	assert.Equal(t, entity.RoleAdmin, resp.User.Role, "el primer usuario es admin")
	require.NotEmpty(t, resp.User.CompanyID)

	// el token lleva los claims del usuario
	userID, companyID, role, err := pkgjwt.Parse(testJWT.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
	assert.Equal(t, resp.User.CompanyID, companyID)
	assert.Equal(t, entity.RoleAdmin, role)

	company, err := memory.NewCompanyRepo(store).GetByID(resp.User.CompanyID)
	require.NoError(t, err)
	require.NotNil(t, company)
	assert.Equal(t, "active", company.Status)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)

	_, err := uc.Register(registerReq())
	require.NoError(t, err)

	in := registerReq()
	in.CompanyName = "Otra Empresa"
	_, err = uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Validaciones(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)

	corta := registerReq()
	corta.Password = "corta"
	_, err := uc.Register(corta)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sinEmail := registerReq()
	sinEmail.Email = "   "
	_, err = uc.Register(sinEmail)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CredencialesValidas(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	_, err := uc.Register(registerReq())
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "DUENO@ferreteria.co", Password: "contrasena-larga"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	_, err := uc.Register(registerReq())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "dueno@ferreteria.co", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@ferreteria.co", Password: "contrasena-larga"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
