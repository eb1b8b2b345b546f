package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinivac/npwt-inventario/internal/application/auth"
	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/domain"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
)

// fakeUserRepo fake en memoria del puerto UserRepository.
type fakeUserRepo struct {
	users map[string]*entity.User // por email
	// failFindByEmail fuerza el fallo de FindByEmail.
	failFindByEmail error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	if _, ok := r.users[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	if r.failFindByEmail != nil {
		return nil, r.failFindByEmail
	}
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

var testJWT = auth.JWTConfig{Secret: "secreto-de-test", ExpMinutes: 60, Issuer: "npwt-inventario"}

var errSimulatedDB = errors.New("fallo simulado de base de datos")

func TestRegisterUser_Exitoso(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "enf@clinica.co", Password: "clave123",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleEnfermeria, out.Role, "sin rol explícito se asigna enfermería")
	assert.Equal(t, "active", out.Status)

	stored := repo.users["enf@clinica.co"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave123")),
		"la password se persiste hasheada con bcrypt")
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@clinica.co", Password: "clave123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "a@clinica.co", Password: "otra456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_FalloDeLecturaSePropaga(t *testing.T) {
	repo := newFakeUserRepo()
	repo.failFindByEmail = errSimulatedDB
	uc := auth.NewAuthUseCase(repo, testJWT)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@clinica.co", Password: "clave123"})
	assert.ErrorIs(t, err, errSimulatedDB,
		"un fallo al verificar el email no debe tratarse como email libre")
	assert.Empty(t, repo.users, "con la verificación caída no se crea el usuario")
}

func TestRegisterUser_RolInvalido(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "a@clinica.co", Password: "clave123", Role: "superusuario",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_Exitoso(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)
	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "adm@clinica.co", Password: "clave123", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "adm@clinica.co", Password: "clave123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@clinica.co", Password: "clave123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "a@clinica.co", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@clinica.co", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@clinica.co", Password: "clave123"})
	require.NoError(t, err)
	repo.users["a@clinica.co"].Status = "inactive"

	_, err = uc.Login(dto.LoginRequest{Email: "a@clinica.co", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
