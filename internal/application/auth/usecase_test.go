package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// fakeUserRepo repositorio de usuarios en memoria para tests.
type fakeUserRepo struct {
	users map[string]*entity.User // por ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func newTestUseCase() (*AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "tienda-api-test",
	})
	return uc, repo
}

func registerTestUser(t *testing.T, uc *AuthUseCase, role string) *dto.AuthResponse {
	t.Helper()
	out, err := uc.Register(dto.RegisterRequest{
		Username: "maria",
		Email:    "maria@tienda.com",
		Password: "secreto123",
		Role:     role,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_HasheaPasswordYDevuelveToken(t *testing.T) {
	uc, repo := newTestUseCase()
	out := registerTestUser(t, uc, "shopkeeper")

	assert.NotEmpty(t, out.Token, "el registro debe devolver un JWT")
	assert.Equal(t, "maria", out.User.Username)
	assert.Equal(t, "shopkeeper", out.User.Role)
	assert.Equal(t, entity.StatusActive, out.User.Status)

	// El hash persistido no es la contraseña en claro y verifica con bcrypt.
	stored := repo.users[out.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto123")))
}

func TestRegister_RolPorDefectoEsCustomer(t *testing.T) {
	uc, _ := newTestUseCase()
	out := registerTestUser(t, uc, "")
	assert.Equal(t, entity.RoleCustomer, out.User.Role)
}

func TestRegister_RolDesconocido_RetornaError(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.Register(dto.RegisterRequest{
		Username: "pedro",
		Email:    "pedro@tienda.com",
		Password: "secreto123",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_CamposRequeridos(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.Register(dto.RegisterRequest{Username: "solo-nombre"})
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestRegister_UsernameDuplicado_RetornaErrDuplicateUser(t *testing.T) {
	uc, _ := newTestUseCase()
	registerTestUser(t, uc, "")

	_, err := uc.Register(dto.RegisterRequest{
		Username: "maria",
		Email:    "otra@tienda.com",
		Password: "secreto123",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateUser)
}

func TestRegister_EmailDuplicado_RetornaErrDuplicateUser(t *testing.T) {
	uc, _ := newTestUseCase()
	registerTestUser(t, uc, "")

	_, err := uc.Register(dto.RegisterRequest{
		Username: "otra",
		Email:    "maria@tienda.com",
		Password: "secreto123",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateUser)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesCorrectas(t *testing.T) {
	uc, _ := newTestUseCase()
	registerTestUser(t, uc, "")

	out, err := uc.Login(dto.LoginRequest{Email: "maria@tienda.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "maria", out.User.Username)
}

// Usuario inexistente y contraseña incorrecta devuelven el mismo error para no
// permitir enumeración de cuentas.
func TestLogin_ErrorNormalizado(t *testing.T) {
	uc, _ := newTestUseCase()
	registerTestUser(t, uc, "")

	_, errNoExiste := uc.Login(dto.LoginRequest{Email: "nadie@tienda.com", Password: "loquesea1"})
	_, errPassMala := uc.Login(dto.LoginRequest{Email: "maria@tienda.com", Password: "incorrecta"})

	assert.ErrorIs(t, errNoExiste, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errPassMala, domain.ErrInvalidCredentials)
}

func TestLogin_CuentaInactiva_RetornaForbidden(t *testing.T) {
	uc, _ := newTestUseCase()
	out := registerTestUser(t, uc, "")
	require.NoError(t, uc.Deactivate(out.User.ID))

	_, err := uc.Login(dto.LoginRequest{Email: "maria@tienda.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Perfil y contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateProfile_PatchSoloCamposPresentes(t *testing.T) {
	uc, _ := newTestUseCase()
	out := registerTestUser(t, uc, "shopkeeper")

	nombre := "María"
	tienda := "La Esquina"
	updated, err := uc.UpdateProfile(out.User.ID, dto.UpdateProfileRequest{
		FirstName: &nombre,
		StoreName: &tienda,
	})
	require.NoError(t, err)

	assert.Equal(t, "María", updated.FirstName)
	assert.Equal(t, "La Esquina", updated.StoreName)
	// Los campos no enviados no cambian.
	assert.Equal(t, "maria@tienda.com", updated.Email)
}

func TestUpdateProfile_StoreNameSoloParaTenderos(t *testing.T) {
	uc, _ := newTestUseCase()
	out := registerTestUser(t, uc, "customer")

	tienda := "No Aplica"
	updated, err := uc.UpdateProfile(out.User.ID, dto.UpdateProfileRequest{StoreName: &tienda})
	require.NoError(t, err)
	assert.Empty(t, updated.StoreName, "un customer no tiene nombre de tienda")
}

func TestUpdateProfile_EmailEnUso_RetornaErrDuplicateUser(t *testing.T) {
	uc, _ := newTestUseCase()
	out := registerTestUser(t, uc, "")
	_, err := uc.Register(dto.RegisterRequest{
		Username: "pedro",
		Email:    "pedro@tienda.com",
		Password: "secreto123",
	})
	require.NoError(t, err)

	ocupado := "pedro@tienda.com"
	_, err = uc.UpdateProfile(out.User.ID, dto.UpdateProfileRequest{Email: &ocupado})
	assert.ErrorIs(t, err, domain.ErrDuplicateUser)
}

func TestChangePassword_VerificaActualYRehashea(t *testing.T) {
	uc, _ := newTestUseCase()
	out := registerTestUser(t, uc, "")

	// Contraseña actual incorrecta → InvalidCredentials.
	err := uc.ChangePassword(out.User.ID, dto.ChangePasswordRequest{
		CurrentPassword: "incorrecta",
		NewPassword:     "nueva-clave-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Cambio correcto: el login funciona con la nueva y falla con la vieja.
	require.NoError(t, uc.ChangePassword(out.User.ID, dto.ChangePasswordRequest{
		CurrentPassword: "secreto123",
		NewPassword:     "nueva-clave-1",
	}))
	_, err = uc.Login(dto.LoginRequest{Email: "maria@tienda.com", Password: "nueva-clave-1"})
	assert.NoError(t, err)
	_, err = uc.Login(dto.LoginRequest{Email: "maria@tienda.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestDeactivate_CambiaEstadoSinBorrar(t *testing.T) {
	uc, repo := newTestUseCase()
	out := registerTestUser(t, uc, "")

	require.NoError(t, uc.Deactivate(out.User.ID))

	stored := repo.users[out.User.ID]
	require.NotNil(t, stored, "la baja es lógica, el registro se conserva")
	assert.Equal(t, entity.StatusInactive, stored.Status)
}
