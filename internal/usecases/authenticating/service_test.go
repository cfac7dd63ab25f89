package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/mmm-engine-api/infrastructure/repository/mocks"
	"github.com/vfg2006/mmm-engine-api/internal/config"
	"github.com/vfg2006/mmm-engine-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthenticator(ctrl *gomock.Controller) (Authenticator, *mocks.MockUserRepository) {
	mockRepo := mocks.NewMockUserRepository(ctrl)
	cfg := &config.Config{Auth: config.Auth{Secret: "segredo-de-teste"}}
	return NewService(mockRepo, cfg), mockRepo
}

func hashPassword(t *testing.T, password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name     string
		user     *domain.User
		setup    func(mockRepo *mocks.MockUserRepository)
		wantErr  error
		validate func(t *testing.T, created *domain.User)
	}{
		{
			name:    "Dados obrigatórios ausentes",
			user:    &domain.User{Email: "ana@empresa.com", Name: "Ana"},
			wantErr: ErrMissingRequiredData,
		},
		{
			name: "Email já cadastrado",
			user: &domain.User{
				Email:        "ana@empresa.com",
				Name:         "Ana",
				Lastname:     "Souza",
				PasswordHash: "senha-forte",
			},
			setup: func(mockRepo *mocks.MockUserRepository) {
				mockRepo.EXPECT().GetUserByEmail("ana@empresa.com").Return(&domain.User{ID: 7}, nil)
			},
			wantErr: ErrUserAlreadyExists,
		},
		{
			name: "Usuário novo criado inativo, com perfil de visualização e email normalizado",
			user: &domain.User{
				Email:        "  Ana@Empresa.com ",
				Name:         "Ana",
				Lastname:     "Souza",
				PasswordHash: "senha-forte",
			},
			setup: func(mockRepo *mocks.MockUserRepository) {
				mockRepo.EXPECT().GetUserByEmail("ana@empresa.com").Return(nil, nil)
				mockRepo.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(u *domain.User) (*domain.User, error) {
					u.ID = 42
					return u, nil
				})
			},
			validate: func(t *testing.T, created *domain.User) {
				assert.Equal(t, 42, created.ID)
				assert.Equal(t, "ana@empresa.com", created.Email)
				assert.Equal(t, 3, created.RoleID)
				assert.False(t, created.Active)

				// A senha nunca é armazenada em claro
				assert.NotEqual(t, "senha-forte", created.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword(
					[]byte(created.PasswordHash), []byte("senha-forte"),
				))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, mockRepo := newAuthenticator(ctrl)
			if tt.setup != nil {
				tt.setup(mockRepo)
			}

			created, err := service.CreateUser(tt.user)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.validate(t, created)
		})
	}
}

func TestLoginUser(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		setup    func(t *testing.T, mockRepo *mocks.MockUserRepository)
		wantErr  error
	}{
		{
			name:    "Email e senha obrigatórios",
			email:   "",
			wantErr: ErrMissingRequiredData,
		},
		{
			name:     "Usuário não encontrado",
			email:    "ana@empresa.com",
			password: "senha-forte",
			setup: func(t *testing.T, mockRepo *mocks.MockUserRepository) {
				mockRepo.EXPECT().GetUserByEmail("ana@empresa.com").Return(nil, nil)
			},
			wantErr: ErrUserNotFound,
		},
		{
			name:     "Conta desativada",
			email:    "ana@empresa.com",
			password: "senha-forte",
			setup: func(t *testing.T, mockRepo *mocks.MockUserRepository) {
				mockRepo.EXPECT().GetUserByEmail("ana@empresa.com").Return(&domain.User{
					ID:           7,
					Email:        "ana@empresa.com",
					Active:       false,
					PasswordHash: hashPassword(t, "senha-forte"),
				}, nil)
			},
			wantErr: ErrUserDisabled,
		},
		{
			name:     "Senha incorreta",
			email:    "ana@empresa.com",
			password: "senha-errada",
			setup: func(t *testing.T, mockRepo *mocks.MockUserRepository) {
				mockRepo.EXPECT().GetUserByEmail("ana@empresa.com").Return(&domain.User{
					ID:           7,
					Email:        "ana@empresa.com",
					Active:       true,
					PasswordHash: hashPassword(t, "senha-forte"),
				}, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "Login válido gera token",
			email:    " Ana@Empresa.com ",
			password: "senha-forte",
			setup: func(t *testing.T, mockRepo *mocks.MockUserRepository) {
				mockRepo.EXPECT().GetUserByEmail("ana@empresa.com").Return(&domain.User{
					ID:           7,
					Name:         "Ana",
					Email:        "ana@empresa.com",
					Active:       true,
					RoleID:       2,
					PasswordHash: hashPassword(t, "senha-forte"),
				}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, mockRepo := newAuthenticator(ctrl)
			if tt.setup != nil {
				tt.setup(t, mockRepo)
			}

			token, err := service.LoginUser(tt.email, tt.password)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, token)

			// O token emitido deve ser aceito pelo próprio serviço
			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, 7, claims.UserID)
			assert.Equal(t, 2, claims.UserRoleID)
			assert.True(t, claims.UserActive)
		})
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	issuer := NewService(mockRepo, &config.Config{Auth: config.Auth{Secret: "segredo-a"}})
	verifier := NewService(mockRepo, &config.Config{Auth: config.Auth{Secret: "segredo-b"}})

	mockRepo.EXPECT().GetUserByEmail("ana@empresa.com").Return(&domain.User{
		ID:           7,
		Email:        "ana@empresa.com",
		Active:       true,
		PasswordHash: hashPassword(t, "senha-forte"),
	}, nil)

	token, err := issuer.LoginUser("ana@empresa.com", "senha-forte")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}

func TestGetUserProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockRepo := newAuthenticator(ctrl)

	mockRepo.EXPECT().GetUserByID(7).Return(&domain.User{
		ID:           7,
		Name:         "Ana",
		Email:        "ana@empresa.com",
		PasswordHash: "hash-sensível",
	}, nil)

	user, err := service.GetUserProfile(7)
	require.NoError(t, err)

	// O hash nunca sai do serviço
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, "Ana", user.Name)
}

func TestGetUserProfileNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockRepo := newAuthenticator(ctrl)

	mockRepo.EXPECT().GetUserByID(99).Return(nil, nil)

	_, err := service.GetUserProfile(99)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIsCredentialsError(t *testing.T) {
	assert.True(t, IsCredentialsError(NewAuthError(ErrInvalidCredentials, "", "")))
	assert.True(t, IsCredentialsError(NewAuthError(ErrUserDisabled, "", "")))
	assert.False(t, IsCredentialsError(NewAuthError(ErrUserNotFound, "", "")))
}
