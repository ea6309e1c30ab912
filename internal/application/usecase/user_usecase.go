package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-hotel-api/internal/application/dto"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create crea un usuario: hashea password con bcrypt y persiste. Rol por defecto: staff.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleStaff
	}
	if role != entity.RoleAdmin && role != entity.RoleStaff {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// GetByUsername obtiene un usuario por username; nil si no existe.
func (uc *UserUseCase) GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil || user == nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// AdminSeed resultado de EnsureAdmin.
type AdminSeed struct {
	User            *dto.UserResponse // nil si no existía y no había contraseña para crearlo
	Created         bool
	PasswordMatches bool // false: el administrador existente tiene otra contraseña
}

// EnsureAdmin crea el usuario administrador si no existe. Con un administrador ya creado
// solo informa si password coincide con el hash guardado; nunca lo sobrescribe.
func (uc *UserUseCase) EnsureAdmin(ctx context.Context, username, password string) (*AdminSeed, error) {
	existing, err := uc.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &AdminSeed{
			User:            entityToUserResponse(existing),
			PasswordMatches: password == "" || CheckPassword(existing.PasswordHash, password),
		}, nil
	}
	if password == "" {
		return &AdminSeed{}, nil
	}
	u, err := uc.Create(ctx, dto.CreateUserRequest{Username: username, Password: password, Role: entity.RoleAdmin})
	if err != nil {
		return nil, err
	}
	return &AdminSeed{User: u, Created: true, PasswordMatches: true}, nil
}

// CheckPassword compara la contraseña en texto con el hash guardado.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
