package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios.
// Los Get* devuelven (nil, nil) cuando no hay fila; el caso de uso decide el error.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
}
