package entity

import "time"

// Roles válidos para User.
const (
	RoleCustomer   = "customer"
	RoleShopkeeper = "shopkeeper"
	RoleAdmin      = "admin"
)

// Estados de cuenta. La baja de cuenta es un cambio a inactive, nunca un DELETE físico.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User representa un usuario de la tienda (cliente, tendero o admin).
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // customer, shopkeeper, admin
	Status       string // active, inactive
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	StoreName    string // solo relevante para shopkeeper
	Bio          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
