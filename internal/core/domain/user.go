package domain

import "time"

const (
	RolAdmin  = "admin"
	RolEditor = "editor"
)

// ValidRol reports whether rol belongs to the closed role set. Authorization
// checks must only ever compare against values accepted here.
func ValidRol(rol string) bool {
	switch rol {
	case RolAdmin, RolEditor:
		return true
	}
	return false
}

// User models an authenticated actor in the system.
type User struct {
	ID           string     `json:"id"`
	Nombre       string     `json:"nombre"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Rol          string     `json:"rol"`
	Activo       bool       `json:"activo"`
	UltimoAcceso *time.Time `json:"ultimoAcceso,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// PublicUser is the client-facing projection of an account. The password hash
// has no representation here at all.
type PublicUser struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Rol       string    `json:"rol"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the projection of the user safe to hand to clients.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Rol:       u.Rol,
		Activo:    u.Activo,
		CreatedAt: u.CreatedAt,
	}
}
