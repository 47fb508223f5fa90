package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleCustomer = "customer"

	// RoleUserAlias sinónimo de customer aceptado en la entrada; nunca se persiste.
	RoleUserAlias = "user"
)

// NormalizeRole limpia role y traduce el alias "user" a customer.
func NormalizeRole(role string) string {
	r := strings.ToLower(strings.TrimSpace(role))
	if r == RoleUserAlias {
		return RoleCustomer
	}
	return r
}

// ValidRole indica si role es uno de los roles admitidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleCustomer:
		return true
	}
	return false
}

// User representa un usuario de la consola o un cliente de la tienda.
// CreatedAt es inmutable después de la creación.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) RecordID() string           { return u.ID }
func (u *User) RecordCreatedAt() time.Time { return u.CreatedAt }
func (u *User) AssignIdentity(id string, createdAt time.Time) {
	u.ID = id
	u.CreatedAt = createdAt
}

// UserPatch actualización parcial de User: solo se aplican los campos no nil.
type UserPatch struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
	Role  *string `json:"role"`
}

// Apply copia los campos presentes del patch sobre u.
func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
}

// Fields devuelve las columnas presentes en el patch, en orden estable.
func (p UserPatch) Fields() []Field {
	var f []Field
	if p.Email != nil {
		f = append(f, Field{Column: "email", Value: *p.Email})
	}
	if p.Name != nil {
		f = append(f, Field{Column: "name", Value: *p.Name})
	}
	if p.Role != nil {
		f = append(f, Field{Column: "role", Value: *p.Role})
	}
	return f
}
