package models

// Role is the closed set of account roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// User represents the user model in the database
type User struct {
	Base
	Username string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email    string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string     `gorm:"not null" json:"-"`
	Role     Role       `gorm:"size:16;not null;default:user" json:"role"`
	IsActive bool       `gorm:"not null;default:true" json:"isActive"`
	Tasks    []Task     `gorm:"foreignKey:UserID" json:"tasks,omitempty"`
	Audits   []AuditLog `gorm:"foreignKey:UserID" json:"-"`
}
