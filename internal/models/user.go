package models

// Role is the sole authorization signal in the system.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// IsAdmin reports whether the role grants access to the admin surface.
func (r Role) IsAdmin() bool { return r == RoleAdmin || r == RoleSuperAdmin }

// UserModel is an account able to authenticate: plain users may comment,
// admins manage content, superadmins hold the most sensitive operations.
type UserModel struct {
	Base
	Email    string `json:"email"    gorm:"type:varchar(191);uniqueIndex;not null"`
	Username string `json:"username"`
	Role     Role   `json:"role"     gorm:"type:varchar(16);default:user;index"`
	Password string `json:"-"        gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }
