package entity

type UserRole string

const (
	RoleStudent     UserRole = "student"
	RoleCoach       UserRole = "coach"
	RoleStaff       UserRole = "staff"
	RoleAdmin       UserRole = "admin"
	RoleMaintenance UserRole = "maintenance"
)

type User struct {
	Base
	Name           string   `db:"name"`
	Email          string   `db:"email"`
	PasswordHash   string   `db:"password"`
	Role           UserRole `db:"role"`
	QRCode         string   `db:"qr_code"` // unique uppercase check-in code
	ProfilePicture *string  `db:"profile_picture"`
	Specialization *string  `db:"specialization"` // coach only
	Schedule       *string  `db:"schedule"`       // coach only
	IsActive       bool     `db:"is_active"`
}
