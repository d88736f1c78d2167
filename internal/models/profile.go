package models

// Profile represents the signed-in user as returned by auth/profile
type Profile struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth"`
	IsStaff     bool   `json:"is_staff"`
}

// Credentials is the login payload
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Registration is the sign-up payload
type Registration struct {
	Username        string  `json:"username" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required"`
	PasswordConfirm string  `json:"password_confirm" validate:"required,eqfield=Password"`
	FirstName       string  `json:"first_name,omitempty"`
	LastName        string  `json:"last_name,omitempty"`
	Phone           string  `json:"phone,omitempty" validate:"omitempty,max=15"`
	Address         string  `json:"address,omitempty"`
	DateOfBirth     *string `json:"date_of_birth"`
}

// AuthResult is the backend response to register and login
type AuthResult struct {
	User    Profile `json:"user"`
	Token   string  `json:"token"`
	IsAdmin bool    `json:"is_admin"`
}
