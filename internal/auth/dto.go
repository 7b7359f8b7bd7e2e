package auth

import (
	"strings"

	"github.com/frahmantamala/employee-management/internal/core/common/validation"
)

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

// RegisterDTO is the body of POST /auth/register.
type RegisterDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginDTO is the body of POST /auth/login. UsernameOrEmail accepts either.
type LoginDTO struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

func (d *RegisterDTO) Normalize() {
	d.Username = strings.TrimSpace(d.Username)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
}

func (d RegisterDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MinLength(3).MaxLength(50)
	v.Field("email", d.Email).Required().MaxLength(255).Email()
	v.Field("password", d.Password).Required().MaxBytes(maxPasswordBytes)
	return v.Err()
}

func (d *LoginDTO) Normalize() {
	d.UsernameOrEmail = strings.TrimSpace(d.UsernameOrEmail)
	// usernames keep their case, emails are stored lower-cased
	if strings.Contains(d.UsernameOrEmail, "@") {
		d.UsernameOrEmail = strings.ToLower(d.UsernameOrEmail)
	}
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("usernameOrEmail", d.UsernameOrEmail).Required()
	v.Field("password", d.Password).Required()
	return v.Err()
}
