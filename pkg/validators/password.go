package validators

import "errors"

var (
	ErrPasswordEmpty   = errors.New("Missing password")
	ErrPasswordTooLong = errors.New("Password is too long")
)

// Argon2 happily hashes anything, the cap only keeps request bodies sane
const maxPasswordLength = 255

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len(p) > maxPasswordLength {
		return ErrPasswordTooLong
	}

	return nil
}
