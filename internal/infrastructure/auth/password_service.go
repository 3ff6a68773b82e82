package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/superhecht1/praxida/domain"
)

// dummyHash is a bcrypt hash of a random throwaway value. Comparing against
// it costs the same as a real comparison, which keeps the timing of "unknown
// email" and "locked out" identical to "wrong password".
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// PasswordServiceImpl implements domain.PasswordService using bcrypt.
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a password service with the given bcrypt cost.
// Costs outside bcrypt's valid range fall back to the library default.
func NewPasswordService(cost int) domain.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordServiceImpl{cost: cost}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// DummyVerify implements domain.PasswordService
func (p *PasswordServiceImpl) DummyVerify() {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte("praxida"))
}
