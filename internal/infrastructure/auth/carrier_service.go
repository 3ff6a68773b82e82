package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/superhecht1/praxida/domain"
)

// NewSessionID returns a 256-bit random hex session identifier.
func NewSessionID() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		// crypto/rand failing means the platform RNG is broken; issuing a
		// guessable session id is never acceptable.
		panic(err)
	}
	return hex.EncodeToString(bytes)
}

// CarrierServiceImpl implements domain.CarrierService. The transport token is
// an HS256 JWT whose only meaningful claim is the opaque session id; a forged
// or tampered token is rejected before any store lookup happens. Session
// state itself always lives in the store, never in the token.
type CarrierServiceImpl struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}

// NewCarrierService creates a carrier codec. The ttl should match the session
// TTL so the envelope never outlives the session it wraps by less than it.
func NewCarrierService(secretKey, issuer string, ttl time.Duration) domain.CarrierService {
	return &CarrierServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttl:       ttl,
	}
}

// Encode implements domain.CarrierService
func (c *CarrierServiceImpl) Encode(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iss": c.issuer,
		"iat": now.Unix(),
		"exp": now.Add(c.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secretKey)
}

// Decode implements domain.CarrierService
func (c *CarrierServiceImpl) Decode(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrSessionInvalid
		}
		return c.secretKey, nil
	}, jwt.WithIssuer(c.issuer))

	if err != nil || !token.Valid {
		return "", domain.ErrSessionInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrSessionInvalid
	}

	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return "", domain.ErrSessionInvalid
	}

	return sessionID, nil
}
