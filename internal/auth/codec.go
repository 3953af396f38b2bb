package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/todo-auth/internal/model"
)

// Claims is the self-contained payload of an access token. Subject carries
// the user id as a decimal string (JWT "sub" is a string claim); UserID
// converts it back.
type Claims struct {
	Name        string             `json:"name"`
	Permissions []model.Permission `json:"permissions"`
	jwt.RegisteredClaims
}

// UserID returns the numeric user id stored in the subject claim.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// HasPermission reports whether the token grants p.
func (c *Claims) HasPermission(p model.Permission) bool {
	return model.HasPermission(c.Permissions, p)
}

// Codec signs and verifies access tokens. Signing and verification keys are
// configured separately so a verifying-only deployment never holds the
// signing secret. All fields are fixed at construction; a Codec is safe for
// concurrent use.
type Codec struct {
	method     jwt.SigningMethod
	signKey    any
	verifyKey  any
	acceptAlgs []string
	accessTTL  time.Duration
	now        func() time.Time
}

// NewCodec builds a Codec for the given signing algorithm. encodeKey may be
// empty for a verifying-only codec, in which case Encode fails. acceptAlgs
// lists the algorithms admitted during verification and defaults to the
// signing algorithm. Keys are raw secrets for HMAC algorithms and PEM blocks
// for RSA/ECDSA/EdDSA.
func NewCodec(algorithm string, encodeKey, decodeKey []byte, acceptAlgs []string, accessTTL time.Duration) (*Codec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if len(acceptAlgs) == 0 {
		acceptAlgs = []string{algorithm}
	}

	c := &Codec{
		method:     method,
		acceptAlgs: acceptAlgs,
		accessTTL:  accessTTL,
		now:        time.Now,
	}

	if len(encodeKey) > 0 {
		key, err := parsePrivateKey(method, encodeKey)
		if err != nil {
			return nil, fmt.Errorf("encode key: %w", err)
		}
		c.signKey = key
	}
	if len(decodeKey) == 0 {
		return nil, errors.New("decode key is required")
	}
	key, err := parsePublicKey(method, decodeKey)
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}
	c.verifyKey = key
	return c, nil
}

func parsePrivateKey(method jwt.SigningMethod, raw []byte) (any, error) {
	switch method.(type) {
	case *jwt.SigningMethodHMAC:
		return raw, nil
	case *jwt.SigningMethodRSA, *jwt.SigningMethodRSAPSS:
		return jwt.ParseRSAPrivateKeyFromPEM(raw)
	case *jwt.SigningMethodECDSA:
		return jwt.ParseECPrivateKeyFromPEM(raw)
	case *jwt.SigningMethodEd25519:
		return jwt.ParseEdPrivateKeyFromPEM(raw)
	default:
		return nil, fmt.Errorf("unsupported signing method %s", method.Alg())
	}
}

func parsePublicKey(method jwt.SigningMethod, raw []byte) (any, error) {
	switch method.(type) {
	case *jwt.SigningMethodHMAC:
		return raw, nil
	case *jwt.SigningMethodRSA, *jwt.SigningMethodRSAPSS:
		return jwt.ParseRSAPublicKeyFromPEM(raw)
	case *jwt.SigningMethodECDSA:
		return jwt.ParseECPublicKeyFromPEM(raw)
	case *jwt.SigningMethodEd25519:
		return jwt.ParseEdPublicKeyFromPEM(raw)
	default:
		return nil, fmt.Errorf("unsupported signing method %s", method.Alg())
	}
}

// Encode signs a claims bundle for the user with iat=now and exp=now+TTL.
func (c *Codec) Encode(user *model.User, now time.Time) (string, error) {
	if c.signKey == nil {
		return "", errors.New("codec has no encode key configured")
	}
	claims := &Claims{
		Name:        user.Name,
		Permissions: user.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
		},
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.signKey)
}

// Decode verifies the token's signature against the decode key and the
// accepted algorithms, then checks expiry. It returns ErrTokenExpired when
// only the expiry check failed and ErrInvalidToken for everything else.
func (c *Codec) Decode(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return c.verifyKey, nil },
		jwt.WithValidMethods(c.acceptAlgs),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
