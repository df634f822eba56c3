// Package authn resolves the calling actor from HS256 bearer tokens
//
// Issuing tokens belongs to an external identity provider; Sign exists for
// local tooling and tests.
package authn

import (
	"errors"
	"fmt"
	"time"

	"recordkeeper/internal/core/actor"
	"recordkeeper/internal/platform/config"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the token claims recordkeeper understands
// sub carries the user id
type Claims struct {
	gojwt.RegisteredClaims
	Role         string `json:"role"`
	DepartmentID string `json:"department_id,omitempty"`
}

// Options configure token verification
type Options struct {
	Secret string
	Issuer string
	Leeway time.Duration
}

// FromConfig reads JWT_* values under the api prefix
func FromConfig(cfg config.Conf) Options {
	return Options{
		Secret: cfg.MayString("JWT_SECRET", ""),
		Issuer: cfg.MayString("JWT_ISSUER", "recordkeeper"),
		Leeway: cfg.MayDuration("JWT_LEEWAY", 30*time.Second),
	}
}

// Tokens verifies and signs actor tokens
type Tokens struct {
	secret []byte
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// New builds a token service; an empty secret is a startup error
func New(opt Options) (*Tokens, error) {
	if opt.Secret == "" {
		return nil, errors.New("authn: empty jwt secret")
	}
	return &Tokens{
		secret: []byte(opt.Secret),
		issuer: opt.Issuer,
		leeway: opt.Leeway,
		now:    time.Now,
	}, nil
}

// Parse verifies raw and maps its claims to an actor
// it matches httpkit.TokenFunc
func (t *Tokens) Parse(raw string) (actor.Actor, error) {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithLeeway(t.leeway),
		gojwt.WithTimeFunc(t.now),
	}
	if t.issuer != "" {
		opts = append(opts, gojwt.WithIssuer(t.issuer))
	}

	var c Claims
	if _, err := gojwt.ParseWithClaims(raw, &c, t.key, opts...); err != nil {
		return actor.Actor{}, fmt.Errorf("authn: %w", err)
	}
	return c.Actor()
}

// Sign issues a token for a valid for ttl
func (t *Tokens) Sign(a actor.Actor, ttl time.Duration) (string, error) {
	now := t.now()
	c := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   a.UserID.String(),
			Issuer:    t.issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
		},
		Role: string(a.Role),
	}
	if a.DepartmentID != uuid.Nil {
		c.DepartmentID = a.DepartmentID.String()
	}
	return gojwt.NewWithClaims(gojwt.SigningMethodHS256, c).SignedString(t.secret)
}

func (t *Tokens) key(tok *gojwt.Token) (any, error) {
	if _, ok := tok.Method.(*gojwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %s", tok.Method.Alg())
	}
	return t.secret, nil
}

// Actor maps verified claims to an actor and checks it is well formed
func (c Claims) Actor() (actor.Actor, error) {
	uid, err := uuid.Parse(c.Subject)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("authn: subject: %w", err)
	}
	a := actor.Actor{UserID: uid, Role: actor.Role(c.Role)}
	if c.DepartmentID != "" {
		if a.DepartmentID, err = uuid.Parse(c.DepartmentID); err != nil {
			return actor.Actor{}, fmt.Errorf("authn: department_id: %w", err)
		}
	}
	if err := a.Check(); err != nil {
		return actor.Actor{}, err
	}
	return a, nil
}
