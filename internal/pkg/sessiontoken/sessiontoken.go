package sessiontoken

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service signs and verifies the opaque session identifier carried by the
// session cookie. The cookie value is an HS256 token holding only the session
// id; everything else about the session (tenant, role, tier, step-up
// verification) lives in the sessions table and is loaded per request, so a
// session can be revoked by deleting its row.
type Service interface {
	IssueToken(sessionID string, expiresAt time.Time) (string, error)
	DecodeSessionID(tokenString string) (string, error)
	JWTAuth() *jwtauth.JWTAuth
	SessionCookie(token string, expiresAt time.Time) *http.Cookie
	CSRFCookie(token string, expiresAt time.Time) *http.Cookie
	ExpiredSessionCookie() *http.Cookie
	CookieName() string
}

type tokenService struct {
	cookieName string
	secure     bool
	tokenAuth  *jwtauth.JWTAuth
}

func NewService(secret string, cookieName string, secure bool) Service {
	return &tokenService{
		cookieName: cookieName,
		secure:     secure,
		tokenAuth:  jwtauth.New("HS256", []byte(secret), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (s *tokenService) JWTAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

func (s *tokenService) CookieName() string {
	return s.cookieName
}

func (s *tokenService) IssueToken(sessionID string, expiresAt time.Time) (string, error) {
	_, tokenString, err := s.tokenAuth.Encode(map[string]interface{}{
		"sid":  sessionID,
		"type": "session",
		"exp":  expiresAt.Unix(),
	})
	return tokenString, err
}

func (s *tokenService) DecodeSessionID(tokenString string) (string, error) {
	token, err := s.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "session" {
		return "", jwt.ErrInvalidJWT()
	}

	sidVal, ok := token.Get("sid")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	sid, ok := sidVal.(string)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	return sid, nil
}

func (s *tokenService) SessionCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// CSRFCookie is readable by the frontend, which echoes the value back in the
// X-CSRF-Token header on mutating requests.
func (s *tokenService) CSRFCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName + "_csrf",
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: false,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *tokenService) ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewCSRFToken generates a random double-submit token.
func NewCSRFToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
