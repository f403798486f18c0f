package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "rentalog/internal/errors"
	"rentalog/internal/models"
)

const (
	// SessionCookie is the name of the HttpOnly cookie carrying the session token.
	SessionCookie = "session"

	actorKey      = "actor"
	sessionIssuer = "rentalog-api"
)

// SessionClaims represents the claims in a session token.
type SessionClaims struct {
	UserID uint        `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies HS256 session tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessions returns a Sessions signing with secret. Tokens expire after ttl.
func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the lifetime of issued tokens.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// Issue generates a session token for user.
func (s *Sessions) Issue(user *models.User) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	claims := &SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Parse validates a session token and returns the actor it identifies.
func (s *Sessions) Parse(tokenString string) (*models.Actor, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithTimeFunc(s.now))

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if !claims.Role.Valid() || claims.UserID == 0 {
		return nil, fmt.Errorf("invalid session claims")
	}

	return &models.Actor{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

// RequireSession verifies the session token from the Authorization header or
// the session cookie and puts the actor into the context.
func (s *Sessions) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			tokenString, _ = c.Cookie(SessionCookie)
		}
		if tokenString == "" {
			abortWithError(c, apperrors.ErrUnauthorized)
			return
		}

		actor, err := s.Parse(tokenString)
		if err != nil {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid or expired session"))
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireAdminRole rejects actors outside the administrative tier. It must
// run after RequireSession.
func RequireAdminRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if actor == nil {
			abortWithError(c, apperrors.ErrUnauthorized)
			return
		}
		if !actor.IsAdmin() {
			abortWithError(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// ActorFrom returns the authenticated actor, or nil outside RequireSession.
func ActorFrom(c *gin.Context) *models.Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*models.Actor)
	return actor
}

// SetActor puts actor into the context. It is used by handler tests.
func SetActor(c *gin.Context, actor *models.Actor) {
	c.Set(actorKey, actor)
}

func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func abortWithError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
