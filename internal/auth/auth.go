package auth

import (
	apperrors "litreview_go_backend/internal/errors"
	"litreview_go_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userIDKey = "userID"

// CallerResolver resolves the identity of the caller for a request. The
// header-based implementation below is a stand-in; real authentication
// (tokens, sessions) replaces it behind this interface without touching
// handlers or services.
type CallerResolver interface {
	ResolveCaller(c *gin.Context) (uuid.UUID, error)
}

// HeaderCallerResolver reads the caller identity from the X-User-Id header
// and lazily creates the matching user record.
type HeaderCallerResolver struct {
	users services.UserService
}

func NewHeaderCallerResolver(users services.UserService) *HeaderCallerResolver {
	return &HeaderCallerResolver{users: users}
}

func (r *HeaderCallerResolver) ResolveCaller(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetHeader("X-User-Id")
	if raw == "" {
		return uuid.Nil, apperrors.New401Error("X-User-Id header required")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.New400Error("Invalid X-User-Id")
	}
	if _, err := r.users.EnsureUser(userID); err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

// AuthMiddleware resolves the caller and stores their id in the context.
func AuthMiddleware(resolver CallerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := resolver.ResolveCaller(c)
		if err != nil {
			apperrors.HandleError(c, err)
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CallerID returns the resolved caller id set by AuthMiddleware.
func CallerID(c *gin.Context) uuid.UUID {
	value, _ := c.Get(userIDKey)
	userID, _ := value.(uuid.UUID)
	return userID
}
