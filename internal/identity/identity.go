package identity

import (
	"errors"

	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNoIdentity = errors.New("no authenticated identity in context")

// Identity is the authenticated caller decoded from the request's JWT.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Role     string
}

// Current extracts the caller identity from the JWT the auth middleware
// stored in fiber locals.
func Current(c *fiber.Ctx) (*Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoIdentity
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.New("missing or invalid sub claim")
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return &Identity{UserID: userID, Username: username, Role: role}, nil
}

// IsAdmin reports whether the caller holds admin or sysadmin privileges.
func (id *Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin || id.Role == models.RoleSysadmin
}

// IsSysadmin reports whether the caller is a system administrator.
func (id *Identity) IsSysadmin() bool {
	return id.Role == models.RoleSysadmin
}
