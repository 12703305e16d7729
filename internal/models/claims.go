package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	PermissionBalanceRead   = "balance:read"
	PermissionTransferRead  = "transfer:read"
	PermissionTransferWrite = "transfer:write"
	PermissionUserRead      = "user:read"

	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Username     string   `json:"username"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case "admin":
		return []string{
			PermissionBalanceRead,
			PermissionTransferRead,
			PermissionTransferWrite,
			PermissionUserRead,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case "user":
		return []string{
			PermissionBalanceRead,
			PermissionTransferRead,
			PermissionTransferWrite,
			PermissionUserRead,
		}
	default:
		return []string{}
	}
}
