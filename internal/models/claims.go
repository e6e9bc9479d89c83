package models

import "github.com/golang-jwt/jwt/v5"

// Application roles
const (
	RoleAdmin  = "admin"
	RoleDoctor = "doctor"
)

// Application permissions
const (
	PermissionWalletRead      = "wallet:read"
	PermissionWithdrawalRead  = "withdrawal:read"
	PermissionWithdrawalWrite = "withdrawal:write"
	PermissionReadAdmin       = "admin:read"
	PermissionWriteAdmin      = "admin:write"
)

// UserClaims are issued by the identity subsystem; this service only
// consumes them.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID      uint     `json:"user_id"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
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
	case RoleAdmin:
		return []string{
			PermissionWalletRead,
			PermissionWithdrawalRead,
			PermissionWithdrawalWrite,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case RoleDoctor:
		return []string{
			PermissionWalletRead,
			PermissionWithdrawalRead,
			PermissionWithdrawalWrite,
		}
	default:
		return []string{}
	}
}
