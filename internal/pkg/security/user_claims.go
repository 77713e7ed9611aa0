package security

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims Token 中的业务信息，Roles 决定评论区的版主与匿名查看能力
type UserClaims struct {
	UserID uint64   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

func (c *UserClaims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}
