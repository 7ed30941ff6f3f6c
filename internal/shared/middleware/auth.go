package middleware

import (
	"strings"

	"event-manager/internal/shared/response"
	"event-manager/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const ContextKeyWallet = "wallet"

// WalletAuth requires a bearer token issued by the wallet sign in.
// With required=false it is a pass-through.
func WalletAuth(tokens *jwt.Manager, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !required {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.Unauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			log.Debug().Err(err).Msg("wallet token rejected")
			response.Unauthorized(c, "invalid token")
			return
		}

		c.Set(ContextKeyWallet, claims.Wallet)
		c.Next()
	}
}
