package middleware

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-ledger-sync/internal/api/shared/errors"
	"github.com/feral-file/ff-ledger-sync/internal/logger"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	APIKeys []string
}

// AuthenticateAPIKey validates an "ApiKey <key>" Authorization header
func AuthenticateAPIKey(authHeader string, cfg AuthConfig) error {
	if authHeader == "" {
		return errors.New("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return errors.New("invalid Authorization header format")
	}

	if strings.ToLower(parts[0]) != "apikey" {
		return fmt.Errorf("unsupported authorization type: %s", parts[0])
	}

	return validateAPIKey(strings.TrimSpace(parts[1]), cfg.APIKeys)
}

// APIKeyAuth returns a gin middleware accepting only configured API keys
func APIKeyAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := AuthenticateAPIKey(c.GetHeader("Authorization"), cfg); err != nil {
			logger.Warn("Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierrors.NewUnauthorizedError("Authentication failed", err.Error()))
			return
		}

		c.Next()
	}
}

func validateAPIKey(apiKey string, validKeys []string) error {
	configured := false
	for _, key := range validKeys {
		if key == "" {
			continue
		}
		configured = true
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1 {
			return nil
		}
	}

	if !configured {
		return errors.New("no API keys configured")
	}
	return errors.New("invalid API key")
}
