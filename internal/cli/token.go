package cli

import (
	"fmt"
	"time"

	"habit-analytics/pkg/jwt"

	"github.com/google/uuid"
)

// TokenCmd mints an access token for local testing of the API
type TokenCmd struct {
	UserID string        `arg:"" help:"User UUID the token is issued for."`
	TTL    time.Duration `help:"Override the configured token lifetime."`
}

func (c *TokenCmd) Run(ctx *Context) error {
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", c.UserID, err)
	}

	cfg, _, err := ctx.load()
	if err != nil {
		return err
	}

	ttl := cfg.JWT.AccessTokenTTL
	if c.TTL > 0 {
		ttl = c.TTL
	}

	tokens := jwt.NewTokenManager(cfg.JWT.Secret, ttl, cfg.JWT.Issuer)
	token, expiresAt, err := tokens.GenerateAccessToken(userID, uuid.New())
	if err != nil {
		return err
	}

	fmt.Println(token)
	fmt.Printf("expires at %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
