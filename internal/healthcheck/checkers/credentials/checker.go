package credentialschecker

import (
	"context"
	"strings"

	"github.com/memohai/linehook/internal/healthcheck"
)

const checkTypeCredentials = "line.credentials"

// Checker reports whether the channel credentials are configured.
type Checker struct {
	accessToken     string
	channelSecret   string
	verifySignature bool
}

// NewChecker creates a credentials checker.
func NewChecker(accessToken, channelSecret string, verifySignature bool) *Checker {
	return &Checker{
		accessToken:     accessToken,
		channelSecret:   channelSecret,
		verifySignature: verifySignature,
	}
}

// ListChecks never exposes the credential values.
func (c *Checker) ListChecks(_ context.Context) []healthcheck.CheckResult {
	token := healthcheck.CheckResult{
		ID:      checkTypeCredentials + ".access_token",
		Type:    checkTypeCredentials,
		Status:  healthcheck.StatusOK,
		Summary: "Channel access token is configured.",
	}
	if strings.TrimSpace(c.accessToken) == "" {
		token.Status = healthcheck.StatusError
		token.Summary = "Channel access token is missing; replies will be rejected."
	}

	secret := healthcheck.CheckResult{
		ID:      checkTypeCredentials + ".channel_secret",
		Type:    checkTypeCredentials,
		Status:  healthcheck.StatusOK,
		Summary: "Channel secret is configured.",
	}
	switch {
	case !c.verifySignature:
		secret.Status = healthcheck.StatusWarn
		secret.Summary = "Signature verification is disabled."
	case strings.TrimSpace(c.channelSecret) == "":
		secret.Status = healthcheck.StatusError
		secret.Summary = "Channel secret is missing; every webhook will be rejected."
	}
	return []healthcheck.CheckResult{token, secret}
}
