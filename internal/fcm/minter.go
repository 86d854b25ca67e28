package fcm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"roompush/internal/config"
)

const (
	messagingScope = "https://www.googleapis.com/auth/firebase.messaging"
	tokenAudience  = "https://oauth2.googleapis.com/token"
	jwtBearerGrant = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	assertionTTL   = time.Hour
)

var ErrInvalidKey = errors.New("invalid service account private key")

// Minter exchanges a self-signed JWT assertion for a short-lived OAuth2
// access token. Tokens are minted fresh on every dispatch, never cached.
type Minter struct {
	rc       *resty.Client
	tokenURL string
	log      *zap.Logger
	now      func() time.Time
}

func NewMinter(cfg *config.Config, logger *zap.Logger) *Minter {
	return &Minter{
		rc:       resty.New().SetTimeout(cfg.SendTimeout),
		tokenURL: cfg.OAuthTokenURL,
		log:      logger,
		now:      time.Now,
	}
}

type assertionClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// SignAssertion builds the RS256-signed JWT-bearer assertion. RSASSA-PKCS1
// v1.5 is deterministic, so the full assertion is stable for a fixed clock.
func (m *Minter) SignAssertion(sa ServiceAccount) (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(sa.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	now := m.now()
	claims := assertionClaims{
		Scope: messagingScope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sa.ClientEmail,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(assertionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Mint signs the assertion and performs the token exchange. One network
// call, no retry: a failure here aborts the whole dispatch.
func (m *Minter) Mint(ctx context.Context, sa ServiceAccount) (string, error) {
	assertion, err := m.SignAssertion(sa)
	if err != nil {
		return "", err
	}

	var token tokenResponse
	resp, err := m.rc.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type": jwtBearerGrant,
			"assertion":  assertion,
		}).
		SetResult(&token).
		Post(m.tokenURL)
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("failed to obtain access token: %d %s", resp.StatusCode(), resp.String())
	}
	if token.AccessToken == "" {
		return "", errors.New("token exchange returned no access_token")
	}
	return token.AccessToken, nil
}
