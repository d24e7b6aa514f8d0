package cdek

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"logistic/internal/core/ports"
	"logistic/internal/pkg/errs"

	"golang.org/x/sync/singleflight"
)

const authPath = "/v2/oauth/token"

// TokenProvider owns the CDEK OAuth token lifecycle: it returns the cached
// non-expired token from the credential store, or performs one
// client-credentials exchange and writes the fresh token back.
//
// Concurrent callers hitting an expired token are collapsed into a single
// exchange via singleflight; a lost race against another process is
// harmless, the store just ends up holding one valid token.
type TokenProvider struct {
	baseURL    string
	httpClient *http.Client
	store      ports.CredentialStore
	group      singleflight.Group
	now        func() time.Time
}

// NewTokenProvider creates a token provider backed by the credential store.
func NewTokenProvider(baseURL string, httpClient *http.Client, store ports.CredentialStore) *TokenProvider {
	return &TokenProvider{
		baseURL:    baseURL,
		httpClient: httpClient,
		store:      store,
		now:        time.Now,
	}
}

// Name returns the carrier identifier the credentials are stored under.
func (p *TokenProvider) Name() string {
	return ServiceName
}

// Token returns a valid non-expired bearer token, refreshing it through the
// OAuth exchange when needed.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	v, err, _ := p.group.Do("token", func() (any, error) {
		return p.fetch(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (p *TokenProvider) fetch(ctx context.Context) (string, error) {
	cred, err := p.store.Get(ctx, ServiceName)
	if err != nil {
		return "", errs.NewCredentialErrorWithCause(ServiceName, err)
	}

	now := p.now()
	if cred.HasValidToken(now) {
		return cred.Token, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {cred.Login},
		"client_secret": {cred.Secret},
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, p.baseURL+authPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errs.NewCredentialErrorWithCause(ServiceName, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", errs.NewCredentialErrorWithCause(ServiceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errs.NewCredentialErrorWithCause(
			ServiceName, fmt.Errorf("token endpoint returned status %d", resp.StatusCode))
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errs.NewCredentialErrorWithCause(ServiceName, err)
	}
	if body.AccessToken == "" {
		return "", errs.NewCredentialErrorWithCause(ServiceName, fmt.Errorf("empty access_token"))
	}

	expiresAt := now.Add(time.Duration(body.ExpiresIn) * time.Second)
	if err := p.store.PutToken(ctx, ServiceName, body.AccessToken, expiresAt); err != nil {
		return "", errs.NewCredentialErrorWithCause(ServiceName, err)
	}

	return body.AccessToken, nil
}
