package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Auth0Introspector resolves tokens by calling the provider's userinfo
// endpoint. The call is made once per request (see CachedIntrospector for
// the usual wrapping) and never retried.
type Auth0Introspector struct {
	Domain string
	Client *http.Client
}

func NewAuth0Introspector(domain string) *Auth0Introspector {
	return &Auth0Introspector{
		Domain: domain,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *Auth0Introspector) Introspect(ctx context.Context, token string) (Profile, error) {
	url := fmt.Sprintf("https://%s/userinfo", a.Domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Profile{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.Client.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Profile{}, ErrInvalidToken
	default:
		return Profile{}, fmt.Errorf("%w: userinfo returned %d", ErrUpstream, resp.StatusCode)
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("%w: decode userinfo: %v", ErrUpstream, err)
	}
	if p.Subject == "" {
		return Profile{}, ErrInvalidToken
	}
	return p, nil
}
