// Package auth implements the federated sign-in path. The portal trusts
// an external identity provider's assertion of email ownership, then looks
// the email up in its own credential store; accounts are never created
// from a federated assertion.
package auth

import (
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"
)

const (
    defaultGoogleAuthURL     = "https://accounts.google.com/o/oauth2/auth"
    defaultGoogleTokenURL    = "https://oauth2.googleapis.com/token"
    defaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

// UserInfo is the identity assertion obtained from a provider after a
// successful code exchange. Only the email is authoritative for the
// portal; the name is used for display if the local record lacks one.
type UserInfo struct {
    ProviderUserID string
    Email          string
    Name           string
}

// Provider abstracts an OAuth 2.0 identity provider so handlers and tests
// are not tied to Google's endpoints.
type Provider interface {
    // LoginURL returns the provider consent URL for the given state value.
    LoginURL(state string) string
    // Exchange trades an authorization code for the provider's identity
    // assertion.
    Exchange(ctx context.Context, code string) (*UserInfo, error)
}

// GoogleConfig configures the Google provider. The three URL fields exist
// so tests can point the provider at local stub servers; left empty they
// fall back to Google's production endpoints.
type GoogleConfig struct {
    ClientID     string
    ClientSecret string
    RedirectURL  string

    AuthURL     string
    TokenURL    string
    UserInfoURL string
}

// GoogleProvider implements Provider against Google OAuth 2.0.
type GoogleProvider struct {
    config GoogleConfig
}

// NewGoogleProvider builds a GoogleProvider, filling in default endpoint
// URLs where the config leaves them empty.
func NewGoogleProvider(config GoogleConfig) *GoogleProvider {
    if config.AuthURL == "" {
        config.AuthURL = defaultGoogleAuthURL
    }
    if config.TokenURL == "" {
        config.TokenURL = defaultGoogleTokenURL
    }
    if config.UserInfoURL == "" {
        config.UserInfoURL = defaultGoogleUserInfoURL
    }
    return &GoogleProvider{config: config}
}

// LoginURL returns the Google consent URL requesting the openid, email and
// profile scopes.
func (p *GoogleProvider) LoginURL(state string) string {
    params := url.Values{
        "client_id":     {p.config.ClientID},
        "redirect_uri":  {p.config.RedirectURL},
        "response_type": {"code"},
        "scope":         {"openid email profile"},
        "state":         {state},
    }
    return p.config.AuthURL + "?" + params.Encode()
}

type googleTokenResponse struct {
    AccessToken string `json:"access_token"`
    TokenType   string `json:"token_type"`
    ExpiresIn   int    `json:"expires_in"`
}

type googleUserInfo struct {
    Sub   string `json:"sub"`
    Email string `json:"email"`
    Name  string `json:"name"`
}

// Exchange trades the authorization code for an access token, then fetches
// the user's profile with it.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*UserInfo, error) {
    tokenResp, err := p.exchangeToken(ctx, code)
    if err != nil {
        return nil, fmt.Errorf("exchange token: %w", err)
    }

    userInfo, err := p.fetchUserInfo(ctx, tokenResp.AccessToken)
    if err != nil {
        return nil, fmt.Errorf("fetch user info: %w", err)
    }

    return &UserInfo{
        ProviderUserID: userInfo.Sub,
        Email:          userInfo.Email,
        Name:           userInfo.Name,
    }, nil
}

func (p *GoogleProvider) exchangeToken(ctx context.Context, code string) (*googleTokenResponse, error) {
    data := url.Values{
        "code":          {code},
        "client_id":     {p.config.ClientID},
        "client_secret": {p.config.ClientSecret},
        "redirect_uri":  {p.config.RedirectURL},
        "grant_type":    {"authorization_code"},
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.TokenURL, strings.NewReader(data.Encode()))
    if err != nil {
        return nil, fmt.Errorf("build token request: %w", err)
    }
    req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

    resp, err := http.DefaultClient.Do(req)
    if err != nil {
        return nil, fmt.Errorf("token request: %w", err)
    }
    defer resp.Body.Close()

    body, err := io.ReadAll(resp.Body)
    if err != nil {
        return nil, fmt.Errorf("read token response: %w", err)
    }
    if resp.StatusCode != http.StatusOK {
        return nil, fmt.Errorf("token exchange failed with status %d: %s", resp.StatusCode, string(body))
    }

    var tokenResp googleTokenResponse
    if err := json.Unmarshal(body, &tokenResp); err != nil {
        return nil, fmt.Errorf("parse token response: %w", err)
    }
    if tokenResp.AccessToken == "" {
        return nil, fmt.Errorf("empty access token in response")
    }
    return &tokenResp, nil
}

func (p *GoogleProvider) fetchUserInfo(ctx context.Context, accessToken string) (*googleUserInfo, error) {
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.UserInfoURL, nil)
    if err != nil {
        return nil, fmt.Errorf("build user info request: %w", err)
    }
    req.Header.Set("Authorization", "Bearer "+accessToken)

    resp, err := http.DefaultClient.Do(req)
    if err != nil {
        return nil, fmt.Errorf("user info request: %w", err)
    }
    defer resp.Body.Close()

    body, err := io.ReadAll(resp.Body)
    if err != nil {
        return nil, fmt.Errorf("read user info response: %w", err)
    }
    if resp.StatusCode != http.StatusOK {
        return nil, fmt.Errorf("user info fetch failed with status %d: %s", resp.StatusCode, string(body))
    }

    var userInfo googleUserInfo
    if err := json.Unmarshal(body, &userInfo); err != nil {
        return nil, fmt.Errorf("parse user info response: %w", err)
    }
    if userInfo.Email == "" {
        return nil, fmt.Errorf("empty email in user info response")
    }
    return &userInfo, nil
}

// compile-time interface check
var _ Provider = (*GoogleProvider)(nil)
