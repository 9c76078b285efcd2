package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// ErrUnverifiedEmail rejects Google accounts whose address Google has not
// verified. Roles hang off the email, so it must be proven.
var ErrUnverifiedEmail = errors.New("google account email is not verified")

// UserinfoFetcher reads the signed-in Google profile for a token.
type UserinfoFetcher interface {
	Userinfo(ctx context.Context, tok *oauth2.Token) (*oauth2api.Userinfo, error)
}

// GoogleLogin runs the "Sign in with Google" authorization-code flow.
type GoogleLogin struct {
	config   *oauth2.Config
	userinfo UserinfoFetcher
}

// NewGoogleLogin returns nil when the client id or secret is missing, which
// disables Google sign-in.
func NewGoogleLogin(clientID, clientSecret, redirectURL string) *GoogleLogin {
	if clientID == "" || clientSecret == "" {
		return nil
	}
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			oauth2api.UserinfoEmailScope,
			oauth2api.UserinfoProfileScope,
		},
		Endpoint: google.Endpoint,
	}
	return &GoogleLogin{config: config, userinfo: googleUserinfo{config: config}}
}

// AuthURL is where the browser is sent to consent.
func (g *GoogleLogin) AuthURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the callback code for a token and reads the user's profile.
func (g *GoogleLogin) Exchange(ctx context.Context, code string) (Identity, error) {
	if code == "" {
		return Identity{}, errors.New("missing authorization code")
	}
	tok, err := g.config.Exchange(ctx, code)
	if err != nil {
		return Identity{}, fmt.Errorf("exchange code: %w", err)
	}
	info, err := g.userinfo.Userinfo(ctx, tok)
	if err != nil {
		return Identity{}, err
	}
	return identityFromUserinfo(info)
}

func identityFromUserinfo(info *oauth2api.Userinfo) (Identity, error) {
	if info == nil || info.Id == "" || info.Email == "" {
		return Identity{}, errors.New("google profile without id or email")
	}
	if info.VerifiedEmail == nil || !*info.VerifiedEmail {
		return Identity{}, ErrUnverifiedEmail
	}
	return Identity{UID: info.Id, Email: info.Email, Name: info.Name}, nil
}

type googleUserinfo struct {
	config *oauth2.Config
}

func (u googleUserinfo) Userinfo(ctx context.Context, tok *oauth2.Token) (*oauth2api.Userinfo, error) {
	svc, err := oauth2api.NewService(ctx, option.WithHTTPClient(u.config.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("userinfo service: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get userinfo: %w", err)
	}
	return info, nil
}
