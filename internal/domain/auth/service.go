package auth

import "context"

type AuthService interface {
	// Login verifies credentials and issues an access token
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Logout revokes the presented access token until it expires
	Logout(ctx context.Context, token string) error

	// Me returns the profile of the authenticated user
	Me(ctx context.Context, userID string) (MeResponse, error)

	// IssueSSEToken mints a short-lived token for the event stream
	IssueSSEToken(ctx context.Context, userID string) (SSETokenResponse, error)
}
