package auth

// OAuthIdentity represents a verified identity obtained from an OAuth provider.
type OAuthIdentity struct {
	Email      string
	Name       string
	PictureURL string
	ProviderID string
}
