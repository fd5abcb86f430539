package config

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL          string
	RedisAddress   string
	BearerToken    string
	GoogleClientID string
}

// GetBearerToken returns the BearerToken from the config
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}

// GetGoogleClientID returns the OAuth client id the token exchange verifies
// incoming ID tokens against
func (c *AppConfig) GetGoogleClientID() string {
	return c.GoogleClientID
}
