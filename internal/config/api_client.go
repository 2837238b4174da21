package config

import (
	"time"
)

const (
	apiURLVar         = "RAYLENE_API_URL"
	httpTimeoutVar    = "RAYLENE_HTTP_TIMEOUT"
	refreshTimeoutVar = "RAYLENE_REFRESH_TIMEOUT"
	loginPathVar      = "RAYLENE_LOGIN_PATH"
)

type APIClient struct{}

var _ ClientConfig = APIClient{}

// GetAPIBaseURL returns the backend API root (e.g. "https://api.raylene.co.za").
// The "/api" prefix is appended by the session client, not configured here.
func (APIClient) GetAPIBaseURL() string {
	return GetEnv(apiURLVar, "http://localhost:8000")
}

func (APIClient) GetHTTPTimeout() time.Duration {
	return getDuration(httpTimeoutVar, 30*time.Second)
}

// GetRefreshTimeout bounds the token refresh call specifically. An unbounded
// refresh would block every request waiting on its outcome.
func (APIClient) GetRefreshTimeout() time.Duration {
	return getDuration(refreshTimeoutVar, 10*time.Second)
}

func (APIClient) GetLoginPath() string {
	return GetEnv(loginPathVar, "/login")
}

func getDuration(envVar string, defaultValue time.Duration) time.Duration {
	value := GetEnv(envVar, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
