package config

import "time"

type API struct {
	s settings
}

var _ APIConfig = API{}

// GetAPIBaseURL returns the PodMixer API root (e.g. "http://localhost:3000").
// Endpoint paths such as /api/v1/podcasts are appended by the client.
func (a API) GetAPIBaseURL() string {
	return a.s.get("API_BASE_URL", "http://localhost:3000")
}

func (a API) GetAPITimeout() time.Duration {
	return a.s.getDuration("API_TIMEOUT", 10*time.Second)
}
