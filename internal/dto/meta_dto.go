package dto

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ProviderStatusResponse answers the legacy ollama-status probe the
// frontend polls, whichever provider is actually configured.
type ProviderStatusResponse struct {
	Running  bool   `json:"running"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

type AiInfoResponse struct {
	Provider  string   `json:"provider"`
	Model     string   `json:"model"`
	Available bool     `json:"available"`
	Features  []string `json:"features"`
}
