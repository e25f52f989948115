// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ModelProvider identifies which text-completion API a ModelConfig targets.
type ModelProvider string

const (
	ProviderAnthropic ModelProvider = "anthropic"
	ProviderOpenAI    ModelProvider = "openai"
	ProviderOllama    ModelProvider = "ollama"
)

// ModelConfig holds settings for the optional language-model collaborator.
// When no usable model is configured the pipeline runs every stage on its
// heuristic path.
type ModelConfig struct {
	// Provider selects the completion API: anthropic, openai, or ollama.
	Provider ModelProvider `json:"provider" yaml:"provider"`

	// Model is the model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the provider's default endpoint. Required for
	// ollama (e.g. "http://localhost:11434/v1").
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxRetries is the number of retry attempts for rate-limited calls
	// (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// CatalogConfig holds settings for the skill catalog.
type CatalogConfig struct {
	// Dir is the directory holding the catalog database (contains
	// catalog.db).
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of list/search results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// BuildConfig groups the settings for one skill-building run.
type BuildConfig struct {
	// OutputDir is the default directory for rendered skill documents.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// KnownLibraries extends the tool-identification allow-list without
	// touching the matching logic. Entries are matched as literal whole
	// words.
	KnownLibraries []string `json:"known_libraries" yaml:"known_libraries"`
}

// Config groups all configuration for the paper2skill CLI.
type Config struct {
	Model   ModelConfig   `json:"model" yaml:"model"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	Build   BuildConfig   `json:"build" yaml:"build"`
}
