package types

import "time"

// HTTPConfig holds shared HTTP settings used for upstream requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-search/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search pipeline.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the arXiv query endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// DefaultQuery replaces an empty search text.
	DefaultQuery string `json:"default_query" yaml:"default_query"`

	// MaxResults is the result cap sent upstream (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Debounce is the quiet period before a keystroke triggers a search
	// in interactive mode (default 300ms).
	Debounce time.Duration `json:"debounce" yaml:"debounce"`
}

// ServeConfig holds settings for the HTTP adapter.
type ServeConfig struct {
	// Addr is the listen address (default "127.0.0.1:8080").
	Addr string `json:"addr" yaml:"addr"`
}

// LibraryConfig holds settings for the reading list.
type LibraryConfig struct {
	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path"`
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is "text" or "json".
	Format string `json:"format" yaml:"format"`
}

// Config groups the configuration of every component.
type Config struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Serve   ServeConfig   `json:"serve" yaml:"serve"`
	Library LibraryConfig `json:"library" yaml:"library"`
	Log     LogConfig     `json:"log" yaml:"log"`
}
