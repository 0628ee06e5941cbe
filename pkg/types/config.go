package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "newslens/0.1"). Article fetches use a browser-like agent
	// instead; see NewsConfig.ArticleUserAgent.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// Weights is the fixed weight table for signal fusion. The weights
// intentionally do not sum to 1: corroborating signals (fact-check,
// citations) are over-weighted on top of the two primary signals.
type Weights struct {
	DomainTrust float64 `json:"domain_trust" yaml:"domain_trust"`
	Relevance   float64 `json:"relevance" yaml:"relevance"`
	FactCheck   float64 `json:"fact_check" yaml:"fact_check"`
	Bias        float64 `json:"bias" yaml:"bias"`
	Citation    float64 `json:"citation" yaml:"citation"`
}

// SignalConfig holds settings for the signal evaluators.
type SignalConfig struct {
	HTTPConfig `yaml:",inline"`

	// TrustOverlayPath optionally points to a YAML file whose entries
	// extend or replace the built-in domain trust table.
	TrustOverlayPath string `json:"trust_overlay_path,omitempty" yaml:"trust_overlay_path,omitempty"`

	// EmbeddingModel is the embedding model identifier
	// (e.g. "text-embedding-3-small").
	EmbeddingModel string `json:"embedding_model" yaml:"embedding_model"`

	// EmbeddingAPIKey authenticates against the embeddings endpoint.
	EmbeddingAPIKey string `json:"embedding_api_key,omitempty" yaml:"embedding_api_key,omitempty"`

	// SentimentModel is the sentiment classification model identifier.
	SentimentModel string `json:"sentiment_model" yaml:"sentiment_model"`

	// SentimentAPIKey authenticates against the inference endpoint.
	SentimentAPIKey string `json:"sentiment_api_key,omitempty" yaml:"sentiment_api_key,omitempty"`

	// FactCheckAPIKey authenticates against the fact-check API.
	FactCheckAPIKey string `json:"fact_check_api_key,omitempty" yaml:"fact_check_api_key,omitempty"`

	// CitationEmail is sent as the mailto parameter for polite-pool
	// access to the citation index.
	CitationEmail string `json:"citation_email,omitempty" yaml:"citation_email,omitempty"`
}

// NewsConfig holds settings for the news retrieval orchestrator.
type NewsConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the number of candidates fanned out over (default 5,
	// capped at 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Location is the region code for location-based results
	// (e.g. "us-en", "in-en").
	Location string `json:"location" yaml:"location"`

	// TimeWindow filters results by age: "d", "w", "m", or "y".
	TimeWindow string `json:"time_window" yaml:"time_window"`

	// MaxConcurrent bounds the number of in-flight candidate tasks.
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`

	// TaskTimeout bounds one candidate's fetch-and-rate work. A hung
	// rating call must not stall the whole batch.
	TaskTimeout time.Duration `json:"task_timeout" yaml:"task_timeout"`

	// ArticleTimeout is the per-article fetch timeout (default 5s).
	ArticleTimeout time.Duration `json:"article_timeout" yaml:"article_timeout"`

	// ArticleUserAgent is the browser-like User-Agent sent on article
	// fetches; some publishers reject non-browser agents.
	ArticleUserAgent string `json:"article_user_agent" yaml:"article_user_agent"`
}

// ModelConfig holds settings for the chat model used by the article
// quality rater.
type ModelConfig struct {
	// BaseURL is the OpenAI-compatible API base (e.g. a local Ollama
	// endpoint or a hosted provider).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey authenticates against the chat API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Model is the chat model identifier (e.g. "llama3.2:latest").
	Model string `json:"model" yaml:"model"`

	// RPM is the request-per-minute budget enforced by the client-side
	// limiter (0 disables limiting).
	RPM int `json:"rpm" yaml:"rpm"`

	// Burst is the limiter burst size (default 1).
	Burst int `json:"burst" yaml:"burst"`

	// MaxRetries is the number of retries on rate-limited calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// StoreConfig holds settings for the opt-in history store.
type StoreConfig struct {
	// Path is the SQLite database file (default "newslens.db").
	Path string `json:"path" yaml:"path"`

	// MaxRows is the maximum number of rows returned by history queries
	// (default 20).
	MaxRows int `json:"max_rows" yaml:"max_rows"`
}
