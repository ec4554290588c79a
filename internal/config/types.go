package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level CR360 backend configuration, corresponding to .cr360.yml.
type Config struct {
	Provider    ProviderType     `yaml:"provider" koanf:"provider"`
	Model       string           `yaml:"model" koanf:"model"`
	CatalogPath string           `yaml:"catalog_path" koanf:"catalog_path"`
	Generation  GenerationConfig `yaml:"generation" koanf:"generation"`
	Database    DatabaseConfig   `yaml:"database" koanf:"database"`
	Server      ServerConfig     `yaml:"server" koanf:"server"`
	Retry       RetryConfig      `yaml:"retry" koanf:"retry"`
	Memory      MemoryConfig     `yaml:"memory" koanf:"memory"`
}

// GenerationConfig holds LLM sampling settings for SQL generation.
type GenerationConfig struct {
	Temperature float64 `yaml:"temperature" koanf:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" koanf:"max_tokens"`
}

// DatabaseConfig holds the analytical database connection settings.
type DatabaseConfig struct {
	Driver              string `yaml:"driver" koanf:"driver"` // "sqlite" or "postgres"
	DSN                 string `yaml:"dsn" koanf:"dsn"`
	QueryTimeoutSeconds int    `yaml:"query_timeout_seconds" koanf:"query_timeout_seconds"`
	MaxRows             int    `yaml:"max_rows" koanf:"max_rows"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// RetryConfig bounds the per-category retry budgets of the query pipeline.
// MaxAttempts caps total generation attempts regardless of category budgets.
type RetryConfig struct {
	SchemaHallucination int `yaml:"schema_hallucination" koanf:"schema_hallucination"`
	Syntax              int `yaml:"syntax" koanf:"syntax"`
	Semantic            int `yaml:"semantic" koanf:"semantic"`
	Execution           int `yaml:"execution" koanf:"execution"`
	MaxAttempts         int `yaml:"max_attempts" koanf:"max_attempts"`
}

// MemoryConfig holds conversation memory settings.
type MemoryConfig struct {
	// MaxTurns is the number of turn-pairs kept in the sliding window.
	MaxTurns int `yaml:"max_turns" koanf:"max_turns"`
}
