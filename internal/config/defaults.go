package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderOpenAI,
		Model:       "gpt-4o-mini",
		CatalogPath: "",
		Generation: GenerationConfig{
			Temperature: 0.1,
			MaxTokens:   2048,
		},
		Database: DatabaseConfig{
			Driver:              "sqlite",
			DSN:                 "cr360.db",
			QueryTimeoutSeconds: 30,
			MaxRows:             500,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Retry: RetryConfig{
			SchemaHallucination: 2,
			Syntax:              2,
			Semantic:            1,
			Execution:           1,
			MaxAttempts:         3,
		},
		Memory: MemoryConfig{
			MaxTurns: 5,
		},
	}
}
