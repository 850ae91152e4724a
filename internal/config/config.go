package config

// ProviderConfig holds the connection settings for one LLM backend
type ProviderConfig struct {
	APIKey   string
	Endpoint string
	Model    string
}

// ProvidersConfig groups all supported LLM backends
type ProvidersConfig struct {
	Gemini ProviderConfig
	Claude ProviderConfig
	GLM    ProviderConfig
}

// ChatConfig holds the generation knobs applied to every completion
type ChatConfig struct {
	MaxTokens         int
	Temperature       float64
	RequestTimeoutSec int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MinioConfig holds object storage settings for attachment offload.
// Offload is disabled when Endpoint is empty.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// StorageConfig selects the conversation store backend
type StorageConfig struct {
	// Backend is "memory" or "redis"
	Backend string
	Redis   RedisConfig
	Minio   MinioConfig
}

// Config holds all service configuration
type Config struct {
	// Server configuration
	Host string
	Port int

	// Chat turn configuration
	Chat ChatConfig

	// Provider configuration
	Providers ProvidersConfig

	// Storage configuration
	Storage StorageConfig
}
