package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	BackendLocal    = "local"
	BackendWeaviate = "weaviate"
)

type Config struct {
	Port              string              `mapstructure:"port"`
	Provider          string              `mapstructure:"provider"`
	APIKey            string              `mapstructure:"api_key"`
	AIEndpoint        string              `mapstructure:"ai_endpoint"`
	EmbeddingModel    string              `mapstructure:"embedding_model"`
	ChatModel         string              `mapstructure:"chat_model"`
	RequestsPerMinute int                 `mapstructure:"requests_per_minute"`
	CorsOrigins       []string            `mapstructure:"cors_origins"`
	Index             IndexConfig         `mapstructure:"index"`
	WeaviateStore     WeaviateStoreConfig `mapstructure:"weaviate_store_config"`
}

type IndexConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type WeaviateStoreConfig struct {
	Host   string `mapstructure:"host"`
	APIKey string `mapstructure:"api_key"`
	Class  string `mapstructure:"class"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8501")
	v.SetDefault("provider", ProviderGemini)
	v.SetDefault("api_key", "")
	v.SetDefault("ai_endpoint", "")
	v.SetDefault("embedding_model", "models/text-embedding-004")
	v.SetDefault("chat_model", "gemini-1.5-flash")
	v.SetDefault("requests_per_minute", 0)
	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("index.backend", BackendLocal)
	v.SetDefault("index.path", "faiss_index")
	v.SetDefault("weaviate_store_config.host", "http://localhost:8080")
	v.SetDefault("weaviate_store_config.api_key", "")
	v.SetDefault("weaviate_store_config.class", "PdfChunk")
}

// LoadConfig reads the YAML file at configPath, then applies environment overrides.
// A missing file is not an error; the defaults are used instead.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CHATPDF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("weaviate_store_config.api_key", "WEAVIATE_APIKEY")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// One credential for both the embedding and the completion client, taken from the
	// selected provider's variable.
	providerKeyEnv := "GOOGLE_API_KEY"
	if v.GetString("provider") == ProviderOpenAI {
		providerKeyEnv = "OPENAI_API_KEY"
	}
	v.BindEnv("api_key", "CHATPDF_API_KEY", providerKeyEnv)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	switch c.Index.Backend {
	case BackendLocal, BackendWeaviate:
	default:
		return fmt.Errorf("unknown index backend %q", c.Index.Backend)
	}
	if c.Index.Backend == BackendLocal && strings.TrimSpace(c.Index.Path) == "" {
		return errors.New("index.path must not be empty")
	}
	if c.EmbeddingModel == "" {
		return errors.New("embedding_model must not be empty")
	}
	if c.ChatModel == "" {
		return errors.New("chat_model must not be empty")
	}
	if c.RequestsPerMinute < 0 {
		return errors.New("requests_per_minute must not be negative")
	}
	return nil
}
