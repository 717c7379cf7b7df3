package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Secrets holds the credentials and endpoints that are never written to the
// config file. Populated from the environment (and .env, if present).
type Secrets struct {
	EmbeddingAPIKey  string `envconfig:"EMBEDDING_API_KEY"`
	EmbeddingBaseURL string `envconfig:"EMBEDDING_BASE_URL" default:"https://api.jina.ai/v1"`
	ChatAPIKey       string `envconfig:"CHAT_API_KEY"`
	ChatBaseURL      string `envconfig:"CHAT_BASE_URL" default:"https://api.groq.com/openai/v1"`
	DatabaseURL      string `envconfig:"DATABASE_URL"`
	MarkdownerAPIKey string `envconfig:"MARKDOWNER_API_KEY"`
	Port             string `envconfig:"PORT" default:"8080"`
}

type Config struct {
	LLM struct {
		EmbeddingModel string `yaml:"embedding_model"`
		ChatModel      string `yaml:"chat_model"`
		MaxTokens      int    `yaml:"max_tokens"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"llm"`

	Database struct {
		Collection string `yaml:"collection"`
		VectorDim  int    `yaml:"vector_dim"`
	} `yaml:"database"`

	Fetcher struct {
		Strategy           string  `yaml:"strategy"` // "markdown" or "page"
		MarkdownerEndpoint string  `yaml:"markdowner_endpoint"`
		RateLimit          float64 `yaml:"rate_limit"`
		TimeoutSeconds     int     `yaml:"timeout_seconds"`
	} `yaml:"fetcher"`

	Chunker struct {
		ChunkSize    int `yaml:"chunk_size"`
		ChunkOverlap int `yaml:"chunk_overlap"`
	} `yaml:"chunker"`

	Query struct {
		TopK int `yaml:"top_k"`
	} `yaml:"query"`

	Ingest struct {
		ProgressFile string   `yaml:"progress_file"`
		URLs         []string `yaml:"urls"`
	} `yaml:"ingest"`

	Secrets Secrets `yaml:"-"`
}

// Load reads the YAML config file, applies defaults, then overlays secrets
// and endpoints from the environment. A missing file is not an error: the
// defaults plus the environment are a complete configuration.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/ragfolio/config.yaml"),
		}
		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	config := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	applyDefaults(config)

	if err := envconfig.Process("ragfolio", &config.Secrets); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}

	return config, nil
}

func applyDefaults(config *Config) {
	if config.LLM.EmbeddingModel == "" {
		config.LLM.EmbeddingModel = "jina-embeddings-v3"
	}
	if config.LLM.ChatModel == "" {
		config.LLM.ChatModel = "llama3-70b-8192"
	}
	if config.LLM.MaxTokens == 0 {
		config.LLM.MaxTokens = 2000
	}
	if config.LLM.TimeoutSeconds == 0 {
		config.LLM.TimeoutSeconds = 30
	}

	if config.Database.Collection == "" {
		config.Database.Collection = "documents"
	}
	if config.Database.VectorDim == 0 {
		config.Database.VectorDim = 1024
	}

	if config.Fetcher.Strategy == "" {
		config.Fetcher.Strategy = "markdown"
	}
	if config.Fetcher.MarkdownerEndpoint == "" {
		config.Fetcher.MarkdownerEndpoint = "https://md.dhr.wtf/"
	}
	if config.Fetcher.RateLimit == 0 {
		config.Fetcher.RateLimit = 2.0
	}
	if config.Fetcher.TimeoutSeconds == 0 {
		config.Fetcher.TimeoutSeconds = 30
	}

	if config.Chunker.ChunkSize == 0 {
		config.Chunker.ChunkSize = 512
	}
	if config.Chunker.ChunkOverlap == 0 {
		config.Chunker.ChunkOverlap = 50
	}

	if config.Query.TopK == 0 {
		config.Query.TopK = 5
	}

	if config.Ingest.ProgressFile == "" {
		config.Ingest.ProgressFile = "progress.json"
	}
}
