// Package config loads the process configuration from .env, an optional
// YAML file and environment variables, in increasing precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type OutputConfig struct {
	Dir              string
	RetentionPerType int
	KeepMarkdown     bool
}

type GeminiConfig struct {
	ProjectID string
	Location  string
	Model     string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type GenerationConfig struct {
	Temperature     float32
	MaxOutputTokens int32
	PromptVariant   string
	TargetLanguage  string
}

type RenderConfig struct {
	ChromePath string
	Timeout    time.Duration
	PageSize   string
	PageMargin string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Prefix    string
}

// Enabled reports whether an artifact mirror bucket is configured.
func (m MinIOConfig) Enabled() bool { return m.Endpoint != "" }

// Config is built once at startup and passed explicitly to every component.
type Config struct {
	Port                    string
	LogLevel                string
	PublicBaseURL           string
	JobDescriptionMinLength int
	DefaultJobSource        string
	DatabaseURL             string
	ProfileFile             string

	Output     OutputConfig
	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Generation GenerationConfig
	Render     RenderConfig
	MinIO      MinIOConfig
}

// Error reports an invalid or missing setting.
type Error struct {
	Key     string
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("config %s: %s", e.Key, e.Message) }

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("log_level", "info")
	v.SetDefault("public_base_url", "http://localhost:3000")
	v.SetDefault("output_dir", "resume-data/output")
	v.SetDefault("output_retention_per_type", 10)
	v.SetDefault("keep_markdown", true)
	v.SetDefault("prompt_variant", "ats-json")
	v.SetDefault("translation_target_language", "Traditional Chinese (繁體中文)")
	v.SetDefault("job_description_min_length", 0)
	v.SetDefault("default_job_source", "unknown")
	v.SetDefault("gemini_location", "us-central1")
	v.SetDefault("gemini_model", "gemini-2.0-flash")
	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("openai_timeout_seconds", 120)
	v.SetDefault("generation_temperature", 0.7)
	v.SetDefault("generation_max_output_tokens", 2048)
	v.SetDefault("render_timeout_seconds", 60)
	v.SetDefault("page_size", "Letter")
	v.SetDefault("page_margin", "0.75in")
	v.SetDefault("minio_use_ssl", false)
	v.SetDefault("minio_prefix", "output")
}

// Load reads a best-effort .env, then configFile when given, then the
// environment. Real environment variables always win.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Port:                    v.GetString("port"),
		LogLevel:                v.GetString("log_level"),
		PublicBaseURL:           strings.TrimRight(v.GetString("public_base_url"), "/"),
		JobDescriptionMinLength: v.GetInt("job_description_min_length"),
		DefaultJobSource:        v.GetString("default_job_source"),
		DatabaseURL:             v.GetString("database_url"),
		ProfileFile:             v.GetString("profile_file"),
		Output: OutputConfig{
			Dir:              v.GetString("output_dir"),
			RetentionPerType: v.GetInt("output_retention_per_type"),
			KeepMarkdown:     v.GetBool("keep_markdown"),
		},
		Gemini: GeminiConfig{
			ProjectID: v.GetString("gemini_project_id"),
			Location:  v.GetString("gemini_location"),
			Model:     v.GetString("gemini_model"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  v.GetString("openai_api_key"),
			Model:   v.GetString("openai_model"),
			BaseURL: v.GetString("openai_base_url"),
			Timeout: time.Duration(v.GetInt("openai_timeout_seconds")) * time.Second,
		},
		Generation: GenerationConfig{
			Temperature:     float32(v.GetFloat64("generation_temperature")),
			MaxOutputTokens: v.GetInt32("generation_max_output_tokens"),
			PromptVariant:   v.GetString("prompt_variant"),
			TargetLanguage:  v.GetString("translation_target_language"),
		},
		Render: RenderConfig{
			ChromePath: v.GetString("chrome_path"),
			Timeout:    time.Duration(v.GetInt("render_timeout_seconds")) * time.Second,
			PageSize:   v.GetString("page_size"),
			PageMargin: v.GetString("page_margin"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("minio_endpoint"),
			AccessKey: v.GetString("minio_access_key"),
			SecretKey: v.GetString("minio_secret_key"),
			Bucket:    v.GetString("minio_bucket"),
			UseSSL:    v.GetBool("minio_use_ssl"),
			Prefix:    v.GetString("minio_prefix"),
		},
	}
	return cfg, cfg.Validate()
}

// Validate checks settings every entry point depends on.
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return &Error{Key: "OUTPUT_DIR", Message: "must not be empty"}
	}
	if c.Output.RetentionPerType < 1 {
		return &Error{Key: "OUTPUT_RETENTION_PER_TYPE", Message: "must be at least 1"}
	}
	if c.JobDescriptionMinLength < 0 {
		return &Error{Key: "JOB_DESCRIPTION_MIN_LENGTH", Message: "must not be negative"}
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		return &Error{Key: "GENERATION_TEMPERATURE", Message: "must be between 0 and 2"}
	}
	if c.Generation.MaxOutputTokens < 1 {
		return &Error{Key: "GENERATION_MAX_OUTPUT_TOKENS", Message: "must be positive"}
	}
	if c.MinIO.Enabled() && c.MinIO.Bucket == "" {
		return &Error{Key: "MINIO_BUCKET", Message: "required when MINIO_ENDPOINT is set"}
	}
	return nil
}

// RequireGeneration checks the settings needed to run the full pipeline.
func (c *Config) RequireGeneration() error {
	if c.Gemini.ProjectID == "" && c.OpenAI.APIKey == "" {
		return &Error{Key: "GEMINI_PROJECT_ID", Message: "no generation backend configured (set GEMINI_PROJECT_ID and/or OPENAI_API_KEY)"}
	}
	if c.DatabaseURL == "" && c.ProfileFile == "" {
		return &Error{Key: "DATABASE_URL", Message: "no profile store configured (set DATABASE_URL or PROFILE_FILE)"}
	}
	return nil
}
