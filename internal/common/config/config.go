// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Prompt  PromptConfig  `mapstructure:"prompt"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Safety  SafetyConfig  `mapstructure:"safety"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// OpenAIConfig holds settings for the chat-completion and moderation APIs.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// PromptConfig holds settings for prompt template loading.
type PromptConfig struct {
	TemplatePath string `mapstructure:"template_path"`
}

// MetricsConfig holds settings for the metrics store.
type MetricsConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

// SafetyConfig holds settings for the moderation gate.
type SafetyConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
