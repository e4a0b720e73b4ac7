package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Engine    EngineConfig
	Providers ProvidersConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  int
	WriteTimeout int
	BodyLimit    int
}

type EngineConfig struct {
	Timezone        string
	MaxTokens       int
	Temperature     float32
	HistoryWindow   int
	CallTimeoutSec  int
	ContextTTLMin   int
	MaxQueryLength  int
	RequestsPerMin  int
}

type ProvidersConfig struct {
	Anthropic ProviderConfig
	OpenAI    ProviderConfig
	Google    ProviderConfig
	Groq      ProviderConfig
}

type ProviderConfig struct {
	APIKey string
	Model  string
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/marhaba")

	viper.SetEnvPrefix("MARHABA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Honor the canonical vendor variables alongside the prefixed form, so a
	// bare ANTHROPIC_API_KEY in the environment is enough to enable a provider.
	viper.BindEnv("providers.anthropic.apikey", "MARHABA_PROVIDERS_ANTHROPIC_APIKEY", "ANTHROPIC_API_KEY")
	viper.BindEnv("providers.openai.apikey", "MARHABA_PROVIDERS_OPENAI_APIKEY", "OPENAI_API_KEY")
	viper.BindEnv("providers.google.apikey", "MARHABA_PROVIDERS_GOOGLE_APIKEY", "GOOGLE_API_KEY")
	viper.BindEnv("providers.groq.apikey", "MARHABA_PROVIDERS_GROQ_APIKEY", "GROQ_API_KEY")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.readTimeout", 30)
	viper.SetDefault("server.writeTimeout", 30)
	viper.SetDefault("server.bodyLimit", 1048576)

	viper.SetDefault("engine.timezone", "Asia/Riyadh")
	viper.SetDefault("engine.maxTokens", 300)
	viper.SetDefault("engine.temperature", 0.7)
	viper.SetDefault("engine.historyWindow", 5)
	viper.SetDefault("engine.callTimeoutSec", 20)
	viper.SetDefault("engine.contextTTLMin", 30)
	viper.SetDefault("engine.maxQueryLength", 2000)
	viper.SetDefault("engine.requestsPerMin", 60)

	viper.SetDefault("providers.anthropic.model", "claude-3-haiku-20240307")
	viper.SetDefault("providers.openai.model", "gpt-4")
	viper.SetDefault("providers.google.model", "gemini-1.5-flash")
	viper.SetDefault("providers.groq.model", "llama-3.1-8b-instant")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.outputPath", "stdout")
}
