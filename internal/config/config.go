package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/codebugger/internal/aiconnectors"
	"github.com/codebugger/internal/database"
)

// EnvPrefix prefixes every environment variable read into the config
const EnvPrefix = "CODEBUGGER_"

// DefaultPaths are searched in order when no config file is given
var DefaultPaths = []string{"./codebugger.toml", "$HOME/.codebugger.toml"}

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
	AI       AIConfig       `koanf:"ai"`
	Storage  StorageConfig  `koanf:"storage"`
	Projects ProjectsConfig `koanf:"projects"`
	GitHub   GitHubConfig   `koanf:"github"`
	GitLab   GitLabConfig   `koanf:"gitlab"`
	Auth     AuthConfig     `koanf:"auth"`
	Guard    GuardConfig    `koanf:"guard"`
}

type ServerConfig struct {
	Port        int      `koanf:"port"`
	CORSOrigins []string `koanf:"cors_origins"`
	BodyLimit   string   `koanf:"body_limit"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// ProviderConfig holds one LLM provider's credentials
type ProviderConfig struct {
	APIKey  string   `koanf:"api_key"`
	BaseURL string   `koanf:"base_url"`
	Models  []string `koanf:"models"`
}

type AIConfig struct {
	DefaultModel      string         `koanf:"default_model"`
	Timeout           time.Duration  `koanf:"timeout"`
	RequestsPerSecond float64        `koanf:"requests_per_second"`
	Burst             int            `koanf:"burst"`
	MaxTokens         int            `koanf:"max_tokens"`
	OpenAI            ProviderConfig `koanf:"openai"`
	Gemini            ProviderConfig `koanf:"gemini"`
	Claude            ProviderConfig `koanf:"claude"`
	Cohere            ProviderConfig `koanf:"cohere"`
	Ollama            ProviderConfig `koanf:"ollama"`
}

type StorageConfig struct {
	Driver string `koanf:"driver"`
	DSN    string `koanf:"dsn"`
}

type ProjectsConfig struct {
	MaxUploadMB   int           `koanf:"max_upload_mb"`
	TTL           time.Duration `koanf:"ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
	MinFileSize   int64         `koanf:"min_file_size"`
	ChatFileLimit int           `koanf:"chat_file_limit"`
	ScanSecrets   bool          `koanf:"scan_secrets"`
}

type GitHubConfig struct {
	WebURL  string        `koanf:"web_url"`
	APIURL  string        `koanf:"api_url"`
	Token   string        `koanf:"token"`
	Timeout time.Duration `koanf:"timeout"`
}

type GitLabConfig struct {
	URL   string `koanf:"url"`
	Token string `koanf:"token"`
}

type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
	Issuer    string `koanf:"issuer"`
}

type GuardConfig struct {
	Enabled   bool    `koanf:"enabled"`
	Block     bool    `koanf:"block"`
	Threshold float64 `koanf:"threshold"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.port":         8000,
		"server.cors_origins": []string{"*"},
		"server.body_limit":   "60M",

		"log.level":  "info",
		"log.pretty": false,

		"ai.default_model":       "gpt-4o",
		"ai.timeout":             "120s",
		"ai.requests_per_second": 5.0,
		"ai.burst":               5,
		"ai.max_tokens":          0,
		"ai.openai.models":       []string{"gpt-4o", "gpt-4o-mini", "o3-mini"},
		"ai.gemini.models":       []string{"gemini-2.5-flash", "gemini-2.5-pro"},
		"ai.claude.models":       []string{"claude-3-5-sonnet-20241022", "claude-3-5-haiku-20241022"},
		"ai.cohere.models":       []string{"command-r", "command-r-plus"},

		"storage.driver": "memory",
		"storage.dsn":    "",

		"projects.max_upload_mb":   50,
		"projects.ttl":             "24h",
		"projects.sweep_interval":  "10m",
		"projects.min_file_size":   10,
		"projects.chat_file_limit": 2000,
		"projects.scan_secrets":    true,

		"github.web_url": "https://github.com",
		"github.api_url": "https://api.github.com",
		"github.timeout": "30s",

		"gitlab.url": "https://gitlab.com",

		"auth.issuer": "codebugger",

		"guard.enabled":   false,
		"guard.block":     false,
		"guard.threshold": 0.7,
	}
}

// wellKnownEnv maps conventional credential variables onto config keys.
// Earlier names win when several are set for the same key.
var wellKnownEnv = []struct {
	key string
	env []string
}{
	{"ai.openai.api_key", []string{"OPENAI_API_KEY"}},
	{"ai.gemini.api_key", []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}},
	{"ai.claude.api_key", []string{"ANTHROPIC_API_KEY"}},
	{"ai.cohere.api_key", []string{"COHERE_API_KEY"}},
	{"ai.ollama.base_url", []string{"OLLAMA_HOST"}},
	{"storage.dsn", []string{"DATABASE_URL"}},
	{"github.token", []string{"GITHUB_TOKEN"}},
	{"gitlab.token", []string{"GITLAB_TOKEN"}},
	{"auth.jwt_secret", []string{"JWT_SECRET"}},
}

// WellKnownEnv lists the conventional variables read into the config
func WellKnownEnv() []string {
	var names []string
	for _, w := range wellKnownEnv {
		names = append(names, w.env...)
	}
	return names
}

func wellKnownOverlay() map[string]interface{} {
	overlay := map[string]interface{}{}
	for _, w := range wellKnownEnv {
		for _, name := range w.env {
			if v := strings.TrimSpace(os.Getenv(name)); v != "" {
				overlay[w.key] = v
				break
			}
		}
	}
	if host, ok := overlay["ai.ollama.base_url"].(string); ok && !strings.Contains(host, "://") {
		overlay["ai.ollama.base_url"] = "http://" + host
	}
	if dsn, ok := overlay["storage.dsn"].(string); ok && os.Getenv(EnvPrefix+"STORAGE_DRIVER") == "" {
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			overlay["storage.driver"] = string(database.DriverPostgres)
		}
	}
	return overlay
}

// envKey maps CODEBUGGER_AI_DEFAULT_MODEL onto ai.default_model. Keys are
// matched against the known key set first since key names contain
// underscores themselves.
func envKey(s string) string {
	name := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for key := range knownKeys() {
		if strings.ReplaceAll(key, ".", "_") == name {
			return key
		}
	}
	return strings.Replace(name, "_", ".", -1)
}

func knownKeys() map[string]struct{} {
	keys := map[string]struct{}{}
	for key := range defaults() {
		keys[key] = struct{}{}
	}
	for _, p := range aiconnectors.Providers {
		for _, field := range []string{"api_key", "base_url", "models"} {
			keys["ai."+string(p)+"."+field] = struct{}{}
		}
	}
	for _, w := range wellKnownEnv {
		keys[w.key] = struct{}{}
	}
	return keys
}

// LoadConfig loads the configuration. Later sources override earlier ones:
// defaults, the TOML file, CODEBUGGER_ variables, then well-known
// credential variables such as OPENAI_API_KEY.
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		for _, path := range DefaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	k.Load(env.Provider(EnvPrefix, ".", envKey), nil)

	if overlay := wellKnownOverlay(); len(overlay) > 0 {
		k.Load(confmap.Provider(overlay, "."), nil)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// AISettings converts the ai section into completion service settings
func (c *Config) AISettings() aiconnectors.Settings {
	convert := func(p ProviderConfig) aiconnectors.ProviderSettings {
		return aiconnectors.ProviderSettings{APIKey: p.APIKey, BaseURL: p.BaseURL, Models: p.Models}
	}
	return aiconnectors.Settings{
		Providers: map[aiconnectors.Provider]aiconnectors.ProviderSettings{
			aiconnectors.ProviderOpenAI: convert(c.AI.OpenAI),
			aiconnectors.ProviderGemini: convert(c.AI.Gemini),
			aiconnectors.ProviderClaude: convert(c.AI.Claude),
			aiconnectors.ProviderCohere: convert(c.AI.Cohere),
			aiconnectors.ProviderOllama: convert(c.AI.Ollama),
		},
		Timeout:           c.AI.Timeout,
		RequestsPerSecond: c.AI.RequestsPerSecond,
		Burst:             c.AI.Burst,
		MaxTokens:         c.AI.MaxTokens,
	}
}

// InitOptions shape the generated configuration file
type InitOptions struct {
	Storage string
	DSN     string
	Model   string
}

// defaultDSN is the sample connection string written for a driver
func defaultDSN(driver database.Driver) string {
	switch driver {
	case database.DriverSQLite:
		return "codebugger.db"
	case database.DriverPostgres:
		return "postgres://localhost:5432/codebugger?sslmode=disable"
	default:
		return ""
	}
}

// providerSection renders the [ai.<provider>] table the default model needs
func providerSection(provider aiconnectors.Provider) string {
	if provider == aiconnectors.ProviderOllama {
		return "[ai.ollama]\nbase_url = \"http://localhost:11434\"\n"
	}
	return fmt.Sprintf("[ai.%s]\napi_key = \"your-%s-api-key\"\n", provider, provider)
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string, opts InitOptions) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	driver, err := database.ParseDriver(opts.Storage)
	if err != nil {
		return err
	}
	dsn := opts.DSN
	if dsn == "" {
		dsn = defaultDSN(driver)
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gpt-4o"
	}

	sampleConfig := fmt.Sprintf(`# codebugger configuration
# Credentials may also come from OPENAI_API_KEY, GEMINI_API_KEY,
# ANTHROPIC_API_KEY, COHERE_API_KEY, OLLAMA_HOST and DATABASE_URL.

[server]
port = 8000
cors_origins = ["*"]
body_limit = "60M"

[log]
level = "info"
pretty = true

[ai]
default_model = %q
timeout = "120s"
requests_per_second = 5.0
burst = 5

%s
[storage]
driver = %q
dsn = %q

[projects]
max_upload_mb = 50
ttl = "24h"
sweep_interval = "10m"
min_file_size = 10
chat_file_limit = 2000
scan_secrets = true

[github]
timeout = "30s"

[gitlab]
url = "https://gitlab.com"

[auth]
# jwt_secret = "change-me"

[guard]
enabled = false
block = false
threshold = 0.7
`, model, providerSection(aiconnectors.ProviderForModel(model)), driver, dsn)

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration
func Validate(config *Config) error {
	var errs []error

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port %d is out of range", config.Server.Port))
	}

	if strings.TrimSpace(config.AI.DefaultModel) == "" {
		errs = append(errs, errors.New("ai default_model is required"))
	} else {
		provider := aiconnectors.ProviderForModel(config.AI.DefaultModel)
		if err := aiconnectors.NewService(config.AISettings()).Ready(config.AI.DefaultModel); err != nil {
			errs = append(errs, fmt.Errorf("default model %s needs %s credentials: %w", config.AI.DefaultModel, provider, err))
		}
	}

	if config.AI.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("ai requests_per_second must not be negative"))
	}

	driver, err := database.ParseDriver(config.Storage.Driver)
	if err != nil {
		errs = append(errs, err)
	} else if driver != database.DriverMemory && config.Storage.DSN == "" {
		errs = append(errs, fmt.Errorf("storage dsn is required for driver %s", driver))
	}

	if config.Projects.MaxUploadMB <= 0 {
		errs = append(errs, errors.New("projects max_upload_mb must be positive"))
	}
	if config.Projects.TTL <= 0 {
		errs = append(errs, errors.New("projects ttl must be positive"))
	}
	if config.Projects.ChatFileLimit <= 0 {
		errs = append(errs, errors.New("projects chat_file_limit must be positive"))
	}

	if !strings.HasPrefix(config.GitHub.WebURL, "https://") {
		errs = append(errs, errors.New("github web_url must be an https URL"))
	}

	if config.Guard.Threshold < 0 || config.Guard.Threshold > 1 {
		errs = append(errs, errors.New("guard threshold must be between 0 and 1"))
	}

	return errors.Join(errs...)
}
