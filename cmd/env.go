package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/codebugger/internal/aiconnectors"
	"github.com/codebugger/internal/config"
)

// providerEnv names the variables that can hold each provider's credential
var providerEnv = map[aiconnectors.Provider][]string{
	aiconnectors.ProviderOpenAI: {"OPENAI_API_KEY"},
	aiconnectors.ProviderGemini: {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	aiconnectors.ProviderClaude: {"ANTHROPIC_API_KEY"},
	aiconnectors.ProviderCohere: {"COHERE_API_KEY"},
	aiconnectors.ProviderOllama: {"OLLAMA_HOST"},
}

// ConfigCheckResult holds the result of configuration validation
type ConfigCheckResult struct {
	Missing  []string          // Required variables that are missing
	Present  map[string]string // Variables that are set (masked values)
	Warnings []string          // Non-fatal warnings
	Model    string            // Default model the check was run for
}

// CheckRequiredConfig checks the credential the default model needs and
// reports every other well-known variable that is set
func CheckRequiredConfig(defaultModel string) *ConfigCheckResult {
	result := &ConfigCheckResult{
		Missing:  []string{},
		Present:  make(map[string]string),
		Warnings: []string{},
		Model:    defaultModel,
	}

	required := providerEnv[aiconnectors.ProviderForModel(defaultModel)]
	found := false
	for _, v := range required {
		if os.Getenv(v) != "" {
			found = true
		}
	}
	if !found && len(required) > 0 {
		result.Missing = append(result.Missing, required[0])
	}

	for _, v := range config.WellKnownEnv() {
		if val := os.Getenv(v); val != "" {
			result.Present[v] = maskSecret(val)
		}
	}

	if os.Getenv("DATABASE_URL") == "" && os.Getenv(config.EnvPrefix+"STORAGE_DSN") == "" {
		result.Warnings = append(result.Warnings, "no database configured; history and projects are lost on restart")
	}
	if os.Getenv("JWT_SECRET") == "" && os.Getenv(config.EnvPrefix+"AUTH_JWT_SECRET") == "" {
		result.Warnings = append(result.Warnings, "JWT_SECRET is not set; the API accepts unauthenticated requests")
	}

	return result
}

// PrintConfigCheck prints the configuration check results
func PrintConfigCheck(result *ConfigCheckResult) {
	fmt.Println("=== Configuration Check ===")
	fmt.Printf("Default model: %s\n", result.Model)
	fmt.Println("")

	if len(result.Missing) > 0 {
		fmt.Println("❌ Missing required variables:")
		for _, v := range result.Missing {
			fmt.Printf("   - %s\n", v)
		}
		fmt.Println("")
	}

	if len(result.Present) > 0 {
		fmt.Println("✓ Configured variables:")
		keys := make([]string, 0, len(result.Present))
		for k := range result.Present {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("   - %s = %s\n", k, result.Present[k])
		}
		fmt.Println("")
	}

	for _, w := range result.Warnings {
		fmt.Printf("⚠ Warning: %s\n", w)
	}

	if len(result.Missing) == 0 {
		fmt.Println("✓ All required configuration is present")
	}

	fmt.Println("============================")
}

// maskSecret masks a secret value for display, showing only first and last 2 chars
func maskSecret(value string) string {
	if len(value) <= 8 {
		return "****"
	}
	return value[:2] + "****" + value[len(value)-2:]
}

// LoadEnvFile loads variables from a dotenv file. Variables already set in
// the environment win. A missing file is not an error.
func LoadEnvFile(filename string) error {
	if filename == "" {
		return nil
	}
	if err := godotenv.Load(filename); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return nil
}

// EnvCommand returns the env command
func EnvCommand() *cli.Command {
	return &cli.Command{
		Name:  "env",
		Usage: "Inspect credential environment variables",
		Subcommands: []*cli.Command{
			{
				Name:  "check",
				Usage: "Report which credentials are set (values masked)",
				Action: func(c *cli.Context) error {
					cfg, err := config.LoadConfig(c.String("config"))
					if err != nil {
						return fmt.Errorf("failed to load config: %w", err)
					}
					result := CheckRequiredConfig(cfg.AI.DefaultModel)
					PrintConfigCheck(result)
					if len(result.Missing) > 0 {
						return cli.Exit("", 1)
					}
					return nil
				},
			},
		},
	}
}
