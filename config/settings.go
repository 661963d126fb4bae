// Package config provides harness settings loaded from a YAML file layered
// with environment variables.
//
// Loading order:
//  1. Built-in defaults
//  2. YAML config file (explicit path or ./hanoibench.yaml)
//  3. HANOIBENCH_* environment variable overrides
//  4. Validation
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings holds all harness configuration.
type Settings struct {
	LLM    LLMConfig    `yaml:"llm"`
	Run    RunConfig    `yaml:"run"`
	Solver SolverConfig `yaml:"solver"`
}

// LLMConfig holds LLM provider configuration.
type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	MaxTokens   uint32  `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// RunConfig holds experiment-level configuration.
type RunConfig struct {
	Puzzle      string `yaml:"puzzle"`
	PuzzleSizes []int  `yaml:"puzzle_sizes"`
	TemplateDir string `yaml:"template_dir"`
	DBPath      string `yaml:"db_path"`
}

// SolverConfig holds the session termination tunables.
type SolverConfig struct {
	TurnLimitMultiplier  float64 `yaml:"turn_limit_multiplier"`
	MoveLimitMultiplier  float64 `yaml:"move_limit_multiplier"`
	WindowSize           int     `yaml:"window_size"`
	RepeatedInvalidLimit int     `yaml:"repeated_invalid_limit"`
	StateRevisitLimit    int     `yaml:"state_revisit_limit"`
}

// providerInfo holds configuration for a specific LLM provider.
type providerInfo struct {
	defaultModel string
	apiKeyEnv    string
}

// Supported providers and their configuration.
var providers = map[string]providerInfo{
	"openai":     {"gpt-4o", "OPENAI_API_KEY"},
	"anthropic":  {"claude-sonnet-4-20250514", "ANTHROPIC_API_KEY"},
	"gemini":     {"gemini-2.5-flash", "GEMINI_API_KEY"},
	"openrouter": {"google/gemini-2.5-pro", "OPENROUTER_API_KEY"},
}

// Provider aliases map to canonical names.
var providerAliases = map[string]string{
	"claude": "anthropic",
	"google": "gemini",
	"gpt":    "openai",
}

// Defaults returns built-in settings: a 3-disk run against OpenAI with the
// standard termination tunables.
func Defaults() Settings {
	return Settings{
		LLM: LLMConfig{
			Provider:    "openai",
			MaxTokens:   4096,
			Temperature: 1.0,
		},
		Run: RunConfig{
			Puzzle:      "tower_of_hanoi",
			PuzzleSizes: []int{3},
			DBPath:      "hanoibench.db",
		},
		Solver: SolverConfig{
			TurnLimitMultiplier:  2.0,
			MoveLimitMultiplier:  10.0,
			WindowSize:           4,
			RepeatedInvalidLimit: 3,
			StateRevisitLimit:    2,
		},
	}
}

// Load builds settings from defaults, an optional YAML file, and environment
// overrides. An empty path falls back to ./hanoibench.yaml when present.
func Load(path string) (Settings, error) {
	settings := Defaults()

	if path == "" {
		if _, err := os.Stat("hanoibench.yaml"); err == nil {
			path = "hanoibench.yaml"
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("reading config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return Settings{}, fmt.Errorf("parsing config file %q: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&settings); err != nil {
		return Settings{}, err
	}

	settings.LLM.Provider = normalizeProvider(settings.LLM.Provider)
	if settings.LLM.Model == "" {
		info, ok := providers[settings.LLM.Provider]
		if ok {
			settings.LLM.Model = info.defaultModel
		}
	}

	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Validate checks field ranges. Setup errors surface here, before any
// session starts.
func (s Settings) Validate() error {
	if _, ok := providers[s.LLM.Provider]; !ok {
		return fmt.Errorf("unknown provider: %q", s.LLM.Provider)
	}
	if s.LLM.Temperature < 0.0 || s.LLM.Temperature > 2.0 {
		return fmt.Errorf("temperature must be between 0.0 and 2.0, got %g", s.LLM.Temperature)
	}
	if len(s.Run.PuzzleSizes) == 0 {
		return fmt.Errorf("no puzzle sizes specified")
	}
	for i, size := range s.Run.PuzzleSizes {
		if size <= 0 {
			return fmt.Errorf("puzzle_sizes[%d] must be a positive integer, got %d", i, size)
		}
	}
	if s.Solver.TurnLimitMultiplier <= 0 {
		return fmt.Errorf("turn_limit_multiplier must be positive")
	}
	if s.Solver.MoveLimitMultiplier <= 0 {
		return fmt.Errorf("move_limit_multiplier must be positive")
	}
	if s.Solver.WindowSize <= 0 {
		return fmt.Errorf("window_size must be positive")
	}
	if s.Solver.RepeatedInvalidLimit <= 0 {
		return fmt.Errorf("repeated_invalid_limit must be positive")
	}
	if s.Solver.StateRevisitLimit <= 0 {
		return fmt.Errorf("state_revisit_limit must be positive")
	}
	return nil
}

// APIKeyFor returns the API key for a provider from environment variables.
func APIKeyFor(provider string) (string, error) {
	provider = normalizeProvider(provider)
	info, ok := providers[provider]
	if !ok {
		return "", fmt.Errorf("unknown provider: %q", provider)
	}
	key := os.Getenv(info.apiKeyEnv)
	if key == "" {
		return "", fmt.Errorf("missing API key: set %s", info.apiKeyEnv)
	}
	return key, nil
}

// normalizeProvider converts provider aliases to canonical names.
func normalizeProvider(provider string) string {
	provider = strings.ToLower(provider)
	if canonical, ok := providerAliases[provider]; ok {
		return canonical
	}
	return provider
}

func applyEnvOverrides(s *Settings) error {
	if v := os.Getenv("HANOIBENCH_PROVIDER"); v != "" {
		s.LLM.Provider = v
	}
	if v := os.Getenv("HANOIBENCH_MODEL"); v != "" {
		s.LLM.Model = v
	}
	if v := os.Getenv("HANOIBENCH_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid HANOIBENCH_TEMPERATURE %q: %w", v, err)
		}
		s.LLM.Temperature = f
	}
	if v := os.Getenv("HANOIBENCH_DB"); v != "" {
		s.Run.DBPath = v
	}
	if v := os.Getenv("HANOIBENCH_TEMPLATE_DIR"); v != "" {
		s.Run.TemplateDir = v
	}
	if v := os.Getenv("HANOIBENCH_SIZES"); v != "" {
		sizes, err := parseSizes(v)
		if err != nil {
			return fmt.Errorf("invalid HANOIBENCH_SIZES %q: %w", v, err)
		}
		s.Run.PuzzleSizes = sizes
	}
	return nil
}

func parseSizes(v string) ([]int, error) {
	parts := strings.Split(v, ",")
	sizes := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}
