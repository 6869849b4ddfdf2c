// Package config provides the configuration schema, loader, and STT provider
// registry for the scribescore tools.
package config

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader];
// [Default] supplies the values used when no file is given.
type Config struct {
	// LogLevel controls verbosity. Defaults to "info".
	LogLevel LogLevel `yaml:"log_level"`

	Output     OutputConfig     `yaml:"output"`
	Lexicon    LexiconConfig    `yaml:"lexicon"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Correction CorrectionConfig `yaml:"correction"`
	STT        ProviderEntry    `yaml:"stt"`
	Bench      BenchConfig      `yaml:"bench"`
}

// OutputConfig controls where result records are written.
type OutputConfig struct {
	// Dir is the directory for JSON records and transcript files.
	// Defaults to the current directory.
	Dir string `yaml:"dir"`
}

// LexiconConfig selects the domain vocabulary.
type LexiconConfig struct {
	// File is an optional YAML lexicon overriding the compiled-in defaults.
	File string `yaml:"file"`
}

// ScoringConfig holds the accuracy requirements reports are judged against.
type ScoringConfig struct {
	// WordAccuracyThreshold and MedicationAccuracyThreshold must both be met
	// for a strict pass. Percentages in [0, 100].
	WordAccuracyThreshold       float64 `yaml:"word_accuracy_threshold"`
	MedicationAccuracyThreshold float64 `yaml:"medication_accuracy_threshold"`

	// PromisingMedicationThreshold is the lower medication-accuracy bar for
	// the "promising" tier of enhanced runs.
	PromisingMedicationThreshold float64 `yaml:"promising_medication_threshold"`
}

// CorrectionConfig tunes the correction applier.
type CorrectionConfig struct {
	Phonetic PhoneticConfig `yaml:"phonetic"`
}

// PhoneticConfig controls the optional pronunciation-similarity correction
// stage. Disabled unless Enabled is true; the table pass always runs.
type PhoneticConfig struct {
	Enabled bool `yaml:"enabled"`

	// Threshold is the minimum Jaro-Winkler score for phonetically-matched
	// candidates; FuzzyThreshold for the pure-similarity fallback.
	// Both in (0, 1]. Defaults: 0.70 and 0.85.
	Threshold      float64 `yaml:"threshold"`
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
}

// ProviderEntry is the configuration block for an STT provider.
// The Name field is used to look up the constructor in the [Registry].
type ProviderEntry struct {
	// Name selects the registered provider implementation
	// (e.g., "whisper", "whisper-native", "openai").
	Name string `yaml:"name"`

	// APIKey is the authentication key for the provider's API if any.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the provider's default endpoint
	// (e.g., "http://localhost:8080" for a local whisper server).
	BaseURL string `yaml:"base_url"`

	// Model selects a specific model within the provider. For
	// "whisper-native" this is overridden per bench run; see bench.models.
	Model string `yaml:"model"`

	// Options holds provider-specific configuration values not covered by
	// the standard fields above (e.g., model_dir for "whisper-native").
	Options map[string]any `yaml:"options"`
}

// BenchConfig controls the model benchmark harness.
type BenchConfig struct {
	// Models lists the model identifiers to benchmark, in run order.
	Models []string `yaml:"models"`

	// Language is the BCP-47 recognition language. Defaults to "en".
	Language string `yaml:"language"`
}

// Default returns the configuration used when no file is supplied:
// info logging, current-directory output, 95/95 pass thresholds with a 90
// promising tier, phonetic stage off, and a local whisper server backend.
func Default() *Config {
	return &Config{
		LogLevel: LogInfo,
		Output:   OutputConfig{Dir: "."},
		Scoring: ScoringConfig{
			WordAccuracyThreshold:        95,
			MedicationAccuracyThreshold:  95,
			PromisingMedicationThreshold: 90,
		},
		Correction: CorrectionConfig{
			Phonetic: PhoneticConfig{
				Enabled:        false,
				Threshold:      0.70,
				FuzzyThreshold: 0.85,
			},
		},
		STT: ProviderEntry{
			Name:    "whisper",
			BaseURL: "http://localhost:8080",
		},
		Bench: BenchConfig{
			Models:   []string{"base", "small.en", "medium.en"},
			Language: "en",
		},
	}
}
