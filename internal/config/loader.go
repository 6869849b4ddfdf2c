package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ValidProviderNames lists the STT provider names the tools ship with.
// Used by [Validate] to reject unrecognised names.
var ValidProviderNames = []string{"whisper", "whisper-native", "openai"}

// Load reads the YAML configuration file at path and returns a validated
// [Config]. Fields absent from the file keep their [Default] values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of the defaults and
// validates the result. Useful in tests where configs are constructed from
// string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	for _, th := range []struct {
		name  string
		value float64
	}{
		{"scoring.word_accuracy_threshold", cfg.Scoring.WordAccuracyThreshold},
		{"scoring.medication_accuracy_threshold", cfg.Scoring.MedicationAccuracyThreshold},
		{"scoring.promising_medication_threshold", cfg.Scoring.PromisingMedicationThreshold},
	} {
		if th.value < 0 || th.value > 100 {
			errs = append(errs, fmt.Errorf("%s %.2f is out of range [0, 100]", th.name, th.value))
		}
	}

	for _, th := range []struct {
		name  string
		value float64
	}{
		{"correction.phonetic.threshold", cfg.Correction.Phonetic.Threshold},
		{"correction.phonetic.fuzzy_threshold", cfg.Correction.Phonetic.FuzzyThreshold},
	} {
		if th.value <= 0 || th.value > 1 {
			errs = append(errs, fmt.Errorf("%s %.2f is out of range (0, 1]", th.name, th.value))
		}
	}

	if cfg.STT.Name != "" && !slices.Contains(ValidProviderNames, cfg.STT.Name) {
		errs = append(errs, fmt.Errorf("stt.name %q is unknown; valid values: %v", cfg.STT.Name, ValidProviderNames))
	}

	for i, m := range cfg.Bench.Models {
		if m == "" {
			errs = append(errs, fmt.Errorf("bench.models[%d] is empty", i))
		}
	}

	return errors.Join(errs...)
}
