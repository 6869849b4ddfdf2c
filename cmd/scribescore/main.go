// Command scribescore measures transcription accuracy of speech-to-text
// output against reference text, specialized for psychiatric medication
// names and dosages.
//
// Usage:
//
//	scribescore analyze [-config file] [-enhanced] [-out dir] <original_file> <transcribed_file>
//	scribescore transcribe [-config file] [-models list] [-out dir] <audio_file>...
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rxscribe/scribescore/internal/analysis"
	"github.com/rxscribe/scribescore/internal/bench"
	"github.com/rxscribe/scribescore/internal/config"
	"github.com/rxscribe/scribescore/internal/correct"
	"github.com/rxscribe/scribescore/internal/correct/phonetic"
	"github.com/rxscribe/scribescore/internal/extract"
	"github.com/rxscribe/scribescore/internal/lexicon"
	"github.com/rxscribe/scribescore/internal/report"
	"github.com/rxscribe/scribescore/internal/score"
	"github.com/rxscribe/scribescore/pkg/provider/stt"
	oaistt "github.com/rxscribe/scribescore/pkg/provider/stt/openai"
	"github.com/rxscribe/scribescore/pkg/provider/stt/whisper"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		usage()
		return 1
	}

	switch os.Args[1] {
	case "analyze":
		return runAnalyze(os.Args[2:])
	case "transcribe":
		return runTranscribe(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "scribescore: unknown command %q\n\n", os.Args[1])
		usage()
		return 1
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage:
  scribescore analyze [-config file] [-enhanced] [-out dir] <original_file> <transcribed_file>
  scribescore transcribe [-config file] [-models list] [-out dir] <audio_file>...

Commands:
  analyze     score a transcribed text file against the original dictation text
  transcribe  run the configured speech-to-text model(s) over audio files`)
}

// ── analyze ─────────────────────────────────────────────────────────────────

func runAnalyze(args []string) int {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the YAML configuration file (built-in defaults when empty)")
	enhanced := fs.Bool("enhanced", false, "apply the correction lexicon and report raw vs corrected results")
	outDir := fs.String("out", "", "output directory for the JSON record (overrides config)")
	fs.Parse(args)

	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: scribescore analyze [flags] <original_file> <transcribed_file>")
		return 1
	}
	originalFile, transcribedFile := fs.Arg(0), fs.Arg(1)

	cfg, ok := loadConfig(*configPath)
	if !ok {
		return 1
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	slog.SetDefault(newLogger(cfg.LogLevel))

	scorer, err := buildScorer(cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	runner := analysis.NewRunner(scorer)

	thresholds := report.Thresholds{
		WordAccuracy:                cfg.Scoring.WordAccuracyThreshold,
		MedicationAccuracy:          cfg.Scoring.MedicationAccuracyThreshold,
		PromisingMedicationAccuracy: cfg.Scoring.PromisingMedicationThreshold,
	}

	if *enhanced {
		result, err := runner.AnalyzeEnhanced(originalFile, transcribedFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return 1
		}
		report.RenderEnhancedText(os.Stdout, result, thresholds)

		outPath := report.EnhancedOutputPath(cfg.Output.Dir, transcribedFile)
		if err := report.WriteJSON(outPath, result); err != nil {
			fmt.Printf("Error: %v\n", err)
			return 1
		}
		fmt.Printf("\nDetailed results saved to %s\n", outPath)
		return 0
	}

	result, err := runner.Analyze(originalFile, transcribedFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	report.RenderText(os.Stdout, result, thresholds)

	outPath := report.BasicOutputPath(cfg.Output.Dir)
	if err := report.WriteJSON(outPath, result); err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	fmt.Printf("\nDetailed results saved to %s\n", outPath)
	return 0
}

// buildScorer wires the lexicon, correction applier, and extractor the
// configuration asks for.
func buildScorer(cfg *config.Config) (*score.Scorer, error) {
	lex := lexicon.Default()
	if cfg.Lexicon.File != "" {
		loaded, err := lexicon.Load(cfg.Lexicon.File)
		if err != nil {
			return nil, err
		}
		lex = loaded
		slog.Info("lexicon loaded", "file", cfg.Lexicon.File, "drugs", len(lex.Drugs), "rules", len(lex.Rules))
	}

	var correctOpts []correct.Option
	if cfg.Correction.Phonetic.Enabled {
		matcher := phonetic.New(
			phonetic.WithPhoneticThreshold(cfg.Correction.Phonetic.Threshold),
			phonetic.WithFuzzyThreshold(cfg.Correction.Phonetic.FuzzyThreshold),
		)
		correctOpts = append(correctOpts, correct.WithPhoneticMatcher(matcher))
		slog.Debug("phonetic correction stage enabled",
			"threshold", cfg.Correction.Phonetic.Threshold,
			"fuzzy_threshold", cfg.Correction.Phonetic.FuzzyThreshold,
		)
	}

	applier, err := correct.New(lex, correctOpts...)
	if err != nil {
		return nil, err
	}
	extractor := extract.New(lex, extract.WithCorrector(applier))
	return score.New(extractor, applier), nil
}

// ── transcribe ──────────────────────────────────────────────────────────────

func runTranscribe(args []string) int {
	fs := flag.NewFlagSet("transcribe", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the YAML configuration file (built-in defaults when empty)")
	models := fs.String("models", "", "comma-separated model identifiers (overrides config)")
	outDir := fs.String("out", "", "output directory for transcripts and the summary JSON (overrides config)")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: scribescore transcribe [flags] <audio_file>...")
		return 1
	}

	cfg, ok := loadConfig(*configPath)
	if !ok {
		return 1
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *models != "" {
		cfg.Bench.Models = splitList(*models)
	}
	slog.SetDefault(newLogger(cfg.LogLevel))

	reg := config.NewRegistry()
	registerBuiltinProviders(reg)

	factory := func(model string) (stt.Provider, error) {
		entry := cfg.STT
		entry.Model = model
		return reg.CreateSTT(entry)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	harness := bench.New(factory, cfg.Bench.Models,
		bench.WithLanguage(cfg.Bench.Language),
		bench.WithOutputDir(cfg.Output.Dir),
	)

	runs, err := harness.Run(ctx, fs.Args())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	summaryPath := bench.SummaryPath(cfg.Output.Dir)
	if err := report.WriteJSON(summaryPath, runs); err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	fmt.Printf("All results saved to %s\n", summaryPath)

	fmt.Println("\nPERFORMANCE SUMMARY")
	for _, r := range runs {
		fmt.Printf("  %s on %s — load %.2fs, transcribe %.2fs\n",
			r.Model, filepath.Base(r.AudioFile), r.LoadSeconds, r.TranscribeSeconds)
	}
	return 0
}

// registerBuiltinProviders wires the STT provider factories that ship with
// scribescore into reg.
func registerBuiltinProviders(reg *config.Registry) {
	reg.RegisterSTT("whisper", func(entry config.ProviderEntry) (stt.Provider, error) {
		var opts []whisper.Option
		if entry.Model != "" {
			opts = append(opts, whisper.WithModel(entry.Model))
		}
		if lang := config.OptString(entry.Options, "language"); lang != "" {
			opts = append(opts, whisper.WithLanguage(lang))
		}
		return whisper.New(entry.BaseURL, opts...)
	})

	reg.RegisterSTT("whisper-native", func(entry config.ProviderEntry) (stt.Provider, error) {
		modelDir := config.OptString(entry.Options, "model_dir")
		if modelDir == "" {
			modelDir = "models"
		}
		modelPath := filepath.Join(modelDir, "ggml-"+entry.Model+".bin")
		var opts []whisper.NativeOption
		if lang := config.OptString(entry.Options, "language"); lang != "" {
			opts = append(opts, whisper.WithNativeLanguage(lang))
		}
		return whisper.NewNative(modelPath, opts...)
	})

	reg.RegisterSTT("openai", func(entry config.ProviderEntry) (stt.Provider, error) {
		var opts []oaistt.Option
		if entry.Model != "" {
			opts = append(opts, oaistt.WithModel(entry.Model))
		}
		if entry.BaseURL != "" {
			opts = append(opts, oaistt.WithBaseURL(entry.BaseURL))
		}
		return oaistt.New(entry.APIKey, opts...)
	})
}

// ── helpers ─────────────────────────────────────────────────────────────────

// loadConfig returns the defaults when path is empty, otherwise the parsed
// file. The second return value is false when loading failed.
func loadConfig(path string) (*config.Config, bool) {
	if path == "" {
		return config.Default(), true
	}
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "scribescore: config file %q not found — copy configs/example.yaml to get started\n", path)
		} else {
			fmt.Fprintf(os.Stderr, "scribescore: %v\n", err)
		}
		return nil, false
	}
	return cfg, true
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
