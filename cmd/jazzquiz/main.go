// Package main provides the CLI entrypoint for jazzquiz.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/jazzquiz/internal/cadence"
	"github.com/verte-zerg/jazzquiz/internal/config"
	"github.com/verte-zerg/jazzquiz/internal/generator"
	"github.com/verte-zerg/jazzquiz/internal/model"
	"github.com/verte-zerg/jazzquiz/internal/playback"
	"github.com/verte-zerg/jazzquiz/internal/quiz"
	"github.com/verte-zerg/jazzquiz/internal/scoring"
	"github.com/verte-zerg/jazzquiz/internal/stats"
	"github.com/verte-zerg/jazzquiz/internal/statsui"
	"github.com/verte-zerg/jazzquiz/internal/store"
	"github.com/verte-zerg/jazzquiz/internal/tui"
)

const (
	defaultQuestions       = 10
	defaultKeys            = "all"
	defaultMode            = "full"
	defaultExtendedV       = "basic"
	defaultSpeedSeconds    = 30
	defaultWeakTop         = 4
	defaultWeakFactor      = 2.0
	defaultWeakWindow      = 20
	defaultWeakMinAttempts = 3
	defaultCurveWindow     = 10
	defaultExportCount     = 12
)

var defaultCadences = []string{"major"}

var (
	practiceQuestions       int
	practiceKeys            string
	practiceMode            string
	practiceCadences        []string
	practiceExtendedV       string
	practiceMinorMajor      bool
	practiceSpeedSeconds    int
	practicePosition        int
	practicePair            int
	practiceAuralCandidates []string
	practiceFocusWeak       bool
	practiceWeakTop         int
	practiceWeakFactor      float64
	practiceWeakWindow      int
	practiceWeakMinAttempts int

	statsMode        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool

	weakMinAttempts int
	weakTop         int

	exportOut       string
	exportCount     int
	exportKeys      string
	exportCadences  []string
	exportExtendedV string
	exportBPM       float64

	profileFormat string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "jazzquiz",
		Short:         "TUI jazz harmony trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	flags := rootCmd.Flags()
	flags.IntVar(&practiceQuestions, "questions", defaultQuestions, "questions per session")
	flags.StringVar(&practiceKeys, "keys", defaultKeys, "key difficulty: all, easy, medium, hard")
	flags.StringVar(&practiceMode, "mode", defaultMode, "drill mode ("+strings.Join(modeNames(), ", ")+")")
	flags.StringSliceVar(&practiceCadences, "cadences", defaultCadences, "cadence types to mix ("+strings.Join(cadenceNames(), ", ")+")")
	flags.StringVar(&practiceExtendedV, "extended-v", defaultExtendedV, "V chord quality: basic, ninth, thirteenth, flat-nine, altered, random")
	flags.BoolVar(&practiceMinorMajor, "minor-major-tonic", false, "use a minor-major seventh tonic in minor cadences")
	flags.IntVar(&practiceSpeedSeconds, "speed-seconds", defaultSpeedSeconds, "seconds per speed round question")
	flags.IntVar(&practicePosition, "position", -1, "chord index for isolated chord mode (-1 draws one)")
	flags.IntVar(&practicePair, "pair", -1, "chord pair for common tones and resolution modes (-1 draws one)")
	flags.StringSliceVar(&practiceAuralCandidates, "aural-candidates", nil, "cadence types offered in aural mode (default: all)")
	flags.BoolVar(&practiceFocusWeak, "focus-weak", false, "bias practice toward weak keys")
	flags.IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak keys to focus on")
	flags.Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "extra weight for weak keys")
	flags.IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weak keys")
	flags.IntVar(&practiceWeakMinAttempts, "weak-min-attempts", defaultWeakMinAttempts, "attempts a key must exceed before it can count as weak")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newWeakCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newProfileCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	p := fileCfg.Practice
	applyIntConfig(cmd, "questions", &practiceQuestions, p.Questions)
	applyStringConfig(cmd, "keys", &practiceKeys, p.Keys)
	applyStringConfig(cmd, "mode", &practiceMode, p.Mode)
	applyStringSliceConfig(cmd, "cadences", &practiceCadences, p.Cadences)
	applyStringConfig(cmd, "extended-v", &practiceExtendedV, p.ExtendedV)
	applyBoolConfig(cmd, "minor-major-tonic", &practiceMinorMajor, p.MinorMajorTonic)
	applyIntConfig(cmd, "speed-seconds", &practiceSpeedSeconds, p.SpeedRoundSeconds)
	applyIntConfig(cmd, "position", &practicePosition, p.Position)
	applyIntConfig(cmd, "pair", &practicePair, p.PairIndex)
	applyStringSliceConfig(cmd, "aural-candidates", &practiceAuralCandidates, p.AuralCandidates)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, p.FocusWeak)
	applyIntConfig(cmd, "weak-top", &practiceWeakTop, p.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, p.WeakFactor)
	applyIntConfig(cmd, "weak-window", &practiceWeakWindow, p.WeakWindow)
	applyIntConfig(cmd, "weak-min-attempts", &practiceWeakMinAttempts, p.WeakMinAttempts)

	cfg := model.Config{
		Questions:         practiceQuestions,
		KeyDifficulty:     practiceKeys,
		Mode:              practiceMode,
		CadenceTypes:      practiceCadences,
		ExtendedV:         practiceExtendedV,
		MinorMajorTonic:   practiceMinorMajor,
		SpeedRoundSeconds: practiceSpeedSeconds,
		Position:          practicePosition,
		PairIndex:         practicePair,
		AuralCandidates:   practiceAuralCandidates,
		FocusWeak:         practiceFocusWeak,
		WeakTop:           practiceWeakTop,
		WeakFactor:        practiceWeakFactor,
		WeakWindow:        practiceWeakWindow,
		WeakMinAttempts:   practiceWeakMinAttempts,
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	var weakKeys []string
	if cfg.FocusWeak {
		aggs, err := st.GetWeakKeys(context.Background(), cfg.WeakWindow, cfg.Mode)
		if err != nil {
			logErrf("failed to load weak keys: %v\n", err)
		} else {
			weakKeys = stats.SelectWeakKeys(aggs, cfg.WeakTop, cfg.WeakMinAttempts)
			if len(weakKeys) == 0 {
				logErrln("no stats available for weak-key focus yet; drawing keys uniformly")
			}
		}
	}

	settings, err := generator.SettingsFromConfig(cfg, weakKeys)
	if err != nil {
		return err
	}

	m := tui.NewModel(cfg, settings, st, generator.New(), config.DefaultExportDir())
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsMode, "mode", "", "drill mode filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the interactive view")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsMode != "" {
		if _, ok := quiz.ParseMode(statsMode); !ok {
			return fmt.Errorf("unknown --mode %q", statsMode)
		}
	}
	if statsCurveWindow < 1 {
		return fmt.Errorf("--curve-window must be >= 1")
	}

	cfg := model.StatsConfig{
		Mode:        statsMode,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		report, err := stats.BuildReport(cmd.Context(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return report.Render(cmd.OutOrStdout(), cfg, stats.TerminalWidth())
	}

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newWeakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weak",
		Short: "List lifetime weakest keys",
		Args:  cobra.NoArgs,
		RunE:  runWeakCmd,
	}
	cmd.Flags().IntVar(&weakMinAttempts, "min-attempts", defaultWeakMinAttempts, "attempts a key must exceed before it is ranked")
	cmd.Flags().IntVar(&weakTop, "top", 0, "number of keys to list (0 lists all)")
	return cmd
}

func runWeakCmd(cmd *cobra.Command, _ []string) error {
	profile, err := loadProfile(cmd.Context())
	if err != nil {
		return err
	}
	return stats.RenderWeakKeys(cmd.OutOrStdout(), profile.Stats.WeakestKeys(weakMinAttempts, weakTop))
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export random cadences to a MIDI file",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportOut, "out", filepath.Join(config.DefaultExportDir(), "drill.mid"), "output file")
	cmd.Flags().IntVar(&exportCount, "count", defaultExportCount, "number of cadences")
	cmd.Flags().StringVar(&exportKeys, "keys", defaultKeys, "key difficulty: all, easy, medium, hard")
	cmd.Flags().StringSliceVar(&exportCadences, "cadences", cadenceNames(), "cadence types to mix")
	cmd.Flags().StringVar(&exportExtendedV, "extended-v", defaultExtendedV, "V chord quality")
	cmd.Flags().Float64Var(&exportBPM, "bpm", playback.DefaultBPM, "tempo")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	if exportCount <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	if exportBPM <= 0 {
		return fmt.Errorf("--bpm must be > 0")
	}
	settings := generator.Settings{
		Count:      exportCount,
		Mode:       quiz.FullProgression,
		Difficulty: cadence.ParseDifficulty(exportKeys),
		Types:      cadence.ParseTypes(exportCadences),
		ExtendedV:  cadence.ParseExtendedV(exportExtendedV),
	}
	questions := generator.New().Questions(settings)
	cadences := make([]cadence.Cadence, len(questions))
	for i, q := range questions {
		cadences[i] = q.Cadence
	}
	if err := playback.ExportCadences(exportOut, cadences, exportBPM); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	out := cmd.OutOrStdout()
	for i, c := range cadences {
		if _, err := fmt.Fprintf(out, "%2d. %s\n", i+1, c); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	logErrf("Wrote %s\n", exportOut)
	return nil
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Print level, streak and lifetime stats",
		Args:  cobra.NoArgs,
		RunE:  runProfileCmd,
	}
	cmd.Flags().StringVar(&profileFormat, "format", "yaml", "output format: yaml or json")
	return cmd
}

func runProfileCmd(cmd *cobra.Command, _ []string) error {
	profile, err := loadProfile(cmd.Context())
	if err != nil {
		return err
	}
	return writeProfile(cmd.OutOrStdout(), profile, profileFormat)
}

func writeProfile(w io.Writer, profile scoring.Profile, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(profile); err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(profile); err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown --format %q (use yaml or json)", format)
	}
}

func loadProfile(ctx context.Context) (scoring.Profile, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return scoring.Profile{}, fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	profile, err := st.LoadProfile(ctx)
	if err != nil {
		return scoring.Profile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target *[]string, value []string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func modeNames() []string {
	names := make([]string, len(quiz.AllModes))
	for i, m := range quiz.AllModes {
		names[i] = m.String()
	}
	return names
}

func cadenceNames() []string {
	names := make([]string, len(cadence.AllTypes))
	for i, t := range cadence.AllTypes {
		names[i] = t.String()
	}
	return names
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# jazzquiz configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# questions = %d                # Questions per session
# keys = %q                  # Key difficulty: all, easy, medium, hard
# mode = %q                  # One of: %s
# cadences = ["major"]          # Cadence types: %s
# extended-v = %q           # basic, ninth, thirteenth, flat-nine, altered, random
# minor-major-tonic = false     # Minor-major seventh tonic in minor cadences
# speed-seconds = %d            # Seconds per speed round question
# position = -1                 # Isolated chord index (-1 draws one)
# pair = -1                     # Chord pair for common tones/resolution (-1 draws one)
# aural-candidates = []         # Cadence types offered in aural mode (empty: all)
# focus-weak = false            # Bias practice toward weak keys
# weak-top = %d                  # Number of weak keys to focus on
# weak-factor = %.1f            # Extra weight for weak keys
# weak-window = %d              # Number of recent sessions to compute weak keys
# weak-min-attempts = %d         # Attempts a key must exceed to count as weak
`,
		defaultQuestions,
		defaultKeys,
		defaultMode,
		strings.Join(modeNames(), ", "),
		strings.Join(cadenceNames(), ", "),
		defaultExtendedV,
		defaultSpeedSeconds,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
		defaultWeakMinAttempts,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Questions <= 0 {
		return fmt.Errorf("--questions must be > 0")
	}
	if _, ok := quiz.ParseMode(cfg.Mode); !ok {
		return fmt.Errorf("--mode must be one of: %s", strings.Join(modeNames(), ", "))
	}
	if cfg.SpeedRoundSeconds <= 0 {
		return fmt.Errorf("--speed-seconds must be > 0")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	if cfg.WeakMinAttempts < 0 {
		return fmt.Errorf("--weak-min-attempts must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
