// Package main provides the CLI entrypoint for rotsolve.
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"rotsolve/internal/cipher"
	"rotsolve/internal/config"
	"rotsolve/internal/freq"
	"rotsolve/internal/model"
	"rotsolve/internal/report"
	"rotsolve/internal/solver"
	"rotsolve/internal/store"
	"rotsolve/internal/tui"
)

const (
	defaultPreviewLen = 64
	defaultBarWidth   = 0 // auto-size to terminal
)

var (
	inputText string
	inputFile string

	encryptShift  int
	encryptRandom bool
	decryptShift  int

	solveAll        bool
	solveNoHistory  bool
	solvePreviewLen int

	freqBarWidth int

	historyLast int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rotsolve",
		Short:         "Caesar cipher toolkit with a statistical solver",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTUICmd,
	}
	rootCmd.Flags().StringVar(&inputText, "text", "", "initial ciphertext")

	rootCmd.AddCommand(newEncryptCmd())
	rootCmd.AddCommand(newDecryptCmd())
	rootCmd.AddCommand(newSolveCmd())
	rootCmd.AddCommand(newFreqCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings := mergedSettings(cmd, fileCfg)

	var st *store.Store
	if !settings.NoHistory {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			logErrf("failed to open history db: %v\n", err)
			st = nil
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logErrf("failed to close db: %v\n", cerr)
				}
			}()
		}
	}

	m := tui.NewModel(st, settings, inputText)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newEncryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt text with a known shift",
		Args:  cobra.NoArgs,
		RunE:  runEncryptCmd,
	}
	addInputFlags(cmd)
	cmd.Flags().IntVar(&encryptShift, "shift", 0, "cipher shift (normalized modulo 26)")
	cmd.Flags().BoolVar(&encryptRandom, "random", false, "pick a random shift (printed to stderr)")
	return cmd
}

func runEncryptCmd(cmd *cobra.Command, _ []string) error {
	text, err := readInput(cmd)
	if err != nil {
		return err
	}
	shift := encryptShift
	if encryptRandom {
		shift = rand.New(rand.NewSource(time.Now().UnixNano())).Intn(26)
		logErrf("shift: %d\n", shift)
	}
	return writeOutput(cmd, cipher.Encrypt(text, shift))
}

func newDecryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt text with a known shift",
		Args:  cobra.NoArgs,
		RunE:  runDecryptCmd,
	}
	addInputFlags(cmd)
	cmd.Flags().IntVar(&decryptShift, "shift", 0, "cipher shift (normalized modulo 26)")
	return cmd
}

func runDecryptCmd(cmd *cobra.Command, _ []string) error {
	text, err := readInput(cmd)
	if err != nil {
		return err
	}
	return writeOutput(cmd, cipher.Decrypt(text, decryptShift))
}

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Recover the shift of a Caesar-encrypted text",
		Args:  cobra.NoArgs,
		RunE:  runSolveCmd,
	}
	addInputFlags(cmd)
	cmd.Flags().BoolVar(&solveAll, "all", false, "show all 26 scored candidates")
	cmd.Flags().BoolVar(&solveNoHistory, "no-history", false, "do not record this solve")
	cmd.Flags().IntVar(&solvePreviewLen, "preview-length", defaultPreviewLen, "history preview length in characters")
	return cmd
}

func runSolveCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings := mergedSettings(cmd, fileCfg)

	ciphertext, err := readInput(cmd)
	if err != nil {
		return err
	}

	candidates := solver.Candidates(ciphertext)
	best := solver.Best(candidates)

	if solveAll {
		if err := report.RenderCandidates(cmd.OutOrStdout(), candidates, best.Shift, settings.PreviewLen); err != nil {
			return fmt.Errorf("failed to render candidates: %w", err)
		}
	} else {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "shift: %d\n%s\n", best.Shift, best.Plaintext); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	letters := freq.LetterCount(ciphertext)
	if settings.NoHistory || letters == 0 {
		return nil
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open history db: %v\n", err)
		return nil
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	rec := model.SolveRecord{
		SolvedAt: time.Now(),
		Preview:  report.Preview(ciphertext, settings.PreviewLen),
		Letters:  letters,
		Shift:    best.Shift,
		Score:    best.Score,
	}
	if _, err := st.InsertSolve(cmd.Context(), rec); err != nil {
		logErrf("failed to record solve: %v\n", err)
	}
	return nil
}

func newFreqCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freq",
		Short: "Show letter frequencies against the English reference",
		Args:  cobra.NoArgs,
		RunE:  runFreqCmd,
	}
	addInputFlags(cmd)
	cmd.Flags().IntVar(&freqBarWidth, "bar-width", defaultBarWidth, "bar width in characters (0 = auto)")
	return cmd
}

func runFreqCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "bar-width", &freqBarWidth, fileCfg.Report.BarWidth)

	text, err := readInput(cmd)
	if err != nil {
		return err
	}
	if err := report.RenderFrequency(cmd.OutOrStdout(), freq.Distribution(text), freqBarWidth); err != nil {
		return fmt.Errorf("failed to render frequencies: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded solves",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N solves (0 = all)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "last", &historyLast, fileCfg.Solve.Limit)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	recs, err := st.ListSolves(context.Background(), model.HistoryQuery{Last: historyLast})
	if err != nil {
		return fmt.Errorf("failed to list solves: %w", err)
	}
	total, err := st.SolveCount(context.Background())
	if err != nil {
		return fmt.Errorf("failed to count solves: %w", err)
	}
	if err := report.RenderHistory(cmd.OutOrStdout(), recs, total); err != nil {
		return fmt.Errorf("failed to render history: %w", err)
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
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&inputText, "text", "", "input text")
	cmd.Flags().StringVar(&inputFile, "file", "", "input file (stdin when neither --text nor --file is set)")
}

// readInput resolves the input source: --text beats --file beats stdin.
func readInput(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("text") {
		return inputText, nil
	}
	if inputFile != "" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", inputFile, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func writeOutput(cmd *cobra.Command, text string) error {
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func mergedSettings(cmd *cobra.Command, fileCfg config.FileConfig) model.Settings {
	previewLen := defaultPreviewLen
	if cmd.Flags().Lookup("preview-length") != nil {
		previewLen = solvePreviewLen
	}
	applyIntConfig(cmd, "preview-length", &previewLen, fileCfg.Solve.PreviewLen)

	noHistory := solveNoHistory
	if !flagChanged(cmd, "no-history") && fileCfg.Solve.History != nil {
		noHistory = !*fileCfg.Solve.History
	}

	return model.Settings{
		PreviewLen: previewLen,
		NoHistory:  noHistory,
	}
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func flagChanged(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# rotsolve configuration
# Uncomment a value to enable it. CLI flags override config values.

[solve]
# history = true           # Record solves in the history database
# preview-length = %d      # Characters of input kept in history
# history-limit = 0        # Default solves shown by history (0 = all)

[report]
# bar-width = %d           # Frequency bar width (0 = auto)
`,
		defaultPreviewLen,
		defaultBarWidth,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
