// Command matmul verifies, benchmarks and inspects the matrix multiply engine.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	matmul "github.com/tektwister/ai_engineering/matmul_engine"
	"github.com/tektwister/ai_engineering/matmul_engine/pkg/config"
)

// app carries the state shared by all subcommands.
type app struct {
	cfg      *config.Config
	engine   *matmul.Engine
	log      zerolog.Logger
	logLevel string
	out      io.Writer
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{out: stdout}

	root := &cobra.Command{
		Use:          "matmul",
		Short:        "Dense square matrix multiplication kernels",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides MATMUL_LOG_LEVEL")

	root.AddCommand(
		newVerifyCmd(a),
		newPlanCmd(a),
		newBenchCmd(a),
		newCompareCmd(a),
		newCPUInfoCmd(a),
	)
	return root
}

// setup loads configuration, builds the logger and the engine.
func (a *app) setup(stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	levelName := cfg.LogLevel
	if a.logLevel != "" {
		levelName = a.logLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		return fmt.Errorf("log level %q: %w", levelName, err)
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()

	a.engine, err = matmul.NewEngine(matmul.WithPolicy(cfg.Policy()))
	if err != nil {
		return err
	}
	a.log.Debug().Str("policy", fmt.Sprintf("%+v", a.engine.Policy())).Msg("engine ready")
	return nil
}

var titler = cases.Title(language.English)

// heading prints a boxed section title.
func heading(w io.Writer, title string) {
	title = titler.String(title)
	line := strings.Repeat("═", len([]rune(title))+4)
	fmt.Fprintf(w, "╔%s╗\n║  %s  ║\n╚%s╝\n", line, title, line)
}
