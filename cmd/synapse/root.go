package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/snappingturtle/synapse/config"
	"github.com/snappingturtle/synapse/neural"
)

// app carries state shared by every subcommand
type app struct {
	configPath string
	envFile    string
	debug      bool

	cfg     *config.Config
	log     *slog.Logger
	logFile *os.File
}

// newRootCmd builds the command tree over a; run it with a.execute
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "synapse",
		Short: "Animated neural network background",
		Long: `synapse simulates signals propagating through a procedurally generated
network of nodes. Run it live in the terminal, render posters and GIFs,
or inspect the generated topologies.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (.toml, .yaml, .yml)")
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file with "+config.EnvPrefix+"* overrides")
	pf.BoolVar(&a.debug, "debug", false, "write debug logs to "+logDir+"/"+logFileName)

	root.AddCommand(
		newSandboxCmd(a),
		newRenderCmd(a),
		newInspectCmd(a),
		newConfigCmd(a),
	)
	return root
}

// execute runs root and releases the log file afterwards
// cobra skips PersistentPostRun when a command fails, so cleanup lives here.
func (a *app) execute(root *cobra.Command) error {
	defer a.close()
	return root.Execute()
}

func (a *app) setup() error {
	a.log, a.logFile = setupLogging(a.debug)

	if err := config.LoadEnvFile(a.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log.Debug("config loaded", "path", a.configPath, "layout", cfg.Layout.Name)
	return nil
}

func (a *app) close() {
	if a.logFile == nil {
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	a.logFile.Close()
	a.logFile = nil
}

// applyOverrides folds command-line seed and layout into the loaded config
func (a *app) applyOverrides(seed int64, layout string) error {
	if layout != "" {
		if _, ok := neural.LayoutByName(layout); !ok {
			return fmt.Errorf("unknown layout %q (want %s or %s)", layout, neural.LayoutLayered, neural.LayoutGrid)
		}
		a.cfg.Layout.Name = layout
	}
	if seed != 0 {
		a.cfg.Simulation.Seed = seed
	}
	if a.cfg.Simulation.Seed == 0 {
		a.cfg.Simulation.Seed = time.Now().UnixNano()
	}
	return nil
}

// newSimulator builds a simulator from the effective config
func (a *app) newSimulator(opts ...neural.Option) *neural.Simulator {
	base := []neural.Option{
		neural.WithRand(rand.New(rand.NewSource(a.cfg.Simulation.Seed))),
		neural.WithLayout(a.cfg.NeuralLayout()),
		neural.WithLogger(a.log),
	}
	return neural.New(a.cfg.Params(), append(base, opts...)...)
}
