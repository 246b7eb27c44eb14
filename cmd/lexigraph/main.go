package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lexigraph/lexigraph/internal/config"
	"github.com/lexigraph/lexigraph/internal/query"
	"github.com/lexigraph/lexigraph/internal/store"
)

const defaultAddr = "localhost:9080"

// Build-time variables set via ldflags.
var (
	version   = "0.3.0"
	commit    = ""
	buildDate = ""
)

var (
	log        = logrus.New()
	cfg        *config.Config
	graphStore *store.DgraphStore
	engine     *query.Engine

	flagAddr    string
	flagFmt     string
	flagVerbose bool
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("lexigraph version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("lexigraph version %s-dev", version)
}

type configFile struct {
	// Flat format (legacy)
	Addr string `yaml:"addr"`
	// Profile format
	Profiles      map[string]configProfile `yaml:"profiles"`
	ActiveProfile string                   `yaml:"active_profile"`
}

type configProfile struct {
	Addr string `yaml:"addr"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "lexigraph",
		Short:   "Lexigraph CLI — lexical knowledge graph ingestion and traversal",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			resolveConfig()
			setupLogging()
			s, err := store.NewDgraphStore(flagAddr, log)
			if err != nil {
				fatal("connecting to graph store", err)
			}
			graphStore = s
			engine = query.NewEngine(graphStore, log)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if graphStore != nil {
				_ = graphStore.Close()
			}
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", defaultAddr, "Dgraph gRPC address (env: LEXIGRAPH_DGRAPH_ADDR)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table|quiet")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	convertCmd := newConvertCmd()
	convertCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) { // skip store setup
		resolveConfig()
		setupLogging()
	}

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newDistantCmd())
	rootCmd.AddCommand(newSimilarCmd())
	rootCmd.AddCommand(newPathCmd())
	rootCmd.AddCommand(newRenameCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	log.SetOutput(os.Stderr)
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
		return
	}
	level := logrus.WarnLevel
	if cfg != nil {
		if parsed, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			level = parsed
		}
	}
	log.SetLevel(level)
}

func resolveConfig() {
	// Flag takes precedence, then env, then config file.
	c, err := config.Load()
	if err != nil {
		fatal("loading configuration", err)
	}
	cfg = c
	if flagAddr == defaultAddr && cfg.DgraphAddr != "" {
		flagAddr = cfg.DgraphAddr
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	cfgPath := filepath.Join(home, ".lexigraph", "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return
	}

	resolvedAddr := cfg.Addr
	if cfg.Profiles != nil {
		profileName := cfg.ActiveProfile
		if profileName == "" {
			profileName = "default"
		}
		if p, ok := cfg.Profiles[profileName]; ok && p.Addr != "" {
			resolvedAddr = p.Addr
		}
	}
	if flagAddr == defaultAddr && resolvedAddr != "" {
		flagAddr = resolvedAddr
	}
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
