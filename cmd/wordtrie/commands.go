package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/wordtrie/internal/cli"
	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/server"
	"github.com/bastiangx/wordtrie/pkg/session"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/bastiangx/wordtrie/pkg/web"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// app is what every command needs after setup.
type app struct {
	config     *config.Config
	configPath string
	completer  *suggest.Completer
	session    *session.Session
}

// setup loads config, seeds the completer and opens a session.
func setup() (*app, error) {
	logger.SetDebug(debugMode)

	cfg, activePath, err := config.LoadConfigWithPriority(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(activePath))

	completer := suggest.NewCompleter(suggest.Options{
		DefaultLimit: cfg.Dict.DefaultLimit,
		MaxLimit:     cfg.Server.MaxLimit,
		HotCacheSize: cfg.Dict.HotCacheSize,
	})

	if !cfg.Dict.SkipBuiltinSeed {
		completer.Seed(dictionary.DefaultEntries())
	}

	extra := dictPath
	if extra == "" {
		extra = cfg.Dict.SeedPath
	}
	if extra != "" {
		if err := seedFromFile(completer, extra); err != nil {
			return nil, err
		}
	}
	log.Debugf("Dictionary ready: %s words", utils.FormatWithCommas(completer.WordCount()))

	sess := session.New(completer, session.Options{
		Limit:         cfg.Dict.DefaultLimit,
		RankBy:        cfg.Dict.Rank(),
		MaxActivities: cfg.Dict.ActivitySize,
	})

	return &app{config: cfg, configPath: activePath, completer: completer, session: sess}, nil
}

func seedFromFile(completer *suggest.Completer, name string) error {
	resolver, err := utils.NewPathResolver(AppName)
	if err != nil {
		return fmt.Errorf("failed to init path resolver: %w", err)
	}
	path, err := resolver.ResolveFile(name)
	if err != nil {
		return fmt.Errorf("dictionary %s: %w", name, err)
	}
	entries, err := dictionary.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	completer.Seed(entries)
	log.Debugf("Seeded %d entries from %s", len(entries), path)
	return nil
}

func createServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MessagePack requests on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			sigHandler()
			a, err := setup()
			if err != nil {
				return err
			}
			showStartupInfo(a)

			srv := server.NewServer(a.session, a.completer, a.config, os.Stdin, os.Stdout)
			if err := srv.Start(); err != nil {
				return fmt.Errorf("server stopped: %w", err)
			}
			return nil
		},
	}
}

func createHTTPCmd() *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				a.config.HTTP.Host = host
			}
			if cmd.Flags().Changed("port") {
				a.config.HTTP.Port = port
			}
			showStartupInfo(a)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return web.NewServer(a.config, a.session, a.completer).Start(ctx)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "Listen host (default from config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default from config)")
	return cmd
}

func createCLICmd() *cobra.Command {
	defaults := config.DefaultConfig().CLI
	var opts cli.Options

	cmd := &cobra.Command{
		Use:   "cli",
		Short: "Interactive prompt for testing suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sigHandler()
			a, err := setup()
			if err != nil {
				return err
			}
			log.SetReportTimestamp(false)

			flags := cmd.Flags()
			if !flags.Changed("limit") {
				opts.Limit = a.config.CLI.DefaultLimit
			}
			if !flags.Changed("prmin") {
				opts.MinPrefix = a.config.CLI.DefaultMinLen
			}
			if !flags.Changed("prmax") {
				opts.MaxPrefix = a.config.CLI.DefaultMaxLen
			}
			if !flags.Changed("no-filter") {
				opts.NoFilter = a.config.CLI.DefaultNoFilter
			}
			opts.RankBy = a.config.Dict.Rank()
			log.Debug("Input info:",
				"minPrefix", opts.MinPrefix,
				"maxPrefix", opts.MaxPrefix,
				"limit", opts.Limit,
				"noFilter", opts.NoFilter)

			return cli.NewInputHandler(a.session, a.completer, opts, os.Stdin, os.Stdout).Start()
		},
	}
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", defaults.DefaultLimit, "Number of suggestions to return")
	cmd.Flags().IntVar(&opts.MinPrefix, "prmin", defaults.DefaultMinLen, "Minimum prefix length")
	cmd.Flags().IntVar(&opts.MaxPrefix, "prmax", defaults.DefaultMaxLen, "Maximum prefix length")
	cmd.Flags().BoolVar(&opts.NoFilter, "no-filter", defaults.DefaultNoFilter, "Disable input filtering")
	return cmd
}

func createStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print dictionary stats after seeding",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			stats := a.completer.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "words:     %s\n", utils.FormatWithCommas(stats.TotalWords))
			fmt.Fprintf(out, "nodes:     %s\n", utils.FormatWithCommas(stats.TotalNodes))
			fmt.Fprintf(out, "max depth: %d\n", stats.MaxDepth)
			return nil
		},
	}
}

func createConfigCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the active config, or reset it to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.SetDebug(debugMode)
			if reset {
				if err := config.RebuildConfigFile(); err != nil {
					return fmt.Errorf("failed to reset config: %w", err)
				}
			}

			cfg, activePath, err := config.LoadConfigWithPriority(configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", config.GetActiveConfigPath(activePath))
			return toml.NewEncoder(out).Encode(cfg)
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Rewrite the default config file with defaults")
	return cmd
}

func createVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show current version",
		Run: func(cmd *cobra.Command, args []string) {
			l := log.NewWithOptions(os.Stderr, log.Options{
				ReportCaller:    false,
				ReportTimestamp: false,
			})

			styles := log.DefaultStyles()
			styles.Values["version"] = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
			styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
			l.SetStyles(styles)

			l.Print("")
			l.Print("[ WordTrie ] prefix completions ranked by use")
			l.Print("", "version", Version)
			l.Print("")
			l.Print("use -h or --help to see available commands")
			l.Print("Github Repo", "gh", gh)
		},
	}
}

// showStartupInfo prints a short banner on stderr.
func showStartupInfo(a *app) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("==========")
	println(" WordTrie ")
	println("==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("config: ( %s )", config.GetActiveConfigPath(a.configPath))
	log.Infof("words: %s", utils.FormatWithCommas(a.completer.WordCount()))
	log.Info("status: ready")
	println("==========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
