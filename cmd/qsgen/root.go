package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/qsgen/pkg/config"
	"github.com/dmitrymomot/qsgen/pkg/generator"
	"github.com/dmitrymomot/qsgen/pkg/logger"
)

// environment holds settings read from QSGEN_* variables and .env.
type environment struct {
	LogLevel  string `env:"QSGEN_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"QSGEN_LOG_FORMAT" envDefault:"text"`
	Config    string `env:"QSGEN_CONFIG"`
}

type dirKey struct{}

type options struct {
	types      []string
	output     string
	receiver   string
	importPath string
	tags       string
	configFile string
	stdout     bool
	logLevel   string
	logFormat  string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "qsgen [flags] [dir]",
		Short: "Generate query string methods for Go structs",
		Long: `qsgen scans the Go package in dir (default ".") for struct types whose doc
comment contains the //qs:generate directive, plus any types named with
--type, and writes ToQueryString and TryToQueryString methods for them into
a single generated file.

Settings are resolved from flags, then the YAML file given by --config or
QSGEN_CONFIG, then defaults.`,
		Example: `  //go:generate go run github.com/dmitrymomot/qsgen/cmd/qsgen
  qsgen --type ListUsersRequest,SearchRequest ./api
  qsgen --receiver pointer --stdout`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version(),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runGenerate(cmd, opts, dir)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringSliceVarP(&opts.types, "type", "t", nil, "type names to generate in addition to annotated ones (repeatable, comma separated)")
	f.StringVarP(&opts.output, "output", "o", "", fmt.Sprintf("generated file name (default %q)", generator.DefaultOutput))
	f.StringVar(&opts.receiver, "receiver", "", `receiver kind, "value" or "pointer" (default "value")`)
	f.StringVar(&opts.importPath, "import", "", "import path of the qs package used by generated code")
	f.StringVar(&opts.tags, "tags", "", "build constraint for the generated file")
	f.StringVar(&opts.configFile, "config", "", "YAML config file (env QSGEN_CONFIG)")
	f.BoolVar(&opts.stdout, "stdout", false, "print the generated file instead of writing it")
	f.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (env QSGEN_LOG_LEVEL)")
	f.StringVar(&opts.logFormat, "log-format", "", "text or json (env QSGEN_LOG_FORMAT)")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *options, dir string) error {
	var env environment
	if err := config.Load(&env); err != nil {
		return err
	}

	log, err := newLogger(cmd, opts, env)
	if err != nil {
		return err
	}
	ctx := context.WithValue(cmd.Context(), dirKey{}, dir)

	cfg, err := resolveConfig(cmd, opts, env)
	if err != nil {
		return err
	}

	genOpts := []generator.Option{generator.WithLogger(log)}
	if opts.stdout {
		genOpts = append(genOpts, generator.WithStdout(cmd.OutOrStdout()))
	}
	g, err := generator.New(cfg, genOpts...)
	if err != nil {
		return err
	}

	res, err := g.Run(ctx, dir)
	if errors.Is(err, generator.ErrNoTypes) {
		log.WarnContext(ctx, "nothing to generate", logger.Error(err))
		return nil
	}
	if err != nil {
		return err
	}

	if !res.Written && !opts.stdout {
		log.InfoContext(ctx, "generated file is up to date", logger.File(res.Path), logger.Types(res.Types))
	}
	return nil
}

func newLogger(cmd *cobra.Command, opts *options, env environment) (*slog.Logger, error) {
	levelName, formatName := env.LogLevel, env.LogFormat
	if cmd.Flags().Changed("log-level") {
		levelName = opts.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		formatName = opts.logFormat
	}

	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	format, err := logger.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithTool("qsgen", version()),
		logger.WithContextValue("dir", dirKey{}),
	), nil
}

// resolveConfig layers flags over the YAML file over defaults.
func resolveConfig(cmd *cobra.Command, opts *options, env environment) (generator.Config, error) {
	cfg := generator.DefaultConfig()
	flags := cmd.Flags()

	file := env.Config
	if flags.Changed("config") {
		file = opts.configFile
	}
	if file != "" {
		if err := config.LoadFile(file, &cfg); err != nil {
			return cfg, err
		}
	}

	if flags.Changed("type") {
		cfg.Types = opts.types
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("receiver") {
		cfg.Receiver = generator.Receiver(opts.receiver)
	}
	if flags.Changed("import") {
		cfg.Import = opts.importPath
	}
	if flags.Changed("tags") {
		cfg.Tags = opts.tags
	}
	return cfg, nil
}
