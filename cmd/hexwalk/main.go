package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/hexwalk/hexwalk/internal/cliconfig"
	"github.com/hexwalk/hexwalk/internal/watch"
	"github.com/hexwalk/hexwalk/pkg/hexwalk"
	"github.com/hexwalk/hexwalk/pkg/log"
)

const helpDescription = `
Render a file as side-by-side hex and printable characters, 24 bytes per
line, streamed to stdout.

Highlights:
  - Reads arbitrarily large files through a bounded 512 KiB window.
  - Offset column widens automatically for files beyond 4 GiB.
  - Stops promptly when the downstream reader (e.g. a pager) goes away.
  - Configure via file (~/.hexwalk/config.toml), HEXWALK_* env, or flags.
`

var exampleUsage = strings.TrimSpace(`
  hexwalk firmware.bin
  hexwalk -b 32 -s 4096 image.dd | less
  hexwalk --no-offset --no-hexa notes.db
  hexwalk --watch build/output.bin
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	zlog := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "hexwalk [flags] <file>",
		Short:   "Render a file as side-by-side hex and printable characters",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Args:    cobra.ExactArgs(1),
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Path = args[0]

			// Load config file first (default $HOME/.hexwalk/config.toml),
			// then env, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (HEXWALK_*)
			// These override file config but are overridden by flags.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			// Arguments are valid; runtime failures from here on should be
			// reported plainly rather than reprinting usage.
			cmd.SilenceUsage = true

			logger := log.NewZerologAdapterWithLogger(zlog)

			dumper, err := hexwalk.New(hexwalk.Config{
				Path:        cfg.Path,
				StartOffset: cfg.StartOffset,
				BlockBits:   cfg.BlockBits,
				NoOffset:    cfg.NoOffset,
				NoHex:       cfg.NoHex,
				Charset:     cfg.ResolveCharset(),
			}, hexwalk.WithLogger(logger))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			// Subscribing to SIGPIPE keeps the runtime from killing the
			// process on stdout writes; they surface as EPIPE and the dump
			// loop treats that as a clean shutdown.
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGPIPE)
			defer signal.Stop(sigCh)
			go func() {
				<-sigCh
				cancel()
			}()

			if err := dumper.Run(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}

			if cfg.Watch {
				w := watch.New(cfg.Path, cfg.WatchDebounce, logger, dumper.Run)
				if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
			}
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.hexwalk/config.toml)")
	root.Flags().BoolVarP(&cfg.NoOffset, "no-offset", "O", cfg.NoOffset, "suppress the offset column")
	root.Flags().BoolVarP(&cfg.NoHex, "no-hexa", "H", cfg.NoHex, "suppress the hex column")
	root.Flags().Int64VarP(&cfg.StartOffset, "start-offset", "s", cfg.StartOffset, "byte offset where dumping begins")
	root.Flags().IntVarP(&cfg.BlockBits, "block-size", "b", cfg.BlockBits, "hex group size in bits (8, 16, 32 or 64)")
	root.Flags().StringVar(&cfg.Charset, "charset", cfg.Charset, "character gloss mode: auto, full or ascii")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "dump again whenever the file changes")
	root.Flags().DurationVar(&cfg.WatchDebounce, "watch-debounce", cfg.WatchDebounce, "delay after a change before dumping again")
	root.Flags().BoolP("version", "v", false, "print version and exit")

	if err := root.Execute(); err != nil {
		zlog.Error().Err(err).Msg("hexwalk")
		os.Exit(1)
	}
}
