package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/openpgp"

	"github.com/git-pkgs/aptcache"
	_ "github.com/git-pkgs/aptcache/all"
	"github.com/git-pkgs/aptcache/internal/config"
	"github.com/git-pkgs/aptcache/internal/core"
	"github.com/git-pkgs/aptcache/internal/index"
	"github.com/git-pkgs/aptcache/internal/policy"
)

var (
	configPath     string
	keyringPath    string
	arch           string
	defaultRelease string
	verbose        bool

	cache *aptcache.Cache
)

var rootCmd = &cobra.Command{
	Use:   "aptcache",
	Short: "Query the apt package cache",
	Long: `aptcache reads the Packages indexes apt has downloaded and the dpkg
status file, and answers questions about them the way apt-cache does.

Nothing is downloaded: run apt update first to refresh the lists.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for commands that do not read the cache
		if !needsCache(cmd) {
			return nil
		}
		return openCache(cmd)
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $APTCACHE_CONFIG or "+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&keyringPath, "keyring", "", "verify InRelease files against this OpenPGP keyring")
	rootCmd.PersistentFlags().StringVarP(&arch, "arch", "a", "", "native architecture (default from config)")
	rootCmd.PersistentFlags().StringVarP(&defaultRelease, "target-release", "t", "", "default release, as apt's -t")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
}

func needsCache(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", "compare":
		return false
	}
	if p := cmd.Parent(); p != nil && p.Name() == "completion" {
		return false
	}
	return true
}

func openCache(cmd *cobra.Command) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if arch != "" {
		cfg.Architecture = arch
	}
	if defaultRelease != "" {
		cfg.DefaultRelease = defaultRelease
	}

	level := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	sources, err := cfg.Sources()
	if err != nil {
		return err
	}
	opts := []index.Option{
		index.WithLogger(logger),
		index.WithNativeArch(cfg.Architecture),
		index.WithForeignArchs(cfg.ForeignArchitectures...),
	}
	if keyringPath != "" {
		keyring, err := readKeyring(keyringPath)
		if err != nil {
			return err
		}
		opts = append(opts, index.WithKeyring(keyring))
	}

	var pins policy.PinStore
	if len(cfg.Preferences) > 0 {
		prefs, err := policy.LoadPreferences(cfg.Preferences...)
		if err != nil {
			return err
		}
		pins = prefs
	}

	u, err := index.Load(cmd.Context(), sources, opts...)
	if err != nil {
		return err
	}
	cache = &aptcache.Cache{
		Universe: u,
		Policy: policy.New(pins,
			policy.WithDefaultRelease(cfg.DefaultRelease),
			policy.WithLogger(logger)),
	}
	return nil
}

// readKeyring reads a binary keyring, as shipped in /usr/share/keyrings, or
// an ASCII-armored one.
func readKeyring(path string) (openpgp.EntityList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyring: %w", err)
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("-----BEGIN PGP")) {
		return openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	}
	return openpgp.ReadKeyRing(bytes.NewReader(data))
}

// findPackage resolves "name" or "name:arch".
func findPackage(arg string) (core.Package, error) {
	if name, a, ok := strings.Cut(arg, ":"); ok {
		return cache.FindArch(name, a)
	}
	return cache.Find(arg)
}
