package index

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"

	"golang.org/x/crypto/openpgp"
	"golang.org/x/sync/errgroup"

	"github.com/git-pkgs/aptcache/internal/core"
)

const defaultConcurrency = 8

type loader struct {
	logger      *slog.Logger
	buildOpts   []core.BuildOption
	keyring     openpgp.EntityList
	concurrency int
}

// Option configures Load.
type Option func(*loader)

// WithLogger sets the logger. Skipped stanzas are logged at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(ld *loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithNativeArch sets the native architecture of the universe.
func WithNativeArch(arch string) Option {
	return func(ld *loader) {
		ld.buildOpts = append(ld.buildOpts, core.WithNativeArch(arch))
	}
}

// WithForeignArchs adds foreign architectures in preference order.
func WithForeignArchs(archs ...string) Option {
	return func(ld *loader) {
		ld.buildOpts = append(ld.buildOpts, core.WithForeignArchs(archs...))
	}
}

// WithKeyring makes Load verify clearsigned InRelease files against
// keyring. Without it signatures are not checked.
func WithKeyring(keyring openpgp.EntityList) Option {
	return func(ld *loader) {
		ld.keyring = keyring
	}
}

// WithConcurrency limits how many files are read at once.
func WithConcurrency(n int) Option {
	return func(ld *loader) {
		if n > 0 {
			ld.concurrency = n
		}
	}
}

// loaded is a source after reading, before it enters the universe.
type loaded struct {
	src    Source
	info   core.PackageFileInfo
	data   []byte
	format Format
}

// Load reads every source and builds a universe from them. Files are read
// and decompressed concurrently; they enter the universe in the order given,
// so the same sources always produce the same universe. A source that
// cannot be read fails the load, a stanza that cannot be parsed is skipped.
func Load(ctx context.Context, sources []Source, opts ...Option) (*core.Universe, error) {
	ld := &loader{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(ld)
	}

	files := make([]loaded, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ld.concurrency)
	for i, src := range sources {
		g.Go(func() error {
			f, err := ld.read(gctx, src)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := core.NewBuilder(ld.buildOpts...)
	total := 0
	for _, f := range files {
		id := b.AddPackageFile(f.info, f.data)
		res, err := f.format.Parse(ctx, b, id, f.data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f.src.Path, err)
		}
		for _, perr := range res.Skipped {
			perr.File = f.src.Path
			ld.logger.Warn("skipping stanza", "file", perr.File, "offset", perr.Offset, "error", perr.Err)
		}
		ld.logger.Debug("loaded index",
			"file", f.src.Path,
			"type", f.info.IndexType,
			"versions", res.Versions,
			"skipped", len(res.Skipped))
		total += res.Versions
	}
	if total == 0 {
		return nil, ErrNoIndexData
	}

	u := b.Build()
	stats := u.Stats()
	ld.logger.Info("built package universe",
		"files", stats.PackageFiles,
		"packages", stats.Packages,
		"versions", stats.Versions,
		"dependencies", stats.Dependencies)
	return u, nil
}

func (ld *loader) read(ctx context.Context, src Source) (loaded, error) {
	if err := ctx.Err(); err != nil {
		return loaded{}, err
	}

	format, err := New(src.IndexType())
	if err != nil {
		return loaded{}, fmt.Errorf("%s: %w", src.Path, err)
	}

	raw, err := os.ReadFile(src.Path)
	if err != nil {
		return loaded{}, fmt.Errorf("reading index: %w", err)
	}
	data, err := DetectCompression(src.Path, raw).Decompress(raw)
	if err != nil {
		return loaded{}, fmt.Errorf("decompressing %s: %w", src.Path, err)
	}

	info := core.PackageFileInfo{
		FileName:  src.Path,
		IndexType: format.IndexType(),
	}
	if src.Release != "" {
		rel, err := ld.readRelease(src.Release)
		if err != nil {
			return loaded{}, err
		}
		info.Origin = rel.Origin
		info.Label = rel.Label
		info.Archive = rel.Suite
		info.Codename = rel.Codename
		info.Version = rel.Version
		info.NotAutomatic = rel.NotAutomatic
		info.ButAutomaticUpgrades = rel.ButAutomaticUpgrades
	}
	override(&info.Origin, src.Origin)
	override(&info.Label, src.Label)
	override(&info.Archive, src.Archive)
	override(&info.Codename, src.Codename)
	override(&info.Component, src.Component)
	override(&info.Architecture, src.Architecture)
	override(&info.BaseURI, src.BaseURI)
	override(&info.Site, src.Site)
	if info.Site == "" && info.BaseURI != "" {
		if u, err := url.Parse(info.BaseURI); err == nil {
			info.Site = u.Hostname()
		}
	}

	return loaded{src: src, info: info, data: data, format: format}, nil
}

func (ld *loader) readRelease(path string) (*Release, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading release: %w", err)
	}
	defer f.Close()

	rel, err := ParseRelease(f, ld.keyring)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rel, nil
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
