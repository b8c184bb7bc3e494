package page

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"blockstyle/archive"
	"blockstyle/block"
	"blockstyle/config"
	"blockstyle/state"
	"blockstyle/store"
)

// SettingsFrom returns render settings from program configuration.
func SettingsFrom(cfg *config.Config) Settings {
	return Settings{
		Blocks:   cfg.Engine.BlockOptions(),
		Strategy: cfg.Engine.Instance.Strategy,
		Prefix:   cfg.Engine.Instance.Prefix,
	}
}

// Compile renders layout file (or every layout in zip bundle) into html
// files in destination directory.
func Compile(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compile")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input layout has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	dst, err := destination(cmd.Args().Get(1))
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite = cmd.Bool("overwrite")
	if err := env.Engine(); err != nil {
		return err
	}

	log.Info("Compiling starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Compiling completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return compile(ctx, env, src, dst, cmd.String("charset"), log)
}

func compile(ctx context.Context, env *state.LocalEnv, src, dst, label string, log *zap.Logger) error {
	keepSource(env, src, log)
	r := NewRenderer(env.Catalog, env.Compiler, env.Injector, SettingsFrom(env.Cfg), env.Log)

	if !isBundle(src) {
		f, err := os.Open(src)
		if err != nil {
			return fmt.Errorf("unable to open layout: %w", err)
		}
		defer f.Close()

		l, err := Decode(f, label)
		if err != nil {
			return err
		}
		return output(ctx, env, r, src, l, dst, log)
	}

	var count, failed int
	err := archive.WalkLayouts(src, "", func(name string, rd io.Reader) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		count++
		l, err := Decode(rd, label)
		if err == nil {
			err = output(ctx, env, r, name, l, dst, log)
		}
		if err != nil {
			failed++
			log.Error("Unable to compile layout", zap.String("bundle", src), zap.String("layout", name), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("unable to process bundle: %w", err)
	}
	log.Debug("Bundle processed", zap.String("bundle", src), zap.Int("layouts", count), zap.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d layouts failed", failed, count)
	}
	return nil
}

// output renders layout and writes resulting page. Page is written even when
// some blocks failed, block errors are returned afterwards.
func output(ctx context.Context, env *state.LocalEnv, r *Renderer, name string, l *Layout, dst string, log *zap.Logger) error {
	slug, err := store.Slug(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)), l.Title)
	if err != nil {
		return err
	}

	page, rerr := r.Render(ctx, slug, l)
	if err := ctx.Err(); err != nil {
		return err
	}

	html, css := []byte(page.HTML()), []byte(page.CSS())
	env.Rpt.StorePage(slug, html, css)
	if env.Rpt != nil {
		for _, b := range page.Blocks {
			env.Rpt.StoreData(path.Join("pages", slug, "sheets", string(b.Fragment.Token)+".txt"), []byte(b.Sheet.Dump()))
		}
	}

	out := filepath.Join(dst, slug+".html")
	if err := writeFile(out, html, env.Overwrite); err != nil {
		return err
	}
	log.Debug("Page written", zap.String("page", slug), zap.String("file", out), zap.Int("blocks", len(page.Blocks)))
	return rerr
}

// Import stores layout file (or every layout in zip bundle) in the layout
// store.
func Import(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("import")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input layout has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	s, err := openStore(env, cmd.String("db"))
	if err != nil {
		return err
	}
	defer s.Close()

	if err := env.Engine(); err != nil {
		return err
	}

	log.Info("Import starting", zap.String("source", src))
	defer func(start time.Time) {
		log.Info("Import completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return importLayouts(ctx, env, s, src, cmd.String("slug"), cmd.String("charset"), log)
}

func importLayouts(ctx context.Context, env *state.LocalEnv, s *store.Store, src, slug, label string, log *zap.Logger) error {
	keepSource(env, src, log)
	if !isBundle(src) {
		f, err := os.Open(src)
		if err != nil {
			return fmt.Errorf("unable to open layout: %w", err)
		}
		defer f.Close()

		if len(slug) == 0 {
			slug = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		}
		return importLayout(ctx, env.Catalog, s, f, slug, label, log)
	}
	if len(slug) > 0 {
		log.Warn("Page name is ignored for bundles", zap.String("slug", slug))
	}
	return archive.WalkLayouts(src, "", func(name string, rd io.Reader) error {
		return importLayout(ctx, env.Catalog, s, rd, strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)), label, log)
	})
}

func importLayout(ctx context.Context, cat *block.Catalog, s *store.Store, r io.Reader, name, label string, log *zap.Logger) error {
	l, err := Decode(r, label)
	if err != nil {
		return fmt.Errorf("layout %q: %w", name, err)
	}
	for i, b := range l.Blocks {
		if _, err := cat.Lookup(b.Type); err != nil {
			log.Warn("Layout references unknown block", zap.String("layout", name), zap.Int("index", i), zap.String("type", b.Type))
		}
	}
	data, err := l.Encode()
	if err != nil {
		return err
	}
	slug, err := s.Put(ctx, name, l.Title, data)
	if err != nil {
		return err
	}
	log.Info("Page stored", zap.String("page", slug), zap.Int("blocks", len(l.Blocks)))
	return nil
}

// Render renders page from the layout store.
func Render(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	slug := cmd.Args().Get(0)
	if len(slug) == 0 {
		return errors.New("no page name has been specified")
	}
	dst, err := destination(cmd.Args().Get(1))
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	s, err := openStore(env, cmd.String("db"))
	if err != nil {
		return err
	}
	defer s.Close()

	env.Overwrite = cmd.Bool("overwrite")
	if err := env.Engine(); err != nil {
		return err
	}

	log.Info("Rendering starting", zap.String("page", slug), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return renderStored(ctx, env, s, slug, dst, log)
}

func renderStored(ctx context.Context, env *state.LocalEnv, s *store.Store, slug, dst string, log *zap.Logger) error {
	data, err := s.Get(ctx, slug)
	if err != nil {
		return err
	}
	l, err := Decode(bytes.NewReader(data), "")
	if err != nil {
		return fmt.Errorf("stored page %q: %w", slug, err)
	}
	r := NewRenderer(env.Catalog, env.Compiler, env.Injector, SettingsFrom(env.Cfg), env.Log)
	return output(ctx, env, r, slug, l, dst, log)
}

// Pages lists stored pages.
func Pages(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	s, err := openStore(env, cmd.String("db"))
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%-24s %-32s %s\n", e.Slug, e.Title, e.Updated.Format(time.DateTime))
	}
	return nil
}

// Remove deletes page from the layout store.
func Remove(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	slug := cmd.Args().Get(0)
	if len(slug) == 0 {
		return errors.New("no page name has been specified")
	}
	s, err := openStore(env, cmd.String("db"))
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Delete(ctx, slug); err != nil {
		return err
	}
	env.Log.Info("Page removed", zap.String("page", slug))
	return nil
}

// Blocks lists block types known to the catalog.
func Blocks(ctx context.Context, _ *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if err := env.Engine(); err != nil {
		return err
	}
	return listBlocks(os.Stdout, env.Catalog)
}

func listBlocks(w io.Writer, cat *block.Catalog) error {
	for _, name := range cat.Names() {
		t, err := cat.Lookup(name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-16s %-18s %-8s %-18s %d properties\n",
			name, block.DisplayName(name), t.Variant, t.Behavior, len(t.Properties)); err != nil {
			return err
		}
	}
	return nil
}

// keepSource puts copy of the input into debug report.
func keepSource(env *state.LocalEnv, src string, log *zap.Logger) {
	if err := env.Rpt.StoreCopy(path.Join("source", filepath.Base(src)), src); err != nil {
		log.Warn("Unable to store source in debug report", zap.String("source", src), zap.Error(err))
	}
}

func openStore(env *state.LocalEnv, path string) (*store.Store, error) {
	if len(path) == 0 {
		path = env.Cfg.Store.Path
	}
	if len(path) == 0 {
		return nil, errors.New("no layout store has been specified")
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return store.Open(path, env.Log)
}

func destination(dst string) (string, error) {
	var err error
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	return filepath.Abs(dst)
}

func isBundle(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}

func writeFile(name string, data []byte, overwrite bool) error {
	if _, err := os.Stat(name); err == nil && !overwrite {
		return fmt.Errorf("output file already exists: %s", name)
	}
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	return nil
}
