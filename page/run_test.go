package page

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"blockstyle/block"
	"blockstyle/config"
	"blockstyle/state"
	"blockstyle/store"
)

// setupTestEnv creates a test environment with proper context, logger and
// prepared engine.
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	if err := env.Engine(); err != nil {
		t.Fatalf("prepare engine: %v", err)
	}
	return ctx, env
}

func writeLayout(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	return p
}

func writeBundle(t *testing.T, dir string, entries map[string]string) string {
	t.Helper()
	p := filepath.Join(dir, "site.zip")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	w := zip.NewWriter(f)
	for name, content := range entries {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCompile_File(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := writeLayout(t, t.TempDir(), "Home Page.yaml", sampleYAML)
	dst := t.TempDir()

	if err := compile(ctx, env, src, dst, "", env.Log); err != nil {
		t.Fatalf("compile() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dst, "home-page.html"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	html := string(data)
	if strings.Count(html, "<style data-instance=") != 2 {
		t.Errorf("expected two style elements:\n%s", html)
	}
	if !strings.Contains(html, "Bienvenue</section>") {
		t.Errorf("markup missing:\n%s", html)
	}

	t.Run("no overwrite", func(t *testing.T) {
		if err := compile(ctx, env, src, dst, "", env.Log); err == nil {
			t.Error("expected error for existing output")
		}
		env.Overwrite = true
		defer func() { env.Overwrite = false }()
		if err := compile(ctx, env, src, dst, "", env.Log); err != nil {
			t.Errorf("compile() with overwrite error = %v", err)
		}
	})
}

func TestCompile_FailingBlockStillWritesPage(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := writeLayout(t, t.TempDir(), "broken.yaml", "blocks:\n  - type: hero\n  - type: carousel\n")
	dst := t.TempDir()

	if err := compile(ctx, env, src, dst, "", env.Log); err == nil {
		t.Fatal("expected error for unknown block type")
	}
	data, err := os.ReadFile(filepath.Join(dst, "broken.html"))
	if err != nil {
		t.Fatalf("page must be written: %v", err)
	}
	if strings.Count(string(data), "<style data-instance=") != 1 {
		t.Errorf("expected hero only:\n%s", data)
	}
}

func TestCompile_Bundle(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := writeBundle(t, t.TempDir(), map[string]string{
		"pages/about.yaml":  "title: About\nblocks:\n  - type: call-to-action\n",
		"pages/pricing.yml": "blocks:\n  - type: pricing-table\n",
		"pages/readme.txt":  "not a layout",
	})
	dst := t.TempDir()

	if err := compile(ctx, env, src, dst, "", env.Log); err != nil {
		t.Fatalf("compile() error = %v", err)
	}
	for _, name := range []string{"about.html", "pricing.html"} {
		if _, err := os.Stat(filepath.Join(dst, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestCompile_MissingSource(t *testing.T) {
	ctx, env := setupTestEnv(t)
	if err := compile(ctx, env, "/nonexistent/layout.yaml", t.TempDir(), "", env.Log); err == nil {
		t.Error("expected error for missing layout")
	}
}

func TestImportAndRender(t *testing.T) {
	ctx, env := setupTestEnv(t)
	s, err := store.Open(filepath.Join(t.TempDir(), "pages.db"), env.Log)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	src := writeLayout(t, t.TempDir(), "welcome.yaml", sampleYAML)
	if err := importLayouts(ctx, env, s, src, "Front Page", "", env.Log); err != nil {
		t.Fatalf("importLayouts() error = %v", err)
	}
	entries, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Slug != "front-page" || entries[0].Title != "Café" {
		t.Fatalf("unexpected store content %+v", entries)
	}

	dst := t.TempDir()
	if err := renderStored(ctx, env, s, "front-page", dst, env.Log); err != nil {
		t.Fatalf("renderStored() error = %v", err)
	}
	rendered, err := os.ReadFile(filepath.Join(dst, "front-page.html"))
	if err != nil {
		t.Fatal(err)
	}

	// same layout compiled directly produces the same page
	direct := t.TempDir()
	copied := writeLayout(t, t.TempDir(), "front-page.yaml", sampleYAML)
	if err := compile(ctx, env, copied, direct, "", env.Log); err != nil {
		t.Fatal(err)
	}
	compiled, err := os.ReadFile(filepath.Join(direct, "front-page.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(rendered, compiled) {
		t.Errorf("stored page renders differently:\n%s\n---\n%s", rendered, compiled)
	}

	if err := renderStored(ctx, env, s, "missing", dst, env.Log); err == nil {
		t.Error("expected error for missing page")
	}
}

func TestImport_Bundle(t *testing.T) {
	ctx, env := setupTestEnv(t)
	s, err := store.Open(filepath.Join(t.TempDir(), "pages.db"), env.Log)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	src := writeBundle(t, t.TempDir(), map[string]string{
		"landing-2.yaml":  "blocks:\n  - type: hero\n",
		"landing-10.yaml": "blocks:\n  - type: gallery\n",
	})
	if err := importLayouts(ctx, env, s, src, "", "", env.Log); err != nil {
		t.Fatalf("importLayouts() error = %v", err)
	}
	entries, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Slug != "landing-2" || entries[1].Slug != "landing-10" {
		t.Errorf("unexpected store content %+v", entries)
	}

	bad := writeLayout(t, t.TempDir(), "bad.yaml", "blocks:\n  - key: untyped\n")
	if err := importLayouts(ctx, env, s, bad, "", "", env.Log); err == nil {
		t.Error("expected error for invalid layout")
	}
}

func TestListBlocks(t *testing.T) {
	cat, err := block.Default()
	if err != nil {
		t.Fatal(err)
	}
	buf := new(bytes.Buffer)
	if err := listBlocks(buf, cat); err != nil {
		t.Fatalf("listBlocks() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(cat.Names()) {
		t.Fatalf("listed %d blocks, want %d", len(lines), len(cat.Names()))
	}
	if !strings.HasPrefix(lines[0], "call-to-action") || !strings.Contains(lines[0], "Call To Action") {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestOpenStore(t *testing.T) {
	_, env := setupTestEnv(t)
	env.Cfg.Store.Path = ""
	if _, err := openStore(env, ""); err == nil {
		t.Error("expected error without store path")
	}
	s, err := openStore(env, filepath.Join(t.TempDir(), "x.db"))
	if err != nil {
		t.Fatalf("openStore() error = %v", err)
	}
	s.Close()
}

func TestCompile_Report(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	rptName := filepath.Join(dir, "report.zip")

	rpt, err := (&config.ReporterConfig{Destination: rptName}).Prepare()
	if err != nil {
		t.Fatal(err)
	}
	env.Rpt = rpt

	src := writeLayout(t, dir, "home.yaml", sampleYAML)
	if err := compile(ctx, env, src, t.TempDir(), "", env.Log); err != nil {
		t.Fatalf("compile() error = %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.OpenReader(rptName)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()

	var sheets int
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
		if strings.HasPrefix(f.Name, "pages/home/sheets/") {
			sheets++
		}
	}
	for _, want := range []string{"source/home.yaml", "pages/home/page.html", "pages/home/styles.css"} {
		if !names[want] {
			t.Errorf("report misses %s, has %v", want, names)
		}
	}
	if sheets != 2 {
		t.Errorf("report has %d stylesheet dumps, want 2", sheets)
	}
}
