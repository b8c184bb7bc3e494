// Package page renders page layouts: every block occurrence gets its own
// instance token, compiled scoped stylesheet and tagged markup.
package page

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"blockstyle/block"
	"blockstyle/common"
	"blockstyle/css"
	"blockstyle/inject"
	"blockstyle/instance"
	"blockstyle/style"
)

// Settings are engine wide rendering parameters.
type Settings struct {
	Blocks   block.Options
	Strategy common.TokenStrategy
	Prefix   string
}

// Block is rendered block occurrence.
type Block struct {
	Key      string
	Type     string
	Sheet    *css.Stylesheet
	Fragment inject.Fragment
}

// Page is result of a render pass.
type Page struct {
	Slug   string
	Title  string
	Blocks []Block
}

// HTML returns style elements and markup of all rendered blocks in layout
// order.
func (p *Page) HTML() string {
	parts := make([]string, 0, len(p.Blocks))
	for _, b := range p.Blocks {
		if h := b.Fragment.HTML(); h != "" {
			parts = append(parts, h)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n") + "\n"
}

// CSS returns all block stylesheets, one after another.
func (p *Page) CSS() string {
	var sb strings.Builder
	for _, b := range p.Blocks {
		if b.Fragment.CSS == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("/* " + commentText(b.Type+" "+b.Key) + " */\n")
		sb.WriteString(b.Fragment.CSS)
	}
	return sb.String()
}

// commentText keeps text from terminating CSS comment.
func commentText(s string) string {
	return strings.ReplaceAll(s, "*/", "* /")
}

// Renderer renders layouts with a block catalog. It holds no per page state
// and may be used for several pages concurrently.
type Renderer struct {
	log      *zap.Logger
	catalog  *block.Catalog
	compiler *style.Compiler
	injector *inject.Injector
	settings Settings
}

// NewRenderer creates renderer, nil compiler or injector are created with
// the same logger.
func NewRenderer(catalog *block.Catalog, compiler *style.Compiler, injector *inject.Injector, settings Settings, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	if compiler == nil {
		compiler = style.NewCompiler(log)
	}
	if injector == nil {
		injector = inject.New(log)
	}
	settings.Prefix = instance.Sanitize(settings.Prefix)
	return &Renderer{
		log:      log.Named("render"),
		catalog:  catalog,
		compiler: compiler,
		injector: injector,
		settings: settings,
	}
}

// Render runs a render pass over layout. Failing blocks are left out and
// reported together, the rest of the page is still rendered.
func (r *Renderer) Render(ctx context.Context, slug string, layout *Layout) (*Page, error) {
	page := &Page{Slug: slug, Title: layout.Title}
	pass := instance.NewPass(r.settings.Strategy, r.settings.Prefix, slug)
	used := make(map[string]bool, len(layout.Blocks))

	var errs error
	for i, occ := range layout.Blocks {
		if err := ctx.Err(); err != nil {
			return page, multierr.Append(errs, err)
		}

		key := occ.Key
		if key == "" {
			key = strconv.Itoa(i) + "/" + occ.Type
		}
		// two live occurrences must never share a token
		if used[key] {
			base := key
			for n := 2; used[key]; n++ {
				key = base + "#" + strconv.Itoa(n)
			}
			r.log.Warn("Duplicate block key", zap.String("page", slug), zap.String("key", base), zap.String("using", key))
		}
		used[key] = true

		b, err := r.renderBlock(pass, key, occ)
		if err != nil {
			r.log.Warn("Unable to render block", zap.String("page", slug), zap.Int("index", i), zap.String("type", occ.Type), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("block %d (%s): %w", i, occ.Type, err))
			continue
		}
		page.Blocks = append(page.Blocks, b)
	}

	r.log.Debug("Page rendered", zap.String("page", slug), zap.Int("blocks", len(page.Blocks)), zap.Int("tokens", pass.Len()))
	return page, errs
}

func (r *Renderer) renderBlock(pass *instance.Pass, key string, occ Occurrence) (Block, error) {
	t, err := r.catalog.Lookup(occ.Type)
	if err != nil {
		return Block{}, err
	}
	token := pass.Token(key)

	spec := t.Spec(occ.Props, occ.Behavior, r.settings.Blocks)
	sheet, err := r.compiler.Compile(spec, token, t.Table(r.settings.Blocks))
	if err != nil {
		return Block{}, fmt.Errorf("unable to compile styles: %w", err)
	}
	frag, err := r.injector.InjectSheet(sheet, token)
	if err != nil {
		return Block{}, err
	}
	if frag, err = frag.Wrap(occ.Markup); err != nil {
		return Block{}, err
	}
	return Block{Key: key, Type: occ.Type, Sheet: sheet, Fragment: frag}, nil
}
