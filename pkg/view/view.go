// Package view renders html/template views from the conventional
// application/view directory, with lazy parsing, a template cache, and an
// optional Redis-backed fragment cache.
package view

import (
	"context"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Renderer renders html/template views from a filesystem, conventionally the
// application/view directory. Templates are parsed lazily on first use and
// cached; concurrent first renders of the same template are deduplicated.
type Renderer struct {
	fsys  fs.FS
	ext   string
	funcs template.FuncMap

	mu        sync.RWMutex
	templates map[string]*template.Template
	group     singleflight.Group

	frag Cache
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithExt sets the template file extension. Default: ".html".
func WithExt(ext string) Option {
	return func(r *Renderer) {
		if ext != "" {
			r.ext = ext
		}
	}
}

// WithFuncs sets template helper functions available to all views.
func WithFuncs(funcs template.FuncMap) Option {
	return func(r *Renderer) {
		r.funcs = funcs
	}
}

// WithFragmentCache enables cached fragment rendering via RenderCached.
func WithFragmentCache(c Cache) Option {
	return func(r *Renderer) {
		r.frag = c
	}
}

// New creates a Renderer over the given filesystem.
func New(fsys fs.FS, opts ...Option) *Renderer {
	r := &Renderer{
		fsys:      fsys,
		ext:       ".html",
		templates: make(map[string]*template.Template),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDir creates a Renderer over a directory on disk.
func NewDir(dir string, opts ...Option) *Renderer {
	return New(os.DirFS(dir), opts...)
}

// Render renders the named view into w. Names are slash-separated and
// extension-free: "users/show" resolves to users/show.html (module views live
// in their own subdirectory by convention).
func (r *Renderer) Render(ctx context.Context, w io.Writer, name string, data any) error {
	tmpl, err := r.lookup(name)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}

// RenderCached renders the named view through the fragment cache under the
// given key. On a cache hit the stored bytes are written verbatim; on a miss
// the view is rendered and stored. Without a configured cache it behaves
// like Render.
func (r *Renderer) RenderCached(ctx context.Context, w io.Writer, key, name string, data any) error {
	if r.frag == nil {
		return r.Render(ctx, w, name, data)
	}

	if body, ok, err := r.frag.Get(ctx, key); err == nil && ok {
		_, werr := w.Write(body)
		return werr
	}

	tmpl, err := r.lookup(name)
	if err != nil {
		return err
	}

	var buf buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}

	// Cache write failures are non-fatal: the page was rendered.
	_ = r.frag.Set(ctx, key, buf.b)

	_, err = w.Write(buf.b)
	return err
}

// lookup returns the parsed template for name, parsing it once on first use.
func (r *Renderer) lookup(name string) (*template.Template, error) {
	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	v, err, _ := r.group.Do(name, func() (any, error) {
		file := name + r.ext
		data, err := fs.ReadFile(r.fsys, file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, errors.Join(ErrTemplateNotFound, errors.New(file))
			}
			return nil, errors.Join(ErrTemplateRead, err)
		}

		tmpl, err := template.New(file).Funcs(r.funcs).Parse(string(data))
		if err != nil {
			return nil, errors.Join(ErrTemplateParse, err)
		}

		r.mu.Lock()
		r.templates[name] = tmpl
		r.mu.Unlock()
		return tmpl, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*template.Template), nil
}

type buffer struct {
	b []byte
}

func (b *buffer) Write(p []byte) (int, error) {
	b.b = append(b.b, p...)
	return len(p), nil
}
