package driver

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"moonlint/internal/ast"
	"moonlint/internal/checker"
	"moonlint/internal/diag"
	"moonlint/internal/parser"
	"moonlint/internal/source"
	"moonlint/internal/trace"
	"moonlint/internal/version"
)

// ErrInvalidJobs is returned when Options.Jobs is not positive.
var ErrInvalidJobs = errors.New("driver: jobs must be at least 1")

// Options controls a Check run.
type Options struct {
	Jobs        int        // worker count, at least 1
	Cache       *DiskCache // nil disables caching
	Fingerprint string     // configuration fingerprint mixed into cache keys
	Tracer      trace.Tracer
	Observer    Observer
	MaxErrors   uint // parse errors kept per file; 0 means all
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path        string
	File        source.FileID
	Tree        *ast.Tree // nil when the file came from the cache or failed to load
	Diagnostics []diag.Diagnostic
	Cached      bool
	Err         error // I/O error; parse errors are diagnostics
}

// ParseFailed reports whether the file has parse errors. Rules do not run on
// such files.
func (r *FileResult) ParseFailed() bool {
	for _, d := range r.Diagnostics {
		if d.Code == diag.ParseError {
			return true
		}
	}
	return false
}

// Result collects every file of a run in input order.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// Count returns the number of diagnostics with severity sev.
func (r *Result) Count(sev diag.Severity) int {
	n := 0
	for i := range r.Files {
		for _, d := range r.Files[i].Diagnostics {
			if d.Severity == sev {
				n++
			}
		}
	}
	return n
}

// ParseErrors counts files that failed to parse.
func (r *Result) ParseErrors() int {
	n := 0
	for i := range r.Files {
		if r.Files[i].ParseFailed() {
			n++
		}
	}
	return n
}

// IOErrors returns the files that could not be read.
func (r *Result) IOErrors() []*FileResult {
	var out []*FileResult
	for i := range r.Files {
		if r.Files[i].Err != nil {
			out = append(out, &r.Files[i])
		}
	}
	return out
}

// Diagnostics returns all diagnostics in file order.
func (r *Result) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for i := range r.Files {
		out = append(out, r.Files[i].Diagnostics...)
	}
	return out
}

// Check lints paths with chk. The result order equals the order of paths no
// matter how many workers run.
func Check(ctx context.Context, paths []string, chk *checker.Checker, opts Options) (*Result, error) {
	if opts.Jobs < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidJobs, opts.Jobs)
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	span := trace.Begin(tracer, trace.ScopeDriver, "check", 0)
	defer func() { span.WithExtra("files", fmt.Sprint(len(paths))).End("") }()

	fileSet := source.NewFileSet()
	res := &Result{FileSet: fileSet, Files: make([]FileResult, len(paths))}
	if len(paths) == 0 {
		return res, nil
	}

	jobs := opts.Jobs
	var done atomic.Int64
	total := len(paths)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, total))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			notify(opts.Observer, Event{Kind: FileStarted, Path: path, Total: total})

			fileSpan := trace.Begin(tracer, trace.ScopeFile, "file:"+path, span.ID())
			fr := checkOne(fileSet, path, chk, opts)
			fileSpan.WithExtra("cached", fmt.Sprint(fr.Cached)).End("")
			res.Files[i] = fr

			notify(opts.Observer, Event{
				Kind:        FileFinished,
				Path:        path,
				Done:        int(done.Add(1)),
				Total:       total,
				Diagnostics: len(fr.Diagnostics),
				Cached:      fr.Cached,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func notify(obs Observer, ev Event) {
	if obs != nil {
		obs(ev)
	}
}

func checkOne(fileSet *source.FileSet, path string, chk *checker.Checker, opts Options) FileResult {
	fr := FileResult{Path: path}
	id, err := fileSet.Load(path)
	if err != nil {
		fr.Err = err
		return fr
	}
	fr.File = id
	file := fileSet.Get(id)

	var key Digest
	if opts.Cache != nil {
		key = CacheKey(file.Hash, opts.Fingerprint, version.Version)
		if diags, ok, err := opts.Cache.Get(key, id); err == nil && ok {
			fr.Diagnostics = diags
			fr.Cached = true
			return fr
		}
	}

	parsed := parser.ParseFile(file, parser.Options{MaxErrors: opts.MaxErrors})
	fr.Tree = parsed.Tree
	bag := diag.NewBag(0)
	bag.Merge(parsed.Bag)
	if !bag.HasErrors() {
		bag.AddAll(chk.TestOn(parsed.Tree))
	}
	bag.Sort()
	fr.Diagnostics = bag.Items()

	if opts.Cache != nil {
		// битый кэш не должен ронять проверку
		_ = opts.Cache.Put(key, fr.Diagnostics) //nolint:errcheck
	}
	return fr
}
