// Package driver orchestrates a checker run: load fixture files, parse them
// in parallel, build one semantic model, and validate every @source usage
// concurrently. All shared state handed to the checker is read-only.
package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"casecheck/internal/ast"
	"casecheck/internal/datasource"
	"casecheck/internal/diag"
	"casecheck/internal/parser"
	"casecheck/internal/sem"
	"casecheck/internal/source"
)

const defaultMaxDiagnostics = 100

type Options struct {
	// Jobs bounds parallel workers; 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics limits every produced bag; 0 means the default of 100.
	MaxDiagnostics int
}

// Result carries the artifacts of one run. Bag is sorted and deduplicated.
type Result struct {
	Bag   *diag.Bag
	Files []*ast.File
	Model *sem.Model
}

// DiagnosePaths loads files from disk and diagnoses them.
func DiagnosePaths(ctx context.Context, fs *source.FileSet, paths []string, opts Options) (*Result, error) {
	ids := make([]source.FileID, 0, len(paths))
	for _, path := range paths {
		id, err := fs.Load(path)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return Diagnose(ctx, fs, ids, opts)
}

// Diagnose runs the full pipeline over already-registered files.
func Diagnose(ctx context.Context, fs *source.FileSet, files []source.FileID, opts Options) (*Result, error) {
	maxDiags := opts.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = defaultMaxDiagnostics
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Фаза 1: лексер+парсер, параллельно по файлам.
	parsed := make([]*ast.File, len(files))
	parseBags := make([]*diag.Bag, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(files), 1)))
	for i, id := range files {
		i, id := i, id
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			bag := diag.NewBag(maxDiags)
			parsed[i] = parser.ParseFile(fs.Get(id), parser.Options{
				Reporter: diag.BagReporter{Bag: bag},
			})
			parseBags[i] = bag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Фаза 2: единая модель по всем файлам.
	modelBag := diag.NewBag(maxDiags)
	model := sem.Build(parsed, diag.BagReporter{Bag: modelBag})

	// Фаза 3: проверка источников, параллельно по usages. Каждый вызов
	// начинается с проверки отмены и пишет в собственный bag, чтобы слияние
	// оставалось детерминированным.
	usages := model.Usages()
	usageBags := make([]*diag.Bag, len(usages))
	checker := &datasource.Checker{Sem: model}
	ug, ugctx := errgroup.WithContext(ctx)
	ug.SetLimit(min(jobs, max(len(usages), 1)))
	for i, usage := range usages {
		i, usage := i, usage
		ug.Go(func() error {
			bag := diag.NewBag(maxDiags)
			c := *checker
			c.Reporter = diag.BagReporter{Bag: bag}
			c.CheckUsage(ugctx, usage)
			usageBags[i] = bag
			return ugctx.Err()
		})
	}
	if err := ug.Wait(); err != nil {
		return nil, err
	}

	out := diag.NewBag(maxDiags)
	for _, bag := range parseBags {
		out.Merge(bag)
	}
	out.Merge(modelBag)
	for _, bag := range usageBags {
		out.Merge(bag)
	}
	out.Sort()
	out.Dedup()

	// Merge растягивает лимит; финальный bag обрезаем до запрошенного.
	if out.Len() > maxDiags {
		trimmed := diag.NewBag(maxDiags)
		for _, d := range out.Items() {
			if !trimmed.Add(d) {
				break
			}
		}
		out = trimmed
	}

	return &Result{Bag: out, Files: parsed, Model: model}, nil
}
