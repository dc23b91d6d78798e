package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"automata/internal/table"
)

// Kind names the input of a Job.
type Kind string

const (
	KindRegex   Kind = "regex"
	KindTable   Kind = "table"
	KindGrammar Kind = "grammar"
	KindMoore   Kind = "moore"
	KindMealy   Kind = "mealy"
)

// ErrUnknownKind is returned for job kinds other than the Kind constants.
var ErrUnknownKind = errors.New("unknown job kind")

// ParseKind validates a job kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindRegex, KindTable, KindGrammar, KindMoore, KindMealy:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Job is one conversion: Input is the pattern for KindRegex and a file path
// otherwise.
type Job struct {
	Kind   Kind
	Input  string
	Output string
}

func (j Job) String() string { return fmt.Sprintf("%s %s -> %s", j.Kind, j.Input, j.Output) }

// Run converts the input of job without writing anything.
func (c *Converter) Run(job Job) (*Result, error) {
	switch job.Kind {
	case KindRegex:
		return c.FromRegex(job.Input)
	case KindTable:
		g, err := table.ReadFile(job.Input)
		if err != nil {
			return nil, err
		}
		return c.FromTable(g)
	case KindGrammar:
		src, err := os.ReadFile(job.Input)
		if err != nil {
			return nil, err
		}
		return c.FromGrammar(string(src))
	case KindMoore, KindMealy:
		g, err := table.ReadFile(job.Input)
		if err != nil {
			return nil, err
		}
		if job.Kind == KindMoore {
			return c.FromMoore(g)
		}
		return c.FromMealy(g)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, job.Kind)
}

// Convert runs job and commits its rendered output to job.Output. Nothing is
// written unless the whole conversion succeeds.
func (c *Converter) Convert(ctx context.Context, job Job) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := c.logger.WithFields(logrus.Fields{"kind": job.Kind, "input": job.Input, "output": job.Output})

	res, err := c.Run(job)
	if err != nil {
		return nil, err
	}
	data, err := c.Render(res)
	if err != nil {
		return nil, err
	}
	if err := table.CommitFile(job.Output, data); err != nil {
		return nil, err
	}
	log.WithField("states", len(res.Output().Reachable())).Info("converted")
	return res, nil
}

// RunBatch converts independent jobs on a pool of workers and returns the
// joined errors of the failed ones.
func (c *Converter) RunBatch(ctx context.Context, jobs []Job, workers int) error {
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return err
	}
	defer pool.Release()

	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		i, job := i, job
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if _, err := c.Convert(ctx, job); err != nil {
				errs[i] = fmt.Errorf("%s: %w", job, err)
			}
		})
		if err != nil {
			wg.Done()
			errs[i] = fmt.Errorf("%s: %w", job, err)
		}
	}
	wg.Wait()
	return errors.Join(errs...)
}

// LoadJobs reads a jobs file: one "kind;input;output" row per job. Relative
// file paths are resolved against the directory of the jobs file.
func LoadJobs(path string) ([]Job, error) {
	g, err := table.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	jobs := make([]Job, 0, len(g))
	for i, row := range g {
		if len(row) != 3 {
			return nil, &table.FormatError{Row: i, Column: -1, Msg: "want kind;input;output"}
		}
		kind, err := ParseKind(row[0])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i+1, err)
		}
		job := Job{Kind: kind, Input: row[1], Output: resolve(row[2])}
		if kind != KindRegex {
			job.Input = resolve(row[1])
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
