package quote

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/zzyhdu/tk-tools/internal/freight"
	"github.com/zzyhdu/tk-tools/internal/warehouse"
)

const (
	defaultMaxBatchSize = 100
	defaultConcurrency  = 4
)

// RateSource supplies the current rate tables.
type RateSource interface {
	GetRateTables() (freight.RateTables, error)
}

// Calculator computes quotes against the live rate tables.
type Calculator interface {
	Compute(ctx context.Context, sku SKU) (Result, error)
	ComputeBatch(ctx context.Context, skus []SKU) ([]Result, error)
}

// Options bound batch work. Zero values fall back to defaults.
type Options struct {
	MaxBatchSize int
	Concurrency  int
}

type calculator struct {
	rates        RateSource
	directory    *warehouse.Directory
	maxBatchSize int
	concurrency  int
}

// New creates a Calculator reading rates from src and warehouses from dir.
func New(src RateSource, dir *warehouse.Directory, opts Options) Calculator {
	if opts.MaxBatchSize <= 0 {
		opts.MaxBatchSize = defaultMaxBatchSize
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	return &calculator{
		rates:        src,
		directory:    dir,
		maxBatchSize: opts.MaxBatchSize,
		concurrency:  opts.Concurrency,
	}
}

func (c *calculator) Compute(ctx context.Context, sku SKU) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := sku.Validate(); err != nil {
		return Result{}, err
	}

	tables, err := c.rates.GetRateTables()
	if err != nil {
		return Result{}, fmt.Errorf("load rate tables: %w", err)
	}

	return Evaluate(sku, tables, c.directory), nil
}

// ComputeBatch evaluates every SKU against one snapshot of the rate tables.
// Results keep the input order. The whole batch fails if any SKU is invalid.
func (c *calculator) ComputeBatch(ctx context.Context, skus []SKU) ([]Result, error) {
	if len(skus) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(skus) > c.maxBatchSize {
		return nil, fmt.Errorf("%w: %d exceeds limit of %d", ErrBatchTooLarge, len(skus), c.maxBatchSize)
	}
	for i, sku := range skus {
		if err := sku.Validate(); err != nil {
			return nil, fmt.Errorf("sku %d: %w", i, err)
		}
	}

	tables, err := c.rates.GetRateTables()
	if err != nil {
		return nil, fmt.Errorf("load rate tables: %w", err)
	}

	results := make([]Result, len(skus))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i := range skus {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Evaluate(skus[i], tables, c.directory)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
