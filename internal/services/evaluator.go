package services

import (
	"context"
	"fmt"
	"log"
	"nav-eval-service/internal/domain"
	"nav-eval-service/internal/platform/obs"
	"nav-eval-service/internal/ports"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 8

// RoutePair is one reference/candidate text pair to score.
type RoutePair struct {
	Expected string
	Actual   string
}

// Evaluator scores route pairs, consulting an optional cache first.
// Cache failures are logged and never fail scoring.
type Evaluator struct {
	Cache   ports.EvaluationCache
	Workers int
}

func NewEvaluator(cache ports.EvaluationCache, workers int) *Evaluator {
	if workers < 1 {
		workers = defaultWorkers
	}
	return &Evaluator{Cache: cache, Workers: workers}
}

// EvaluationKey is the cache key for a pair: an xxhash digest over both texts
// with a separator so ("ab", "c") and ("a", "bc") differ.
func EvaluationKey(expected, actual string) string {
	d := xxhash.New()
	_, _ = d.WriteString(strconv.Itoa(len(expected)))
	_, _ = d.WriteString(":")
	_, _ = d.WriteString(expected)
	_, _ = d.WriteString(actual)
	return fmt.Sprintf("%016x", d.Sum64())
}

// Evaluate scores a single pair.
func (ev *Evaluator) Evaluate(ctx context.Context, expected, actual string) (domain.Evaluation, error) {
	out, err := ev.EvaluateMany(ctx, []RoutePair{{Expected: expected, Actual: actual}})
	if err != nil {
		return domain.Evaluation{}, err
	}
	return out[0], nil
}

// EvaluateMany scores pairs concurrently and returns evaluations in input order.
// Only cancellation of ctx produces an error.
func (ev *Evaluator) EvaluateMany(ctx context.Context, pairs []RoutePair) (_ []domain.Evaluation, err error) {
	defer obs.Time(ctx, "evaluator.EvaluateMany")(&err)

	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = EvaluationKey(p.Expected, p.Actual)
	}
	cached := ev.lookup(ctx, keys)

	out := make([]domain.Evaluation, len(pairs))
	computed := make([]bool, len(pairs))

	workers := ev.Workers
	if workers < 1 {
		workers = defaultWorkers
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range pairs {
		if e, ok := cached[keys[i]]; ok {
			out[i] = e
			continue
		}
		computed[i] = true
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = Evaluate(p.Expected, p.Actual)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluate many: %w", err)
	}

	fresh := make(map[string]domain.Evaluation)
	for i, e := range out {
		if computed[i] {
			fresh[keys[i]] = e
		}
		obs.RecordVerdict(string(e.Verdict()))
	}
	ev.store(ctx, fresh)

	return out, nil
}

func (ev *Evaluator) lookup(ctx context.Context, keys []string) map[string]domain.Evaluation {
	if ev.Cache == nil || len(keys) == 0 {
		return nil
	}

	cached, err := ev.Cache.GetMany(ctx, keys)
	if err != nil {
		log.Printf("evaluation cache lookup failed: keys=%d err=%v", len(keys), err)
		obs.RecordCacheLookup(0, len(keys), true)
		return nil
	}

	hits := 0
	for _, k := range keys {
		if _, ok := cached[k]; ok {
			hits++
		}
	}
	obs.RecordCacheLookup(hits, len(keys)-hits, false)
	return cached
}

func (ev *Evaluator) store(ctx context.Context, fresh map[string]domain.Evaluation) {
	if ev.Cache == nil || len(fresh) == 0 {
		return
	}
	if err := ev.Cache.PutMany(ctx, fresh); err != nil {
		log.Printf("evaluation cache store failed: entries=%d err=%v", len(fresh), err)
	}
}
