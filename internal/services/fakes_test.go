package services

import (
	"context"
	"errors"
	"nav-eval-service/internal/domain"
	"sync"
)

type fakeSampleRepo struct {
	samples map[string]*domain.Sample
	err     error
}

func newFakeSampleRepo(dataset string, expected map[string]string) *fakeSampleRepo {
	r := &fakeSampleRepo{samples: make(map[string]*domain.Sample)}
	for id, text := range expected {
		r.samples[dataset+"/"+id] = &domain.Sample{SampleID: id, Dataset: dataset, ExpectedText: text}
	}
	return r
}

func (r *fakeSampleRepo) ListSamples(_ context.Context, dataset string) ([]*domain.Sample, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Sample
	for _, s := range r.samples {
		if s.Dataset == dataset {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSampleRepo) GetSamples(_ context.Context, dataset string, ids []string) (map[string]*domain.Sample, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make(map[string]*domain.Sample)
	for _, id := range ids {
		if s, ok := r.samples[dataset+"/"+id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

type savedRun struct {
	run     domain.Run
	results []domain.SampleResult
}

type fakeResultRepo struct {
	mu    sync.Mutex
	saved []savedRun
	err   error
}

func (r *fakeResultRepo) SaveRun(_ context.Context, run domain.Run, results []domain.SampleResult) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, savedRun{run: run, results: results})
	return nil
}

// ListResultsByModel keeps the last saved run per model.
func (r *fakeResultRepo) ListResultsByModel(_ context.Context, dataset string) (map[string][]domain.SampleResult, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string][]domain.SampleResult)
	for _, s := range r.saved {
		if s.run.Dataset == dataset {
			out[s.run.Model] = s.results
		}
	}
	return out, nil
}

var errCacheDown = errors.New("cache down")

type failingCache struct{}

func (failingCache) GetMany(context.Context, []string) (map[string]domain.Evaluation, error) {
	return nil, errCacheDown
}

func (failingCache) PutMany(context.Context, map[string]domain.Evaluation) error {
	return errCacheDown
}
