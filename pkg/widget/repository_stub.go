package widget

import (
	"context"
	"sort"
	"sync"
)

type RepositoryStub struct {
	mu      sync.RWMutex
	configs map[string]Config
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		configs: make(map[string]Config),
	}
}

func (r *RepositoryStub) Store(ctx context.Context, config Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[config.Uid] = config
	return nil
}

func (r *RepositoryStub) GetAll(ctx context.Context) ([]Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	configs := make([]Config, 0, len(r.configs))
	for _, config := range r.configs {
		configs = append(configs, config)
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].Name < configs[j].Name })
	return configs, nil
}

func (r *RepositoryStub) Get(ctx context.Context, uid string) (Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	config, ok := r.configs[uid]
	if !ok {
		return Config{}, ErrConfigNotFound
	}
	return config, nil
}

func (r *RepositoryStub) Update(ctx context.Context, config Config) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.configs[config.Uid]; !ok {
		return false, nil
	}
	r.configs[config.Uid] = config
	return true, nil
}

func (r *RepositoryStub) Delete(ctx context.Context, uid string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.configs[uid]; !ok {
		return false, nil
	}
	delete(r.configs, uid)
	return true, nil
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs = make(map[string]Config)
}
