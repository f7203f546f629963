package llm

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/inkwell-sh/quill/internal/core"
)

// DynamicProvider wraps a concrete provider and rebuilds it when the
// model changes at runtime, so callers hold one stable reference.
type DynamicProvider struct {
	config  core.ProviderConfig
	current atomic.Value
}

func NewDynamicProvider(ctx context.Context, config core.ProviderConfig) (*DynamicProvider, error) {
	d := &DynamicProvider{
		config: config,
	}

	provider, err := NewProvider(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial provider: %w", err)
	}

	d.current.Store(provider)
	return d, nil
}

func (d *DynamicProvider) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	return d.load().Chat(ctx, history)
}

func (d *DynamicProvider) ChatStream(ctx context.Context, history []core.Message) (core.StreamRecv, error) {
	return d.load().ChatStream(ctx, history)
}

func (d *DynamicProvider) Models(ctx context.Context) ([]core.Model, error) {
	return d.load().Models(ctx)
}

// SetModel swaps the underlying provider. In-flight requests keep the
// provider they started with.
func (d *DynamicProvider) SetModel(ctx context.Context, model string) error {
	if err := d.config.SetModel(model); err != nil {
		return err
	}

	provider, err := NewProvider(ctx, d.config)
	if err != nil {
		return fmt.Errorf("failed to rebuild provider: %w", err)
	}

	d.current.Store(provider)
	return nil
}

func (d *DynamicProvider) load() core.AIProvider {
	return d.current.Load().(core.AIProvider)
}
