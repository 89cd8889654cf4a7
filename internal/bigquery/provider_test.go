package bigquery

import (
	"context"
	"errors"
	"testing"

	bq "cloud.google.com/go/bigquery"
)

func TestProvider_MemoizesFirstSuccess(t *testing.T) {
	calls := 0
	p := newProvider(func(ctx context.Context) (*bq.Client, error) {
		calls++
		return &bq.Client{}, nil
	})

	first, err := p.Client(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Client(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same cached client instance")
	}
	if calls != 1 {
		t.Fatalf("strategy ran %d times, want 1", calls)
	}
}

func TestProvider_SkipsInapplicableStrategies(t *testing.T) {
	order := []string{}
	p := newProvider(
		func(ctx context.Context) (*bq.Client, error) {
			order = append(order, "first")
			return nil, nil
		},
		func(ctx context.Context) (*bq.Client, error) {
			order = append(order, "second")
			return &bq.Client{}, nil
		},
	)

	if _, err := p.Client(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected strategy order: %v", order)
	}
}

func TestProvider_StrategyFailureIsTerminal(t *testing.T) {
	boom := errors.New("bad credentials")
	fallbackRan := false
	p := newProvider(
		func(ctx context.Context) (*bq.Client, error) { return nil, boom },
		func(ctx context.Context) (*bq.Client, error) {
			fallbackRan = true
			return &bq.Client{}, nil
		},
	)

	if _, err := p.Client(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected strategy error, got %v", err)
	}
	if fallbackRan {
		t.Fatalf("fallback strategy ran after a terminal failure")
	}
	// The failure is memoized too.
	if _, err := p.Client(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected memoized error, got %v", err)
	}
}

func TestProvider_AllUnavailable(t *testing.T) {
	p := newProvider(
		func(ctx context.Context) (*bq.Client, error) { return nil, nil },
		func(ctx context.Context) (*bq.Client, error) { return nil, nil },
	)
	if _, err := p.Client(context.Background()); err == nil {
		t.Fatalf("expected an error when no strategy applies")
	}
}
