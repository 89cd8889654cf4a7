package bigquery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	bq "cloud.google.com/go/bigquery"
	"google.golang.org/api/option"
)

const bigqueryScope = "https://www.googleapis.com/auth/bigquery"

type Config struct {
	Project         string
	Dataset         string
	CredentialsFile string
}

// credentialStrategy attempts one authentication method. Returning a nil
// client with a nil error means the method is not applicable and the next
// one should be tried.
type credentialStrategy func(ctx context.Context) (*bq.Client, error)

// Provider hands out a memoized BigQuery client. The strategy chain runs at
// most once for the process lifetime; the first applicable method wins and
// its outcome, success or failure, is what every later caller sees.
type Provider struct {
	once       sync.Once
	client     *bq.Client
	err        error
	strategies []credentialStrategy
}

func NewProvider(cfg Config) *Provider {
	return &Provider{strategies: defaultStrategies(cfg)}
}

func newProvider(strategies ...credentialStrategy) *Provider {
	return &Provider{strategies: strategies}
}

// Client returns the shared BigQuery client, authenticating on first use.
func (p *Provider) Client(ctx context.Context) (*bq.Client, error) {
	p.once.Do(func() {
		for _, strategy := range p.strategies {
			client, err := strategy(ctx)
			if err != nil {
				p.err = err
				return
			}
			if client != nil {
				p.client = client
				return
			}
		}
		p.err = errors.New("no BigQuery credentials found: configure a service account file, " +
			"set GOOGLE_APPLICATION_CREDENTIALS, or run 'gcloud auth application-default login'")
	})
	return p.client, p.err
}

// Close releases the underlying client if one was ever created.
func (p *Provider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// defaultStrategies builds the fixed-priority authentication chain: explicit
// service account file, then the GOOGLE_APPLICATION_CREDENTIALS location,
// then ambient default credentials.
func defaultStrategies(cfg Config) []credentialStrategy {
	return []credentialStrategy{
		func(ctx context.Context) (*bq.Client, error) {
			if cfg.CredentialsFile == "" {
				return nil, nil
			}
			if _, err := os.Stat(cfg.CredentialsFile); err != nil {
				return nil, nil
			}
			client, err := bq.NewClient(ctx, cfg.Project,
				option.WithCredentialsFile(cfg.CredentialsFile),
				option.WithScopes(bigqueryScope))
			if err != nil {
				return nil, fmt.Errorf("service account credentials: %w", err)
			}
			return client, nil
		},
		func(ctx context.Context) (*bq.Client, error) {
			if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
				return nil, nil
			}
			client, err := bq.NewClient(ctx, cfg.Project)
			if err != nil {
				return nil, fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS: %w", err)
			}
			return client, nil
		},
		func(ctx context.Context) (*bq.Client, error) {
			client, err := bq.NewClient(ctx, cfg.Project)
			if err != nil {
				return nil, fmt.Errorf("application default credentials: %w", err)
			}
			return client, nil
		},
	}
}
