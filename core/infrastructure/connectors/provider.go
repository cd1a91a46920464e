package connectors

import (
	"context"
	"errors"
	"sync"

	"github.com/hyperterse/reportdeck/core/domain/interfaces"
	"github.com/hyperterse/reportdeck/core/infrastructure/logging"
	apperrors "github.com/hyperterse/reportdeck/core/shared/errors"
)

// Opener constructs the underlying connector.
type Opener func(ctx context.Context) (interfaces.Connector, error)

// Provider lazily opens one connector and hands the same instance to every
// caller for its lifetime. A failed open is remembered and returned to every
// later caller; there is no reconnection.
type Provider struct {
	open Opener

	mu     sync.Mutex
	opened bool
	closed bool
	conn   interfaces.Connector
	err    error
}

// NewProvider creates a provider around open. Nothing is opened until Get.
func NewProvider(open Opener) *Provider {
	return &Provider{open: open}
}

// Get returns the shared connector, opening it on first use.
func (p *Provider) Get(ctx context.Context) (interfaces.Connector, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, apperrors.ConnectionFailed(errProviderClosed)
	}
	if p.opened {
		return p.conn, p.err
	}

	log := logging.New("connector")
	log.Debugf("Opening shared database connection")

	p.opened = true
	conn, err := p.open(ctx)
	if err != nil {
		log.Errorf("Failed to open database connection: %v", err)
		p.err = apperrors.ConnectionFailed(err)
		return nil, p.err
	}

	p.conn = conn
	log.Infof("Database connection established")
	return p.conn, nil
}

// Opened reports whether Get has attempted to open the connector.
func (p *Provider) Opened() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opened
}

// Close closes the connector if one was opened. Later calls to Get fail.
// Close is idempotent.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	if p.conn == nil {
		return nil
	}

	logging.New("connector").Debugf("Closing shared database connection")
	err := p.conn.Close()
	p.conn = nil
	return err
}

// WithProvider runs fn with a provider built from open and closes it when fn
// returns, whatever fn returns.
func WithProvider(ctx context.Context, open Opener, fn func(ctx context.Context, p *Provider) error) (err error) {
	p := NewProvider(open)
	defer func() {
		if closeErr := p.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(ctx, p)
}

var errProviderClosed = errors.New("connection provider is closed")

var _ interfaces.ConnectionProvider = (*Provider)(nil)
