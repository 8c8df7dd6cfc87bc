// Package odoo wraps the Odoo external API. Every remote operation goes
// through the single execute_kw RPC primitive; the typed helpers in
// rpc.go are thin argument builders over it.
package odoo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/isep-edu/crm-gateway/internal/config"
	"github.com/kolo/xmlrpc"
)

// Invoker is the remote-procedure primitive the repositories depend on.
// Tests inject a fake; production uses *Client.
type Invoker interface {
	ExecuteKw(ctx context.Context, model, method string, args []any, kwargs map[string]any) (any, error)
}

// Client talks to an Odoo server over XML-RPC. It authenticates lazily
// on the first call and caches the resulting uid. The client holds no
// record state; every call is a full round-trip.
type Client struct {
	database string
	username string
	password string
	timeout  time.Duration
	logger   *slog.Logger

	common *xmlrpc.Client
	object *xmlrpc.Client

	mu  sync.Mutex
	uid int64
}

// NewClient creates a client for the given Odoo connection settings.
func NewClient(cfg config.OdooConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	base := strings.TrimSuffix(cfg.URL, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}

	common, err := xmlrpc.NewClient(base+"/xmlrpc/2/common", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create common endpoint client: %w", err)
	}
	object, err := xmlrpc.NewClient(base+"/xmlrpc/2/object", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create object endpoint client: %w", err)
	}

	return &Client{
		database: cfg.Database,
		username: cfg.Username,
		password: cfg.Password,
		timeout:  cfg.Timeout,
		logger:   logger,
		common:   common,
		object:   object,
	}, nil
}

// Authenticate logs in against /xmlrpc/2/common and caches the uid.
// It is safe to call concurrently; only the first caller authenticates.
func (c *Client) Authenticate(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.uid != 0 {
		return c.uid, nil
	}

	var reply any
	err := c.call(ctx, c.common, "authenticate",
		[]any{c.database, c.username, c.password, map[string]any{}}, &reply)
	if err != nil {
		return 0, &RemoteError{Model: "common", Method: "authenticate", Err: err}
	}

	// Odoo answers the integer uid on success and boolean false on bad
	// credentials.
	uid, ok := reply.(int64)
	if !ok || uid <= 0 {
		return 0, ErrUnauthorized
	}

	c.uid = uid
	c.logger.Info("Authenticated against Odoo", "database", c.database, "username", c.username, "uid", uid)
	return uid, nil
}

// ExecuteKw executes method on model via execute_kw. Remote faults are
// wrapped in RemoteError and surfaced unchanged; there is no retry.
func (c *Client) ExecuteKw(ctx context.Context, model, method string, args []any, kwargs map[string]any) (any, error) {
	uid, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	if kwargs == nil {
		kwargs = map[string]any{}
	}
	if args == nil {
		args = []any{}
	}

	c.logger.Debug("Executing remote call", "model", model, "method", method)

	var reply any
	err = c.call(ctx, c.object, "execute_kw",
		[]any{c.database, uid, c.password, model, method, args, kwargs}, &reply)
	if err != nil {
		return nil, &RemoteError{Model: model, Method: method, Err: err}
	}

	return reply, nil
}

// callResult pairs a decoded XML-RPC reply with its error so both
// travel over one channel.
type callResult struct {
	reply any
	err   error
}

// call runs a single XML-RPC call under the client timeout. When the
// context is cancelled mid-flight the cancellation surfaces as the
// call's error and the reply is left untouched; the abandoned goroutine
// decodes into its own local value, so a late response never writes
// into caller-owned memory.
func (c *Client) call(ctx context.Context, endpoint *xmlrpc.Client, method string, params []any, reply *any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	done := make(chan callResult, 1)
	go func() {
		var local any
		err := endpoint.Call(method, params, &local)
		done <- callResult{reply: local, err: err}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-done:
		if res.err != nil {
			return res.err
		}
		*reply = res.reply
		return nil
	}
}
