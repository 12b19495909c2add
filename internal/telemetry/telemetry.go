// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package telemetry ships sampled node values to a socket.io collector.
//
// Why socket.io?
//
// Dashboards that plot live control loops are almost always browser-based,
// and socket.io is the lowest-friction way to push a stream of samples at
// one. The emitter connects lazily on the first emit so that building a rig
// never requires a collector to be running.
package telemetry

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/specialistvlad/controlrig/internal/ctxlog"
	"github.com/specialistvlad/controlrig/internal/datum"
)

const (
	defaultEvent   = "samples"
	defaultTimeout = 10 * time.Second
)

// Sample is one observed node value at one tick.
type Sample struct {
	Node  string     `json:"node"`
	Time  datum.Time `json:"time"`
	Value any        `json:"value,omitempty"`
	State string     `json:"state"`
}

// Config describes the collector endpoint.
type Config struct {
	URL                string
	Namespace          string
	Event              string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

func (c Config) withDefaults() Config {
	if c.Event == "" {
		c.Event = defaultEvent
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// Emitter pushes samples to a socket.io endpoint over websocket.
type Emitter struct {
	cfg Config

	mu        sync.Mutex
	connected bool
	manager   *socket.Manager
	io        *socket.Socket
}

// NewEmitter validates the config. No connection is made yet.
func NewEmitter(cfg Config) (*Emitter, error) {
	cfg = cfg.withDefaults()
	if cfg.URL == "" {
		return nil, fmt.Errorf("telemetry: url is required")
	}
	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, fmt.Errorf("telemetry: failed to parse URL: %w", err)
	}
	return &Emitter{cfg: cfg}, nil
}

// Emit connects on first use, then fires the configured event with the
// batch of samples.
func (e *Emitter) Emit(ctx context.Context, samples []Sample) error {
	if len(samples) == 0 {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.connected {
		if err := e.connect(ctx); err != nil {
			return err
		}
	}
	return e.io.Emit(e.cfg.Event, samples)
}

// connect dials the collector and waits for the handshake. Caller holds the
// mutex.
func (e *Emitter) connect(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("url", e.cfg.URL, "namespace", e.cfg.Namespace)
	logger.Debug("Connecting to telemetry collector.")

	parsedURL, err := url.Parse(e.cfg.URL)
	if err != nil {
		return fmt.Errorf("telemetry: failed to parse URL: %w", err)
	}
	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if e.cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(e.cfg.Namespace, opts)

	done := make(chan error, 1)
	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Connected to telemetry collector.", "sid", io.Id())
		done <- nil
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				done <- err
				return
			}
		}
		done <- fmt.Errorf("telemetry: connection refused")
	})

	opCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	io.Connect()
	select {
	case <-opCtx.Done():
		io.Disconnect()
		return fmt.Errorf("telemetry: timed out while waiting for initial connection")
	case err := <-done:
		if err != nil {
			io.Disconnect()
			return fmt.Errorf("telemetry: %w", err)
		}
	}

	e.manager, e.io, e.connected = manager, io, true
	return nil
}

// Close disconnects from the collector if a connection was made.
func (e *Emitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.connected {
		e.io.Disconnect()
		e.connected = false
	}
}
