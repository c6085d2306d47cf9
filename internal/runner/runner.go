// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runner drives a batch of encode jobs concurrently: it fans
// values out across goroutines, each marshaling against a shared
// Registry, with signal-aware shutdown (an interrupt cancels in-flight
// jobs) and a bounded stop timeout on top.
package runner

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/solidcoredata/didl/idl"
)

// Job is one value to encode against a shared Type.
type Job struct {
	Name  string
	Value interface{}
	Type  idl.Type
}

// Result is the outcome of encoding one Job.
type Result struct {
	Name  string
	Bytes []byte
	Err   error
}

// Options configures a Run call. The zero value is usable: it selects
// DefaultRegistry and an unbounded stop timeout.
type Options struct {
	// Registry resolves Knot types encountered while encoding. Nil uses
	// idl.DefaultRegistry.
	Registry *idl.Registry

	// StopTimeout bounds how long Run waits for in-flight jobs to finish
	// after ctx is canceled (by the caller or by an interrupt signal)
	// before returning anyway. Zero means wait indefinitely.
	StopTimeout time.Duration
}

// Run encodes every Job in jobs concurrently, one goroutine per job via
// errgroup.WithContext. Results are returned in the same order as jobs
// regardless of completion order. An os.Interrupt cancels ctx for all
// in-flight jobs, and Run returns once they've all observed cancellation
// or StopTimeout has elapsed, whichever comes first.
func Run(ctx context.Context, opts Options, jobs []Job) ([]Result, error) {
	registry := opts.Registry
	if registry == nil {
		registry = idl.DefaultRegistry
	}

	notify := make(chan os.Signal, 3)
	signal.Notify(notify, os.Interrupt)
	defer signal.Stop(notify)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]Result, len(jobs))
	group, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		group.Go(func() error {
			buf, err := idl.MarshalIn(registry, job.Value, job.Type)
			if err != nil {
				err = fmt.Errorf("runner: job %q: %w", job.Name, err)
			}
			results[i] = Result{Name: job.Name, Bytes: buf, Err: err}
			if err != nil {
				return err
			}
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
				return nil
			}
		})
	}

	fin := make(chan error, 1)
	go func() { fin <- group.Wait() }()

	select {
	case <-notify:
		cancel()
	case err := <-fin:
		return results, err
	}

	if opts.StopTimeout <= 0 {
		return results, <-fin
	}
	timer := time.NewTimer(opts.StopTimeout)
	defer timer.Stop()
	select {
	case err := <-fin:
		return results, err
	case <-timer.C:
		return results, gctx.Err()
	}
}
