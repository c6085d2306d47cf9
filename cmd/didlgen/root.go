// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/solidcoredata/didl/idl"
	"github.com/solidcoredata/didl/internal/runner"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "didlgen",
		Short: "Exercise the idl package's encode path against a fixed demo value set",
	}
	root.AddCommand(encodeCmd(), benchCmd(), describeCmd())
	return root
}

func encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode",
		Short: "Marshal each demo value and print its hex-encoded DIDL bytes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, job := range demoJobs() {
				buf, err := idl.Marshal(job.Value, job.Type)
				if err != nil {
					return fmt.Errorf("encode %q: %w", job.Name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %3d bytes  %s\n", job.Name, len(buf), hex.EncodeToString(buf))
			}
			return nil
		},
	}
}

func benchCmd() *cobra.Command {
	var repeat int
	var stopTimeout time.Duration
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the demo value set through internal/runner concurrently",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs := demoJobs()
			var all []runner.Job
			for i := 0; i < repeat; i++ {
				all = append(all, jobs...)
			}

			start := time.Now()
			results, err := runner.Run(cmd.Context(), runner.Options{StopTimeout: stopTimeout}, all)
			if err != nil {
				return err
			}

			var total int
			for _, r := range results {
				total += len(r.Bytes)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d jobs, %d bytes total, %s\n", len(results), total, time.Since(start))
			return nil
		},
	}
	cmd.Flags().IntVar(&repeat, "repeat", 100, "number of times to repeat the demo job set")
	cmd.Flags().DurationVar(&stopTimeout, "stop-timeout", 5*time.Second, "bound on how long bench waits for in-flight jobs on interrupt")
	return cmd
}

func describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print the derived Type of each demo value",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, job := range demoJobs() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", job.Name, job.Type)
			}
			return nil
		},
	}
}
