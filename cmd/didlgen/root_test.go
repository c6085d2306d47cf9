// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeCmdPrintsOneLinePerJob(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"encode"})
	require.NoError(t, cmd.Execute())
	require.Equal(t, len(demoJobs()), bytes.Count(out.Bytes(), []byte("\n")))
}

func TestDescribeCmdPrintsOneLinePerJob(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"describe"})
	require.NoError(t, cmd.Execute())
	require.Equal(t, len(demoJobs()), bytes.Count(out.Bytes(), []byte("\n")))
}

func TestBenchCmdRuns(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"bench", "--repeat", "2"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "jobs")
}
