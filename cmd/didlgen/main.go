// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command didlgen exercises the idl package from the command line:
// encode a fixed demo value set, run a batch of encodes concurrently
// through internal/runner to show the knot registry's single-writer
// discipline, or print a value's derived Type. It is a thin harness
// over the library, not a text-format parser or code generator.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
