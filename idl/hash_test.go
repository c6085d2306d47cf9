// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idl

import "testing"

func TestHash(t *testing.T) {
	cases := []struct {
		name string
		want uint32
	}{
		{"Ok", 17724},
		{"Err", 3456837},
	}
	for _, c := range cases {
		if got := Hash(c.name); got != c.want {
			t.Errorf("Hash(%q) = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestHashDeterministic(t *testing.T) {
	if Hash("foo") != Hash("foo") {
		t.Fatal("Hash is not deterministic")
	}
}
