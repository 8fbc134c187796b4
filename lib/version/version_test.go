// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfoMarksDirtyBuilds(t *testing.T) {
	savedDirty := GitDirty
	defer func() { GitDirty = savedDirty }()

	GitDirty = "false"
	if strings.Contains(Info(), "-dirty") {
		t.Errorf("clean build reported dirty: %s", Info())
	}

	GitDirty = "true"
	if !strings.Contains(Info(), "-dirty") {
		t.Errorf("dirty build not marked: %s", Info())
	}
}

func TestFullIncludesPlatform(t *testing.T) {
	full := Full()
	if !strings.Contains(full, "Go: ") {
		t.Errorf("Full() missing Go version: %s", full)
	}
	if !strings.Contains(full, "Platform: ") {
		t.Errorf("Full() missing platform: %s", full)
	}
}
