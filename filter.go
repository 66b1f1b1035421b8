// SPDX-License-Identifier: MIT
// Copyright (c) 2026 patchkit
// Source: github.com/patchkit/grfpatch

package grfpatch

import (
	"fmt"

	"github.com/woozymasta/pathrules"
)

// mergeFilter holds compiled include/exclude rules for folder-merge path
// selection. Adapted from the compression-candidate matcher wrapper: same
// library, same ordered-rule idiom, now deciding which files under a
// merge root participate instead of which archive entries get compressed.
type mergeFilter struct {
	matcher *pathrules.Matcher
}

func newMergeFilter(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*mergeFilter, error) {
	if len(rules) == 0 {
		return nil, nil
	}

	matcher, err := pathrules.NewMatcher(rules, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: compile include rules: %v", ErrInvalidMergeFilter, err)
	}
	return &mergeFilter{matcher: matcher}, nil
}

// included reports whether path should participate in the merge. A nil
// filter (no rules configured) includes everything.
func (m *mergeFilter) included(path string) bool {
	if m == nil || m.matcher == nil {
		return true
	}
	return m.matcher.Included(path, false)
}
