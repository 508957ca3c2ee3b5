// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import "errors"

var (
	// ErrConfig is returned when the configuration cannot be loaded.
	ErrConfig = errors.New("netting: invalid configuration")

	// ErrInvalidDomain is returned for arguments that are not domain names.
	ErrInvalidDomain = errors.New("netting: invalid domain")

	// ErrChecksFailed signals that at least one check failed. The
	// results have already been written when it is returned.
	ErrChecksFailed = errors.New("netting: one or more checks failed")
)
