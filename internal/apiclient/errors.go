// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package apiclient

import (
	"errors"
	"fmt"
)

// RequestError is the single failure kind of the client: the request never got
// a response, the backend answered with a non-2xx status, or the body could
// not be decoded. StatusCode is zero when no response was received.
type RequestError struct {
	Op         string
	StatusCode int
	Message    string // backend supplied "error" field, if any
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("client: %s: http %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("client: %s: http %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("client: %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("client: %s failed", e.Op)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}
