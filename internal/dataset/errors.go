// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord is matched by every *MalformedRecordError.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError reports a list field that could not be parsed.
// Title is empty when the error is produced outside of a record context.
type MalformedRecordError struct {
	Field string
	Title string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("malformed %s field for %q: %v", e.Field, e.Title, e.Err)
	}
	return fmt.Sprintf("malformed %s field: %v", e.Field, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMalformedRecord) true for any MalformedRecordError.
func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }
