// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"fmt"
)

// ErrItemNotFound is matched by every *ItemNotFoundError.
var ErrItemNotFound = errors.New("item not found")

// ItemNotFoundError reports a title that is not in the catalog.
type ItemNotFoundError struct {
	Title string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("title %q not found in catalog", e.Title)
}

func (e *ItemNotFoundError) Is(target error) bool { return target == ErrItemNotFound }

// UserMessage is the text shown to end users.
func (e *ItemNotFoundError) UserMessage() string { return MessageNotFound }
