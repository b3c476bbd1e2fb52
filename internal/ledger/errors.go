/*
 * Copyright © 2025 Anticounterfeit Project contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
 * the License. You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
 * an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations under the License.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package ledger

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// TransportError means the node could not be reached or did not answer:
// network failure, timeout, connection refused. Never retried at this layer.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ledger node unreachable during %s: %s", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError means the node answered but reported structured errors
// (invalid nonce, insufficient balance, duplicate identity, not found). The
// raw error list is surfaced verbatim to callers.
type ProtocolError struct {
	Op         string
	StatusCode int
	Errors     []APIError
}

func (e *ProtocolError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, apiErr := range e.Errors {
		parts[i] = apiErr.Message
	}
	return fmt.Sprintf("ledger node rejected %s (status %d): %s", e.Op, e.StatusCode, strings.Join(parts, "; "))
}

// IsNotFound reports whether err is the node telling us the queried entity
// does not exist, as opposed to a failure.
func IsNotFound(err error) bool {
	var protoErr *ProtocolError
	return errors.As(err, &protoErr) && protoErr.StatusCode == http.StatusNotFound
}

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
