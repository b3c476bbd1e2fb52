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

package flows

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// PartialFlowFailure marks a two-step flow whose second step failed after the
// first was already accepted. The accepted step is permanent on the immutable
// ledger and is never rolled back, so the on-chain state no longer matches
// the caller's intent; callers must reconcile rather than blindly retry the
// whole flow.
type PartialFlowFailure struct {
	FlowID        uuid.UUID
	CompletedStep string
	FailedStep    string
	Err           error
}

func (e *PartialFlowFailure) Error() string {
	return fmt.Sprintf("flow %s: step %q failed after step %q was accepted (accepted steps are permanent): %s",
		e.FlowID, e.FailedStep, e.CompletedStep, e.Err)
}

func (e *PartialFlowFailure) Unwrap() error {
	return e.Err
}

// IsPartialFlowFailure distinguishes a half-completed flow from a clean
// single-step failure.
func IsPartialFlowFailure(err error) bool {
	var pff *PartialFlowFailure
	return errors.As(err, &pff)
}
