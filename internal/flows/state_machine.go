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
	"context"

	"github.com/gio-js/ark-counterfeit-rest/internal/msgs"
	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
)

type State int

const (
	State_Composing             State = iota // composing and signing the first step
	State_SubmittedStep1                     // first step handed to the gateway
	State_AwaitingConfirmation               // waiting out confirmation latency before the dependent step
	State_ComposingStep2                     // composing and signing the dependent step
	State_SubmittedStep2                     // dependent step handed to the gateway
	State_Done                               // both steps accepted
	State_Failed                             // a submitted step was rejected or unreachable
)

func (s State) String() string {
	switch s {
	case State_Composing:
		return "Composing"
	case State_SubmittedStep1:
		return "Submitted(step1)"
	case State_AwaitingConfirmation:
		return "AwaitingConfirmation"
	case State_ComposingStep2:
		return "Composing(step2)"
	case State_SubmittedStep2:
		return "Submitted(step2)"
	case State_Done:
		return "Done"
	case State_Failed:
		return "Failed"
	}
	return "Unknown"
}

// validTransitions is the whole provisioning flow: a straight line to Done,
// with Failed reachable from either Submitted state.
var validTransitions = map[State][]State{
	State_Composing:             {State_SubmittedStep1},
	State_SubmittedStep1:        {State_AwaitingConfirmation, State_Failed},
	State_AwaitingConfirmation:  {State_ComposingStep2},
	State_ComposingStep2:        {State_SubmittedStep2},
	State_SubmittedStep2:        {State_Done, State_Failed},
	State_Done:                  {},
	State_Failed:                {},
}

type stateMachine struct {
	flowID       uuid.UUID
	currentState State
}

func newStateMachine(flowID uuid.UUID) *stateMachine {
	return &stateMachine{flowID: flowID, currentState: State_Composing}
}

func (sm *stateMachine) transitionTo(ctx context.Context, to State) error {
	for _, allowed := range validTransitions[sm.currentState] {
		if allowed == to {
			log.L(ctx).Debugf("flow %s | %s -> %s", sm.flowID, sm.currentState, to)
			sm.currentState = to
			return nil
		}
	}
	return i18n.NewError(ctx, msgs.MsgInvalidStateTransition, sm.currentState, to)
}
