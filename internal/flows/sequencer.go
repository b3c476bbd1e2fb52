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

// Package flows orchestrates multi-step write flows against the ledger. A
// provisioning flow funds a new account from the root sponsor and then
// registers its identity, with a confirmation-latency wait between the steps
// because the new account's state is not queryable until the funding
// transaction is included in a block. Direct flows submit a single
// caller-signed transaction with no wait.
//
// Concurrent flows sharing a sponsor account race on nonce allocation and
// the ledger will reject one of them; callers sharing a sponsor must
// serialize externally.
package flows

import (
	"context"

	"github.com/gio-js/ark-counterfeit-rest/internal/composer"
	"github.com/gio-js/ark-counterfeit-rest/internal/ledger"
	"github.com/gio-js/ark-counterfeit-rest/internal/signer"
	"github.com/gio-js/ark-counterfeit-rest/pkg/acfconf"
	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/log"
)

// Step is one submit unit of a flow. Compose runs inside the flow's
// Composing state so signing happens as late as possible.
type Step struct {
	Name    string
	Compose func(ctx context.Context) (*ledger.SignedTransaction, error)
}

type SubmissionSequencer struct {
	conf     *acfconf.ResolvedConfig
	gateway  ledger.Gateway
	nonces   *ledger.NonceSequencer
	composer *composer.Composer
	signing  signer.SigningCapability
	clock    Clock
}

func NewSubmissionSequencer(
	conf *acfconf.ResolvedConfig,
	gateway ledger.Gateway,
	nonces *ledger.NonceSequencer,
	txComposer *composer.Composer,
	signing signer.SigningCapability,
	clock Clock,
) *SubmissionSequencer {
	return &SubmissionSequencer{
		conf:     conf,
		gateway:  gateway,
		nonces:   nonces,
		composer: txComposer,
		signing:  signing,
		clock:    clock,
	}
}

// ProvisionDelegateAccount funds newPassphrase's account from the root
// sponsor, waits out confirmation latency, then registers username as a
// delegate identity from the new account. The new account has never
// transacted so its identity step statically carries nonce 1 - its state
// cannot be queried until the funding step confirms.
func (s *SubmissionSequencer) ProvisionDelegateAccount(ctx context.Context, username string, newPassphrase string) error {
	newAddress := s.signing.DeriveAddress(newPassphrase)
	sponsorNonce, err := s.nonces.Next(ctx, s.signing.DeriveAddress(s.conf.RootPassphrase))
	if err != nil {
		return err
	}
	step1 := Step{
		Name: "fund-account",
		Compose: func(ctx context.Context) (*ledger.SignedTransaction, error) {
			tx := s.composer.NativeTransfer(sponsorNonce, newAddress, s.conf.FundingAmount)
			return s.signing.Sign(ctx, tx, s.conf.RootPassphrase)
		},
	}
	step2 := Step{
		Name: "register-delegate",
		Compose: func(ctx context.Context) (*ledger.SignedTransaction, error) {
			tx := s.composer.DelegateRegistration(1, username)
			return s.signing.Sign(ctx, tx, newPassphrase)
		},
	}
	return s.runProvisioning(ctx, step1, step2)
}

// ProvisionManufacturer funds the manufacturer's account and then submits
// the manufacturer declaration. Both steps are signed by the root sponsor,
// so the nonce run is pre-allocated from a single query: re-querying between
// the steps would return a stale last-committed value and collide.
func (s *SubmissionSequencer) ProvisionManufacturer(ctx context.Context, asset *composer.ManufacturerAsset) error {
	sponsorNonces, err := s.nonces.Allocate(ctx, s.signing.DeriveAddress(s.conf.RootPassphrase), 2)
	if err != nil {
		return err
	}
	step1 := Step{
		Name: "fund-manufacturer",
		Compose: func(ctx context.Context) (*ledger.SignedTransaction, error) {
			tx := s.composer.NativeTransfer(sponsorNonces[0], asset.ManufacturerAddressId, s.conf.FundingAmount)
			return s.signing.Sign(ctx, tx, s.conf.RootPassphrase)
		},
	}
	step2 := Step{
		Name: "register-manufacturer",
		Compose: func(ctx context.Context) (*ledger.SignedTransaction, error) {
			tx := s.composer.ManufacturerRegistration(sponsorNonces[1], asset)
			return s.signing.Sign(ctx, tx, s.conf.RootPassphrase)
		},
	}
	return s.runProvisioning(ctx, step1, step2)
}

func (s *SubmissionSequencer) runProvisioning(ctx context.Context, step1 Step, step2 Step) error {
	flowID := uuid.New()
	sm := newStateMachine(flowID)
	log.L(ctx).Infof("Provisioning flow %s starting: %s then %s", flowID, step1.Name, step2.Name)

	tx1, err := step1.Compose(ctx)
	if err != nil {
		return err
	}
	if err := sm.transitionTo(ctx, State_SubmittedStep1); err != nil {
		return err
	}
	if _, err := s.gateway.Submit(ctx, tx1); err != nil {
		// Rejection or transport failure on step 1 aborts the flow; step 2 is
		// never attempted and the error is propagated as-is.
		_ = sm.transitionTo(ctx, State_Failed)
		return err
	}

	if err := sm.transitionTo(ctx, State_AwaitingConfirmation); err != nil {
		return err
	}
	log.L(ctx).Debugf("Flow %s waiting %s for confirmation of %s", flowID, s.conf.ConfirmationDelay, step1.Name)
	s.clock.Sleep(s.conf.ConfirmationDelay)

	if err := sm.transitionTo(ctx, State_ComposingStep2); err != nil {
		return err
	}
	tx2, err := step2.Compose(ctx)
	if err != nil {
		return err
	}
	if err := sm.transitionTo(ctx, State_SubmittedStep2); err != nil {
		return err
	}
	if _, err := s.gateway.Submit(ctx, tx2); err != nil {
		_ = sm.transitionTo(ctx, State_Failed)
		return &PartialFlowFailure{
			FlowID:        flowID,
			CompletedStep: step1.Name,
			FailedStep:    step2.Name,
			Err:           err,
		}
	}

	if err := sm.transitionTo(ctx, State_Done); err != nil {
		return err
	}
	log.L(ctx).Infof("Provisioning flow %s done", flowID)
	return nil
}

// SubmitDirect submits a single caller-signed transaction. No confirmation
// wait: direct submissions act on already-funded accounts and nothing in
// this system depends on their inclusion.
func (s *SubmissionSequencer) SubmitDirect(ctx context.Context, tx *ledger.SignedTransaction) (*ledger.SubmitResult, error) {
	return s.gateway.Submit(ctx, tx)
}
