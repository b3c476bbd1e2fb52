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

package flows_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gio-js/ark-counterfeit-rest/internal/composer"
	"github.com/gio-js/ark-counterfeit-rest/internal/flows"
	"github.com/gio-js/ark-counterfeit-rest/internal/ledger"
	"github.com/gio-js/ark-counterfeit-rest/internal/signer"
	"github.com/gio-js/ark-counterfeit-rest/pkg/acfconf"
	"github.com/gio-js/ark-counterfeit-rest/pkg/confutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const rootPassphrase = "clay harbor enemy utility margin pretty hub comic piece aerobic umbrella acquire"
const newPassphrase = "venue below waste gather spin cruise title still boost mother flash tuna"

type testClock struct {
	slept []time.Duration
}

func (c *testClock) Now() time.Time        { return time.Unix(0, 0) }
func (c *testClock) Sleep(d time.Duration) { c.slept = append(c.slept, d) }

type fixture struct {
	conf      *acfconf.ResolvedConfig
	gateway   *ledger.MockGateway
	signing   signer.SigningCapability
	clock     *testClock
	sequencer *flows.SubmissionSequencer
	submitted []*ledger.SignedTransaction
}

func newFixture(t *testing.T) *fixture {
	conf := acfconf.Resolve(&acfconf.Config{
		Flows: acfconf.FlowConfig{
			RootPassphrase:    confutil.P(rootPassphrase),
			ConfirmationDelay: confutil.P("8s"),
		},
	})
	gateway := &ledger.MockGateway{}
	signing := signer.NewSigner(conf.NetworkVersion)
	clock := &testClock{}
	f := &fixture{
		conf:    conf,
		gateway: gateway,
		signing: signing,
		clock:   clock,
		sequencer: flows.NewSubmissionSequencer(conf, gateway,
			ledger.NewNonceSequencer(gateway), composer.NewComposer(conf), signing, clock),
	}
	return f
}

func (f *fixture) recordSubmissions(args mock.Arguments) {
	f.submitted = append(f.submitted, args.Get(1).([]*ledger.SignedTransaction)...)
}

func (f *fixture) sponsorHasNonce(nonce string) {
	sponsor := f.signing.DeriveAddress(rootPassphrase)
	f.gateway.On("GetWallet", mock.Anything, sponsor).
		Return(&ledger.Wallet{Address: sponsor, Nonce: nonce}, nil)
}

func TestProvisionManufacturerAllocatesConsecutiveSponsorNonces(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.sponsorHasNonce("5")
	f.gateway.On("Submit", mock.Anything, mock.Anything).
		Run(f.recordSubmissions).
		Return(&ledger.SubmitResult{Accepted: []string{"ok"}}, nil)

	err := f.sequencer.ProvisionManufacturer(ctx, &composer.ManufacturerAsset{
		ManufacturerAddressId: "Amanufacturer",
		CompanyName:           "acme",
		CompanyFiscalCode:     "ACMFSC80A01F205X",
	})
	require.NoError(t, err)

	require.Len(t, f.submitted, 2)
	funding, declaration := f.submitted[0], f.submitted[1]
	assert.Equal(t, "6", funding.Nonce)
	assert.Equal(t, f.conf.Types.NativeTransfer.Type, funding.Type)
	assert.Equal(t, "Amanufacturer", funding.RecipientID)
	assert.Equal(t, "7", declaration.Nonce)
	assert.Equal(t, f.conf.Types.ManufacturerRegistration.Type, declaration.Type)
	assert.Equal(t, f.conf.Types.ManufacturerRegistration.TypeGroup, declaration.TypeGroup)

	// exactly one confirmation-latency wait, between the two steps
	assert.Equal(t, []time.Duration{8 * time.Second}, f.clock.slept)
	// exactly one nonce query for the whole two-step run
	f.gateway.AssertNumberOfCalls(t, "GetWallet", 1)
}

func TestProvisionDelegateAccountSignsIdentityStepWithNewCredential(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.sponsorHasNonce("5")
	f.gateway.On("Submit", mock.Anything, mock.Anything).
		Run(f.recordSubmissions).
		Return(&ledger.SubmitResult{Accepted: []string{"ok"}}, nil)

	err := f.sequencer.ProvisionDelegateAccount(ctx, "collector9", newPassphrase)
	require.NoError(t, err)

	require.Len(t, f.submitted, 2)
	funding, registration := f.submitted[0], f.submitted[1]
	assert.Equal(t, "6", funding.Nonce)
	assert.Equal(t, f.signing.DeriveAddress(newPassphrase), funding.RecipientID)
	assert.Equal(t, f.conf.FundingAmount, funding.Amount)

	// the identity step is the new account's first ever transaction
	assert.Equal(t, "1", registration.Nonce)
	assert.Equal(t, f.conf.Types.DelegateRegistration.Type, registration.Type)
	assert.Equal(t, f.signing.PublicKey(newPassphrase), registration.SenderPublicKey)
}

func TestStep2NeverAttemptedAfterStep1Rejection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.sponsorHasNonce("5")
	rejection := &ledger.ProtocolError{
		Op:         "transaction submission",
		StatusCode: http.StatusOK,
		Errors:     []ledger.APIError{{Type: "ERR_APPLY", Message: "Insufficient balance"}},
	}
	f.gateway.On("Submit", mock.Anything, mock.Anything).
		Run(f.recordSubmissions).
		Return(nil, rejection)

	err := f.sequencer.ProvisionManufacturer(ctx, &composer.ManufacturerAsset{
		ManufacturerAddressId: "Amanufacturer",
		CompanyName:           "acme",
		CompanyFiscalCode:     "X",
	})

	// the rejection is propagated as-is, not wrapped as a partial failure
	require.ErrorIs(t, err, error(rejection))
	assert.False(t, flows.IsPartialFlowFailure(err))
	require.Len(t, f.submitted, 1)
	assert.Empty(t, f.clock.slept)
	f.gateway.AssertNumberOfCalls(t, "Submit", 1)
}

func TestStep2FailureAfterStep1AcceptanceIsPartial(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.sponsorHasNonce("5")
	f.gateway.On("Submit", mock.Anything, mock.Anything).
		Run(f.recordSubmissions).
		Return(&ledger.SubmitResult{Accepted: []string{"tx1"}}, nil).Once()
	transportErr := &ledger.TransportError{Op: "transaction submission", Err: context.DeadlineExceeded}
	f.gateway.On("Submit", mock.Anything, mock.Anything).
		Run(f.recordSubmissions).
		Return(nil, transportErr).Once()

	err := f.sequencer.ProvisionManufacturer(ctx, &composer.ManufacturerAsset{
		ManufacturerAddressId: "Amanufacturer",
		CompanyName:           "acme",
		CompanyFiscalCode:     "X",
	})

	require.Error(t, err)
	assert.True(t, flows.IsPartialFlowFailure(err))
	// the underlying cause stays reachable for callers that need it
	assert.ErrorIs(t, err, error(transportErr))
	require.Len(t, f.submitted, 2)
}

func TestSubmitDirectSingleStepNoWait(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tx := &ledger.SignedTransaction{ID: "presigned1", Signature: "sig"}
	f.gateway.On("Submit", mock.Anything, mock.Anything).
		Run(f.recordSubmissions).
		Return(&ledger.SubmitResult{Accepted: []string{"presigned1"}}, nil)

	result, err := f.sequencer.SubmitDirect(ctx, tx)
	require.NoError(t, err)
	assert.Equal(t, []string{"presigned1"}, result.Accepted)
	assert.Empty(t, f.clock.slept)
	f.gateway.AssertNotCalled(t, "GetWallet", mock.Anything, mock.Anything)
}
