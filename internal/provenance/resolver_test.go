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

package provenance

import (
	"context"
	"testing"

	"github.com/gio-js/ark-counterfeit-rest/internal/composer"
	"github.com/gio-js/ark-counterfeit-rest/internal/ledger"
	"github.com/gio-js/ark-counterfeit-rest/pkg/acfconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestResolver() (*Resolver, *ledger.MockGateway) {
	gateway := &ledger.MockGateway{}
	return NewResolver(acfconf.Resolve(&acfconf.Config{}), gateway), gateway
}

func filterOfType(txType uint32) interface{} {
	return mock.MatchedBy(func(f *ledger.SearchFilter) bool {
		return f.Type != nil && *f.Type == txType
	})
}

func filterForProduct(txType uint32, assetKey, productID string) interface{} {
	return mock.MatchedBy(func(f *ledger.SearchFilter) bool {
		if f.Type == nil || *f.Type != txType {
			return false
		}
		nested, _ := f.Asset[assetKey].(map[string]interface{})
		return nested["ProductId"] == productID
	})
}

func receiptTx(id, productID, recipient string) *ledger.Transaction {
	return &ledger.Transaction{
		ID:        id,
		Recipient: recipient,
		Asset: map[string]interface{}{
			composer.AssetKeyProductReceipt: map[string]interface{}{"ProductId": productID},
		},
	}
}

func registrationTx(id, productID, recipient string) *ledger.Transaction {
	return &ledger.Transaction{
		ID:        id,
		Recipient: recipient,
		Asset: map[string]interface{}{
			composer.AssetKeyProductRegistration: map[string]interface{}{
				"ProductId":             productID,
				"Description":           "Leather bag",
				"ManufacturerAddressId": recipient,
			},
		},
	}
}

func TestResolveCurrentOwnerReceiptWins(t *testing.T) {
	ctx := context.Background()
	r, gateway := newTestResolver()
	gateway.On("SearchTransactions", mock.Anything, filterOfType(103), mock.Anything).
		Return([]*ledger.Transaction{receiptTx("r1", "P1", "Acollector")}, nil)

	owner, ok, err := r.ResolveCurrentOwner(ctx, "P1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Acollector", owner)
	// receipts settle it; the registration is never consulted
	gateway.AssertNotCalled(t, "SearchTransactions", mock.Anything, filterOfType(101), mock.Anything)
}

func TestResolveCurrentOwnerFallsBackToRegistration(t *testing.T) {
	ctx := context.Background()
	r, gateway := newTestResolver()
	gateway.On("SearchTransactions", mock.Anything, filterOfType(103), mock.Anything).
		Return([]*ledger.Transaction{}, nil)
	gateway.On("SearchTransactions", mock.Anything, filterOfType(101), mock.Anything).
		Return([]*ledger.Transaction{registrationTx("g1", "P1", "Amanufacturer")}, nil)

	owner, ok, err := r.ResolveCurrentOwner(ctx, "P1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Amanufacturer", owner)
}

func TestResolveCurrentOwnerUnknownProduct(t *testing.T) {
	ctx := context.Background()
	r, gateway := newTestResolver()
	gateway.On("SearchTransactions", mock.Anything, mock.Anything, mock.Anything).
		Return([]*ledger.Transaction{}, nil)

	owner, ok, err := r.ResolveCurrentOwner(ctx, "never-registered")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, owner)
}

func TestResolveCurrentOwnerIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r, gateway := newTestResolver()
	gateway.On("SearchTransactions", mock.Anything, filterOfType(103), mock.Anything).
		Return([]*ledger.Transaction{
			receiptTx("r2", "P1", "Acollector2"),
			receiptTx("r1", "P1", "Acollector1"),
		}, nil)

	first, ok, err := r.ResolveCurrentOwner(ctx, "P1")
	require.NoError(t, err)
	require.True(t, ok)
	second, ok, err := r.ResolveCurrentOwner(ctx, "P1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, second)
	assert.Equal(t, "Acollector2", first)
}

func TestResolveHoldingsExcludesProductsMovedOnward(t *testing.T) {
	ctx := context.Background()
	r, gateway := newTestResolver()

	// Acollector once received P1 and P2 (P2 twice, at different times).
	gateway.On("SearchTransactions", mock.Anything, mock.MatchedBy(func(f *ledger.SearchFilter) bool {
		return f.RecipientID == "Acollector"
	}), mock.Anything).Return([]*ledger.Transaction{
		receiptTx("r1", "P1", "Acollector"),
		receiptTx("r2", "P2", "Acollector"),
		receiptTx("r3", "P2", "Acollector"),
	}, nil)

	// P1 has since been received by someone else; P2 is still held here.
	gateway.On("SearchTransactions", mock.Anything,
		filterForProduct(103, composer.AssetKeyProductReceipt, "P1"), mock.Anything).
		Return([]*ledger.Transaction{receiptTx("r4", "P1", "Aother")}, nil)
	gateway.On("SearchTransactions", mock.Anything,
		filterForProduct(103, composer.AssetKeyProductReceipt, "P2"), mock.Anything).
		Return([]*ledger.Transaction{receiptTx("r3", "P2", "Acollector")}, nil)
	gateway.On("SearchTransactions", mock.Anything,
		filterForProduct(101, composer.AssetKeyProductRegistration, "P2"), mock.Anything).
		Return([]*ledger.Transaction{registrationTx("g2", "P2", "Amanufacturer")}, nil)

	holdings, err := r.ResolveHoldings(ctx, "Acollector")
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "P2", holdings[0].ProductId)
	assert.Equal(t, "Leather bag", holdings[0].Description)
	// the duplicate P2 receipt must not trigger a second ownership check
	gateway.AssertNumberOfCalls(t, "SearchTransactions", 5)
}

func TestRegistrationDecodesAsset(t *testing.T) {
	ctx := context.Background()
	r, gateway := newTestResolver()
	gateway.On("SearchTransactions", mock.Anything, filterOfType(101), mock.Anything).
		Return([]*ledger.Transaction{registrationTx("g1", "P1", "Amanufacturer")}, nil)

	asset, err := r.Registration(ctx, "P1")
	require.NoError(t, err)
	require.NotNil(t, asset)
	assert.Equal(t, "P1", asset.ProductId)
	assert.Equal(t, "Amanufacturer", asset.ManufacturerAddressId)
}

func TestRegistrationUnknownProductIsNil(t *testing.T) {
	ctx := context.Background()
	r, gateway := newTestResolver()
	gateway.On("SearchTransactions", mock.Anything, mock.Anything, mock.Anything).
		Return([]*ledger.Transaction{}, nil)

	asset, err := r.Registration(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, asset)
}
