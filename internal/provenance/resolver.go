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

// Package provenance reconstructs custody of tracked products by querying
// and reducing the ledger's transaction history. Custody is a function of
// the ordered registration and receipt history for a product id - a receipt
// is the authoritative custody-changing event, a transfer declares intent
// only and is never consulted here.
package provenance

import (
	"context"
	"encoding/json"

	"github.com/gio-js/ark-counterfeit-rest/internal/composer"
	"github.com/gio-js/ark-counterfeit-rest/internal/ledger"
	"github.com/gio-js/ark-counterfeit-rest/pkg/acfconf"
	"github.com/hyperledger/firefly-common/pkg/log"
)

type Resolver struct {
	conf    *acfconf.ResolvedConfig
	gateway ledger.Gateway
}

func NewResolver(conf *acfconf.ResolvedConfig, gateway ledger.Gateway) *Resolver {
	return &Resolver{conf: conf, gateway: gateway}
}

func (r *Resolver) productFilter(tag acfconf.TypeTag, assetKey string, productID string) *ledger.SearchFilter {
	return &ledger.SearchFilter{
		TypeGroup: &tag.TypeGroup,
		Type:      &tag.Type,
		Asset: map[string]interface{}{
			assetKey: map[string]interface{}{"ProductId": productID},
		},
		OrderBy: r.conf.SearchOrderBy,
	}
}

// ResolveCurrentOwner answers "who currently holds productID". Receipts win
// over the registration; with no receipts the registering manufacturer is
// the owner; with neither the product is unknown (ok=false). The first
// receipt in the search result's order is taken - the order itself comes
// from the node per the configured orderBy.
func (r *Resolver) ResolveCurrentOwner(ctx context.Context, productID string) (owner string, ok bool, err error) {
	receipts, err := r.gateway.SearchTransactions(ctx,
		r.productFilter(r.conf.Types.ProductReceipt, composer.AssetKeyProductReceipt, productID), ledger.Page{})
	if err != nil {
		return "", false, err
	}
	if len(receipts) > 0 {
		log.L(ctx).Debugf("Product %s owner resolved from receipt %s", productID, receipts[0].ID)
		return receipts[0].Recipient, true, nil
	}

	registrations, err := r.gateway.SearchTransactions(ctx,
		r.productFilter(r.conf.Types.ProductRegistration, composer.AssetKeyProductRegistration, productID), ledger.Page{})
	if err != nil {
		return "", false, err
	}
	if len(registrations) > 0 {
		log.L(ctx).Debugf("Product %s owner resolved from registration %s", productID, registrations[0].ID)
		return registrations[0].Recipient, true, nil
	}
	return "", false, nil
}

// ResolveHoldings answers "what does address currently hold": every product
// received by the address whose current owner is still the address, returned
// as the products' original registration records. There is no local index to
// consult, so this is one receipt search plus a re-resolution per candidate.
func (r *Resolver) ResolveHoldings(ctx context.Context, address string) ([]*composer.ProductRegistrationAsset, error) {
	receiptTag := r.conf.Types.ProductReceipt
	receipts, err := r.gateway.SearchTransactions(ctx, &ledger.SearchFilter{
		TypeGroup:   &receiptTag.TypeGroup,
		Type:        &receiptTag.Type,
		RecipientID: address,
		OrderBy:     r.conf.SearchOrderBy,
	}, ledger.Page{})
	if err != nil {
		return nil, err
	}

	holdings := make([]*composer.ProductRegistrationAsset, 0, len(receipts))
	seen := make(map[string]bool)
	for _, receipt := range receipts {
		productID := assetProductID(receipt, composer.AssetKeyProductReceipt)
		if productID == "" || seen[productID] {
			continue
		}
		seen[productID] = true

		// A product received here may have been re-received onward since;
		// keep it only if this address is still the current owner.
		owner, ok, err := r.ResolveCurrentOwner(ctx, productID)
		if err != nil {
			return nil, err
		}
		if !ok || owner != address {
			continue
		}

		registration, err := r.Registration(ctx, productID)
		if err != nil {
			return nil, err
		}
		if registration != nil {
			holdings = append(holdings, registration)
		}
	}
	return holdings, nil
}

// Registration fetches the original product registration record for a
// product id, or nil if the product was never registered.
func (r *Resolver) Registration(ctx context.Context, productID string) (*composer.ProductRegistrationAsset, error) {
	registrations, err := r.gateway.SearchTransactions(ctx,
		r.productFilter(r.conf.Types.ProductRegistration, composer.AssetKeyProductRegistration, productID), ledger.Page{})
	if err != nil {
		return nil, err
	}
	if len(registrations) == 0 {
		return nil, nil
	}
	var asset composer.ProductRegistrationAsset
	if err := decodeAsset(registrations[0], composer.AssetKeyProductRegistration, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func assetProductID(tx *ledger.Transaction, assetKey string) string {
	nested, _ := tx.Asset[assetKey].(map[string]interface{})
	productID, _ := nested["ProductId"].(string)
	return productID
}

func decodeAsset(tx *ledger.Transaction, assetKey string, target interface{}) error {
	raw, err := json.Marshal(tx.Asset[assetKey])
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}
