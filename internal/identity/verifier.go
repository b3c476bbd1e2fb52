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

// Package identity answers login verification against the two disjoint
// identity registries sharing one login surface: delegate-style named
// identities, and manufacturer identities inferred from manufacturer
// registration transactions.
package identity

import (
	"context"

	"github.com/gio-js/ark-counterfeit-rest/internal/composer"
	"github.com/gio-js/ark-counterfeit-rest/internal/ledger"
	"github.com/gio-js/ark-counterfeit-rest/pkg/acfconf"
	"github.com/hyperledger/firefly-common/pkg/log"
)

type Verifier struct {
	conf    *acfconf.ResolvedConfig
	gateway ledger.Gateway
}

func NewVerifier(conf *acfconf.ResolvedConfig, gateway ledger.Gateway) *Verifier {
	return &Verifier{conf: conf, gateway: gateway}
}

// Verify reports whether claimedName corresponds to a registered identity
// bound to address. Delegate identities are checked first; a delegate
// NotFound is "no", not an error. Otherwise claimedName is interpreted as a
// manufacturer fiscal code and the most recent matching registration's
// recipient must be the address.
func (v *Verifier) Verify(ctx context.Context, claimedName string, address string) (bool, error) {
	delegate, err := v.gateway.GetDelegate(ctx, address)
	switch {
	case ledger.IsNotFound(err):
		// fall through to the manufacturer registry
	case err != nil:
		return false, err
	case delegate.Username == claimedName:
		log.L(ctx).Debugf("Login %s verified as delegate %s", address, claimedName)
		return true, nil
	}

	tag := v.conf.Types.ManufacturerRegistration
	registrations, err := v.gateway.SearchTransactions(ctx, &ledger.SearchFilter{
		TypeGroup: &tag.TypeGroup,
		Type:      &tag.Type,
		Asset: map[string]interface{}{
			composer.AssetKeyManufacturerRegistration: map[string]interface{}{"CompanyFiscalCode": claimedName},
		},
		OrderBy: v.conf.SearchOrderBy,
	}, ledger.Page{})
	if err != nil {
		return false, err
	}
	if len(registrations) > 0 && registrations[0].Recipient == address {
		log.L(ctx).Debugf("Login %s verified as manufacturer with fiscal code %s", address, claimedName)
		return true, nil
	}
	return false, nil
}

// Exists reports whether a delegate identity with the given username is
// already registered.
func (v *Verifier) Exists(ctx context.Context, username string) (bool, error) {
	delegate, err := v.gateway.GetDelegate(ctx, username)
	if ledger.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return delegate != nil && delegate.Username == username, nil
}
