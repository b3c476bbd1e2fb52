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
	"context"
	"strconv"

	"github.com/gio-js/ark-counterfeit-rest/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
)

// NonceSequencer computes the next valid per-account sequence numbers. The
// ledger enforces strictly increasing, gap-free nonces per sender, and its
// view of "last committed" only moves after confirmation latency. Allocate
// therefore hands out a consecutive run from a single query so that dependent
// steps in one flow never re-read a stale value mid-flow.
type NonceSequencer struct {
	gateway Gateway
}

func NewNonceSequencer(gateway Gateway) *NonceSequencer {
	return &NonceSequencer{gateway: gateway}
}

// Next returns the nonce the account's next transaction must carry:
// last committed + 1, where an account the ledger has never seen has last
// committed 0.
func (ns *NonceSequencer) Next(ctx context.Context, address string) (uint64, error) {
	nonces, err := ns.Allocate(ctx, address, 1)
	if err != nil {
		return 0, err
	}
	return nonces[0], nil
}

// Allocate returns n consecutive nonces starting at last committed + 1.
func (ns *NonceSequencer) Allocate(ctx context.Context, address string, n int) ([]uint64, error) {
	var last uint64
	wallet, err := ns.gateway.GetWallet(ctx, address)
	switch {
	case IsNotFound(err):
		// Unfunded account: first transaction carries nonce 1
		last = 0
	case err != nil:
		return nil, err
	default:
		last, err = strconv.ParseUint(wallet.Nonce, 10, 64)
		if err != nil {
			return nil, i18n.NewError(ctx, msgs.MsgNonceUnparseable, address, wallet.Nonce)
		}
	}
	nonces := make([]uint64, n)
	for i := range nonces {
		nonces[i] = last + 1 + uint64(i)
	}
	log.L(ctx).Debugf("Allocated nonces %v for %s", nonces, address)
	return nonces, nil
}
