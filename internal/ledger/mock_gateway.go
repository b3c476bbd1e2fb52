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

	mock "github.com/stretchr/testify/mock"
)

// MockGateway lives outside _test.go so other packages' tests can import it.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) GetWallet(ctx context.Context, address string) (*Wallet, error) {
	args := m.Called(ctx, address)
	wallet, _ := args.Get(0).(*Wallet)
	return wallet, args.Error(1)
}

func (m *MockGateway) GetDelegate(ctx context.Context, id string) (*Delegate, error) {
	args := m.Called(ctx, id)
	delegate, _ := args.Get(0).(*Delegate)
	return delegate, args.Error(1)
}

func (m *MockGateway) SearchTransactions(ctx context.Context, filter *SearchFilter, page Page) ([]*Transaction, error) {
	args := m.Called(ctx, filter, page)
	txns, _ := args.Get(0).([]*Transaction)
	return txns, args.Error(1)
}

func (m *MockGateway) Submit(ctx context.Context, txns ...*SignedTransaction) (*SubmitResult, error) {
	args := m.Called(ctx, txns)
	result, _ := args.Get(0).(*SubmitResult)
	return result, args.Error(1)
}

func (m *MockGateway) ChainHeight(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}
