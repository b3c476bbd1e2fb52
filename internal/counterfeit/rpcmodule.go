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

package counterfeit

import (
	"context"
	"encoding/json"

	"github.com/gio-js/ark-counterfeit-rest/internal/composer"
	"github.com/gio-js/ark-counterfeit-rest/internal/msgs"
	"github.com/gio-js/ark-counterfeit-rest/internal/rpcserver"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

func firstParam[T any](ctx context.Context, method string, params json.RawMessage) (*T, error) {
	var list []json.RawMessage
	if len(params) > 0 {
		if err := json.Unmarshal(params, &list); err != nil {
			return nil, i18n.NewError(ctx, msgs.MsgJSONRPCInvalidParams, method, err)
		}
	}
	if len(list) == 0 {
		return nil, i18n.NewError(ctx, msgs.MsgJSONRPCInvalidParams, method, "missing parameter")
	}
	var target T
	if err := json.Unmarshal(list[0], &target); err != nil {
		return nil, i18n.NewError(ctx, msgs.MsgJSONRPCInvalidParams, method, err)
	}
	return &target, nil
}

// RegisterRPCMethods binds the facade's operations onto the serving layer.
func (s *Service) RegisterRPCMethods(server rpcserver.Server) {
	server.Register("acf_registerAccount", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		req, err := firstParam[RegisterAccountRequest](ctx, "acf_registerAccount", params)
		if err != nil {
			return nil, err
		}
		return s.RegisterAccount(ctx, req)
	})
	server.Register("acf_accountExists", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		username, err := firstParam[string](ctx, "acf_accountExists", params)
		if err != nil {
			return nil, err
		}
		return s.AccountExists(ctx, *username)
	})
	server.Register("acf_registerManufacturer", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		req, err := firstParam[RegisterManufacturerRequest](ctx, "acf_registerManufacturer", params)
		if err != nil {
			return nil, err
		}
		return s.RegisterManufacturer(ctx, req)
	})
	server.Register("acf_registerProduct", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		container, err := firstParam[composer.TransactionContainer[composer.ProductRegistrationAsset]](ctx, "acf_registerProduct", params)
		if err != nil {
			return nil, err
		}
		return s.RegisterProduct(ctx, container)
	})
	server.Register("acf_transferProduct", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		container, err := firstParam[composer.TransactionContainer[composer.ProductTransferAsset]](ctx, "acf_transferProduct", params)
		if err != nil {
			return nil, err
		}
		return s.TransferProduct(ctx, container)
	})
	server.Register("acf_receiveProduct", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		container, err := firstParam[composer.TransactionContainer[composer.ProductReceiptAsset]](ctx, "acf_receiveProduct", params)
		if err != nil {
			return nil, err
		}
		return s.ReceiveProduct(ctx, container)
	})
	server.Register("acf_resolveOwner", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		productID, err := firstParam[string](ctx, "acf_resolveOwner", params)
		if err != nil {
			return nil, err
		}
		return s.ResolveOwner(ctx, *productID)
	})
	server.Register("acf_holdings", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		address, err := firstParam[string](ctx, "acf_holdings", params)
		if err != nil {
			return nil, err
		}
		return s.Holdings(ctx, *address)
	})
	server.Register("acf_verifyLogin", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		req, err := firstParam[VerifyLoginRequest](ctx, "acf_verifyLogin", params)
		if err != nil {
			return nil, err
		}
		return s.VerifyLogin(ctx, req)
	})
	server.Register("acf_chainHeight", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		return s.ChainHeight(ctx)
	})
}
