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

// Package ledger is the gateway to the remote append-only ledger's public
// HTTP API: account lookup, filtered transaction search, batch submission and
// chain-height queries. Pure I/O; retry policy belongs to callers.
package ledger

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gio-js/ark-counterfeit-rest/pkg/acfconf"
	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/firefly-common/pkg/log"
)

type Gateway interface {
	GetWallet(ctx context.Context, address string) (*Wallet, error)
	GetDelegate(ctx context.Context, id string) (*Delegate, error)
	SearchTransactions(ctx context.Context, filter *SearchFilter, page Page) ([]*Transaction, error)
	Submit(ctx context.Context, txns ...*SignedTransaction) (*SubmitResult, error)
	ChainHeight(ctx context.Context) (uint64, error)
}

type gateway struct {
	client   *resty.Client
	pageSize int
}

func NewGateway(conf *acfconf.ResolvedConfig) Gateway {
	return &gateway{
		client: resty.New().
			SetBaseURL(conf.NodeURI).
			SetTimeout(conf.RequestTimeout).
			SetHeader("Content-Type", "application/json"),
		pageSize: conf.SearchPageSize,
	}
}

// The node wraps every successful payload in a data envelope, and failures in
// a statusCode/error/message envelope.
type errorEnvelope struct {
	StatusCode int    `json:"statusCode"`
	ErrorName  string `json:"error"`
	Message    string `json:"message"`
}

func (e *errorEnvelope) toProtocolError(op string, httpStatus int) *ProtocolError {
	statusCode := e.StatusCode
	if statusCode == 0 {
		statusCode = httpStatus
	}
	message := e.Message
	if message == "" {
		message = e.ErrorName
	}
	return &ProtocolError{
		Op:         op,
		StatusCode: statusCode,
		Errors:     []APIError{{Type: e.ErrorName, Message: message}},
	}
}

func (g *gateway) GetWallet(ctx context.Context, address string) (*Wallet, error) {
	var env struct {
		Data *Wallet `json:"data"`
	}
	var errEnv errorEnvelope
	op := "wallet lookup"
	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&env).
		SetError(&errEnv).
		Get("/api/wallets/" + address)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if resp.IsError() {
		return nil, errEnv.toProtocolError(op, resp.StatusCode())
	}
	log.L(ctx).Debugf("Wallet %s nonce=%s balance=%s", address, env.Data.Nonce, env.Data.Balance)
	return env.Data, nil
}

func (g *gateway) GetDelegate(ctx context.Context, id string) (*Delegate, error) {
	var env struct {
		Data *Delegate `json:"data"`
	}
	var errEnv errorEnvelope
	op := "delegate lookup"
	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&env).
		SetError(&errEnv).
		Get("/api/delegates/" + id)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if resp.IsError() {
		return nil, errEnv.toProtocolError(op, resp.StatusCode())
	}
	return env.Data, nil
}

func (g *gateway) SearchTransactions(ctx context.Context, filter *SearchFilter, page Page) ([]*Transaction, error) {
	if page.Limit == 0 {
		page.Limit = g.pageSize
	}
	if page.Number == 0 {
		page.Number = 1
	}
	var env struct {
		Data []*Transaction `json:"data"`
	}
	var errEnv errorEnvelope
	op := "transaction search"
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("page", strconv.Itoa(page.Number)).
		SetQueryParam("limit", strconv.Itoa(page.Limit)).
		SetBody(filter).
		SetResult(&env).
		SetError(&errEnv).
		Post("/api/transactions/search")
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if resp.IsError() {
		return nil, errEnv.toProtocolError(op, resp.StatusCode())
	}
	log.L(ctx).Debugf("Transaction search matched %d records", len(env.Data))
	// The node's native result ordering is passed through unchanged. Callers
	// that depend on recency must pin orderBy in the filter.
	return env.Data, nil
}

func (g *gateway) Submit(ctx context.Context, txns ...*SignedTransaction) (*SubmitResult, error) {
	var env struct {
		Data   SubmitResult          `json:"data"`
		Errors map[string][]APIError `json:"errors"`
	}
	var errEnv errorEnvelope
	op := "transaction submission"
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"transactions": txns}).
		SetResult(&env).
		SetError(&errEnv).
		Post("/api/transactions")
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if resp.IsError() {
		return nil, errEnv.toProtocolError(op, resp.StatusCode())
	}
	result := env.Data
	result.Errors = env.Errors
	if len(result.Invalid) > 0 || len(env.Errors) > 0 {
		// Surface the node's structured rejection verbatim; the accepted ids
		// (if any) remain available on the result for the caller.
		var flattened []APIError
		for txID, apiErrs := range env.Errors {
			for _, apiErr := range apiErrs {
				flattened = append(flattened, APIError{
					Type:    apiErr.Type,
					Message: fmt.Sprintf("%s: %s", txID, apiErr.Message),
				})
			}
		}
		if len(flattened) == 0 {
			flattened = []APIError{{Type: "ERR_INVALID", Message: fmt.Sprintf("transactions rejected: %v", result.Invalid)}}
		}
		return &result, &ProtocolError{Op: op, StatusCode: resp.StatusCode(), Errors: flattened}
	}
	log.L(ctx).Infof("Submitted %d transaction(s), accepted %v", len(txns), result.Accepted)
	return &result, nil
}

func (g *gateway) ChainHeight(ctx context.Context) (uint64, error) {
	var env struct {
		Data struct {
			Block struct {
				Height uint64 `json:"height"`
			} `json:"block"`
		} `json:"data"`
	}
	var errEnv errorEnvelope
	op := "chain height"
	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&env).
		SetError(&errEnv).
		Get("/api/blockchain")
	if err != nil {
		return 0, &TransportError{Op: op, Err: err}
	}
	if resp.IsError() {
		return 0, errEnv.toProtocolError(op, resp.StatusCode())
	}
	return env.Data.Block.Height, nil
}
