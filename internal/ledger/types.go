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

// Wallet is the ledger's view of an account. Nonce and Balance are decimal
// strings on the wire and stay opaque here except where the nonce sequencer
// parses them.
type Wallet struct {
	Address   string `json:"address"`
	PublicKey string `json:"publicKey"`
	Nonce     string `json:"nonce"`
	Balance   string `json:"balance"`
}

// Delegate is a named identity bound 1:1 to an account.
type Delegate struct {
	Username  string `json:"username"`
	Address   string `json:"address"`
	PublicKey string `json:"publicKey"`
}

// Transaction is an accepted, immutable ledger record as returned by search.
type Transaction struct {
	ID              string                 `json:"id"`
	TypeGroup       uint32                 `json:"typeGroup"`
	Type            uint32                 `json:"type"`
	Sender          string                 `json:"sender"`
	SenderPublicKey string                 `json:"senderPublicKey"`
	Recipient       string                 `json:"recipient"`
	Nonce           string                 `json:"nonce"`
	Amount          string                 `json:"amount"`
	Fee             string                 `json:"fee"`
	VendorField     string                 `json:"vendorField,omitempty"`
	Asset           map[string]interface{} `json:"asset,omitempty"`
}

// UnsignedTransaction is a composed transaction before the signing capability
// has run. The shape mirrors the node's submission schema minus signature/id.
type UnsignedTransaction struct {
	Version         uint8                  `json:"version"`
	Network         uint8                  `json:"network"`
	TypeGroup       uint32                 `json:"typeGroup"`
	Type            uint32                 `json:"type"`
	Nonce           string                 `json:"nonce"`
	SenderPublicKey string                 `json:"senderPublicKey"`
	Fee             string                 `json:"fee"`
	Amount          string                 `json:"amount"`
	RecipientID     string                 `json:"recipientId,omitempty"`
	VendorField     string                 `json:"vendorField,omitempty"`
	Asset           map[string]interface{} `json:"asset,omitempty"`
}

// SignedTransaction is submit-ready: an UnsignedTransaction plus its
// signature and content-derived id.
type SignedTransaction struct {
	UnsignedTransaction
	Signature string `json:"signature"`
	ID        string `json:"id"`
}

// SearchFilter is the structured transaction-search filter understood by the
// node. Asset matches nested asset fields by equality.
type SearchFilter struct {
	TypeGroup   *uint32                `json:"typeGroup,omitempty"`
	Type        *uint32                `json:"type,omitempty"`
	RecipientID string                 `json:"recipientId,omitempty"`
	Asset       map[string]interface{} `json:"asset,omitempty"`
	OrderBy     string                 `json:"orderBy,omitempty"`
}

type Page struct {
	Number int
	Limit  int
}

// SubmitResult reports the per-transaction outcome of a batch submission.
// Accepted ids are in the node's mempool awaiting inclusion; invalid ids carry
// structured errors in Errors.
type SubmitResult struct {
	Accepted []string              `json:"accept"`
	Invalid  []string              `json:"invalid"`
	Errors   map[string][]APIError `json:"-"`
}

type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
