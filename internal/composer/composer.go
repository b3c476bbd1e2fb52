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

// Package composer builds the transaction payload variants the engine
// submits: the four domain transactions plus the two ledger-native primitives
// the provisioning flows depend on. The composer never signs - it hands
// unsigned payloads to the signing capability, or splices caller-supplied
// signatures into pre-signed submissions verbatim.
package composer

import (
	"context"
	"strconv"

	"github.com/gio-js/ark-counterfeit-rest/internal/ledger"
	"github.com/gio-js/ark-counterfeit-rest/internal/msgs"
	"github.com/gio-js/ark-counterfeit-rest/pkg/acfconf"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// Asset envelope keys. These name the payload variant inside the
// transaction's asset and are what search filters match on.
const (
	AssetKeyManufacturerRegistration = "AnticounterfeitRegisterManufacturerTransaction"
	AssetKeyProductRegistration      = "AnticounterfeitRegisterProductTransaction"
	AssetKeyProductTransfer          = "AnticounterfeitTransferProductTransaction"
	AssetKeyProductReceipt           = "AnticounterfeitReceiveProductTransaction"
)

type ManufacturerAsset struct {
	ManufacturerAddressId string `json:"ManufacturerAddressId"`
	ProductPrefixId       string `json:"ProductPrefixId"`
	CompanyName           string `json:"CompanyName"`
	CompanyFiscalCode     string `json:"CompanyFiscalCode"`
	RegistrationContract  string `json:"RegistrationContract,omitempty"`
}

type ProductRegistrationAsset struct {
	ProductId             string   `json:"ProductId"`
	Description           string   `json:"Description"`
	ManufacturerAddressId string   `json:"ManufacturerAddressId"`
	Metadata              []string `json:"Metadata,omitempty"`
}

type ProductTransferAsset struct {
	ProductId          string `json:"ProductId"`
	SenderAddressId    string `json:"SenderAddressId"`
	RecipientAddressId string `json:"RecipientAddressId"`
}

type ProductReceiptAsset struct {
	ProductId          string `json:"ProductId"`
	RecipientAddressId string `json:"RecipientAddressId"`
}

// TransactionContainer is an externally pre-signed submission: the caller
// composed and signed the domain payload on their own device and supplies the
// signature, sender public key and content id for verbatim splicing.
type TransactionContainer[T any] struct {
	Asset           T      `json:"Asset"`
	Nonce           uint64 `json:"Nonce"`
	SenderPublicKey string `json:"SenderPublicKey"`
	TransactionId   string `json:"TransactionId"`
	Signature       string `json:"Signature"`
}

type Composer struct {
	conf *acfconf.ResolvedConfig
}

func NewComposer(conf *acfconf.ResolvedConfig) *Composer {
	return &Composer{conf: conf}
}

func (c *Composer) base(tag acfconf.TypeTag, nonce uint64) *ledger.UnsignedTransaction {
	return &ledger.UnsignedTransaction{
		Version:     2,
		Network:     c.conf.NetworkVersion,
		TypeGroup:   tag.TypeGroup,
		Type:        tag.Type,
		Nonce:       strconv.FormatUint(nonce, 10),
		Amount:      "0",
		VendorField: c.conf.VendorField,
	}
}

// ManufacturerRegistration is sponsor-signed: the sender is the root sponsor
// account and the recipient is the manufacturer being declared.
func (c *Composer) ManufacturerRegistration(nonce uint64, asset *ManufacturerAsset) *ledger.UnsignedTransaction {
	tx := c.base(c.conf.Types.ManufacturerRegistration, nonce)
	tx.Fee = c.conf.DomainFee
	tx.RecipientID = asset.ManufacturerAddressId
	tx.Asset = map[string]interface{}{AssetKeyManufacturerRegistration: asset}
	return tx
}

// NativeTransfer moves value on the ledger's own transfer type; the
// provisioning flows use it as the funding step for new accounts.
func (c *Composer) NativeTransfer(nonce uint64, recipient string, amount string) *ledger.UnsignedTransaction {
	tx := c.base(c.conf.Types.NativeTransfer, nonce)
	tx.Fee = c.conf.TransferFee
	tx.Amount = amount
	tx.RecipientID = recipient
	return tx
}

// DelegateRegistration binds a username to the sending account via the
// ledger-native identity registration type.
func (c *Composer) DelegateRegistration(nonce uint64, username string) *ledger.UnsignedTransaction {
	tx := c.base(c.conf.Types.DelegateRegistration, nonce)
	tx.Fee = c.conf.DelegateFee
	tx.Asset = map[string]interface{}{
		"delegate": map[string]interface{}{"username": username},
	}
	return tx
}

func (c *Composer) ProductRegistration(ctx context.Context, container *TransactionContainer[ProductRegistrationAsset]) (*ledger.SignedTransaction, error) {
	return c.presigned(ctx, c.conf.Types.ProductRegistration, AssetKeyProductRegistration,
		container.Asset, container.Asset.ManufacturerAddressId,
		container.Nonce, container.SenderPublicKey, container.Signature, container.TransactionId)
}

func (c *Composer) ProductTransfer(ctx context.Context, container *TransactionContainer[ProductTransferAsset]) (*ledger.SignedTransaction, error) {
	return c.presigned(ctx, c.conf.Types.ProductTransfer, AssetKeyProductTransfer,
		container.Asset, container.Asset.RecipientAddressId,
		container.Nonce, container.SenderPublicKey, container.Signature, container.TransactionId)
}

func (c *Composer) ProductReceipt(ctx context.Context, container *TransactionContainer[ProductReceiptAsset]) (*ledger.SignedTransaction, error) {
	return c.presigned(ctx, c.conf.Types.ProductReceipt, AssetKeyProductReceipt,
		container.Asset, container.Asset.RecipientAddressId,
		container.Nonce, container.SenderPublicKey, container.Signature, container.TransactionId)
}

// presigned assembles the canonical payload shape around caller-supplied
// signing material. No signature verification happens here; the ledger node
// is the verifier.
func (c *Composer) presigned(ctx context.Context, tag acfconf.TypeTag, assetKey string, asset interface{}, recipient string,
	nonce uint64, senderPublicKey, signature, id string) (*ledger.SignedTransaction, error) {
	switch {
	case senderPublicKey == "":
		return nil, i18n.NewError(ctx, msgs.MsgPresignedFieldMissing, "SenderPublicKey")
	case signature == "":
		return nil, i18n.NewError(ctx, msgs.MsgPresignedFieldMissing, "Signature")
	case id == "":
		return nil, i18n.NewError(ctx, msgs.MsgPresignedFieldMissing, "TransactionId")
	}
	tx := c.base(tag, nonce)
	tx.Fee = c.conf.DomainFee
	tx.RecipientID = recipient
	tx.SenderPublicKey = senderPublicKey
	tx.Asset = map[string]interface{}{assetKey: asset}
	return &ledger.SignedTransaction{
		UnsignedTransaction: *tx,
		Signature:           signature,
		ID:                  id,
	}, nil
}
