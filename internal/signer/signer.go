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

// Package signer is the signing-capability boundary: credential generation,
// address derivation and transaction signing. The engine core depends only on
// the SigningCapability interface; nothing in this repository verifies
// signatures - verification happens at the ledger node.
package signer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/gio-js/ark-counterfeit-rest/internal/ledger"
	"github.com/gio-js/ark-counterfeit-rest/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/ripemd160"
)

type SigningCapability interface {
	// GeneratePassphrase produces a fresh high-entropy, human-transcribable
	// secret credential.
	GeneratePassphrase(ctx context.Context) (string, error)

	// DeriveAddress derives the account address for a secret credential.
	DeriveAddress(passphrase string) string

	// AddressFromPublicKey derives the account address for a hex-encoded
	// compressed public key.
	AddressFromPublicKey(ctx context.Context, publicKeyHex string) (string, error)

	// PublicKey returns the hex-encoded compressed public key for a secret
	// credential.
	PublicKey(passphrase string) string

	// Sign is deterministic given the same inputs: it returns the submit-ready
	// transaction with its signature and content-derived id attached.
	Sign(ctx context.Context, tx *ledger.UnsignedTransaction, passphrase string) (*ledger.SignedTransaction, error)
}

type secpSigner struct {
	networkVersion byte
}

func NewSigner(networkVersion byte) SigningCapability {
	return &secpSigner{networkVersion: networkVersion}
}

func (s *secpSigner) GeneratePassphrase(ctx context.Context) (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", i18n.WrapError(ctx, err, msgs.MsgPassphraseGenFailed, err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", i18n.WrapError(ctx, err, msgs.MsgPassphraseGenFailed, err)
	}
	return mnemonic, nil
}

func privateKeyFromPassphrase(passphrase string) *btcec.PrivateKey {
	seed := sha256.Sum256([]byte(passphrase))
	priv, _ := btcec.PrivKeyFromBytes(seed[:])
	return priv
}

func (s *secpSigner) PublicKey(passphrase string) string {
	priv := privateKeyFromPassphrase(passphrase)
	return hex.EncodeToString(priv.PubKey().SerializeCompressed())
}

func (s *secpSigner) DeriveAddress(passphrase string) string {
	priv := privateKeyFromPassphrase(passphrase)
	return s.addressFromPublicKeyBytes(priv.PubKey().SerializeCompressed())
}

func (s *secpSigner) AddressFromPublicKey(ctx context.Context, publicKeyHex string) (string, error) {
	pubBytes, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return "", i18n.NewError(ctx, msgs.MsgInvalidPublicKey, publicKeyHex)
	}
	if _, err := btcec.ParsePubKey(pubBytes); err != nil {
		return "", i18n.NewError(ctx, msgs.MsgInvalidPublicKey, publicKeyHex)
	}
	return s.addressFromPublicKeyBytes(pubBytes), nil
}

func (s *secpSigner) addressFromPublicKeyBytes(pubBytes []byte) string {
	hasher := ripemd160.New()
	hasher.Write(pubBytes)
	return base58.CheckEncode(hasher.Sum(nil), s.networkVersion)
}

func (s *secpSigner) Sign(ctx context.Context, tx *ledger.UnsignedTransaction, passphrase string) (*ledger.SignedTransaction, error) {
	priv := privateKeyFromPassphrase(passphrase)
	tx.SenderPublicKey = hex.EncodeToString(priv.PubKey().SerializeCompressed())

	unsignedBytes, err := json.Marshal(tx)
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(unsignedBytes)
	signature := ecdsa.Sign(priv, digest[:])

	signed := &ledger.SignedTransaction{
		UnsignedTransaction: *tx,
		Signature:           hex.EncodeToString(signature.Serialize()),
	}
	signedBytes, err := json.Marshal(signed)
	if err != nil {
		return nil, err
	}
	idDigest := sha256.Sum256(signedBytes)
	signed.ID = hex.EncodeToString(idDigest[:])
	return signed, nil
}
