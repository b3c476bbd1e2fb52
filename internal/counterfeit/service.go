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

// Package counterfeit is the service facade over the engine: the synchronous
// operations the serving layer exposes. Each call is request-scoped and
// stateless; the remote ledger is the only shared resource.
package counterfeit

import (
	"context"

	"github.com/gio-js/ark-counterfeit-rest/internal/composer"
	"github.com/gio-js/ark-counterfeit-rest/internal/flows"
	"github.com/gio-js/ark-counterfeit-rest/internal/identity"
	"github.com/gio-js/ark-counterfeit-rest/internal/ledger"
	"github.com/gio-js/ark-counterfeit-rest/internal/msgs"
	"github.com/gio-js/ark-counterfeit-rest/internal/provenance"
	"github.com/gio-js/ark-counterfeit-rest/internal/signer"
	"github.com/gio-js/ark-counterfeit-rest/pkg/acfconf"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
)

type Service struct {
	conf      *acfconf.ResolvedConfig
	gateway   ledger.Gateway
	composer  *composer.Composer
	signing   signer.SigningCapability
	sequencer *flows.SubmissionSequencer
	resolver  *provenance.Resolver
	verifier  *identity.Verifier
}

func NewService(ctx context.Context, conf *acfconf.ResolvedConfig, clock flows.Clock) (*Service, error) {
	if conf.NodeURI == "" {
		return nil, i18n.NewError(ctx, msgs.MsgConfigMissingNodeURI)
	}
	if conf.RootPassphrase == "" {
		return nil, i18n.NewError(ctx, msgs.MsgConfigMissingRootCred)
	}
	gateway := ledger.NewGateway(conf)
	signing := signer.NewSigner(conf.NetworkVersion)
	txComposer := composer.NewComposer(conf)
	return &Service{
		conf:      conf,
		gateway:   gateway,
		composer:  txComposer,
		signing:   signing,
		sequencer: flows.NewSubmissionSequencer(conf, gateway, ledger.NewNonceSequencer(gateway), txComposer, signing, clock),
		resolver:  provenance.NewResolver(conf, gateway),
		verifier:  identity.NewVerifier(conf, gateway),
	}, nil
}

// RegisterAccount provisions a new generic account: fresh credential,
// funding from the root sponsor, then delegate registration of the username.
// The passphrase is returned to the caller and never stored.
func (s *Service) RegisterAccount(ctx context.Context, req *RegisterAccountRequest) (*RegisterAccountResponse, error) {
	if req.Username == "" {
		return nil, i18n.NewError(ctx, msgs.MsgProvisioningUsernameEmpty)
	}
	passphrase, err := s.signing.GeneratePassphrase(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.sequencer.ProvisionDelegateAccount(ctx, req.Username, passphrase); err != nil {
		return nil, err
	}
	log.L(ctx).Infof("Registered account %q", req.Username)
	return &RegisterAccountResponse{Username: req.Username, Passphrase: passphrase}, nil
}

// AccountExists reports whether a delegate identity with the username is
// already registered.
func (s *Service) AccountExists(ctx context.Context, username string) (bool, error) {
	return s.verifier.Exists(ctx, username)
}

// RegisterManufacturer provisions a manufacturer: fresh credential, funding,
// then the manufacturer declaration with its product-id prefix and fiscal
// code. The generated credential is returned for handover to the company.
func (s *Service) RegisterManufacturer(ctx context.Context, req *RegisterManufacturerRequest) (*RegisterManufacturerResponse, error) {
	if req.CompanyName == "" || req.CompanyFiscalCode == "" {
		return nil, i18n.NewError(ctx, msgs.MsgProvisioningUsernameEmpty)
	}
	passphrase, err := s.signing.GeneratePassphrase(ctx)
	if err != nil {
		return nil, err
	}
	address := s.signing.DeriveAddress(passphrase)
	err = s.sequencer.ProvisionManufacturer(ctx, &composer.ManufacturerAsset{
		ManufacturerAddressId: address,
		ProductPrefixId:       req.ProductPrefixId,
		CompanyName:           req.CompanyName,
		CompanyFiscalCode:     req.CompanyFiscalCode,
	})
	if err != nil {
		return nil, err
	}
	log.L(ctx).Infof("Registered manufacturer %q at %s", req.CompanyName, address)
	return &RegisterManufacturerResponse{
		ManufacturerAddressId:  address,
		ManufacturerPublicKey:  s.signing.PublicKey(passphrase),
		ManufacturerPassphrase: passphrase,
	}, nil
}

// RegisterProduct submits a caller-signed product registration.
func (s *Service) RegisterProduct(ctx context.Context, container *composer.TransactionContainer[composer.ProductRegistrationAsset]) (*ledger.SubmitResult, error) {
	tx, err := s.composer.ProductRegistration(ctx, container)
	if err != nil {
		return nil, err
	}
	return s.sequencer.SubmitDirect(ctx, tx)
}

// TransferProduct submits a caller-signed transfer declaration. Transfers
// declare intent only; custody changes when the recipient submits a receipt.
func (s *Service) TransferProduct(ctx context.Context, container *composer.TransactionContainer[composer.ProductTransferAsset]) (*ledger.SubmitResult, error) {
	tx, err := s.composer.ProductTransfer(ctx, container)
	if err != nil {
		return nil, err
	}
	return s.sequencer.SubmitDirect(ctx, tx)
}

// ReceiveProduct submits a caller-signed receipt, the authoritative
// custody-changing event.
func (s *Service) ReceiveProduct(ctx context.Context, container *composer.TransactionContainer[composer.ProductReceiptAsset]) (*ledger.SubmitResult, error) {
	tx, err := s.composer.ProductReceipt(ctx, container)
	if err != nil {
		return nil, err
	}
	return s.sequencer.SubmitDirect(ctx, tx)
}

// ResolveOwner answers who currently holds a product.
func (s *Service) ResolveOwner(ctx context.Context, productID string) (*OwnerResponse, error) {
	owner, ok, err := s.resolver.ResolveCurrentOwner(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &OwnerResponse{ProductId: productID, Owner: owner, Known: ok}, nil
}

// Holdings answers what an account currently holds, as the original product
// registration records.
func (s *Service) Holdings(ctx context.Context, address string) ([]*composer.ProductRegistrationAsset, error) {
	return s.resolver.ResolveHoldings(ctx, address)
}

// VerifyLogin checks a claimed identity name against both identity
// registries.
func (s *Service) VerifyLogin(ctx context.Context, req *VerifyLoginRequest) (bool, error) {
	return s.verifier.Verify(ctx, req.Name, req.Address)
}

// ChainHeight reports the remote ledger's current block height.
func (s *Service) ChainHeight(ctx context.Context) (uint64, error) {
	return s.gateway.ChainHeight(ctx)
}
