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

// Package acfconf holds the process-wide configuration for the
// anticounterfeit engine: ledger network parameters, the reserved
// transaction-type table, fee schedule and flow timing. The resolved form is
// immutable and passed by reference into the components that need it.
package acfconf

import (
	"os"
	"time"

	"github.com/gio-js/ark-counterfeit-rest/pkg/confutil"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Node      NodeConfig      `json:"node" yaml:"node"`
	Network   NetworkConfig   `json:"network" yaml:"network"`
	Fees      FeeConfig       `json:"fees" yaml:"fees"`
	Flows     FlowConfig      `json:"flows" yaml:"flows"`
	RPCServer RPCServerConfig `json:"rpcServer" yaml:"rpcServer"`
}

type NodeConfig struct {
	URI            *string `json:"uri" yaml:"uri"`
	RequestTimeout *string `json:"requestTimeout" yaml:"requestTimeout"`
	SearchPageSize *int    `json:"searchPageSize" yaml:"searchPageSize"`
	SearchOrderBy  *string `json:"searchOrderBy" yaml:"searchOrderBy"`
}

type NetworkConfig struct {
	Version     *int    `json:"version" yaml:"version"`
	VendorField *string `json:"vendorField" yaml:"vendorField"`
}

type FeeConfig struct {
	Domain   *string `json:"domain" yaml:"domain"`
	Transfer *string `json:"transfer" yaml:"transfer"`
	Delegate *string `json:"delegate" yaml:"delegate"`
}

type FlowConfig struct {
	RootPassphrase    *string `json:"rootPassphrase" yaml:"rootPassphrase"`
	FundingAmount     *string `json:"fundingAmount" yaml:"fundingAmount"`
	ConfirmationDelay *string `json:"confirmationDelay" yaml:"confirmationDelay"`
}

type RPCServerConfig struct {
	Address     *string `json:"address" yaml:"address"`
	CORSEnabled *bool   `json:"corsEnabled" yaml:"corsEnabled"`
}

var Defaults = &Config{
	Node: NodeConfig{
		RequestTimeout: confutil.P("30s"),
		SearchPageSize: confutil.P(100),
		SearchOrderBy:  confutil.P("timestamp:desc"),
	},
	Network: NetworkConfig{
		Version:     confutil.P(23),
		VendorField: confutil.P("UniMi-AnticounterfeitProject"),
	},
	Fees: FeeConfig{
		Domain:   confutil.P("100000000"),
		Transfer: confutil.P("10000000"),
		Delegate: confutil.P("2500000000"),
	},
	Flows: FlowConfig{
		FundingAmount:     confutil.P("100000000"),
		ConfirmationDelay: confutil.P("8s"),
	},
	RPCServer: RPCServerConfig{
		Address:     confutil.P("127.0.0.1:4100"),
		CORSEnabled: confutil.P(true),
	},
}

// TypeTag is the two-level tag that identifies a transaction's domain meaning
// on the shared ledger.
type TypeTag struct {
	TypeGroup uint32
	Type      uint32
}

// TypeTable is the reserved transaction-type registry. The domain codes are
// globally reserved on the shared ledger and must never collide with other
// transaction types, so they are fixed rather than configurable.
type TypeTable struct {
	ManufacturerRegistration TypeTag
	ProductRegistration      TypeTag
	ProductTransfer          TypeTag
	ProductReceipt           TypeTag
	NativeTransfer           TypeTag
	DelegateRegistration     TypeTag
}

const domainTypeGroup = 1001

var reservedTypes = TypeTable{
	ManufacturerRegistration: TypeTag{TypeGroup: domainTypeGroup, Type: 100},
	ProductRegistration:      TypeTag{TypeGroup: domainTypeGroup, Type: 101},
	ProductTransfer:          TypeTag{TypeGroup: domainTypeGroup, Type: 102},
	ProductReceipt:           TypeTag{TypeGroup: domainTypeGroup, Type: 103},
	NativeTransfer:           TypeTag{TypeGroup: 1, Type: 0},
	DelegateRegistration:     TypeTag{TypeGroup: 1, Type: 2},
}

// ResolvedConfig is the immutable runtime view of Config, with all defaults
// applied. Constructed once at startup.
type ResolvedConfig struct {
	NodeURI           string
	RequestTimeout    time.Duration
	SearchPageSize    int
	SearchOrderBy     string
	NetworkVersion    byte
	VendorField       string
	DomainFee         string
	TransferFee       string
	DelegateFee       string
	RootPassphrase    string
	FundingAmount     string
	ConfirmationDelay time.Duration
	RPCAddress        string
	RPCCORSEnabled    bool
	Types             TypeTable
}

func Resolve(conf *Config) *ResolvedConfig {
	return &ResolvedConfig{
		NodeURI:           confutil.StringOrEmpty(conf.Node.URI, ""),
		RequestTimeout:    confutil.DurationMin(conf.Node.RequestTimeout, 1*time.Second, *Defaults.Node.RequestTimeout),
		SearchPageSize:    confutil.IntMin(conf.Node.SearchPageSize, 1, *Defaults.Node.SearchPageSize),
		SearchOrderBy:     confutil.StringNotEmpty(conf.Node.SearchOrderBy, *Defaults.Node.SearchOrderBy),
		NetworkVersion:    byte(confutil.Int(conf.Network.Version, *Defaults.Network.Version)),
		VendorField:       confutil.StringNotEmpty(conf.Network.VendorField, *Defaults.Network.VendorField),
		DomainFee:         confutil.StringNotEmpty(conf.Fees.Domain, *Defaults.Fees.Domain),
		TransferFee:       confutil.StringNotEmpty(conf.Fees.Transfer, *Defaults.Fees.Transfer),
		DelegateFee:       confutil.StringNotEmpty(conf.Fees.Delegate, *Defaults.Fees.Delegate),
		RootPassphrase:    confutil.StringOrEmpty(conf.Flows.RootPassphrase, ""),
		FundingAmount:     confutil.StringNotEmpty(conf.Flows.FundingAmount, *Defaults.Flows.FundingAmount),
		ConfirmationDelay: confutil.DurationMin(conf.Flows.ConfirmationDelay, 0, *Defaults.Flows.ConfirmationDelay),
		RPCAddress:        confutil.StringNotEmpty(conf.RPCServer.Address, *Defaults.RPCServer.Address),
		RPCCORSEnabled:    confutil.Bool(conf.RPCServer.CORSEnabled, *Defaults.RPCServer.CORSEnabled),
		Types:             reservedTypes,
	}
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var conf Config
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}
