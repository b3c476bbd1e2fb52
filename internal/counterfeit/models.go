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

type RegisterAccountRequest struct {
	Username string `json:"Username"`
}

type RegisterAccountResponse struct {
	Username   string `json:"Username"`
	Passphrase string `json:"Passphrase"`
}

type RegisterManufacturerRequest struct {
	ProductPrefixId   string `json:"ProductPrefixId"`
	CompanyName       string `json:"CompanyName"`
	CompanyFiscalCode string `json:"CompanyFiscalCode"`
}

type RegisterManufacturerResponse struct {
	ManufacturerAddressId  string `json:"ManufacturerAddressId"`
	ManufacturerPublicKey  string `json:"ManufacturerPublicKey"`
	ManufacturerPassphrase string `json:"ManufacturerPassphrase"`
}

type OwnerResponse struct {
	ProductId string `json:"ProductId"`
	Owner     string `json:"Owner,omitempty"`
	Known     bool   `json:"Known"`
}

type VerifyLoginRequest struct {
	Name    string `json:"Name"`
	Address string `json:"Address"`
}
