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

package msgs

import (
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"golang.org/x/text/language"
)

var _ = func() bool {
	i18n.RegisterPrefix("ACF00", "Anticounterfeit REST service")
	return true
}()

var ffe = func(key, translation string, statusHint ...int) i18n.ErrorMessageKey {
	return i18n.FFE(language.AmericanEnglish, key, translation, statusHint...)
}

var (
	MsgConfigMissingNodeURI      = ffe("ACF0001", "Ledger node URI is not configured", 500)
	MsgConfigMissingRootCred     = ffe("ACF0002", "Root sponsor passphrase is not configured", 500)
	MsgInvalidStateTransition    = ffe("ACF0003", "Invalid flow state transition from %s to %s", 500)
	MsgPresignedFieldMissing     = ffe("ACF0004", "Pre-signed submission is missing required field %s", 400)
	MsgPassphraseGenFailed       = ffe("ACF0005", "Failed to generate a fresh credential: %s", 500)
	MsgInvalidPublicKey          = ffe("ACF0006", "Invalid sender public key: %s", 400)
	MsgJSONRPCMissingRequestID   = ffe("ACF0007", "Invalid JSON/RPC request. id is required", 400)
	MsgJSONRPCUnsupportedMethod  = ffe("ACF0008", "method '%s' is not supported", 400)
	MsgJSONRPCInvalidParams      = ffe("ACF0009", "Invalid parameters for method '%s': %s", 400)
	MsgJSONRPCParseFailed        = ffe("ACF0010", "Failed to parse JSON/RPC request", 400)
	MsgNonceUnparseable          = ffe("ACF0011", "Wallet %s reported an unparseable sequence number '%s'", 502)
	MsgProvisioningUsernameEmpty = ffe("ACF0012", "A non-empty identity name is required", 400)
)
