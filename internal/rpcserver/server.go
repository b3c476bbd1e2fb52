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

// Package rpcserver is the thin JSON/RPC-over-HTTP surface in front of the
// service facade. It carries no business logic: method dispatch, id
// enforcement and error mapping only.
package rpcserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	"github.com/gio-js/ark-counterfeit-rest/internal/msgs"
	"github.com/gio-js/ark-counterfeit-rest/pkg/acfconf"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/rs/cors"
)

// RPCHandler implements one method; params arrive as raw JSON and the result
// is marshalled by the server.
type RPCHandler func(ctx context.Context, params json.RawMessage) (interface{}, error)

type Server interface {
	Register(method string, handler RPCHandler)
	Start() error
	Stop(ctx context.Context)
	Addr() net.Addr
}

type rpcServer struct {
	conf       *acfconf.ResolvedConfig
	methods    map[string]RPCHandler
	httpServer *http.Server
	listener   net.Listener
	done       chan struct{}
}

func NewServer(conf *acfconf.ResolvedConfig) Server {
	return &rpcServer{
		conf:    conf,
		methods: make(map[string]RPCHandler),
		done:    make(chan struct{}),
	}
}

func (s *rpcServer) Register(method string, handler RPCHandler) {
	s.methods[method] = handler
}

func (s *rpcServer) Start() error {
	listener, err := net.Listen("tcp", s.conf.RPCAddress)
	if err != nil {
		return err
	}
	s.listener = listener

	var handler http.Handler = http.HandlerFunc(s.handleHTTP)
	if s.conf.RPCCORSEnabled {
		handler = cors.AllowAll().Handler(handler)
	}
	s.httpServer = &http.Server{Handler: handler}
	go func() {
		defer close(s.done)
		log.L(context.Background()).Infof("RPC server listening on %s", listener.Addr())
		_ = s.httpServer.Serve(listener)
	}()
	return nil
}

func (s *rpcServer) Stop(ctx context.Context) {
	if s.httpServer != nil {
		_ = s.httpServer.Shutdown(ctx)
		<-s.done
	}
}

func (s *rpcServer) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *rpcServer) handleHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var rpcReq RPCRequest
	if err := json.NewDecoder(r.Body).Decode(&rpcReq); err != nil {
		s.writeResponse(ctx, w, NewRPCErrorResponse(i18n.NewError(ctx, msgs.MsgJSONRPCParseFailed), nil, RPCCodeParseError))
		return
	}
	s.writeResponse(ctx, w, s.processRPC(ctx, &rpcReq))
}

func (s *rpcServer) processRPC(ctx context.Context, rpcReq *RPCRequest) *RPCResponse {
	if rpcReq.ID == nil {
		// The JSON/RPC standard tolerates id-less notifications, but every
		// operation here returns a payload so an id is mandatory.
		err := i18n.NewError(ctx, msgs.MsgJSONRPCMissingRequestID)
		return NewRPCErrorResponse(err, rpcReq.ID, RPCCodeInvalidRequest)
	}

	handler := s.methods[rpcReq.Method]
	if handler == nil {
		err := i18n.NewError(ctx, msgs.MsgJSONRPCUnsupportedMethod, rpcReq.Method)
		return NewRPCErrorResponse(err, rpcReq.ID, RPCCodeInvalidRequest)
	}

	result, err := handler(ctx, rpcReq.Params)
	if err != nil {
		log.L(ctx).Errorf("RPC %s failed: %s", rpcReq.Method, err)
		return NewRPCErrorResponse(err, rpcReq.ID, RPCCodeInternalError)
	}
	resultBytes, err := json.Marshal(result)
	if err != nil {
		return NewRPCErrorResponse(err, rpcReq.ID, RPCCodeInternalError)
	}
	return &RPCResponse{
		JSONRpc: "2.0",
		ID:      rpcReq.ID,
		Result:  resultBytes,
	}
}

func (s *rpcServer) writeResponse(ctx context.Context, w http.ResponseWriter, rpcRes *RPCResponse) {
	w.Header().Set("Content-Type", "application/json")
	status := http.StatusOK
	if rpcRes.Error != nil {
		status = http.StatusInternalServerError
		if RPCCode(rpcRes.Error.Code) != RPCCodeInternalError {
			status = http.StatusBadRequest
		}
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(rpcRes); err != nil {
		log.L(ctx).Errorf("Failed to write RPC response: %s", err)
	}
}
