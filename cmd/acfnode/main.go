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

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gio-js/ark-counterfeit-rest/internal/counterfeit"
	"github.com/gio-js/ark-counterfeit-rest/internal/flows"
	"github.com/gio-js/ark-counterfeit-rest/internal/rpcserver"
	"github.com/gio-js/ark-counterfeit-rest/pkg/acfconf"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "acfnode.yaml", "path to the node configuration file")
	logLevel := flag.String("loglevel", "info", "log level")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	ctx := context.Background()
	if err := run(ctx, *configPath); err != nil {
		log.L(ctx).Errorf("startup failed: %s", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	conf, err := acfconf.LoadFile(configPath)
	if err != nil {
		return err
	}
	resolved := acfconf.Resolve(conf)

	service, err := counterfeit.NewService(ctx, resolved, flows.RealClock())
	if err != nil {
		return err
	}

	server := rpcserver.NewServer(resolved)
	service.RegisterRPCMethods(server)
	if err := server.Start(); err != nil {
		return err
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	log.L(ctx).Infof("Shutting down on %s", sig)

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	server.Stop(shutdownCtx)
	return nil
}
