/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package main

import (
	"context"
	"errors"
	goflag "flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/petstore/pkg/server"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

const (
	application = "petstore-stub"

	shutdownTimeout = 10 * time.Second
)

func main() {
	var (
		options    server.Options
		logOptions zap.Options
	)

	options.AddFlags(pflag.CommandLine)
	logOptions.BindFlags(goflag.CommandLine)

	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	pflag.Parse()

	log.SetLogger(zap.New(zap.UseFlagOptions(&logOptions)))

	logger := log.Log.WithName("init")
	logger.Info("service starting", "application", application, "listenAddress", options.ListenAddress)

	ctx := cr.SetupSignalHandler()

	s := &server.Server{
		Options: options,
	}

	httpServer, err := s.GetServer(log.IntoContext(ctx, log.Log.WithName(application)))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	httpServer.BaseContext = func(_ net.Listener) context.Context {
		return log.IntoContext(context.Background(), log.Log.WithName(application))
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(err, "server shutdown error")
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Println(err)
		os.Exit(1)
	}

	logger.Info("service stopped")
}
