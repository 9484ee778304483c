package main

import (
	"crypto/tls"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"ens-api/ens"
	"ens-api/handlers"
	"ens-api/metrics"
	"ens-api/rpc"
	"ens-api/subgraph"
	"ens-api/types"
	"ens-api/utils"
	"ens-api/version"

	"github.com/phyber/negroni-gzip/gzip"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
	"github.com/zesik/proxyaddr"
)

func main() {
	defer recoverPanic()
	configPath := flag.String("config", "", "Path to the config file, if empty string defaults will be used")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(version.Version)
		fmt.Println(version.GoVersion)
		return
	}

	cfg := &types.Config{}
	err := utils.ReadConfig(cfg, *configPath)
	if err != nil {
		logrus.Fatalf("error reading config file: %v", err)
	}
	logrus.WithField("config", *configPath).WithField("version", version.Version).WithField("commit", version.GitCommit).WithField("endpoint", cfg.Chain.Endpoint).Printf("starting")

	client, err := rpc.NewClient(&cfg.Chain)
	if err != nil {
		utils.LogFatal(err, "error initializing chain client", 0)
	}
	defer client.Close()

	contracts, err := ens.NewChainContracts(client, &cfg.Ens)
	if err != nil {
		utils.LogFatal(err, "error binding ens contracts", 0)
	}

	service, err := ens.NewService(client.Address(), contracts, &cfg.Ens)
	if err != nil {
		utils.LogFatal(err, "error initializing ens service", 0)
	}

	index, err := subgraph.NewClient(&cfg.Subgraph)
	if err != nil {
		logrus.Fatalf("error initializing subgraph client: %v", err)
	}

	router, err := handlers.NewRouter(handlers.NewEnsApi(service, index), &cfg.Api)
	if err != nil {
		logrus.Fatalf("error initializing router: %v", err)
	}

	n := negroni.New(negroni.NewRecovery())
	n.Use(gzip.Gzip(gzip.DefaultCompression))

	pa := &proxyaddr.ProxyAddr{}
	pa.Init(proxyaddr.CIDRLoopback)
	n.Use(pa)

	n.UseHandler(router)

	if cfg.Api.HttpReadTimeout == 0 {
		cfg.Api.HttpReadTimeout = time.Second * 15
	}
	if cfg.Api.HttpWriteTimeout == 0 {
		cfg.Api.HttpWriteTimeout = time.Second * 60
	}
	if cfg.Api.HttpIdleTimeout == 0 {
		cfg.Api.HttpIdleTimeout = time.Second * 60
	}
	srv := &http.Server{
		Addr:         cfg.Api.Host + ":" + cfg.Api.Port,
		WriteTimeout: cfg.Api.HttpWriteTimeout,
		ReadTimeout:  cfg.Api.HttpReadTimeout,
		IdleTimeout:  cfg.Api.HttpIdleTimeout,
		Handler:      n,
	}

	if cfg.Api.Tls.Enabled {
		srv.TLSConfig, err = tlsConfig(&cfg.Api)
		if err != nil {
			logrus.Fatalf("error loading tls config: %v", err)
		}
	}

	logrus.WithField("identity", client.Address().Hex()).Printf("http server listening on %v", srv.Addr)
	go func() {
		var err error
		if cfg.Api.Tls.Enabled {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Error serving api")
		}
	}()

	if cfg.Metrics.Enabled {
		go func(addr string) {
			logrus.Infof("Serving metrics on %v", addr)
			if err := metrics.Serve(addr); err != nil {
				logrus.WithError(err).Fatal("Error serving metrics")
			}
		}(cfg.Metrics.Address)
	}

	utils.WaitForCtrlC()

	logrus.Println("exiting...")
}

// tlsConfig loads the server certificate and appends the optional CA bundle so the full chain is served
func tlsConfig(cfg *types.ApiConfig) (*tls.Config, error) {
	if cfg.Tls.CertFile == "" || cfg.Tls.KeyFile == "" {
		return nil, fmt.Errorf("tls enabled without cert or key file")
	}
	cert, err := tls.LoadX509KeyPair(cfg.Tls.CertFile, cfg.Tls.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("error loading key pair %v: %w", cfg.Tls.CertFile, err)
	}

	if cfg.Tls.CaFile != "" {
		bundle, err := os.ReadFile(cfg.Tls.CaFile)
		if err != nil {
			return nil, fmt.Errorf("error reading ca file %v: %w", cfg.Tls.CaFile, err)
		}
		found := false
		for {
			var block *pem.Block
			block, bundle = pem.Decode(bundle)
			if block == nil {
				break
			}
			if block.Type != "CERTIFICATE" {
				continue
			}
			cert.Certificate = append(cert.Certificate, block.Bytes)
			found = true
		}
		if !found {
			return nil, fmt.Errorf("no certificates found in %v", cfg.Tls.CaFile)
		}
	}

	return &tls.Config{
		MinVersion:   tls.VersionTLS12,
		Certificates: []tls.Certificate{cert},
	}, nil
}

func recoverPanic() {
	if r := recover(); r != nil {
		logrus.WithField("panic", r).Error("panic/fatal")
		debug.PrintStack()
	}
}
