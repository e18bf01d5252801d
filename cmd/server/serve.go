package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"slot-swapper-api/internal/account"
	"slot-swapper-api/internal/auth"
	"slot-swapper-api/internal/config"
	gweb "slot-swapper-api/internal/grpcweb"
	"slot-swapper-api/internal/handler"
	"slot-swapper-api/internal/middleware"
	"slot-swapper-api/internal/rest"
	"slot-swapper-api/internal/slot"
	"slot-swapper-api/internal/swap"
)

const shutdownGrace = 10 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC, gRPC-Web and REST servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.EnvFile, cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(true); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().String("port", "", "gRPC port")
	cmd.Flags().String("web-port", "", "gRPC-Web port")
	cmd.Flags().String("rest-port", "", "REST port")
	return cmd
}

func serve(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	log := setupLogger(cfg.LogLevel)

	// database
	st, err := openStore(parent, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(parent); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("migration applied")

	signer := auth.NewSigner(cfg.JWTSecret)
	accounts := account.NewService(st, signer, log)
	slots := slot.NewManager(st, log)
	swaps := swap.NewEngine(st, log)

	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rl.Close()

	// grpc server
	srv := handler.NewServer(handler.New(accounts, slots, swaps), signer, rl, log)
	lis, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	bridge, err := gweb.New("localhost:"+cfg.Port, log)
	if err != nil {
		return fmt.Errorf("bridge: %w", err)
	}
	defer bridge.Close()
	webSrv := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           bridge.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	gin.SetMode(gin.ReleaseMode)
	restSrv := &http.Server{
		Addr:              ":" + cfg.RESTPort,
		Handler:           rest.New(accounts, slots, swaps, signer, rl, log).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("grpc listening", "port", cfg.Port)
		return srv.Serve(lis)
	})
	g.Go(func() error {
		log.Info("grpc-web listening", "port", cfg.WebPort)
		return listen(webSrv)
	})
	g.Go(func() error {
		log.Info("rest listening", "port", cfg.RESTPort)
		return listen(restSrv)
	})

	// graceful shutdown
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		webSrv.Shutdown(sctx)
		restSrv.Shutdown(sctx)

		done := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-sctx.Done():
			srv.Stop()
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func listen(s *http.Server) error {
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
