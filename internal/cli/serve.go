package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/xxld0125/low-code-ai-sub004/internal/server"
	"github.com/xxld0125/low-code-ai-sub004/pkg/hierarchy"
	"github.com/xxld0125/low-code-ai-sub004/pkg/store"
)

// Store backends selectable with --store.
const (
	storeMemory = "memory"
	storeFile   = "file"
	storeRedis  = "redis"
	storeMongo  = "mongo"
)

// newServeCmd creates the serve command exposing the structural core over
// HTTP with a pluggable page store.
func newServeCmd() *cobra.Command {
	var (
		addr      string
		rulesPath string
		backend   string
		dataDir   string
		redisAddr string
		mongoURI  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve page validation and mutation over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			engine, err := newEngine(rulesPath)
			if err != nil {
				return err
			}

			pages, cleanup, err := openStore(ctx, backend, dataDir, redisAddr, mongoURI)
			if err != nil {
				return err
			}
			defer cleanup()

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(hierarchy.NewManager(engine), pages, logger).Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Info("serving pagecore API", "addr", addr, "store", backend)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "TOML rule-table overrides")
	cmd.Flags().StringVar(&backend, "store", storeMemory, "page store backend: memory, file, redis, mongo")
	cmd.Flags().StringVar(&dataDir, "data-dir", "pages", "page directory for --store=file")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "redis address for --store=redis")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017", "mongo URI for --store=mongo")
	return cmd
}

// openStore builds the selected store backend and a cleanup func.
func openStore(ctx context.Context, backend, dataDir, redisAddr, mongoURI string) (store.Store, func(), error) {
	switch backend {
	case storeMemory:
		return store.NewMemory(), func() {}, nil
	case storeFile:
		s, err := store.NewFile(dataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	case storeRedis:
		s, err := store.NewRedis(ctx, store.RedisConfig{Addr: redisAddr})
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case storeMongo:
		s, err := store.NewMongo(ctx, store.MongoConfig{URI: mongoURI})
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.Close(closeCtx)
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
