package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kitbid/KitBidBackend/src/api/router"
	"github.com/kitbid/KitBidBackend/src/app"
	"github.com/kitbid/KitBidBackend/src/config"
	"github.com/kitbid/KitBidBackend/src/pkg/logger/xzap"
	"github.com/kitbid/KitBidBackend/src/service/svc"
	"github.com/kitbid/KitBidBackend/src/service/sweeper"
)

// daemonCmd runs the full backend: HTTP API plus the expiry sweeper that
// settles auctions past their end time.
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "run the auction marketplace API and expiry sweeper.",
	Long:  "run the auction marketplace API and expiry sweeper.",
	Run: func(cmd *cobra.Command, args []string) {
		wg := &sync.WaitGroup{}
		wg.Add(1)

		ctx, cancel := context.WithCancel(context.Background())

		onExit := make(chan error, 1)

		go func() {
			defer wg.Done()

			path, err := configPath()
			if err != nil {
				onExit <- err
				return
			}
			c, err := config.UnmarshalConfig(path)
			if err != nil {
				xzap.WithContext(ctx).Error("failed on unmarshal config", zap.Error(err))
				onExit <- err
				return
			}

			serverCtx, err := svc.NewServiceContext(c)
			if err != nil {
				xzap.WithContext(ctx).Error("failed on create service context", zap.Error(err))
				onExit <- err
				return
			}

			sweeper.New(ctx, c, serverCtx).Start()

			r := router.NewRouter(serverCtx)
			platform, err := app.NewPlatform(c, r, serverCtx)
			if err != nil {
				xzap.WithContext(ctx).Error("failed on create platform", zap.Error(err))
				onExit <- err
				return
			}
			platform.Start()
		}()

		onSignal := make(chan os.Signal, 1)
		signal.Notify(onSignal, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-onSignal:
			cancel()
			xzap.WithContext(ctx).Info("exit by signal", zap.String("signal", sig.String()))
			os.Exit(0)
		case err := <-onExit:
			cancel()
			xzap.WithContext(ctx).Error("exit by error", zap.Error(err))
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}
