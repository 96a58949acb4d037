package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kitbid/KitBidBackend/src/api/router"
	"github.com/kitbid/KitBidBackend/src/app"
	"github.com/kitbid/KitBidBackend/src/config"
	"github.com/kitbid/KitBidBackend/src/service/svc"
)

// apiCmd serves the HTTP API without the background sweeper, for deployments
// that run the sweeper as a separate process.
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "serve the auction marketplace HTTP API.",
	Long:  "serve the auction marketplace HTTP API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		c, err := config.UnmarshalConfig(path)
		if err != nil {
			return err
		}

		serverCtx, err := svc.NewServiceContext(c)
		if err != nil {
			return err
		}

		r := router.NewRouter(serverCtx)
		platform, err := app.NewPlatform(c, r, serverCtx)
		if err != nil {
			return err
		}
		platform.Start()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(apiCmd)
}
