package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "./config/config.toml"

var conf string

var rootCmd = &cobra.Command{
	Use:   "kitbid",
	Short: "KitBid auction marketplace backend.",
	Long:  "KitBid auction marketplace backend.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&conf, "conf", "c", defaultConfigPath, "config file path")
}

// configPath expands ~ in the --conf flag.
func configPath() (string, error) {
	expanded, err := homedir.Expand(conf)
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}
