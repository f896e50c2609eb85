package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"focusband/companion/internal/transport"
)

var (
	deviceName   string
	deviceSecret string
)

var pairCmd = &cobra.Command{
	Use:   "pair",
	Short: "Register this device with the companion service and print its token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		deviceID, err := transport.Register(ctx, serverURL, deviceName, deviceSecret)
		if err != nil {
			return fmt.Errorf("register device: %w", err)
		}

		token, err := transport.Pair(ctx, serverURL, deviceID, deviceSecret)
		if err != nil {
			return fmt.Errorf("pair device: %w", err)
		}

		fmt.Printf("device id: %s\n", deviceID)
		fmt.Printf("token:     %s\n", token)
		fmt.Println("pass the token to `wristd run --token`")
		return nil
	},
}

func init() {
	pairCmd.Flags().StringVar(&deviceName, "name", "wrist", "device name")
	pairCmd.Flags().StringVar(&deviceSecret, "secret", "", "device secret (at least 6 characters)")
	_ = pairCmd.MarkFlagRequired("secret")
}
