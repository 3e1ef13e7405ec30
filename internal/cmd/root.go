package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hoppxi/brightkeep/internal/manager"
)

var Version = "0.1.0"

// clientCommands talk to a running daemon over IPC.
var clientCommands = map[string]bool{
	"set":  true,
	"up":   true,
	"down": true,
	"get":  true,
	"kill": true,
}

var rootCmd = &cobra.Command{
	Use:     "brightkeep",
	Version: Version,
	Short:   "Keep the display at the brightness you chose",
	Long: `brightkeep remembers a single display brightness level, applies it at startup
and reapplies it periodically in case something else resets the backlight.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !clientCommands[cmd.Name()] {
			return
		}

		conn, err := manager.Manage.ConnectIPC()
		if err != nil {
			fmt.Println("Error:", err)
			fmt.Println("Hint: run `brightkeep start` first")
			os.Exit(1)
		}
		conn.Close()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(killCmd)
	rootCmd.AddCommand(setupCmd)
}
