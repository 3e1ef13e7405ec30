package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoppxi/brightkeep/internal/manager"
	"github.com/hoppxi/brightkeep/pkg/displayinfo"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon state and the hardware brightness of each display",
	Run: func(cmd *cobra.Command, args []string) {
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := displayinfo.GetDisplayInfoJSON()
			if err != nil {
				fmt.Println("Error:", err)
				return
			}
			fmt.Println(string(data))
			return
		}

		if resp, err := manager.Manage.SendIPCCommand("STATUS"); err != nil {
			fmt.Println("Daemon: not running")
		} else if value, err := manager.ParseResponse(resp); err != nil {
			fmt.Println("Daemon:", err)
		} else {
			fmt.Println("Daemon:", value)
		}

		info, err := displayinfo.GetDisplayInfo()
		if err != nil {
			fmt.Println("Displays:", err)
			return
		}
		for _, d := range info.Devices {
			if d.Level < 0 {
				fmt.Printf("  %s: unreadable (max %d)\n", d.Name, d.Max)
				continue
			}
			fmt.Printf("  %s: %d%% (%d/%d)\n", d.Name, d.Level, d.Raw, d.Max)
		}
	},
}

func init() {
	statusCmd.Flags().Bool("json", false, "Print hardware brightness as JSON")
}
