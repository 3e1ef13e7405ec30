package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hoppxi/brightkeep/internal/manager"
	"github.com/hoppxi/brightkeep/pkg/brightness"
)

var setCmd = &cobra.Command{
	Use:   "set <level|+n|-n>",
	Short: "Set the brightness level (0-100), absolute or relative",
	Args:  cobra.ExactArgs(1),
	// "-5" would otherwise be read as a flag.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendSet(args[0])
	},
}

var upCmd = &cobra.Command{
	Use:   "up [step]",
	Short: "Increase brightness (default step 10)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		step, err := stepArg(args)
		if err != nil {
			return err
		}
		return sendSet("+" + strconv.Itoa(step))
	},
}

var downCmd = &cobra.Command{
	Use:   "down [step]",
	Short: "Decrease brightness (default step 10)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		step, err := stepArg(args)
		if err != nil {
			return err
		}
		return sendSet("-" + strconv.Itoa(step))
	},
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current target brightness",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := manager.Manage.SendIPCCommand("GET")
		if err != nil {
			return fmt.Errorf("%w (is the daemon running?)", err)
		}
		value, err := manager.ParseResponse(resp)
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	},
}

const defaultStep = 10

func stepArg(args []string) (int, error) {
	if len(args) == 0 {
		return defaultStep, nil
	}
	step, err := strconv.Atoi(args[0])
	if err != nil || step < 0 {
		return 0, fmt.Errorf("invalid step %q", args[0])
	}
	return step, nil
}

func sendSet(arg string) error {
	resp, err := manager.Manage.SendIPCCommand("SET " + arg)
	if err != nil {
		return fmt.Errorf("%w (is the daemon running?)", err)
	}

	value, err := manager.ParseResponse(resp)
	if err != nil {
		return err
	}
	level, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("unexpected level %q", value)
	}

	fmt.Println(brightness.Label(brightness.Level(level)))
	return nil
}
