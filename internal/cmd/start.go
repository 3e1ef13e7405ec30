package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hoppxi/brightkeep/internal/controller"
	"github.com/hoppxi/brightkeep/internal/instance"
	"github.com/hoppxi/brightkeep/internal/logging"
	"github.com/hoppxi/brightkeep/internal/manager"
	"github.com/hoppxi/brightkeep/internal/scheduler"
	"github.com/hoppxi/brightkeep/internal/state"
	"github.com/hoppxi/brightkeep/pkg/brightness"
	"github.com/hoppxi/brightkeep/pkg/operation"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the brightness daemon",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := manager.Config.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		return manager.Config.BindFlags(cmd.Flags())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := manager.Config.Settings()

		if err := logging.Initialize(settings.LogLevel); err != nil {
			return err
		}
		defer logging.Sync()
		log := logging.Named("daemon")

		var guard *instance.Guard
		acquire := func(name string) (io.Closer, error) {
			g, err := instance.Acquire(name)
			if err != nil {
				return nil, err
			}
			guard = g
			return g, nil
		}

		store, err := state.NewDefault(settings.StatePath, logging.Named("state"))
		if err != nil {
			return err
		}

		ctl := controller.New(controller.Options{
			Setter:   operation.Display.WithLogger(logging.Named("display")),
			Store:    store,
			Acquire:  acquire,
			LockName: settings.LockName,
			Interval: settings.Interval,
			Logger:   logging.Named("controller"),
		})
		ctl.OnLevelChanged(func(l brightness.Level) {
			log.Info(brightness.Tooltip(l))
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := ctl.Start(ctx); err != nil {
			if errors.Is(err, instance.ErrAlreadyRunning) {
				fmt.Println(alreadyRunningText)
				if settings.Dialog {
					showAlreadyRunning()
				}
				return nil
			}
			return err
		}
		defer ctl.Shutdown()

		manager.Manage.SetLogger(logging.Named("ipc"))
		manager.Manage.Attach(ctl, guard.Token())
		if err := manager.Manage.StartIPCServer(); err != nil {
			log.Warn("IPC disabled", zap.Error(err))
		}
		defer manager.Manage.StopAll()

		if manager.Config.Watch(func(s manager.Settings) {
			log.Info("config changed", zap.Duration("interval", s.Interval))
			ctl.SetInterval(s.Interval)
		}) {
			log.Debug("watching config", zap.String("path", manager.Config.Path()))
		}

		log.Info("brightness daemon started",
			zap.Int("level", int(ctl.CurrentLevel())),
			zap.Duration("interval", settings.Interval),
			zap.String("token", guard.Token()),
		)

		select {
		case <-ctx.Done():
			log.Info("received shutdown signal")
		case <-manager.Manage.Stopped():
		}
		return nil
	},
}

func init() {
	startCmd.Flags().Duration("interval", scheduler.DefaultInterval, "How often to reapply the brightness")
	startCmd.Flags().String("log-level", "", "Log level: debug, info, warn, error")
	startCmd.Flags().String("state-path", "", "Store the brightness in this file instead of the default location")
	startCmd.Flags().Bool("dialog", true, "Show a dialog when another instance is already running")
}
