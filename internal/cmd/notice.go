package cmd

import (
	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/hoppxi/brightkeep/internal/logging"
)

const (
	alreadyRunningText  = "Brightness Control is already running."
	alreadyRunningTitle = "Already Running"
)

func showAlreadyRunning() {
	err := zenity.Info(alreadyRunningText,
		zenity.Title(alreadyRunningTitle),
		zenity.InfoIcon,
	)
	if err != nil && err != zenity.ErrCanceled {
		logging.Debug("notice dialog unavailable", zap.Error(err))
	}
}
