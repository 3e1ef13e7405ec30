//go:build windows

package operation

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/yusufpapurcu/wmi"

	"github.com/hoppxi/brightkeep/pkg/brightness"
)

const wmiNamespace = `root\WMI`

type wmiBrightnessMethods struct {
	InstanceName string
	Active       bool
}

// WMIBackend uses the WmiMonitorBrightnessMethods class.
type WMIBackend struct{}

func defaultBackend() Backend {
	return WMIBackend{}
}

func (WMIBackend) Devices(ctx context.Context) ([]Device, error) {
	var dst []wmiBrightnessMethods
	err := wmi.QueryNamespace("SELECT InstanceName, Active FROM WmiMonitorBrightnessMethods", &dst, wmiNamespace)
	if err != nil {
		// Machines without WMI brightness support report the class as invalid.
		if strings.Contains(err.Error(), "Invalid class") || strings.Contains(err.Error(), "not supported") {
			return nil, nil
		}
		return nil, fmt.Errorf("WMI query failed: %w", err)
	}

	devices := make([]Device, 0, len(dst))
	for _, m := range dst {
		if m.Active {
			devices = append(devices, Device{Name: m.InstanceName, Max: 100})
		}
	}
	return devices, nil
}

func (WMIBackend) SetBrightness(ctx context.Context, dev Device, level brightness.Level) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		var oleErr *ole.OleError
		// S_FALSE: COM already initialized on this thread.
		if !errors.As(err, &oleErr) || oleErr.Code() != 1 {
			return fmt.Errorf("CoInitializeEx: %w", err)
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WbemScripting.SWbemLocator")
	if err != nil {
		return err
	}
	defer unknown.Release()

	locator, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return err
	}
	defer locator.Release()

	serviceRaw, err := oleutil.CallMethod(locator, "ConnectServer", nil, wmiNamespace)
	if err != nil {
		return err
	}
	service := serviceRaw.ToIDispatch()
	defer service.Release()

	query := fmt.Sprintf("SELECT * FROM WmiMonitorBrightnessMethods WHERE InstanceName='%s'",
		strings.ReplaceAll(dev.Name, `\`, `\\`))
	resultRaw, err := oleutil.CallMethod(service, "ExecQuery", query)
	if err != nil {
		return err
	}
	result := resultRaw.ToIDispatch()
	defer result.Release()

	countVariant, err := oleutil.GetProperty(result, "Count")
	if err != nil {
		return err
	}
	count := int(countVariant.Val)

	for i := 0; i < count; i++ {
		itemRaw, err := oleutil.CallMethod(result, "ItemIndex", i)
		if err != nil {
			return err
		}
		item := itemRaw.ToIDispatch()
		// WmiSetBrightness(Timeout, Brightness)
		_, err = oleutil.CallMethod(item, "WmiSetBrightness", uint32(1), uint8(level.Clamp()))
		item.Release()
		if err != nil {
			return err
		}
	}
	return nil
}
