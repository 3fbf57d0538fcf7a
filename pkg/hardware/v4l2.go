package hardware

import (
	"fmt"

	"github.com/vladimirvivien/go4vl/device"
	"github.com/vladimirvivien/go4vl/v4l2"

	"github.com/inspectra/go-scopecam/internal/log"
	"github.com/inspectra/go-scopecam/pkg/param"
)

// ctrlIDs maps logical parameters to V4L2 control ids. UVC sensors expose
// the user-class controls plus the camera-class exposure pair.
var ctrlIDs = map[param.ID]v4l2.CtrlID{
	param.Brightness:   9963776,  // Brightness
	param.Contrast:     9963777,  // Contrast
	param.Saturation:   9963778,  // Saturation
	param.Gain:         9963795,  // Gain
	param.ExposureTime: 10094850, // Exposure Time, Absolute
	param.WhiteBalance: 9963802,  // White Balance Temperature
	param.Gamma:        9963792,  // Gamma
	param.Backlight:    9963804,  // Backlight Compensation
	param.AutoExposure: 10094849, // Auto Exposure
	param.AutoWhiteBal: 9963788,  // White Balance, Automatic
}

// V4L2 is the production Backend: one video device per active role,
// controlled through VIDIOC_{G,S}_CTRL and VIDIOC_QUERYCTRL.
type V4L2 struct {
	devices map[Role]*device.Device
}

// OpenV4L2 opens the device node behind each role. Roles with an empty
// path are skipped; operations against them report unavailable.
func OpenV4L2(paths map[Role]string) (*V4L2, error) {
	b := &V4L2{devices: make(map[Role]*device.Device)}
	for role, path := range paths {
		if path == "" {
			continue
		}
		dev, err := device.Open(path)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("open %s camera %s: %w", role, path, err)
		}
		b.devices[role] = dev
	}
	return b, nil
}

// Close releases every open device node.
func (b *V4L2) Close() {
	for role, dev := range b.devices {
		if err := dev.Close(); err != nil {
			log.Warn("closing camera device", "role", string(role), "error", err)
		}
		delete(b.devices, role)
	}
}

// Get implements Backend.
func (b *V4L2) Get(role Role, id param.ID) int {
	dev, ok := b.devices[role]
	cid, known := ctrlIDs[id]
	if !ok || !known {
		return Unavailable
	}
	ctrl, err := v4l2.GetControl(dev.Fd(), cid)
	if err != nil {
		return Unavailable
	}
	return int(ctrl.Value)
}

// Set implements Backend.
func (b *V4L2) Set(role Role, id param.ID, value int) bool {
	dev, ok := b.devices[role]
	cid, known := ctrlIDs[id]
	if !ok || !known {
		return false
	}
	if err := dev.SetControlValue(cid, v4l2.CtrlValue(value)); err != nil {
		log.Warn("v4l2 control write failed",
			"role", string(role), "param", id.String(), "value", value, "error", err)
		return false
	}
	return true
}

// GetRange implements Backend.
func (b *V4L2) GetRange(role Role, id param.ID) (param.Range, bool) {
	dev, ok := b.devices[role]
	cid, known := ctrlIDs[id]
	if !ok || !known {
		return param.Range{}, false
	}
	ctrl, err := v4l2.GetControl(dev.Fd(), cid)
	if err != nil {
		return param.Range{}, false
	}
	return param.Range{
		Min:     int(ctrl.Minimum),
		Max:     int(ctrl.Maximum),
		Step:    int(ctrl.Step),
		Default: int(ctrl.Default),
		Current: int(ctrl.Value),
	}, true
}
