// Package param defines the camera parameter catalog shared by the
// synchronization engine, the hardware backends, and the control surface.
//
// The numeric IDs match the hardware backend's FFI enum and are fixed:
// they are part of the wire contract with the sensor layer and must never
// be renumbered or inferred at runtime.
package param

import "fmt"

// ID identifies a logical camera parameter. The integer values mirror the
// hardware API's property enum.
type ID int

const (
	Brightness   ID = 0
	Contrast     ID = 1
	Saturation   ID = 2
	Gain         ID = 3
	ExposureTime ID = 4
	WhiteBalance ID = 5
	Gamma        ID = 6
	Backlight    ID = 7
	AutoExposure ID = 8
	AutoWhiteBal ID = 9
)

// All lists every parameter in catalog order. Iteration over the catalog
// (pull cycles, resets, snapshots) uses this slice so ordering is stable.
var All = []ID{
	Brightness,
	Contrast,
	Saturation,
	Gain,
	ExposureTime,
	WhiteBalance,
	Gamma,
	Backlight,
	AutoExposure,
	AutoWhiteBal,
}

var names = map[ID]string{
	Brightness:   "brightness",
	Contrast:     "contrast",
	Saturation:   "saturation",
	Gain:         "gain",
	ExposureTime: "exposure_time",
	WhiteBalance: "white_balance",
	Gamma:        "gamma",
	Backlight:    "backlight",
	AutoExposure: "auto_exposure",
	AutoWhiteBal: "auto_white_balance",
}

var idsByName = func() map[string]ID {
	m := make(map[string]ID, len(names))
	for id, name := range names {
		m[name] = id
	}
	return m
}()

// staticDefaults are hand-tuned fallback values used only when the hardware
// does not report a usable default. One canonical table; values chosen for
// the sensors this engine ships against.
var staticDefaults = map[ID]int{
	Brightness:   0,
	Contrast:     2,
	Saturation:   64,
	Gain:         0,
	ExposureTime: 100,
	WhiteBalance: 4600,
	Gamma:        100,
	Backlight:    1,
	AutoExposure: ExposureAuto,
	AutoWhiteBal: WhiteBalanceAuto,
}

// Mode codes the hardware expects for the two auto/manual toggles.
// The encodings differ between the two parameters; do not conflate them.
const (
	ExposureManual = 1 // manual exposure, value slider active
	ExposureAuto   = 3 // aperture-priority auto

	WhiteBalanceManual = 0
	WhiteBalanceAuto   = 1
)

// Valid reports whether id is in the catalog.
func (id ID) Valid() bool {
	_, ok := names[id]
	return ok
}

// String returns the canonical lowercase name, or a numeric placeholder
// for out-of-catalog values.
func (id ID) String() string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("param(%d)", int(id))
}

// IsModeToggle reports whether id is one of the auto/manual mode
// parameters rather than a value slider.
func (id ID) IsModeToggle() bool {
	return id == AutoExposure || id == AutoWhiteBal
}

// DependentValue returns the value parameter controlled by a mode toggle.
// Only meaningful when IsModeToggle is true.
func (id ID) DependentValue() (ID, bool) {
	switch id {
	case AutoExposure:
		return ExposureTime, true
	case AutoWhiteBal:
		return WhiteBalance, true
	}
	return 0, false
}

// ModeCodes returns the (manual, auto) hardware encodings for a mode
// toggle parameter.
func (id ID) ModeCodes() (manual, auto int, ok bool) {
	switch id {
	case AutoExposure:
		return ExposureManual, ExposureAuto, true
	case AutoWhiteBal:
		return WhiteBalanceManual, WhiteBalanceAuto, true
	}
	return 0, 0, false
}

// IDOf resolves a canonical parameter name to its ID.
// Unknown names are a programming error, never silently defaulted.
func IDOf(name string) (ID, error) {
	id, ok := idsByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return id, nil
}

// StaticDefault returns the fallback default for id, used only when the
// hardware range reports no usable default.
func StaticDefault(id ID) (int, error) {
	v, ok := staticDefaults[id]
	if !ok {
		return 0, fmt.Errorf("%w: id %d", ErrUnknownParameter, int(id))
	}
	return v, nil
}
