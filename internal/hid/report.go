// Package hid encodes HID mouse input reports.
package hid

import "io"

// ReportSize is the length of a mouse report body without a report ID.
const ReportSize = 5

// ButtonMask covers the five buttons the report descriptor declares.
const ButtonMask = 0x1F

// MouseReport is one relative mouse input report.
//
// Layout:
//
//	Byte 0: buttons (bit 0 left, 1 right, 2 middle, 3 back, 4 forward)
//	Byte 1: dx (int8)
//	Byte 2: dy (int8)
//	Byte 3: vertical wheel (int8)
//	Byte 4: horizontal pan (int8)
type MouseReport struct {
	Buttons uint8
	DX, DY  int8
	Wheel   int8
	Pan     int8
}

// Move returns a motion-only report.
func Move(dx, dy int8) MouseReport {
	return MouseReport{DX: dx, DY: dy}
}

// Encode returns the report as written to the device. A non-zero reportID is
// prepended, matching descriptors that declare report IDs.
func (r MouseReport) Encode(reportID uint8) []byte {
	body, _ := r.MarshalBinary()
	if reportID == 0 {
		return body
	}
	return append([]byte{reportID}, body...)
}

// MarshalBinary encodes the report body.
func (r MouseReport) MarshalBinary() ([]byte, error) {
	return []byte{
		r.Buttons & ButtonMask,
		byte(r.DX),
		byte(r.DY),
		byte(r.Wheel),
		byte(r.Pan),
	}, nil
}

// UnmarshalBinary decodes a report body.
func (r *MouseReport) UnmarshalBinary(data []byte) error {
	if len(data) < ReportSize {
		return io.ErrUnexpectedEOF
	}
	r.Buttons = data[0] & ButtonMask
	r.DX = int8(data[1])
	r.DY = int8(data[2])
	r.Wheel = int8(data[3])
	r.Pan = int8(data[4])
	return nil
}
