package hid

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		report   MouseReport
		reportID uint8
		want     []byte
	}{
		{
			name:   "motion without report id",
			report: Move(5, -3),
			want:   []byte{0x00, 0x05, 0xFD, 0x00, 0x00},
		},
		{
			name:     "motion with report id",
			report:   Move(-15, 15),
			reportID: 2,
			want:     []byte{0x02, 0x00, 0xF1, 0x0F, 0x00, 0x00},
		},
		{
			name:   "buttons outside descriptor are masked",
			report: MouseReport{Buttons: 0xFF, Wheel: 1, Pan: -1},
			want:   []byte{0x1F, 0x00, 0x00, 0x01, 0xFF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.report.Encode(tt.reportID))
		})
	}
}

func TestUnmarshalBinary(t *testing.T) {
	var r MouseReport
	require.NoError(t, r.UnmarshalBinary([]byte{0x01, 0x80, 0x7F, 0x00, 0x00}))
	assert.Equal(t, MouseReport{Buttons: 1, DX: -128, DY: 127}, r)

	assert.ErrorIs(t, r.UnmarshalBinary([]byte{0x00, 0x01}), io.ErrUnexpectedEOF)
}
