// Package crc16 frame check sequence of HDLC-like framing (RFC 1662)
package crc16

const (
	poly    = 0x8408
	initial = 0xFFFF
	xorOut  = 0xFFFF
)

var table [256]uint16

func init() {
	for i := range table {
		crc := uint16(i)
		for j := 0; j < 8; j++ {
			if crc&1 != 0 {
				crc = crc>>1 ^ poly
			} else {
				crc >>= 1
			}
		}
		table[i] = crc
	}
}

// Update continues the running FCS over data
func Update(fcs uint16, data []byte) uint16 {
	for _, b := range data {
		fcs = fcs>>8 ^ table[byte(fcs)^b]
	}
	return fcs
}

// Checksum returns the FCS of data, transmitted little-endian after the payload
func Checksum(data []byte) uint16 {
	return Update(initial, data) ^ xorOut
}
