package brcode

import "fmt"

const (
	crcPolynomial = 0x1021
	crcInitial    = 0xFFFF
)

// Checksum computes CRC-16/CCITT-FALSE over data: polynomial 0x1021, initial
// register 0xFFFF, MSB first, no reflection and no final XOR.
func Checksum(data string) uint16 {
	crc := uint16(crcInitial)
	for i := 0; i < len(data); i++ {
		crc ^= uint16(data[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// CRC16 returns Checksum(data) as four uppercase hex digits.
func CRC16(data string) string {
	return fmt.Sprintf("%04X", Checksum(data))
}
