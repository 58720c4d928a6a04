package lora

// SamplePacket returns the reference reading used to exercise a gateway:
// device 1 near Tokyo Station on 2018-08-12 15:25:30.
func SamplePacket() Packet {
	return Packet{
		UDPClientID: 0,
		DeviceID:    1,
		Serial:      2,
		Reserved:    1,
		Year:        18,
		Month:       8,
		Day:         12,
		Hour:        15,
		Minute:      25,
		Second:      30,
		LatN:        35681167,
		LonE:        139767052,
		Temperature: [4]uint16{101, 201, 301, 401},
		Humidity:    [4]uint16{112, 222, 332, 442},
		Volume:      [4]uint16{123, 223, 323, 423},
		Weight:      501,
	}
}
