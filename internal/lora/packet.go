// Package lora decodes the binary push packets relayed by LoRa UDP
// clients and renders them as forwarder write commands.
//
// A push packet is a 4 byte UDP header followed by 43 bytes of LoRa data.
// All multi-byte fields are big endian.
//
//	UDP header: version | length | UDP client ID | packet type
//	LoRa data:  ID | N | PI | yy mm dd | HH MM SS | lat-N | lon-E |
//	            temp x4 | RH x4 | volume x4 | weight
package lora

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/yskddk/smart-hive-udp-server/internal/models"
)

// Wire constants of the push protocol.
const (
	ProtocolVersion = 0x12
	PushDataType    = 0x00

	HeaderSize      = 4
	LoRaHeaderSize  = 3
	LoRaPayloadSize = 40
	LoRaDataSize    = LoRaHeaderSize + LoRaPayloadSize
	PacketSize      = HeaderSize + LoRaDataSize

	MaxUDPClients  = 2
	MaxLoRaDevices = 100
)

// Packet is a decoded push packet. Coordinates are in millionths of a
// degree, temperature, humidity and volume in tenths, weight in hundredths.
type Packet struct {
	UDPClientID uint8

	DeviceID uint8
	Serial   uint8
	Reserved uint8

	Year, Month, Day     uint8
	Hour, Minute, Second uint8

	LatN uint32
	LonE uint32

	Temperature [4]uint16
	Humidity    [4]uint16
	Volume      [4]uint16
	Weight      uint16
}

// ParsePacket validates and decodes one datagram.
func ParsePacket(b []byte) (Packet, error) {
	var p Packet

	if len(b) != PacketSize {
		return p, invalid("invalid UDP packet size: %d", len(b))
	}
	if b[0] != ProtocolVersion || b[1] != PacketSize || b[3] != PushDataType {
		return p, invalid("invalid UDP packet format")
	}
	if b[2] >= MaxUDPClients {
		return p, invalid("invalid UDP client ID: %d", b[2])
	}
	p.UDPClientID = b[2]

	d := b[HeaderSize:]
	if d[0] >= MaxLoRaDevices {
		return p, invalid("invalid LoRa client ID: %d", d[0])
	}

	p.DeviceID, p.Serial, p.Reserved = d[0], d[1], d[2]
	p.Year, p.Month, p.Day = d[3], d[4], d[5]
	p.Hour, p.Minute, p.Second = d[6], d[7], d[8]
	p.LatN = binary.BigEndian.Uint32(d[9:])
	p.LonE = binary.BigEndian.Uint32(d[13:])
	for i := 0; i < 4; i++ {
		p.Temperature[i] = binary.BigEndian.Uint16(d[17+2*i:])
		p.Humidity[i] = binary.BigEndian.Uint16(d[25+2*i:])
		p.Volume[i] = binary.BigEndian.Uint16(d[33+2*i:])
	}
	p.Weight = binary.BigEndian.Uint16(d[41:])

	return p, nil
}

// MarshalBinary encodes the packet in wire format.
func (p Packet) MarshalBinary() ([]byte, error) {
	if p.UDPClientID >= MaxUDPClients {
		return nil, invalid("invalid UDP client ID: %d", p.UDPClientID)
	}
	if p.DeviceID >= MaxLoRaDevices {
		return nil, invalid("invalid LoRa client ID: %d", p.DeviceID)
	}

	b := make([]byte, PacketSize)
	b[0], b[1], b[2], b[3] = ProtocolVersion, PacketSize, p.UDPClientID, PushDataType

	d := b[HeaderSize:]
	d[0], d[1], d[2] = p.DeviceID, p.Serial, p.Reserved
	d[3], d[4], d[5] = p.Year, p.Month, p.Day
	d[6], d[7], d[8] = p.Hour, p.Minute, p.Second
	binary.BigEndian.PutUint32(d[9:], p.LatN)
	binary.BigEndian.PutUint32(d[13:], p.LonE)
	for i := 0; i < 4; i++ {
		binary.BigEndian.PutUint16(d[17+2*i:], p.Temperature[i])
		binary.BigEndian.PutUint16(d[25+2*i:], p.Humidity[i])
		binary.BigEndian.PutUint16(d[33+2*i:], p.Volume[i])
	}
	binary.BigEndian.PutUint16(d[41:], p.Weight)

	return b, nil
}

// Command renders the packet as a forwarder write command targeting the
// given worksheet.
func (p Packet) Command(sheetName string) string {
	fields := make([]string, 0, models.RecordFieldCount)
	fields = append(fields,
		models.MethodWrite,
		sheetName,
		fmt.Sprintf("%02d%02d%02d%02d%02d%02d", p.Year, p.Month, p.Day, p.Hour, p.Minute, p.Second),
		millionths(p.LonE),
		millionths(p.LatN),
	)
	for i := 0; i < 4; i++ {
		fields = append(fields,
			tenths(p.Temperature[i]),
			tenths(p.Humidity[i]),
			tenths(p.Volume[i]),
		)
	}
	fields = append(fields, fmt.Sprintf("%d.%02d", p.Weight/100, p.Weight%100))

	return strings.Join(fields, ",")
}

func millionths(v uint32) string {
	return fmt.Sprintf("%d.%06d", v/1000000, v%1000000)
}

func tenths(v uint16) string {
	return fmt.Sprintf("%d.%d", v/10, v%10)
}

func invalid(format string, args ...interface{}) error {
	return models.NewBridgeError(models.ErrorCodeInvalidPacket, fmt.Sprintf(format, args...), models.ErrInvalidPacket)
}
