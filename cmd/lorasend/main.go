// Lorasend sends one sample LoRa push packet to a gateway.
//
// Usage: lorasend --to=127.0.0.1:50810 --device=1 --serial=2
package main

import (
	"fmt"
	"log"
	"net"

	"github.com/spf13/pflag"

	"github.com/yskddk/smart-hive-udp-server/internal/config"
	"github.com/yskddk/smart-hive-udp-server/internal/lora"
)

func main() {
	to := pflag.String("to", config.DefaultGatewayListenAddr, "UDP address of the gateway")
	udpClient := pflag.Uint8("udp-client", 0, "UDP client ID (worksheet name)")
	device := pflag.Uint8("device", 1, "LoRa device ID")
	serial := pflag.Uint8("serial", 2, "packet serial number")
	pflag.Parse()

	p := lora.SamplePacket()
	p.UDPClientID = *udpClient
	p.DeviceID = *device
	p.Serial = *serial

	b, err := p.MarshalBinary()
	if err != nil {
		log.Fatalf("Error encoding packet: %v", err)
	}

	conn, err := net.Dial("udp", *to)
	if err != nil {
		log.Fatalf("Error dialing %s: %v", *to, err)
	}
	defer conn.Close()

	n, err := conn.Write(b)
	if err != nil {
		log.Fatalf("Error sending packet: %v", err)
	}
	fmt.Printf("sent %d bytes to %s: %s\n", n, *to, p.Command(fmt.Sprint(p.UDPClientID)))
}
