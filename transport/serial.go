package transport

import (
	"io"

	"github.com/jacobsa/go-serial/serial"
)

// serialPollInterval is the inter-character timeout handed to the serial driver.
// With a zero minimum read size, Read returns with no data after this much silence,
// which lets ReadLine enforce its own timeout. The driver rounds to 100ms.
const serialPollInterval = 100

// serialPort hides deadline methods of the underlying file so that reads rely on the
// driver's inter-character timeout only.
type serialPort struct {
	io.ReadWriteCloser
}

func openSerial(cfg *Config) (Transport, error) {
	options := serial.OpenOptions{
		PortName:              cfg.identifier,
		BaudRate:              uint(cfg.baudRate), //nolint:gosec
		DataBits:              8,
		StopBits:              1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: serialPollInterval,
		MinimumReadSize:       0,
	}

	port, err := serial.Open(options)
	if err != nil {
		return nil, err
	}

	return newLineTransport(serialPort{port}, cfg, true), nil
}
