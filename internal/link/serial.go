package link

import (
	"fmt"
	"os"
	"time"

	"go.bug.st/serial"
)

// SerialLink drives a local serial port in 8N1 framing.
type SerialLink struct {
	port serial.Port
}

// OpenSerial opens the named port at the given baud rate.
func OpenSerial(name string, baudRate int) (*SerialLink, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	return &SerialLink{port: port}, nil
}

// Read fills p from the port. The underlying library reports a timeout as
// a zero-byte read with a nil error; that is mapped to
// os.ErrDeadlineExceeded so callers looping with io.ReadFull unblock.
func (l *SerialLink) Read(p []byte) (int, error) {
	n, err := l.port.Read(p)
	if n == 0 && err == nil {
		return 0, fmt.Errorf("serial read: %w", os.ErrDeadlineExceeded)
	}
	return n, err
}

func (l *SerialLink) Write(p []byte) (int, error) {
	return l.port.Write(p)
}

func (l *SerialLink) SetReadTimeout(d time.Duration) error {
	return l.port.SetReadTimeout(d)
}

func (l *SerialLink) Close() error {
	return l.port.Close()
}
