package printer

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"time"
)

// Printer sends a rendered document to a thermal printer.
type Printer interface {
	Print(ctx context.Context, data []byte) error
	// IsConnected reports whether the device is reachable right now.
	IsConnected() bool
	Close() error
}

// --- USB printer: writes to a device file such as /dev/usb/lp0 ---

type usbPrinter struct {
	path string
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(_ context.Context, data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: failed to open USB device %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to USB device %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

func (p *usbPrinter) Close() error {
	return nil // opened per job
}

// --- Network printer: raw TCP, usually port 9100 ---

type networkPrinter struct {
	address string
	dialer  net.Dialer
}

// NewNetworkPrinter creates a printer reached over TCP, e.g. "192.168.1.100:9100".
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{
		address: address,
		dialer:  net.Dialer{Timeout: 5 * time.Second},
	}
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (p *networkPrinter) Close() error {
	return nil // dialed per job
}

// --- Null printer: no hardware configured ---

// NullPrinter accepts jobs and keeps the most recent one.
type NullPrinter struct {
	mu   sync.Mutex
	last []byte
	jobs int
}

// NewNullPrinter creates a printer that prints nowhere.
func NewNullPrinter() *NullPrinter {
	return &NullPrinter{}
}

func (p *NullPrinter) Print(_ context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = append([]byte(nil), data...)
	p.jobs++
	return nil
}

// Last returns the most recent job and the number of jobs seen.
func (p *NullPrinter) Last() ([]byte, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.jobs
}

func (p *NullPrinter) IsConnected() bool {
	return false
}

func (p *NullPrinter) Close() error {
	return nil
}

// New picks the transport for printerType: "usb", "network", or "none".
func New(printerType, usbPath, address string) (Printer, error) {
	switch printerType {
	case "usb":
		if usbPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return NewUSBPrinter(usbPath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(address), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", printerType)
	}
}
