package irserial

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"go.bug.st/serial.v1"
)

var ErrNoBlasterFound = errors.New("irserial: didn't find a blaster on any serial port")
var ErrClosedPort = errors.New("irserial: serial port is closed")

var DefaultSerialConfig = &serial.Mode{
	BaudRate: 115200,
	Parity:   serial.NoParity,
	DataBits: 8,
	StopBits: serial.OneStopBit,
}

var DefaultTimeout = time.Second

// Conn runs a serial port through a read and a write routine so that reads
// and writes can time out.
type Conn struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	port io.ReadWriteCloser
	path string

	rdChan    chan []byte
	wrChan    chan []byte
	errChan   chan error
	closeChan chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewConn wraps port, name is the device path.
func NewConn(port io.ReadWriteCloser, name string) *Conn {
	return &Conn{
		port:      port,
		path:      name,
		rdChan:    make(chan []byte),
		wrChan:    make(chan []byte),
		errChan:   make(chan error),
		closeChan: make(chan struct{}),

		ReadTimeout:  DefaultTimeout,
		WriteTimeout: DefaultTimeout,
	}
}

// Start begins the two routines responsible
// for reading and writing on serial port.
func (sc *Conn) Start() {
	sc.wg.Add(2)
	go func() {
		sc.readRoutine()
		sc.wg.Done()
	}()
	go func() {
		sc.writeRoutine()
		sc.wg.Done()
	}()
}

// Read waits up to sc.ReadTimeout for the next chunk read from the port.
func (sc *Conn) Read() ([]byte, error) {
	return sc.read(sc.ReadTimeout)
}

func (sc *Conn) read(timeout time.Duration) (b []byte, err error) {
	select {
	case b = <-sc.rdChan:
	case err = <-sc.errChan:
	case <-sc.closeChan:
		err = ErrClosedPort
	case <-time.After(timeout):
		err = fmt.Errorf("irserial: read timeout (%s)", timeout)
	}
	return b, err
}

// Write pushes b to the write routine, or returns an error
// after sc.WriteTimeout, or if connection is closed.
func (sc *Conn) Write(b []byte) (err error) {
	select {
	case sc.wrChan <- b:
	case <-sc.closeChan:
		err = ErrClosedPort
	case <-time.After(sc.WriteTimeout):
		err = fmt.Errorf("irserial: write timeout (%s)", sc.WriteTimeout)
	}
	return err
}

// Drain drops any bytes already read from the port.
func (sc *Conn) Drain() {
	for {
		select {
		case <-sc.rdChan:
		case <-sc.errChan:
		default:
			return
		}
	}
}

// Close notifies read/write routines to stop, closes the port,
// then waits for the routines to return.
func (sc *Conn) Close() error {
	err := ErrClosedPort
	sc.closeOnce.Do(func() {
		close(sc.closeChan)
		err = sc.port.Close()
		sc.wg.Wait()
	})
	return err
}

// Path returns device name / path of serial port.
func (sc *Conn) Path() string {
	return sc.path
}

func (sc *Conn) readRoutine() {
	for {
		b := make([]byte, 32)
		i, err := sc.port.Read(b)
		if err != nil {
			select {
			case sc.errChan <- err:
			case <-sc.closeChan:
				return
			}
		} else if i > 0 {
			select {
			case sc.rdChan <- b[:i]:
			case <-sc.closeChan:
				return
			}
		}
	}
}

func (sc *Conn) writeRoutine() {
	var b []byte
	for {
		select {
		case b = <-sc.wrChan:
		case <-sc.closeChan:
			return
		}
		_, err := sc.port.Write(b)
		if err != nil {
			log.Println("irserial: in writeRoutine:", err)
		}
	}
}

// Open opens the blaster on serial port name. If mode is nil,
// DefaultSerialConfig is used.
func Open(name string, mode *serial.Mode) (*Blaster, error) {
	if mode == nil {
		mode = DefaultSerialConfig
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, err
	}
	conn := NewConn(port, name)
	conn.Start()
	return NewBlaster(conn), nil
}

// FindBlaster tries every serial port and returns the first one answering
// a ping. If mode is nil, DefaultSerialConfig is used.
func FindBlaster(mode *serial.Mode) (*Blaster, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, err
	}
	for _, v := range ports {
		b, err := Open(v, mode)
		if err != nil {
			continue
		}
		log.Printf("irserial: trying %q...", v)
		b.Conn.ReadTimeout = 250 * time.Millisecond
		b.Conn.WriteTimeout = 250 * time.Millisecond
		t, err := b.Ping()
		if err == nil {
			log.Printf("irserial: blaster on %q answered in %s", v, t)
			b.Conn.ReadTimeout = DefaultTimeout
			b.Conn.WriteTimeout = DefaultTimeout
			return b, nil
		}
		b.Close()
	}
	return nil, ErrNoBlasterFound
}
