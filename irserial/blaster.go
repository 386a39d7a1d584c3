// Package irserial drives an IR blaster attached to a serial port. The
// blaster receives whole frames as packets, plays them on its LED and
// acknowledges each one.
package irserial

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/neildavis/irblaster/irremote"
)

// see the blaster firmware
const (
	FrameCmd byte = 'I'
	PingCmd  byte = 'P'

	Ack byte = 0x06
	Nak byte = 0x15
)

// headerLen is command, frequency and edge count
const headerLen = 4

var (
	ErrNak      = errors.New("irserial: frame rejected by blaster")
	ErrResponse = errors.New("irserial: unexpected response")
	ErrPacket   = errors.New("irserial: malformed frame packet")
)

// EncodeFrame builds the packet
// 'I' freq-kHz(u16 BE) count(u8) edges(u16 BE)... xor
// where xor covers every preceding byte.
func EncodeFrame(f irremote.Frame) ([]byte, error) {
	if len(f.Edges) > 0xFF {
		return nil, fmt.Errorf("%w: %d edges", ErrPacket, len(f.Edges))
	}
	khz := (f.Frequency + 500) / 1000
	p := make([]byte, 0, headerLen+2*len(f.Edges)+1)
	p = append(p, FrameCmd, byte(khz>>8), byte(khz), byte(len(f.Edges)))
	for _, e := range f.Edges {
		p = append(p, byte(e>>8), byte(e))
	}
	return append(p, checksum(p)), nil
}

// DecodeFrame parses a packet built by EncodeFrame.
func DecodeFrame(p []byte) (frequency uint32, edges []irremote.Edge, err error) {
	if len(p) < headerLen+1 || p[0] != FrameCmd {
		return 0, nil, ErrPacket
	}
	n := int(p[3])
	if len(p) != headerLen+2*n+1 {
		return 0, nil, fmt.Errorf("%w: length %d for %d edges", ErrPacket, len(p), n)
	}
	if checksum(p[:len(p)-1]) != p[len(p)-1] {
		return 0, nil, fmt.Errorf("%w: bad checksum", ErrPacket)
	}
	frequency = (uint32(p[1])<<8 | uint32(p[2])) * 1000
	edges = make([]irremote.Edge, n)
	for i := range edges {
		edges[i] = irremote.Edge(p[headerLen+2*i])<<8 | irremote.Edge(p[headerLen+2*i+1])
	}
	return frequency, edges, nil
}

func checksum(p []byte) (x byte) {
	for _, b := range p {
		x ^= b
	}
	return x
}

// Blaster sends frames to the serial blaster. It implements irremote.Sink.
type Blaster struct {
	Conn *Conn

	mu sync.Mutex
}

func NewBlaster(conn *Conn) *Blaster {
	return &Blaster{Conn: conn}
}

// Emit sends f and waits until the blaster has played it.
func (b *Blaster) Emit(ctx context.Context, f irremote.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := EncodeFrame(f)
	if err != nil {
		return err
	}
	_, err = b.request(p, f.Duration())
	return err
}

// Ping checks the blaster answers and returns the round trip time.
func (b *Blaster) Ping() (time.Duration, error) {
	return b.request([]byte{PingCmd}, 0)
}

func (b *Blaster) request(p []byte, playing time.Duration) (time.Duration, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t0 := time.Now()
	b.Conn.Drain()
	if err := b.Conn.Write(p); err != nil {
		return 0, err
	}
	resp, err := b.Conn.read(b.Conn.ReadTimeout + playing)
	if err != nil {
		return 0, err
	}
	switch resp[0] {
	case Ack:
		return time.Since(t0), nil
	case Nak:
		return 0, ErrNak
	}
	return 0, fmt.Errorf("%w: %#02x", ErrResponse, resp[0])
}

// Close closes the serial connection.
func (b *Blaster) Close() error {
	return b.Conn.Close()
}

func (b *Blaster) String() string {
	return "blaster@" + b.Conn.Path()
}
