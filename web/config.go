package web

import (
	"time"

	"github.com/rkjdid/util"
	"go.bug.st/serial.v1"

	"github.com/neildavis/irblaster/irremote"
	"github.com/neildavis/irblaster/irserial"
)

var DefaultConfig = Config{
	Web:        DefaultServerConfig,
	Encoder:    DefaultEncoderConfig,
	Serial:     *irserial.DefaultSerialConfig,
	RemotesDir: "remotes",
}

type Config struct {
	Device     string // serial port of the blaster, searched when empty
	Serial     serial.Mode
	Web        ServerConfig
	Encoder    EncoderConfig
	RemotesDir string // universal remote files, relative to the config
}

type ServerConfig struct {
	ListenAddr    string
	Verbose       bool
	WebsocketPing util.Duration

	version string
}

var DefaultServerConfig = ServerConfig{
	ListenAddr:    "localhost:3737",
	WebsocketPing: util.Duration(30 * time.Second),
}

type EncoderConfig struct {
	EdgeLimit int  // OTA edges per frame
	Strict    bool // reject commands that would be truncated
}

var DefaultEncoderConfig = EncoderConfig{
	EdgeLimit: irremote.MaxEdges,
}

// Config returns the encoder configuration, calling onFrame for every frame
// sent.
func (c EncoderConfig) Config(onFrame func(irremote.Frame)) irremote.Config {
	return irremote.Config{
		EdgeLimit: c.EdgeLimit,
		Strict:    c.Strict,
		OnFrame:   onFrame,
	}
}
