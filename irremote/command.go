package irremote

import (
	"fmt"

	"github.com/neildavis/irblaster/irremote/irprotocol"
)

// Command is a logical remote control command.
type Command struct {
	Protocol irprotocol.ID `json:"protocol"`
	Address  uint16        `json:"address"`
	Command  uint16        `json:"command"`
	Flags    Flags         `json:"flags"`
}

func (c Command) String() string {
	return fmt.Sprintf("%s a:%#04x c:%#04x f:%#02x", c.Protocol, c.Address, c.Command, uint8(c.Flags))
}

// Validate returns the error Generate gives cmd on an idle encoder for an
// unknown protocol or out of range fields.
func (c Command) Validate() error {
	if _, ok := packers[c.Protocol]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedProtocol, c.Protocol)
	}
	if extra := int(c.Address >> 8); c.Protocol == irprotocol.SIRCS && extra > MaxSIRCSExtraBits {
		return fmt.Errorf("%w: %d extra %s bits, at most %d",
			ErrInvalidCommand, extra, c.Protocol, MaxSIRCSExtraBits)
	}
	return nil
}

// dataLen is the size of the logical bit buffer, enough for Mitsubishi
// Heavy's 88 bits.
const dataLen = 11

type data [dataLen]byte

// packed describes the outcome of packing a command.
type packed struct {
	protocol  irprotocol.ID // may differ from the command's (Apple, NEC repetition)
	extraBits int           // extra SIRCS address bits
}

// A packer lays a command out in the logical buffer, MSB of b[0] first.
type packer func(b *data, c Command, t *toggles) packed

var rev = irprotocol.Reverse

func same(c Command) packed { return packed{protocol: c.Protocol} }

// MaxSIRCSExtraBits is the widest SIRCS extension, 20 bit frames.
const MaxSIRCSExtraBits = 8

var packers = map[irprotocol.ID]packer{
	irprotocol.SIRCS: func(b *data, c Command, _ *toggles) packed {
		extra := int(c.Address >> 8)
		cmd := rev(c.Command, 15)
		b[0] = byte(cmd >> 7)
		b[1] = byte(cmd&0x7F) << 1
		if extra > 15-12 {
			a := rev(c.Address, 5)
			b[1] |= byte(a&0x10) >> 4
			b[2] = byte(a&0x0F) << 4
		}
		return packed{protocol: c.Protocol, extraBits: extra}
	},
	irprotocol.NEC: func(b *data, c Command, _ *toggles) packed {
		if c.Flags.Raw() {
			return packed{protocol: irprotocol.NECRepetition}
		}
		a, cmd := rev(c.Address, 16), rev(c.Command, 16)
		b[0], b[1] = byte(a>>8), byte(a)
		b[2] = byte(cmd >> 8)
		b[3] = ^b[2]
		return same(c)
	},
	irprotocol.NECRepetition: func(b *data, c Command, _ *toggles) packed {
		return same(c)
	},
	irprotocol.Apple: func(b *data, c Command, _ *toggles) packed {
		// NEC with a fixed vendor address and the device id in place of
		// the inverted command
		a := rev(0x87EE, 16)
		cmd := rev(c.Command|c.Address<<8, 16)
		put16(b[0:], a)
		put16(b[2:], cmd)
		return packed{protocol: irprotocol.NEC}
	},
	irprotocol.Onkyo:     pack32(16, 16),
	irprotocol.Samsung32: pack32(16, 16),
	irprotocol.NEC16: func(b *data, c Command, _ *toggles) packed {
		b[0] = byte(rev(c.Address, 8))
		b[1] = byte(rev(c.Command, 8))
		return same(c)
	},
	irprotocol.NEC42: func(b *data, c Command, _ *toggles) packed {
		a, cmd := rev(c.Address, 13), rev(c.Command, 8)
		na, nc := ^a, ^cmd
		b[0] = byte(a >> 5)
		b[1] = byte(a&0x1F)<<3 | byte(na&0x1C00>>10)
		b[2] = byte(na & 0x03FC >> 2)
		b[3] = byte(na&0x03)<<6 | byte(cmd&0xFC>>2)
		b[4] = byte(cmd&0x03)<<6 | byte(nc&0xFC>>2)
		b[5] = byte(nc&0x03) << 6
		return same(c)
	},
	irprotocol.Melinera: func(b *data, c Command, _ *toggles) packed {
		b[0] = byte(c.Command)
		return same(c)
	},
	irprotocol.LGAir: func(b *data, c Command, _ *toggles) packed {
		b[0] = byte(c.Address)
		put16(b[1:], c.Command)
		sum := c.Command>>12 + c.Command>>8&0xF + c.Command>>4&0xF + c.Command&0xF
		b[3] = byte(sum&0xF) << 4
		return same(c)
	},
	irprotocol.Samsung: func(b *data, c Command, _ *toggles) packed {
		a, cmd := rev(c.Address, 16), rev(c.Command, 16)
		put16(b[0:], a)
		b[2] = byte(cmd&0xF0) | byte(cmd>>12)                // IIIICCCC
		b[3] = byte(cmd&0x0F00>>4) | byte(^(cmd&0xF000)>>12)&0x0F // CCCCcccc
		b[4] = byte(^(cmd&0x0F00)>>4) & 0xF0                 // cccc
		return same(c)
	},
	irprotocol.Samsung48: func(b *data, c Command, _ *toggles) packed {
		a, cmd := rev(c.Address, 16), rev(c.Command, 16)
		put16(b[0:], a)
		b[2] = byte(cmd >> 8)
		b[3] = ^b[2]
		b[4] = byte(cmd)
		b[5] = ^b[4]
		return same(c)
	},
	irprotocol.Matsushita: func(b *data, c Command, _ *toggles) packed {
		a, cmd := rev(c.Address, 12), rev(c.Command, 12)
		b[0] = byte(cmd >> 4)
		b[1] = byte(cmd&0x0F)<<4 | byte(a>>8&0x0F)
		b[2] = byte(a)
		return same(c)
	},
	irprotocol.Technics: func(b *data, c Command, _ *toggles) packed {
		cmd := rev(c.Command, 11)
		nc := ^cmd
		b[0] = byte(cmd & 0x07FC >> 3)
		b[1] = byte(cmd&0x07)<<5 | byte(nc&0x07C0>>6)
		b[2] = byte(nc&0x3F) << 2
		return same(c)
	},
	irprotocol.Kaseikyo: func(b *data, c Command, _ *toggles) packed {
		a, cmd := rev(c.Address, 16), rev(c.Command, 16)
		genre2 := rev(c.Flags.Genre2(), 4)
		x := byte(a^a>>4^a>>8^a>>12) & 0x0F
		put16(b[0:], a)
		b[2] = x<<4 | byte(cmd&0x0F)
		b[3] = byte(genre2)<<4 | byte(cmd>>12)
		b[4] = byte(cmd >> 4)
		b[5] = b[2] ^ b[3] ^ b[4]
		return same(c)
	},
	irprotocol.Panasonic: func(b *data, c Command, _ *toggles) packed {
		b[0], b[1], b[2] = 0x40, 0x04, 0x01
		put16(b[3:], rev(c.Address, 16))
		put16(b[5:], rev(c.Command, 16))
		return same(c)
	},
	irprotocol.MitsuHeavy: func(b *data, c Command, _ *toggles) packed {
		copy(b[:], []byte{0x4A, 0x75, 0xC3, 0x64, 0x9B})
		ah, al, cl := byte(c.Address>>8), byte(c.Address), byte(c.Command)
		b[5], b[6] = ^ah, ah
		b[7], b[8] = ^al, al
		b[9], b[10] = ^cl, cl
		return same(c)
	},
	irprotocol.RECS80: func(b *data, c Command, t *toggles) packed {
		b[0] = t.flip(c.Protocol) | byte(c.Address&0x0F)<<4 | byte(c.Command&0x3C)>>2 // TAAACCCC
		b[1] = byte(c.Command&0x03) << 6
		return same(c)
	},
	irprotocol.RECS80Ext: func(b *data, c Command, t *toggles) packed {
		b[0] = 0x80 | t.flip(c.Protocol) | byte(c.Address&0x0F)<<2 | byte(c.Command&0x30)>>4 // STAAAACC
		b[1] = byte(c.Command&0x0F) << 4
		return same(c)
	},
	irprotocol.RC5: func(b *data, c Command, t *toggles) packed {
		var field byte = 0x80 // second start bit, cleared for commands above 63
		if c.Command&0x40 != 0 {
			field = 0
		}
		b[0] = field | t.flip(c.Protocol) | byte(c.Address&0x1F)<<1 | byte(c.Command&0x20)>>5 // CTAAAAAC
		b[1] = byte(c.Command&0x1F) << 3
		return same(c)
	},
	irprotocol.RC6: func(b *data, c Command, t *toggles) packed {
		b[0] = 0x80 | t.flip(c.Protocol) | byte(c.Address&0xE0)>>5 // 1MMMTAAA
		b[1] = byte(c.Address&0x1F)<<3 | byte(c.Command&0xE0)>>5
		b[2] = byte(c.Command&0x1F) << 3
		return same(c)
	},
	irprotocol.RC6A: func(b *data, c Command, t *toggles) packed {
		b[0] = 0x80 | 0x60 | t.flip(c.Protocol) | byte(c.Address&0x3000>>12) // 1MMMT0AA
		b[1] = byte(c.Address & 0x0FFF >> 4)
		b[2] = byte(c.Address&0x0F)<<4 | byte(c.Command>>12)
		b[3] = byte(c.Command >> 4)
		b[4] = byte(c.Command&0x0F) << 4
		return same(c)
	},
	irprotocol.Denon: func(b *data, c Command, _ *toggles) packed {
		nc := ^c.Command
		b[0] = byte(c.Address&0x1F)<<3 | byte(c.Command&0x0380>>7) // first frame
		b[1] = byte(c.Command&0x7F) << 1
		b[2] = byte(c.Address&0x1F)<<3 | byte(nc&0x0380>>7) // complement frame
		b[3] = byte(nc&0x7F) << 1
		return same(c)
	},
	irprotocol.Thomson: func(b *data, c Command, t *toggles) packed {
		b[0] = byte(c.Address&0x0F)<<4 | t.flip(c.Protocol) | byte(c.Command&0x70)>>4 // AAAATCCC
		b[1] = byte(c.Command&0x0F) << 4
		return same(c)
	},
	irprotocol.Bose: func(b *data, c Command, _ *toggles) packed {
		b[0] = byte(rev(c.Command, 16) >> 8)
		b[1] = ^b[0]
		return same(c)
	},
	irprotocol.Nubert:  packShift(2),
	irprotocol.Speaker: packShift(2),
	irprotocol.Fan:     packShift(3),
	irprotocol.BangOlufsen: func(b *data, c Command, _ *toggles) packed {
		b[0] = byte(c.Command >> 11) // SXSCCCCC
		b[1] = byte(c.Command >> 3)
		b[2] = byte(c.Command&0x07) << 5
		return same(c)
	},
	irprotocol.Grundig: func(b *data, c Command, _ *toggles) packed {
		cmd := rev(c.Command, 9)
		b[0], b[1] = 0xFF, 0xC0 // start frame
		b[2] = 0x80 | byte(cmd>>2)
		b[3] = byte(cmd<<6) & 0xC0
		return same(c)
	},
	irprotocol.Telefunken: func(b *data, c Command, _ *toggles) packed {
		b[0] = byte(c.Command >> 7)
		b[1] = byte(c.Command << 1)
		return same(c)
	},
	irprotocol.IR60: func(b *data, c Command, _ *toggles) packed {
		cmd := rev(0x7D, 7)<<7 | rev(c.Command, 7)
		b[0] = byte(cmd&0x7F)<<1 | 0x01 // CCCCCCCS
		b[1] = byte(cmd >> 6)          // start instruction frame
		return same(c)
	},
	irprotocol.Nokia: func(b *data, c Command, _ *toggles) packed {
		a, cmd := rev(c.Address, 8), rev(c.Command, 8)
		b[0], b[1], b[2] = 0xBF, 0xFF, 0x80 // start and stop frames
		b[3] = 0x80 | byte(cmd>>1)
		b[4] = byte(cmd<<7) | byte(a>>1)
		b[5] = byte(a << 7)
		return same(c)
	},
	irprotocol.Siemens: func(b *data, c Command, _ *toggles) packed {
		b[0] = byte(c.Address & 0x07FF >> 3)
		b[1] = byte(c.Address&0x07)<<5 | byte(c.Command>>5)&0x1F
		b[2] = byte(c.Command&0x1F)<<3 | byte(^c.Command&0x01)<<2
		return same(c)
	},
	irprotocol.Ruwido: func(b *data, c Command, _ *toggles) packed {
		b[0] = byte(c.Address & 0x01FF >> 1)
		b[1] = byte(c.Address&0x01)<<7 | byte(c.Command&0x7F)
		b[2] = byte(^c.Command&0x01) << 7
		return same(c)
	},
	irprotocol.FDC: func(b *data, c Command, _ *toggles) packed {
		a, cmd := rev(c.Address, 14), rev(c.Command, 12)
		b[0] = byte(a)
		b[3] = byte(cmd) // b[1], b[2] low nibble marks repeats
		b[4] = ^byte(cmd)
		return same(c)
	},
	irprotocol.RCCar: func(b *data, c Command, _ *toggles) packed {
		a, cmd := rev(c.Address, 2), rev(c.Command, 11)
		b[0] = byte(cmd&0x06)<<5 | byte(a&0x03)<<4 | byte(cmd&0x0780>>7) // C0 C1 A0 A1 D0 D1 D2 D3
		b[1] = byte(cmd&0x78)<<1 | byte(cmd&0x01)<<3                     // D4 D5 D6 D7 V
		return same(c)
	},
	irprotocol.JVC: func(b *data, c Command, _ *toggles) packed {
		a, cmd := rev(c.Address, 4), rev(c.Command, 12)
		b[0] = byte(a&0x0F)<<4 | byte(cmd>>8&0x0F)
		b[1] = byte(cmd)
		return same(c)
	},
	irprotocol.Nikon: func(b *data, c Command, _ *toggles) packed {
		b[0] = byte(c.Command&0x03) << 6
		return same(c)
	},
	irprotocol.Lego: func(b *data, c Command, _ *toggles) packed {
		crc := byte(0x0F^c.Command>>8^c.Command>>4^c.Command) & 0x0F
		b[0] = byte(c.Command >> 4)
		b[1] = byte(c.Command&0x0F)<<4 | crc
		return same(c)
	},
	irprotocol.IRMP16: func(b *data, c Command, _ *toggles) packed {
		put16(b[0:], rev(c.Command, 16))
		return same(c)
	},
	irprotocol.A1TVBox: func(b *data, c Command, _ *toggles) packed {
		b[0] = 0x80 | byte(c.Address>>2) // 10AAAAAA
		b[1] = byte(c.Address<<6) | byte(c.Command>>2)
		b[2] = byte(c.Command << 6)
		return same(c)
	},
	irprotocol.Roomba: func(b *data, c Command, _ *toggles) packed {
		b[0] = byte(c.Command&0x7F) << 1
		return same(c)
	},
	irprotocol.Pentax: func(b *data, c Command, _ *toggles) packed {
		b[0] = byte(c.Command&0x3F) << 2
		return same(c)
	},
	irprotocol.ACP24: func(b *data, c Command, _ *toggles) packed {
		for irmpBit, acpBit := range acp24Bits {
			if c.Command&(1<<irmpBit) != 0 {
				b[acpBit>>3] |= 1 << (7 - acpBit&7)
			}
		}
		return same(c)
	},
}

// acp24Bits maps command bit n (index) to its frame position.
var acp24Bits = [16]int{69, 68, 67, 66, 44, 26, 20, 23, 6, 5, 4, 22, 3, 2, 24, 0}

// pack32 reverses address and command and packs them big endian.
func pack32(addrLen, cmdLen int) packer {
	return func(b *data, c Command, _ *toggles) packed {
		put16(b[0:], rev(c.Address, addrLen))
		put16(b[2:], rev(c.Command, cmdLen))
		return same(c)
	}
}

// packShift packs the command MSB first, left aligned over two bytes.
func packShift(n uint) packer {
	return func(b *data, c Command, _ *toggles) packed {
		b[0] = byte(c.Command >> n)
		b[1] = byte(c.Command&(1<<n-1)) << (8 - n)
		return same(c)
	}
}

func put16(b []byte, v uint16) {
	b[0], b[1] = byte(v>>8), byte(v)
}
