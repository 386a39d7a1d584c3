package irremote

import "github.com/neildavis/irblaster/irremote/irprotocol"

// toggles keeps the toggle bits that let receivers tell a new key press
// from a held key. They outlive sessions: each accepted command flips the
// bit of its protocol.
type toggles struct {
	rc5       byte
	rc6       byte // shared by RC6 and RC6A
	recs80    byte
	recs80ext byte
	thomson   byte
}

// flip toggles the bit of id between 0 and mask and returns the new value.
func (t *toggles) flip(id irprotocol.ID) byte {
	var p *byte
	var mask byte
	switch id {
	case irprotocol.RC5:
		p, mask = &t.rc5, 0x40
	case irprotocol.RC6, irprotocol.RC6A:
		p, mask = &t.rc6, 0x08
	case irprotocol.RECS80:
		p, mask = &t.recs80, 0x80
	case irprotocol.RECS80Ext:
		p, mask = &t.recs80ext, 0x40
	case irprotocol.Thomson:
		p, mask = &t.thomson, 0x08
	default:
		return 0
	}
	*p ^= mask
	return *p
}
