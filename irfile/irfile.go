// Package irfile reads universal remote files: plain text .ir files holding
// one block of "key: value" lines per button.
//
//	Filetype: IR signals file
//	Version: 1
//	#
//	name: Power
//	type: parsed
//	protocol: NEC
//	address: 04 00 00 00
//	command: 08 00 00 00
//
// Address and command fields are little-endian hex bytes, only the first
// two are used. Raw captures and unknown protocols are skipped.
package irfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/neildavis/irblaster/irremote"
	irp "github.com/neildavis/irblaster/irremote/irprotocol"
)

// Ext is the file extension of remote files.
const Ext = ".ir"

var (
	ErrBadField = errors.New("irfile: malformed hex byte field")
	ErrNoRemote = errors.New("irfile: no such remote")
	ErrNoButton = errors.New("irfile: no such button")
)

// ParseError locates a malformed line.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Aliases maps remote file protocol names to protocols.
var Aliases = map[string]irp.ID{
	"NEC":       irp.NEC,
	"NECext":    irp.NEC,
	"NEC42":     irp.NEC42,
	"NEC42ext":  irp.NEC42,
	"RC5":       irp.RC5,
	"RC5X":      irp.RC5,
	"RC6":       irp.RC6,
	"RC6A":      irp.RC6A,
	"Samsung32": irp.Samsung32,
	"Samsung":   irp.Samsung,
	"SIRC":      irp.SIRCS,
	"SIRC15":    irp.SIRCS,
	"SIRC20":    irp.SIRCS,
	"Kaseikyo":  irp.Kaseikyo,
	"Denon":     irp.Denon,
	"Sharp":     irp.Denon,
	"JVC":       irp.JVC,
	"Panasonic": irp.Panasonic,
	"NEC16":     irp.NEC16,
	"LGAIR":     irp.LGAir,
	"Samsung48": irp.Samsung48,
}

// sircsBits is the frame length of the SIRC variants.
var sircsBits = map[string]uint16{
	"SIRC":   12,
	"SIRC15": 15,
	"SIRC20": 20,
}

// Button is one parsed signal.
type Button struct {
	Name    string           `json:"name"`
	Command irremote.Command `json:"command"`
	Line    int              `json:"line"`
}

// Remote is the content of one remote file.
type Remote struct {
	Name    string   `json:"name"`
	Buttons []Button `json:"buttons"`
}

// Button returns the first button called name.
func (r *Remote) Button(name string) (Button, error) {
	for _, b := range r.Buttons {
		if b.Name == name {
			return b, nil
		}
	}
	return Button{}, fmt.Errorf("%w: %q in %s", ErrNoButton, name, r.Name)
}

// block is the button being parsed
type block struct {
	Button
	proto string
	skip  bool
	valid bool
}

func (b *block) command() irremote.Command {
	c := b.Command
	switch b.proto {
	case "NEC":
		// 8-bit address: the high byte is its inverse on air
		c.Address = irp.NECWireAddress(c.Address & 0xFF)
	case "SIRC", "SIRC15", "SIRC20":
		// command bits then device bits, LSB first. The first 15 go in
		// the command, the rest in the address next to the extra bit count.
		code := uint32(c.Command&0x7F) | uint32(c.Address)<<7
		c.Command = uint16(code & 0x7FFF)
		c.Address = (sircsBits[b.proto]-12)<<8 | uint16(code>>15)&0x1F
	}
	return c
}

// Parse reads a remote from r. name is used as remote name and in errors.
func Parse(r io.Reader, name string) (*Remote, error) {
	remote := &Remote{Name: name}
	var cur *block
	save := func() {
		if cur != nil && !cur.skip && cur.valid {
			cur.Command = cur.command()
			remote.Buttons = append(remote.Buttons, cur.Button)
		}
	}

	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		key, val, ok := strings.Cut(text, ":")
		if !ok {
			continue
		}
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)

		if key == "name" {
			save()
			cur = &block{Button: Button{Name: val, Line: line}}
			continue
		}
		if cur == nil || cur.skip {
			continue
		}

		switch key {
		case "type":
			cur.skip = val != "parsed"
		case "protocol":
			id, ok := Aliases[val]
			cur.skip = !ok
			cur.proto = val
			cur.Command.Protocol = id
		case "address", "command":
			v, err := parseHexField(val)
			if err != nil {
				return nil, &ParseError{File: name, Line: line, Err: err}
			}
			if key == "address" {
				cur.Command.Address = v
			} else {
				cur.Command.Command = v
				cur.valid = true
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	save()
	return remote, nil
}

// parseHexField reads "07 00 00 00" as 0x0007.
func parseHexField(s string) (uint16, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, ErrBadField
	}
	var v uint16
	for i, f := range fields {
		b, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadField, s)
		}
		if i < 2 {
			v |= uint16(b) << (8 * i)
		}
	}
	return v, nil
}

// ParseFile reads the remote file at path, named after the file.
func ParseFile(path string) (*Remote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

// LoadDir parses every remote file in dir, sorted by name.
func LoadDir(dir string) ([]*Remote, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var remotes []*Remote
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), Ext) {
			continue
		}
		r, err := ParseFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		remotes = append(remotes, r)
	}
	sort.Slice(remotes, func(i, j int) bool {
		return remotes[i].Name < remotes[j].Name
	})
	return remotes, nil
}

// Find returns the remote called name.
func Find(remotes []*Remote, name string) (*Remote, error) {
	for _, r := range remotes {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoRemote, name)
}
