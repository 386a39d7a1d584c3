package irprotocol // import "github.com/neildavis/irblaster/irremote/irprotocol"

import (
	"fmt"
	"strings"
)

// ID identifies an IR protocol. Values follow the IRMP protocol numbering so
// that codes captured by IRMP based receivers can be replayed unchanged.
type ID uint8

const (
	Unknown     ID = 0
	SIRCS       ID = 1
	NEC         ID = 2
	Samsung     ID = 3
	Matsushita  ID = 4
	Kaseikyo    ID = 5
	RECS80      ID = 6
	RC5         ID = 7
	Denon       ID = 8
	RC6         ID = 9
	Samsung32   ID = 10
	Apple       ID = 11
	RECS80Ext   ID = 12
	Nubert      ID = 13
	BangOlufsen ID = 14
	Grundig     ID = 15
	Nokia       ID = 16
	Siemens     ID = 17
	FDC         ID = 18
	RCCar       ID = 19
	JVC         ID = 20
	RC6A        ID = 21
	Nikon       ID = 22
	Ruwido      ID = 23
	IR60        ID = 24
	NEC16       ID = 27
	NEC42       ID = 28
	Lego        ID = 29
	Thomson     ID = 30
	Bose        ID = 31
	A1TVBox     ID = 32
	Telefunken  ID = 34
	Roomba      ID = 35
	Speaker     ID = 39
	LGAir       ID = 40
	Samsung48   ID = 41
	Pentax      ID = 43
	Fan         ID = 44
	ACP24       ID = 46
	Technics    ID = 47
	Panasonic   ID = 48
	MitsuHeavy  ID = 49
	IRMP16      ID = 52
	Onkyo       ID = 56
	Melinera    ID = 60

	// NECRepetition is a pseudo protocol: an NEC repeat frame with no data.
	NECRepetition ID = 0xFF
)

var names = map[ID]string{
	Unknown:       "UNKNOWN",
	SIRCS:         "SIRCS",
	NEC:           "NEC",
	Samsung:       "SAMSUNG",
	Matsushita:    "MATSUSHITA",
	Kaseikyo:      "KASEIKYO",
	RECS80:        "RECS80",
	RC5:           "RC5",
	Denon:         "DENON",
	RC6:           "RC6",
	Samsung32:     "SAMSUNG32",
	Apple:         "APPLE",
	RECS80Ext:     "RECS80EXT",
	Nubert:        "NUBERT",
	BangOlufsen:   "BANG_OLUFSEN",
	Grundig:       "GRUNDIG",
	Nokia:         "NOKIA",
	Siemens:       "SIEMENS",
	FDC:           "FDC",
	RCCar:         "RCCAR",
	JVC:           "JVC",
	RC6A:          "RC6A",
	Nikon:         "NIKON",
	Ruwido:        "RUWIDO",
	IR60:          "IR60",
	NEC16:         "NEC16",
	NEC42:         "NEC42",
	Lego:          "LEGO",
	Thomson:       "THOMSON",
	Bose:          "BOSE",
	A1TVBox:       "A1TVBOX",
	Telefunken:    "TELEFUNKEN",
	Roomba:        "ROOMBA",
	Speaker:       "SPEAKER",
	LGAir:         "LGAIR",
	Samsung48:     "SAMSUNG48",
	Pentax:        "PENTAX",
	Fan:           "FAN",
	ACP24:         "ACP24",
	Technics:      "TECHNICS",
	Panasonic:     "PANASONIC",
	MitsuHeavy:    "MITSU_HEAVY",
	IRMP16:        "IRMP16",
	Onkyo:         "ONKYO",
	Melinera:      "MELINERA",
	NECRepetition: "NEC_REPETITION",
}

func (id ID) String() string {
	if s, ok := names[id]; ok {
		return s
	}
	return fmt.Sprintf("ID(%d)", uint8(id))
}

// MarshalText encodes id as its protocol name.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText accepts a protocol name (case insensitive) or a decimal id.
func (id *ID) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// Parse returns the protocol named s. Numeric ids are accepted too.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	for id, name := range names {
		if strings.EqualFold(name, s) && id != Unknown {
			return id, nil
		}
	}
	var n uint8
	if _, err := fmt.Sscanf(s, "%d", &n); err == nil {
		if _, ok := names[ID(n)]; ok && ID(n) != Unknown {
			return ID(n), nil
		}
	}
	return Unknown, fmt.Errorf("unknown protocol %q", s)
}

// IDs returns every protocol that has a descriptor, in id order.
func IDs() []ID {
	ids := make([]ID, 0, len(table))
	for i := 0; i < 256; i++ {
		if _, ok := table[ID(i)]; ok {
			ids = append(ids, ID(i))
		}
	}
	return ids
}
