package irprotocol

import "time"

// Carrier frequencies
const (
	Freq30kHz  = 30_000
	Freq36kHz  = 36_000
	Freq38kHz  = 38_000
	Freq40kHz  = 40_000
	Freq455kHz = 455_000
)

const us = time.Microsecond

// Sony SIRCS, pulse width coded
var sircsStart = Pair{2400 * us, 600 * us}

// Samsung
var (
	samsungStart = Pair{4500 * us, 4500 * us}
	samsungOne   = Pair{550 * us, 1650 * us}
	samsungZero  = Pair{550 * us, 550 * us}
)

// Matsushita and Technics share timing
var (
	matsushitaStart = Pair{3488 * us, 3488 * us}
	matsushitaOne   = Pair{872 * us, 2616 * us}
	matsushitaZero  = Pair{872 * us, 872 * us}
)

var kaseikyoStart = Pair{3380 * us, 1690 * us}

// Grundig, IR60 and Nokia: 528 us cells, start bit followed by the pre-pause
var (
	grundigStart = Pair{528 * us, 2628 * us}
	grundigCell  = Pair{528 * us, 528 * us}
)

// Siemens and Ruwido
var siemensCell = Pair{275 * us, 275 * us}

var table = map[ID]*Descriptor{}

func register(d *Descriptor) {
	table[d.Protocol] = d
}

func necLike(id ID, bits int) *Descriptor {
	return &Descriptor{
		Protocol:        id,
		Shape:           PulseDistance,
		Frequency:       NEC_modulation_frequency,
		Start:           Pair{NEC_lead_mark, NEC_lead_space},
		One:             Pair{NEC_bit_mark, NEC_bit_1_space},
		Zero:            Pair{NEC_bit_mark, NEC_bit_0_space},
		Bits:            bits,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: NEC_frame_pause,
		RepeatPause:     NEC_frame_pause,
	}
}

func init() {
	necRepeat := &Layout{Start: Pair{NEC_lead_mark, NEC_repeat_space}, Frames: 1}

	nec := necLike(NEC, 32)
	nec.Repeat = necRepeat
	register(nec)

	apple := necLike(Apple, 32)
	apple.Repeat = necRepeat
	register(apple)

	onkyo := necLike(Onkyo, 32)
	onkyo.Repeat = necRepeat
	register(onkyo)

	rep := necLike(NECRepetition, 0)
	rep.Start = necRepeat.Start
	rep.Repeat = necRepeat
	register(rep)

	nec16 := necLike(NEC16, 17)
	nec16.Sync = &Sync{Index: 8, Pair: Pair{NEC_bit_mark, NEC_lead_space}}
	register(nec16)

	register(necLike(NEC42, 42))
	register(necLike(LGAir, 28))

	jvc := necLike(JVC, 16)
	jvc.AutoRepeatPause = 22 * time.Millisecond
	jvc.RepeatPause = 22 * time.Millisecond
	jvc.Repeat = &Layout{Bits: 16, Frames: 1}
	register(jvc)

	register(&Descriptor{
		Protocol:        SIRCS,
		Frequency:       Freq40kHz,
		Start:           sircsStart,
		One:             Pair{1200 * us, 600 * us},
		Zero:            Pair{600 * us, 600 * us},
		Bits:            12,
		Frames:          3,
		AutoRepeatPause: 25 * time.Millisecond,
		RepeatPause:     25 * time.Millisecond,
		Repeat:          &Layout{Start: sircsStart, Bits: 12, Frames: 1},
	})

	register(&Descriptor{
		Protocol:        Samsung,
		Frequency:       Freq38kHz,
		Start:           samsungStart,
		One:             samsungOne,
		Zero:            samsungZero,
		Bits:            37,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 25 * time.Millisecond,
		RepeatPause:     25 * time.Millisecond,
		Sync:            &Sync{Index: 16, Pair: Pair{550 * us, 4500 * us}},
	})
	register(&Descriptor{
		Protocol:        Samsung32,
		Frequency:       Freq38kHz,
		Start:           samsungStart,
		One:             samsungOne,
		Zero:            samsungZero,
		Bits:            32,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 47 * time.Millisecond,
		RepeatPause:     47 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        Samsung48,
		Frequency:       Freq38kHz,
		Start:           samsungStart,
		One:             samsungOne,
		Zero:            samsungZero,
		Bits:            48,
		StopBit:         true,
		Frames:          2,
		AutoRepeatPause: 5 * time.Millisecond,
		RepeatPause:     47 * time.Millisecond,
	})

	register(&Descriptor{
		Protocol:        Matsushita,
		Frequency:       Freq36kHz,
		Start:           matsushitaStart,
		One:             matsushitaOne,
		Zero:            matsushitaZero,
		Bits:            24,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 40 * time.Millisecond,
		RepeatPause:     40 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        Technics,
		Frequency:       Freq36kHz,
		Start:           matsushitaStart,
		One:             matsushitaOne,
		Zero:            matsushitaZero,
		Bits:            22,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 40 * time.Millisecond,
		RepeatPause:     40 * time.Millisecond,
	})

	register(&Descriptor{
		Protocol:        Kaseikyo,
		Frequency:       Freq38kHz,
		Start:           kaseikyoStart,
		One:             Pair{423 * us, 1269 * us},
		Zero:            Pair{423 * us, 423 * us},
		Bits:            48,
		StopBit:         true,
		Frames:          2,
		AutoRepeatPause: 75 * time.Millisecond,
		RepeatPause:     75 * time.Millisecond,
		Repeat:          &Layout{Start: kaseikyoStart, Bits: 48, Frames: 1},
	})
	register(&Descriptor{
		Protocol:        Panasonic,
		Frequency:       Freq38kHz,
		Start:           Pair{3600 * us, 1600 * us},
		One:             Pair{565 * us, 1140 * us},
		Zero:            Pair{565 * us, 316 * us},
		Bits:            56,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 40 * time.Millisecond,
		RepeatPause:     40 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        MitsuHeavy,
		Frequency:       Freq40kHz,
		Start:           Pair{3200 * us, 1560 * us},
		One:             Pair{400 * us, 1200 * us},
		Zero:            Pair{400 * us, 430 * us},
		Bits:            88,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 40 * time.Millisecond,
		RepeatPause:     40 * time.Millisecond,
	})

	register(&Descriptor{
		Protocol:        RECS80,
		Frequency:       Freq38kHz,
		Start:           Pair{158 * us, 7432 * us},
		One:             Pair{158 * us, 7432 * us},
		Zero:            Pair{158 * us, 4902 * us},
		Bits:            10,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 45 * time.Millisecond,
		RepeatPause:     45 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        RECS80Ext,
		Frequency:       Freq38kHz,
		Start:           Pair{158 * us, 3637 * us},
		One:             Pair{158 * us, 7432 * us},
		Zero:            Pair{158 * us, 4902 * us},
		Bits:            12,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 45 * time.Millisecond,
		RepeatPause:     45 * time.Millisecond,
	})

	register(&Descriptor{
		Protocol:        RC5,
		Shape:           Biphase,
		Frequency:       Freq36kHz,
		Start:           Pair{889 * us, 889 * us},
		One:             Pair{889 * us, 889 * us},
		Bits:            13,
		Frames:          1,
		AutoRepeatPause: 88886 * us,
		RepeatPause:     88886 * us,
		Inverted:        true,
	})
	register(&Descriptor{
		Protocol:        RC6,
		Shape:           Biphase,
		Frequency:       Freq36kHz,
		Start:           Pair{2666 * us, 889 * us},
		One:             Pair{444 * us, 444 * us},
		Bits:            21,
		Frames:          1,
		AutoRepeatPause: 45 * time.Millisecond,
		RepeatPause:     45 * time.Millisecond,
		Cells:           map[int]Pair{4: {889 * us, 889 * us}},
	})
	register(&Descriptor{
		Protocol:        RC6A,
		Shape:           Biphase,
		Frequency:       Freq36kHz,
		Start:           Pair{2666 * us, 889 * us},
		One:             Pair{444 * us, 444 * us},
		Bits:            36,
		Frames:          1,
		AutoRepeatPause: 45 * time.Millisecond,
		RepeatPause:     45 * time.Millisecond,
		Cells: map[int]Pair{
			4: {1333 * us, 889 * us},
			5: {444 * us, 889 * us},
		},
	})

	register(&Descriptor{
		Protocol:        Denon,
		Frequency:       Freq36kHz,
		One:             Pair{310 * us, 1780 * us},
		Zero:            Pair{310 * us, 745 * us},
		Bits:            15,
		StopBit:         true,
		Frames:          2,
		AutoRepeatPause: 65 * time.Millisecond,
		RepeatPause:     65 * time.Millisecond,
		SubFrame:        &Layout{Cursor: 16, Bits: 31, Frames: 2},
	})
	register(&Descriptor{
		Protocol:        Thomson,
		Frequency:       Freq38kHz,
		One:             Pair{550 * us, 4500 * us},
		Zero:            Pair{550 * us, 2000 * us},
		Bits:            12,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 35 * time.Millisecond,
		RepeatPause:     35 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        Bose,
		Frequency:       Freq36kHz,
		Start:           Pair{1060 * us, 1425 * us},
		One:             Pair{550 * us, 1425 * us},
		Zero:            Pair{550 * us, 437 * us},
		Bits:            16,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 40 * time.Millisecond,
		RepeatPause:     40 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        Nubert,
		Frequency:       Freq36kHz,
		Start:           Pair{1340 * us, 340 * us},
		One:             Pair{1340 * us, 340 * us},
		Zero:            Pair{500 * us, 1300 * us},
		Bits:            10,
		StopBit:         true,
		Frames:          2,
		AutoRepeatPause: 35 * time.Millisecond,
		RepeatPause:     35 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        Fan,
		Frequency:       Freq36kHz,
		Start:           Pair{1280 * us, 380 * us},
		One:             Pair{1280 * us, 380 * us},
		Zero:            Pair{380 * us, 1280 * us},
		Bits:            11,
		Frames:          1,
		AutoRepeatPause: 6600 * us,
		RepeatPause:     6600 * us,
	})
	register(&Descriptor{
		Protocol:        Speaker,
		Frequency:       Freq38kHz,
		Start:           Pair{440 * us, 1250 * us},
		One:             Pair{1250 * us, 440 * us},
		Zero:            Pair{440 * us, 1250 * us},
		Bits:            10,
		StopBit:         true,
		Frames:          2,
		AutoRepeatPause: 35 * time.Millisecond,
		RepeatPause:     35 * time.Millisecond,
	})

	// Bang & Olufsen: four start bits, the third much longer, then data
	// where a bit equal to its predecessor uses the R pause.
	register(&Descriptor{
		Protocol:        BangOlufsen,
		Frequency:       Freq455kHz,
		Start:           Pair{200 * us, 3125 * us},
		One:             Pair{200 * us, 9375 * us},
		Zero:            Pair{200 * us, 3125 * us},
		Bits:            20,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 100 * time.Millisecond,
		RepeatPause:     100 * time.Millisecond,
		Slots: map[int]Pair{
			0:  {200 * us, 3125 * us},
			1:  {200 * us, 15625 * us},
			2:  {200 * us, 3125 * us},
			19: {200 * us, 12500 * us},
		},
		RepeatedBitSpace: 6250 * us,
	})

	register(&Descriptor{
		Protocol:        Grundig,
		Shape:           Biphase,
		Frequency:       Freq38kHz,
		Start:           grundigStart,
		One:             grundigCell,
		Bits:            10,
		Frames:          2,
		AutoRepeatPause: 20 * time.Millisecond,
		RepeatPause:     117 * time.Millisecond,
		SubFrame:        &Layout{Cursor: 15, Bits: 26, Frames: 2},
		InlineRepeats:   true,
		StartAt:         []int{15},
	})
	register(&Descriptor{
		Protocol:        IR60,
		Shape:           Biphase,
		Frequency:       Freq30kHz,
		Start:           grundigStart,
		One:             grundigCell,
		Bits:            7,
		Frames:          2,
		AutoRepeatPause: 22 * time.Millisecond,
		RepeatPause:     117 * time.Millisecond,
		SubFrame:        &Layout{Cursor: 7, Bits: 15, Frames: 2},
		InlineRepeats:   true,
		StartAt:         []int{7},
	})
	register(&Descriptor{
		Protocol:        Nokia,
		Shape:           Biphase,
		Frequency:       Freq38kHz,
		Start:           grundigStart,
		One:             grundigCell,
		Bits:            16,
		Frames:          3,
		AutoRepeatPause: 20 * time.Millisecond,
		RepeatPause:     117 * time.Millisecond,
		SubFrame:        &Layout{Cursor: 23, Bits: 40, Frames: 3},
		LastFrameFull:   true,
		InlineRepeats:   true,
		StartAt:         []int{23, 47},
	})

	register(&Descriptor{
		Protocol:        Siemens,
		Shape:           Biphase,
		Frequency:       Freq36kHz,
		Start:           siemensCell,
		One:             siemensCell,
		Bits:            23,
		Frames:          1,
		AutoRepeatPause: 45 * time.Millisecond,
		RepeatPause:     45 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        Ruwido,
		Shape:           Biphase,
		Frequency:       Freq36kHz,
		Start:           siemensCell,
		One:             siemensCell,
		Bits:            17,
		Frames:          1,
		AutoRepeatPause: 45 * time.Millisecond,
		RepeatPause:     45 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        A1TVBox,
		Shape:           Biphase,
		Frequency:       Freq38kHz,
		One:             Pair{250 * us, 150 * us},
		Bits:            18,
		Frames:          1,
		AutoRepeatPause: 50 * time.Millisecond,
		RepeatPause:     50 * time.Millisecond,
	})

	register(&Descriptor{
		Protocol:        FDC,
		Frequency:       Freq38kHz,
		Start:           Pair{2085 * us, 966 * us},
		One:             Pair{300 * us, 715 * us},
		Zero:            Pair{300 * us, 220 * us},
		Bits:            40,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 60 * time.Millisecond,
		RepeatPause:     60 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        RCCar,
		Frequency:       Freq38kHz,
		Start:           Pair{2000 * us, 2000 * us},
		One:             Pair{600 * us, 450 * us},
		Zero:            Pair{600 * us, 900 * us},
		Bits:            13,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 40 * time.Millisecond,
		RepeatPause:     40 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        Nikon,
		Frequency:       Freq38kHz,
		Start:           Pair{2200 * us, 27100 * us},
		One:             Pair{500 * us, 3500 * us},
		Zero:            Pair{500 * us, 1500 * us},
		Bits:            2,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 60 * time.Millisecond,
		RepeatPause:     60 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        Lego,
		Frequency:       Freq38kHz,
		Start:           Pair{158 * us, 1026 * us},
		One:             Pair{158 * us, 553 * us},
		Zero:            Pair{158 * us, 263 * us},
		Bits:            16,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 40 * time.Millisecond,
		RepeatPause:     40 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        IRMP16,
		Frequency:       Freq38kHz,
		Start:           Pair{842 * us, 1052 * us},
		One:             Pair{842 * us, 1578 * us},
		Zero:            Pair{842 * us, 526 * us},
		Bits:            16,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 40 * time.Millisecond,
		RepeatPause:     40 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        Roomba,
		Frequency:       Freq38kHz,
		Start:           Pair{2790 * us, 930 * us},
		One:             Pair{2790 * us, 930 * us},
		Zero:            Pair{930 * us, 2790 * us},
		Bits:            7,
		Frames:          8,
		AutoRepeatPause: 18 * time.Millisecond,
		RepeatPause:     18 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        Pentax,
		Frequency:       Freq38kHz,
		Start:           Pair{13000 * us, 3000 * us},
		One:             Pair{1000 * us, 3000 * us},
		Zero:            Pair{1000 * us, 1000 * us},
		Bits:            6,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 60 * time.Millisecond,
		RepeatPause:     60 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        ACP24,
		Frequency:       Freq38kHz,
		Start:           Pair{390 * us, 950 * us},
		One:             Pair{390 * us, 1300 * us},
		Zero:            Pair{390 * us, 950 * us},
		Bits:            70,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 40 * time.Millisecond,
		RepeatPause:     40 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        Telefunken,
		Frequency:       Freq38kHz,
		Start:           Pair{600 * us, 1800 * us},
		One:             Pair{600 * us, 1500 * us},
		Zero:            Pair{600 * us, 600 * us},
		Bits:            15,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 22 * time.Millisecond,
		RepeatPause:     22 * time.Millisecond,
	})
	register(&Descriptor{
		Protocol:        Melinera,
		Frequency:       Freq38kHz,
		One:             Pair{1000 * us, 350 * us},
		Zero:            Pair{350 * us, 1000 * us},
		Bits:            8,
		StopBit:         true,
		Frames:          1,
		AutoRepeatPause: 100 * time.Millisecond,
		RepeatPause:     100 * time.Millisecond,
	})
}
