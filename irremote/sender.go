//go:build tinygo

package irremote

import (
	"context"
	"machine"
)

// PWM is used for the pulse distance modulation carrier of the IR signal
type PWM interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (channel uint8, err error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// SenderDevice is the device for sending IR commands
type SenderDevice struct {
	pin   machine.Pin // IR LED pin
	pwm   PWM         // Modulation PWM
	pwmDC int         // Modulation Duty Cycle %
	ch    uint8

	tx     *Transmitter
	cancel context.CancelFunc
	done   chan struct{} // closed when auto-repeats have ended
}

// SenderConfig is used to configure the SenderDevice
type SenderConfig struct {
	// Pin is the GPIO pin connected to the IR LED
	Pin machine.Pin
	// PWM is used for the IR modulation carrier signal on Pin
	PWM PWM
	// ModulationDutyCycle is the duty cycle (%) used for the PWM modulation carrier signal
	// A value of zero results in a duty cycle of 33%
	ModulationDutyCycle int
	// Encoder configures the frame encoder
	Encoder Config
}

// NewSender returns a new IR sender device
func NewSender(config SenderConfig) *SenderDevice {
	if config.ModulationDutyCycle < 1 ||
		config.ModulationDutyCycle > 100 {
		// Default duty cycle for modulation is 33%
		config.ModulationDutyCycle = 33
	}
	sender := &SenderDevice{
		pin:   config.Pin,
		pwm:   config.PWM,
		pwmDC: config.ModulationDutyCycle}
	sender.tx = NewTransmitter(NewEncoder(config.Encoder), &CarrierSink{Carrier: sender})
	return sender
}

// Configure configures the output pin for the IR sender device
func (ir *SenderDevice) Configure() error {
	ir.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	ch, err := ir.pwm.Channel(ir.pin)
	if err != nil {
		return err
	}
	ir.ch = ch
	return nil
}

// SetFrequency reprograms the PWM period for a carrier of hz
func (ir *SenderDevice) SetFrequency(hz uint32) error {
	return ir.pwm.Configure(machine.PWMConfig{Period: 1e9 / uint64(hz)})
}

// Enable pulses the carrier on or off
func (ir *SenderDevice) Enable(on bool) {
	if on {
		ir.pwm.Set(ir.ch, ir.pwm.Top()*uint32(ir.pwmDC)/100) // duty cycle
		return
	}
	ir.pwm.Set(ir.ch, 0)
}

// Send transmits cmd, returning once all of its frames have been sent.
// Endless repeats are sent until StopRepeats is called from another goroutine.
func (ir *SenderDevice) Send(cmd Command) error {
	ir.StopRepeats()
	return ir.tx.Send(context.Background(), cmd)
}

// SendNEC sends a command using the NEC protocol.
// If autoRepeat is true, sender will continue to send repeat codes until cancelled via StopNECRepeats()
func (ir *SenderDevice) SendNEC(address uint16, command byte, autoRepeat bool) error {
	cmd := NECCommand(address, command)
	if !autoRepeat {
		return ir.Send(cmd)
	}

	// Auto-repeats run in a goroutine until the context is cancelled
	ir.StopRepeats()
	cmd.Flags = RepeatEndless
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	ir.cancel, ir.done = cancel, done
	go func() {
		defer close(done)
		ir.tx.Send(ctx, cmd)
	}()
	return nil
}

// SendNECRepeat can be used to manually send a repeat code using the NEC protocol.
// The Receiver will interpret this as a repeat of the last command sent.
func (ir *SenderDevice) SendNECRepeat() error {
	return ir.Send(NECRepeatCommand())
}

// StopNECRepeats cancels any auto-repeat codes being generated after passing autoRepeat=true to SendNEC()
func (ir *SenderDevice) StopNECRepeats() {
	ir.StopRepeats()
}

// StopRepeats ends pending repeat frames and waits for the last frame to go out
func (ir *SenderDevice) StopRepeats() {
	if ir.cancel == nil {
		return
	}
	ir.cancel()
	<-ir.done
	ir.cancel, ir.done = nil, nil
}

// SendNECRawCode is a low-level API that sends raw 32-bit data using the NEC protocol,
// Intended for advanced use cases (e.g. repeaters/relays/replays etc.)
// LSB -> MSB: { address (Low), address (High), cmd, ^cmd }
// Returns false if data is incorrectly assembled
func (ir *SenderDevice) SendNECRawCode(data uint32) (bool, error) {
	cmd, valid := NECRawCommand(data)
	if !valid {
		return false, nil
	}
	return true, ir.Send(cmd)
}
