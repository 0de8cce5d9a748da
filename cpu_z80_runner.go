package main

import (
	"fmt"
	"os"
)

const defaultZ80LoadAddr = 0x0000

// Z80RunMode selects how far Run drives the core.
type Z80RunMode int

const (
	RunUntilHalt Z80RunMode = iota
	RunOneInstruction
	RunUntilTactBudget
)

type CPUZ80Config struct {
	LoadAddr     uint16
	Entry        uint16
	TactBudget   uint64
	ExtendedSet  bool
	Instrumented bool
}

// CPUZ80Runner owns a core and its bus and drives them for the CLI and
// the monitor.
type CPUZ80Runner struct {
	cpu *CPU_Z80
	bus *MachineBus

	loadAddr   uint16
	entry      uint16
	tactBudget uint64
}

func NewCPUZ80Runner(config CPUZ80Config) *CPUZ80Runner {
	bus := NewMachineBus()
	cpu := NewCPU_Z80(bus, config.ExtendedSet)
	cpu.Reset()
	cpu.EnableInstrumentation(config.Instrumented)
	return &CPUZ80Runner{
		cpu:        cpu,
		bus:        bus,
		loadAddr:   config.LoadAddr,
		entry:      config.Entry,
		tactBudget: config.TactBudget,
	}
}

func (r *CPUZ80Runner) CPU() *CPU_Z80 {
	return r.cpu
}

func (r *CPUZ80Runner) Bus() *MachineBus {
	return r.bus
}

func (r *CPUZ80Runner) LoadProgram(program []byte) {
	r.bus.LoadProgram(r.loadAddr, program)
	r.cpu.PC = r.entry
}

func (r *CPUZ80Runner) LoadFile(path string) error {
	program, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("z80 runner: %w", err)
	}
	if len(program) > z80AddressSpace {
		return fmt.Errorf("z80 runner: image %s exceeds 64KB", path)
	}
	r.LoadProgram(program)
	return nil
}

// Run drives the core per the selected mode. Until-halt and tact-bound
// runs return the number of whole instructions executed.
func (r *CPUZ80Runner) Run(mode Z80RunMode) uint64 {
	var executed uint64
	switch mode {
	case RunOneInstruction:
		r.cpu.Step()
		return 1
	case RunUntilTactBudget:
		for r.cpu.Tacts < r.tactBudget {
			r.cpu.Step()
			executed++
		}
	default:
		for !r.cpu.Halted() {
			r.cpu.Step()
			executed++
		}
	}
	return executed
}

// DumpState prints the register file the way the monitor shows it.
func (r *CPUZ80Runner) DumpState() {
	c := r.cpu
	fmt.Printf("AF=%04X BC=%04X DE=%04X HL=%04X\n", c.AF(), c.BC(), c.DE(), c.HL())
	fmt.Printf("AF'%04X BC'%04X DE'%04X HL'%04X\n", c.AF2(), c.BC2(), c.DE2(), c.HL2())
	fmt.Printf("IX=%04X IY=%04X SP=%04X PC=%04X WZ=%04X\n", c.IX, c.IY, c.SP, c.PC, c.WZ)
	fmt.Printf("I=%02X R=%02X IM=%d IFF1=%t IFF2=%t F=%s\n", c.I, c.R, c.IM, c.IFF1, c.IFF2, flagString(c.F))
	fmt.Printf("tacts=%d\n", c.Tacts)
}

func flagString(f byte) string {
	names := [8]byte{'S', 'Z', '5', 'H', '3', 'P', 'N', 'C'}
	out := make([]byte, 8)
	for i := range names {
		if f&(0x80>>i) != 0 {
			out[i] = names[i]
		} else {
			out[i] = '-'
		}
	}
	return string(out)
}
