// debug_monitor.go - Interactive single-key machine monitor

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Monitor is a raw-mode terminal front end over the debug adapter:
// space steps, g runs to the next breakpoint or halt, r dumps the
// registers, q leaves.
type Monitor struct {
	debug  *DebugZ80
	runner *CPUZ80Runner
}

func NewMonitor(runner *CPUZ80Runner) *Monitor {
	return &Monitor{
		debug:  NewDebugZ80(runner.CPU(), runner.Bus()),
		runner: runner,
	}
}

func (m *Monitor) Run() error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("monitor: raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	m.printLocation()
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return fmt.Errorf("monitor: stdin: %w", err)
		}
		switch buf[0] {
		case ' ':
			m.debug.Step()
			m.printLocation()
		case 'g':
			if m.debug.RunToBreakpoint(100_000_000) {
				fmt.Printf("breakpoint at $%04X\r\n", m.runner.CPU().PC)
			} else {
				fmt.Printf("halted at $%04X\r\n", m.runner.CPU().PC)
			}
			m.printLocation()
		case 'r':
			m.printRegisters()
		case 'q', 0x03:
			return nil
		}
	}
}

func (m *Monitor) printLocation() {
	lines := m.debug.Disassemble(uint64(m.runner.CPU().PC), 1)
	if len(lines) == 0 {
		return
	}
	line := lines[0]
	fmt.Printf("$%04X  %-12s %s\r\n", line.Address, line.HexBytes, line.Mnemonic)
}

func (m *Monitor) printRegisters() {
	for _, reg := range m.debug.GetRegisters() {
		if reg.BitWidth == 8 {
			fmt.Printf("%-3s $%02X  ", reg.Name, reg.Value)
		} else {
			fmt.Printf("%-3s $%04X  ", reg.Name, reg.Value)
		}
	}
	fmt.Printf("\r\ntacts=%d\r\n", m.runner.CPU().Tacts)
}
