// main.go - Command line entry point for the IntuitionZ80 core

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░           ░  ░       ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionZ80
Buy me a coffee: https://ko-fi.com/intuition/tip

License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "iz80",
		Short: "iz80 — cycle-accurate Z80 core and machine monitor",
	}

	var org, entry uint16
	var tactBudget uint64
	var next, trace bool

	runCmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Load a raw image and run until HALT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := NewCPUZ80Runner(CPUZ80Config{
				LoadAddr:    org,
				Entry:       entry,
				TactBudget:  tactBudget,
				ExtendedSet: next,
			})
			if err := runner.LoadFile(args[0]); err != nil {
				return err
			}
			mode := RunUntilHalt
			if tactBudget > 0 {
				mode = RunUntilTactBudget
			}
			if trace {
				runTraced(runner, mode)
			} else {
				runner.Run(mode)
			}
			runner.DumpState()
			return nil
		},
	}
	runCmd.Flags().Uint16Var(&org, "org", defaultZ80LoadAddr, "load address")
	runCmd.Flags().Uint16Var(&entry, "entry", defaultZ80LoadAddr, "entry point")
	runCmd.Flags().Uint64Var(&tactBudget, "tacts", 0, "stop after this many T-states (0 = run to HALT)")
	runCmd.Flags().BoolVar(&next, "next", false, "enable the Z80N extended instruction set")
	runCmd.Flags().BoolVar(&trace, "trace", false, "print each instruction as it executes")

	var disasmOrg uint16
	var disasmCount int
	disasmCmd := &cobra.Command{
		Use:   "disasm <image>",
		Short: "Disassemble a raw image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			readMem := func(addr uint64, size int) []byte {
				out := make([]byte, size)
				for i := range size {
					idx := int(addr) - int(disasmOrg) + i
					if idx >= 0 && idx < len(program) {
						out[i] = program[idx]
					}
				}
				return out
			}
			for _, line := range disassembleZ80(readMem, uint64(disasmOrg), disasmCount) {
				fmt.Printf("$%04X  %-12s %s\n", line.Address, line.HexBytes, line.Mnemonic)
			}
			return nil
		},
	}
	disasmCmd.Flags().Uint16Var(&disasmOrg, "org", defaultZ80LoadAddr, "image origin")
	disasmCmd.Flags().IntVar(&disasmCount, "count", 32, "instructions to decode")

	var monOrg, monEntry uint16
	var monNext bool
	monitorCmd := &cobra.Command{
		Use:   "monitor <image>",
		Short: "Load a raw image and enter the interactive monitor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := NewCPUZ80Runner(CPUZ80Config{
				LoadAddr:    monOrg,
				Entry:       monEntry,
				ExtendedSet: monNext,
			})
			if err := runner.LoadFile(args[0]); err != nil {
				return err
			}
			return NewMonitor(runner).Run()
		},
	}
	monitorCmd.Flags().Uint16Var(&monOrg, "org", defaultZ80LoadAddr, "load address")
	monitorCmd.Flags().Uint16Var(&monEntry, "entry", defaultZ80LoadAddr, "entry point")
	monitorCmd.Flags().BoolVar(&monNext, "next", false, "enable the Z80N extended instruction set")

	var traceOrg, traceEntry uint16
	var traceNext bool
	traceCmd := &cobra.Command{
		Use:   "trace <image>",
		Short: "Load a raw image and run to HALT, printing each instruction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := NewCPUZ80Runner(CPUZ80Config{
				LoadAddr:    traceOrg,
				Entry:       traceEntry,
				ExtendedSet: traceNext,
			})
			if err := runner.LoadFile(args[0]); err != nil {
				return err
			}
			runTraced(runner, RunUntilHalt)
			runner.DumpState()
			return nil
		},
	}
	traceCmd.Flags().Uint16Var(&traceOrg, "org", defaultZ80LoadAddr, "load address")
	traceCmd.Flags().Uint16Var(&traceEntry, "entry", defaultZ80LoadAddr, "entry point")
	traceCmd.Flags().BoolVar(&traceNext, "next", false, "enable the Z80N extended instruction set")

	rootCmd.AddCommand(runCmd, disasmCmd, monitorCmd, traceCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runTraced(runner *CPUZ80Runner, mode Z80RunMode) {
	debug := NewDebugZ80(runner.CPU(), runner.Bus())
	for {
		lines := debug.Disassemble(uint64(runner.CPU().PC), 1)
		if len(lines) > 0 {
			fmt.Printf("$%04X  %-12s %-20s tacts=%d\n",
				lines[0].Address, lines[0].HexBytes, lines[0].Mnemonic, runner.CPU().Tacts)
		}
		runner.Run(RunOneInstruction)
		if runner.CPU().Halted() {
			return
		}
		if mode == RunUntilTactBudget && runner.CPU().Tacts >= runner.tactBudget {
			return
		}
	}
}
