package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var rootCmd = &cobra.Command{
	Use:   "aslark",
	Short: "Assembler toolchain for the D-register assembly dialect",
	Long: `aslark assembles programs written in the .data/.code assembly dialect
into 11-bit machine words.

A program has a mandatory .code section of labeled instructions over the
registers D0..D3 and an optional .data section of '.word' declarations.
Numeric literals may be written in decimal, octal (0o) or hex (0x).
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
