package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/nicholasnloehrke/as-lark/pkg/asm"
)

const historyFile = ".aslark_history"

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively encode single statements",
	Long: `Repl reads one statement per line, parses it as a minimal program and
echoes the canonical form and the encoded word. Label references cannot be
resolved in a single line and are reported as unknown. Type :quit to exit.
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runRepl()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

func runRepl() {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if path := historyPath(); path != "" {
		if f, err := os.Open(path); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(path); err == nil {
				line.WriteHistory(f)
				f.Close()
			}
		}()
	}

	fmt.Println("aslark repl; one statement per line, :quit to exit")
	for {
		input, err := line.Prompt("asm> ")
		if err != nil {
			// Ctrl+C or Ctrl+D
			fmt.Println()
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == ":quit" {
			return
		}
		line.AppendHistory(input)
		evalStatement(input)
	}
}

// evalStatement wraps one statement into a minimal program, runs the full
// pipeline and prints the canonical rendering next to the encoded word.
func evalStatement(input string) {
	src := ".code\n" + input + "\n"

	prog, err := asm.Parse(src)
	if err != nil {
		fmt.Println(asm.FormatError("repl", src, err))
		return
	}
	img, err := asm.Assemble(prog)
	if err != nil {
		fmt.Println(asm.FormatError("repl", src, err))
		return
	}

	stmt := prog.Code.Statements[0]
	fmt.Printf("%s  %s\n", img.Words[0].Bits(), stmt.Instr)
}
