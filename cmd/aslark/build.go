package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/nicholasnloehrke/as-lark/pkg/asm"
)

var outFile string

var buildCmd = &cobra.Command{
	Use:   "build sourceFile",
	Short: "Assemble a source file into 11-bit machine words",
	Long: `Build parses the source file, resolves labels and emits one binary
word per line. With -o the words are written to the named file ('-' for
stdout); without -o a human-readable listing is printed instead.
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runBuild(args[0])
	},
}

func init() {
	buildCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file ('-' for stdout)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aslark: %v\n", err)
		atexit.Exit(1)
	}
	src := string(data)

	prog, err := asm.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, asm.FormatError(path, src, err))
		atexit.Exit(1)
	}

	img, err := asm.Assemble(prog)
	if err != nil {
		fmt.Fprintln(os.Stderr, asm.FormatError(path, src, err))
		atexit.Exit(1)
	}
	for _, w := range img.Warnings {
		fmt.Fprintln(os.Stderr, asm.FormatWarning(path, w))
	}

	switch outFile {
	case "":
		printListing(src, img)
	case "-":
		writeWords(os.Stdout, img)
	default:
		f, err := os.Create(outFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "aslark: %v\n", err)
			atexit.Exit(1)
		}
		defer f.Close()
		writeWords(f, img)
	}
}

func writeWords(w *os.File, img *asm.Image) {
	for _, word := range img.Words {
		fmt.Fprintln(w, word.Bits())
	}
}

// printListing renders an address/word/source table of the assembled image.
func printListing(src string, img *asm.Image) {
	lines := strings.Split(src, "\n")

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Addr", "Word", "Source"})
	for i, word := range img.Words {
		source := ""
		if ln := img.Lines[i]; ln >= 1 && ln <= len(lines) {
			source = strings.TrimSpace(lines[ln-1])
		}
		t.AppendRow(table.Row{i, word.Bits(), source})
	}
	t.Render()
}
