package asm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nicholasnloehrke/as-lark/pkg/asm"
)

// countdown loops a register down to zero. It touches both sections, labels
// in both positions and all three literal bases.
const countdown = `.data
start: .word, 0x3
one: .word, 0o1
.code
main:
    lw D0, start
    lw D1, one
loop: beq D0, done
    sub D0, D0, D1
    j loop
done: nop
`

var _ = Describe("Pipeline", func() {
	It("parses, assembles and maps every word to a source line", func() {
		prog, err := asm.Parse(countdown)
		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Data.Decls).To(HaveLen(2))
		Expect(prog.Code.Statements).To(HaveLen(6))

		img, err := asm.Assemble(prog)
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Words).To(HaveLen(8)) // 6 statements + 2 data words
		Expect(img.Lines).To(HaveLen(8))
		Expect(img.Warnings).To(BeEmpty())

		// Data lives after the code: start resolves to address 6.
		lw := img.Words[0]
		Expect(lw.Bits()).To(Equal("01000000110"))
	})

	It("renders a canonical form that survives a round trip", func() {
		prog, err := asm.Parse(countdown)
		Expect(err).NotTo(HaveOccurred())

		rendered := asm.Render(prog)
		reparsed, err := asm.Parse(rendered)
		Expect(err).NotTo(HaveOccurred())
		Expect(asm.Render(reparsed)).To(Equal(rendered))

		img1, err := asm.Assemble(prog)
		Expect(err).NotTo(HaveOccurred())
		img2, err := asm.Assemble(reparsed)
		Expect(err).NotTo(HaveOccurred())
		Expect(img2.Words).To(Equal(img1.Words))
	})

	It("rejects the whole input on the first error", func() {
		_, err := asm.Parse(".code\nadd D0, D1\n")
		Expect(err).To(HaveOccurred())

		var parseErr *asm.ParseError
		Expect(err).To(BeAssignableToTypeOf(parseErr))
		Expect(err.(*asm.ParseError).Kind).To(Equal(asm.ErrBadOperands))
	})

	It("keeps independent invocations isolated", func() {
		done := make(chan struct{})
		for i := 0; i < 8; i++ {
			go func() {
				defer GinkgoRecover()
				defer func() { done <- struct{}{} }()
				for j := 0; j < 50; j++ {
					prog, err := asm.Parse(countdown)
					Expect(err).NotTo(HaveOccurred())
					img, err := asm.Assemble(prog)
					Expect(err).NotTo(HaveOccurred())
					Expect(img.Words).To(HaveLen(8))
				}
			}()
		}
		for i := 0; i < 8; i++ {
			<-done
		}
	})
})
