package capture_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/tcbridge/internal/capture"
)

var _ = Describe("Banner", func() {
	It("should be exactly 70 characters wide", func() {
		Expect(capture.Banner(">> begin captured stdout <<")).To(HaveLen(70))
		Expect(capture.Banner(">> end captured stdout <<")).To(HaveLen(70))
		Expect(capture.Banner("x")).To(HaveLen(70))
	})

	It("should center the label between dashes", func() {
		Expect(capture.Banner(">> begin captured stdout <<")).To(Equal(
			strings.Repeat("-", 20) + " >> begin captured stdout << " + strings.Repeat("-", 21)))
	})

	It("should frame the markers with newlines", func() {
		Expect(capture.BeginMarker).To(HaveSuffix("\n"))
		Expect(capture.EndMarker).To(HavePrefix("\n"))
	})
})

var _ = Describe("Extractor", func() {
	var e *capture.Extractor

	BeforeEach(func() {
		e = capture.NewExtractor(0, 0)
	})

	Describe("Extract", func() {
		It("should split out the captured block", func() {
			text := "AssertionError: boom\n" + capture.Wrap("hello\nworld") + "\ntrailer\n"

			detail, chunks := e.Extract(text)
			Expect(detail).To(Equal("AssertionError: boom\n\ntrailer\n"))
			Expect(strings.Join(chunks, "")).To(Equal("hello\nworld"))
			Expect(detail).ToNot(ContainSubstring(capture.BeginMarker))
			Expect(detail).ToNot(ContainSubstring(capture.EndMarker))
			Expect(detail).ToNot(ContainSubstring("hello"))
		})

		It("should return text unchanged without markers", func() {
			detail, chunks := e.Extract("AssertionError: boom\n")
			Expect(detail).To(Equal("AssertionError: boom\n"))
			Expect(chunks).To(BeEmpty())
		})

		It("should return text unchanged with only the begin marker", func() {
			text := "boom\n" + capture.BeginMarker + "hello"
			detail, chunks := e.Extract(text)
			Expect(detail).To(Equal(text))
			Expect(chunks).To(BeEmpty())
		})

		It("should return text unchanged with only the end marker", func() {
			text := "boom\nhello" + capture.EndMarker
			detail, chunks := e.Extract(text)
			Expect(detail).To(Equal(text))
			Expect(chunks).To(BeEmpty())
		})

		It("should return text unchanged when the end marker comes first", func() {
			text := "boom" + capture.EndMarker + "\nmiddle\n" + capture.BeginMarker + "tail"
			detail, chunks := e.Extract(text)
			Expect(detail).To(Equal(text))
			Expect(chunks).To(BeEmpty())
		})

		It("should remove an empty block", func() {
			detail, chunks := e.Extract("boom\n" + capture.Wrap("") + "\n")
			Expect(detail).To(Equal("boom\n\n"))
			Expect(chunks).To(BeEmpty())
		})

		It("should truncate oversized output with a visible marker", func() {
			e = capture.NewExtractor(5, 100)
			_, chunks := e.Extract(capture.Wrap("0123456789"))
			Expect(strings.Join(chunks, "")).To(Equal("01234" + capture.TruncationMarker))
		})
	})

	Describe("Split", func() {
		It("should break after newlines where possible", func() {
			e = capture.NewExtractor(100, 8)
			chunks := e.Split("line1\nline2\nline3")
			Expect(chunks).To(Equal([]string{"line1\n", "line2\n", "line3"}))
		})

		It("should hard-split long lines", func() {
			e = capture.NewExtractor(100, 4)
			chunks := e.Split("abcdefghij")
			Expect(chunks).To(Equal([]string{"abcd", "efgh", "ij"}))
		})

		It("should not cut runes in half", func() {
			e = capture.NewExtractor(100, 4)
			chunks := e.Split("aaéé")
			Expect(strings.Join(chunks, "")).To(Equal("aaéé"))
			for _, c := range chunks {
				Expect(len(c)).To(BeNumerically("<=", 4))
				Expect(strings.ToValidUTF8(c, "?")).To(Equal(c))
			}
		})

		It("should return nothing for empty output", func() {
			Expect(e.Split("")).To(BeEmpty())
		})
	})

	Describe("Limit", func() {
		It("should keep output within the limit untouched", func() {
			e = capture.NewExtractor(10, 5)
			Expect(e.Limit("short")).To(Equal("short"))
		})

		It("should cut at a rune boundary", func() {
			e = capture.NewExtractor(3, 5)
			Expect(e.Limit("aéé")).To(Equal("aé" + capture.TruncationMarker))
		})
	})
})
