package domain_test

import (
	"errors"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/tcbridge/internal/domain"
)

var _ = Describe("BridgeError", func() {
	It("should include phase, test, message and cause", func() {
		err := domain.NewError("report", "pkg.TestA", "test stopped without a matching start", domain.ErrNoStartRecord)
		Expect(err.Error()).To(Equal("[report] pkg.TestA: test stopped without a matching start: no start record for test"))
	})

	It("should omit empty test and cause", func() {
		err := domain.NewError("config", "", "validation failed", nil)
		Expect(err.Error()).To(Equal("[config]: validation failed"))
	})

	It("should append the suggestion", func() {
		err := domain.NewErrorWithSuggestion("scan", "", "failed to stat x", "check input.directories", io.EOF)
		Expect(err.Error()).To(HaveSuffix("(hint: check input.directories)"))
	})

	It("should unwrap to its cause", func() {
		var err error = domain.NewError("report", "t", "boom", domain.ErrNoStartRecord)
		Expect(errors.Is(err, domain.ErrNoStartRecord)).To(BeTrue())

		var be *domain.BridgeError
		Expect(errors.As(err, &be)).To(BeTrue())
		Expect(be.Test).To(Equal("t"))
	})
})

var _ = Describe("KindOf", func() {
	It("should name pointer types by package path and type name", func() {
		Expect(domain.KindOf(&domain.SkipTest{})).To(Equal("github.com/fjglira/tcbridge/internal/domain.SkipTest"))
		Expect(domain.KindOf(domain.SkipTest{})).To(Equal("github.com/fjglira/tcbridge/internal/domain.SkipTest"))
	})

	It("should fall back to the type string for builtin types", func() {
		Expect(domain.KindOf("text")).To(Equal("string"))
	})

	It("should return empty for nil", func() {
		Expect(domain.KindOf(nil)).To(BeEmpty())
	})

	It("should prefer a self-reported type name", func() {
		Expect(domain.KindOf(namedKind{})).To(Equal("example.Custom"))
	})
})

var _ = Describe("Marker errors", func() {
	It("should describe themselves", func() {
		Expect((&domain.SkipTest{}).Error()).To(Equal("skipped"))
		Expect((&domain.SkipTest{Reason: "no network"}).Error()).To(Equal("no network"))
		Expect((&domain.DeprecatedTest{}).Error()).To(Equal("deprecated"))
		Expect((&domain.GenericError{Message: "plain"}).Error()).To(Equal("plain"))
	})

	It("should build error holder ids as name (module)", func() {
		Expect(domain.NewErrorHolder("setup", "example.com/pkg").ID()).To(Equal("setup (example.com/pkg)"))
	})
})

var _ = Describe("ServiceMessage", func() {
	It("should look up attributes by key", func() {
		msg := domain.ServiceMessage{Attrs: []domain.Attr{{Key: "message", Value: "Error"}}}
		v, ok := msg.Attr("message")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("Error"))

		_, ok = msg.Attr("details")
		Expect(ok).To(BeFalse())
	})
})

type namedKind struct{}

func (namedKind) TypeName() string { return "example.Custom" }
