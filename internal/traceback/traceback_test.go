package traceback_test

import (
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/fjglira/tcbridge/internal/domain"
	"github.com/fjglira/tcbridge/internal/traceback"
)

type explodingError struct{}

func (explodingError) Error() string { panic("cannot describe myself") }

type kindError struct{}

func (*kindError) Error() string { return "kind error" }

var _ = Describe("Fix", func() {
	It("should wrap a bare string value", func() {
		trace := errors.New("origin").(interface{ StackTrace() errors.StackTrace }).StackTrace()
		fixed := traceback.Fix(domain.ErrorInfo{Kind: "KindX", Value: "plain string", Trace: trace})

		Expect(fixed.Kind).To(Equal("KindX"))
		Expect(fixed.Trace).To(Equal(trace))
		err, ok := fixed.Value.(error)
		Expect(ok).To(BeTrue())
		Expect(err.Error()).To(Equal("plain string"))
		Expect(fixed.Value).To(BeAssignableToTypeOf(&domain.GenericError{}))
	})

	It("should leave error values alone", func() {
		value := fmt.Errorf("boom")
		fixed := traceback.Fix(domain.ErrorInfo{Kind: "KindX", Value: value})
		Expect(fixed.Value).To(BeIdenticalTo(value))
	})
})

var _ = Describe("Format", func() {
	It("should render kind and message", func() {
		text := traceback.Format(domain.ErrorInfo{Kind: "AssertionError", Value: fmt.Errorf("1 != 2")})
		Expect(text).To(Equal("AssertionError: 1 != 2\n"))
	})

	It("should derive the kind from the value when missing", func() {
		text := traceback.Format(domain.ErrorInfo{Value: &kindError{}})
		Expect(text).To(HavePrefix("github.com/fjglira/tcbridge/internal/traceback_test.kindError: kind error"))
	})

	It("should render stack frames", func() {
		info := traceback.FromError(errors.New("with stack"))
		text := traceback.Format(info)
		Expect(text).To(ContainSubstring("with stack"))
		Expect(text).To(ContainSubstring("traceback_test.go:"))
	})

	It("should be deterministic", func() {
		info := traceback.FromError(errors.New("again"))
		Expect(traceback.Format(info)).To(Equal(traceback.Format(info)))
	})

	It("should degrade to the sentinel text instead of panicking", func() {
		var text string
		Expect(func() {
			text = traceback.Format(domain.ErrorInfo{Kind: "Broken", Value: explodingError{}})
		}).ToNot(Panic())
		Expect(text).To(HavePrefix(traceback.FailedPrefix))
		Expect(text).To(ContainSubstring("cannot describe myself"))
	})
})

var _ = Describe("FromError", func() {
	It("should take the kind from the root cause", func() {
		info := traceback.FromError(errors.Wrap(&kindError{}, "context"))
		Expect(info.Kind).To(Equal("github.com/fjglira/tcbridge/internal/traceback_test.kindError"))
		Expect(info.Trace).ToNot(BeEmpty())
		Expect(info.Value.(error).Error()).To(Equal("context: kind error"))
	})

	It("should leave the trace empty for plain errors", func() {
		info := traceback.FromError(fmt.Errorf("plain"))
		Expect(info.Trace).To(BeEmpty())
		Expect(strings.HasSuffix(info.Kind, "errorString")).To(BeTrue())
	})
})
