package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/tcbridge/internal/config"
)

var _ = Describe("runReport", func() {
	var (
		cfg     *config.Config
		out     *bytes.Buffer
		errOut  *bytes.Buffer
		reports = filepath.Join("..", "..", "testdata", "reports")
	)

	BeforeEach(func() {
		log = newLogger(false)
		log.SetOutput(io.Discard)

		enabled := true
		cfg = config.DefaultConfig()
		cfg.Enabled = &enabled
		cfg.Output.Timestamps = false
		out = &bytes.Buffer{}
		errOut = &bytes.Buffer{}
	})

	It("should translate a failing report file", func() {
		err := runReport(context.Background(), cfg, []string{filepath.Join(reports, "fail.json")}, strings.NewReader(""), out, errOut)
		Expect(err).ToNot(HaveOccurred())

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		Expect(lines).To(HaveLen(4))
		Expect(lines[0]).To(Equal("##teamcity[testStarted name='example.com/calc.TestDiv' captureStandardOutput='true' flowId='example.com/calc.TestDiv']"))
		Expect(lines[1]).To(Equal("##teamcity[testStdOut name='example.com/calc.TestDiv' out='    div_test.go:12: Div(1, 0) = 0, want error' flowId='example.com/calc.TestDiv']"))
		Expect(lines[2]).To(HavePrefix("##teamcity[testFailed name='example.com/calc.TestDiv' message='Failure' details='testing.T: example.com/calc.TestDiv failed"))
		Expect(lines[3]).To(Equal("##teamcity[testFinished name='example.com/calc.TestDiv' duration='1' flowId='example.com/calc.TestDiv']"))

		Expect(errOut.String()).To(ContainSubstring("FAIL"))
	})

	It("should read events from stdin", func() {
		data, err := os.ReadFile(filepath.Join(reports, "pass.jsonl"))
		Expect(err).ToNot(HaveOccurred())

		Expect(runReport(context.Background(), cfg, nil, bytes.NewReader(data), out, errOut)).To(Succeed())
		Expect(out.String()).To(ContainSubstring("testStarted name='example.com/calc.TestAdd'"))
		Expect(out.String()).To(ContainSubstring("testFinished name='example.com/calc.TestAdd'"))
		Expect(errOut.String()).To(ContainSubstring("PASS"))
	})

	It("should scan directories for report files", func() {
		Expect(runReport(context.Background(), cfg, []string{reports}, strings.NewReader(""), out, errOut)).To(Succeed())
		Expect(out.String()).To(ContainSubstring("TestDiv"))
		Expect(out.String()).To(ContainSubstring("TestAdd"))
		Expect(out.String()).To(ContainSubstring("testIgnored name='example.com/net.TestDial' message='Skipped: dial_test.go:8: no network'"))
		Expect(out.String()).ToNot(ContainSubstring("TestVendored"))
	})

	It("should report through the plugin adapter", func() {
		cfg.Adapter = config.AdapterPlugin
		Expect(runReport(context.Background(), cfg, []string{filepath.Join(reports, "nested")}, strings.NewReader(""), out, errOut)).To(Succeed())
		Expect(out.String()).To(ContainSubstring("testIgnored name='example.com/net.TestDial' message='Skipped'"))
	})

	It("should stay silent when disabled", func() {
		disabled := false
		cfg.Enabled = &disabled
		Expect(runReport(context.Background(), cfg, []string{reports}, strings.NewReader(""), out, errOut)).To(Succeed())
		Expect(out.String()).To(BeEmpty())

		cfg.Adapter = config.AdapterPlugin
		Expect(runReport(context.Background(), cfg, []string{reports}, strings.NewReader(""), out, errOut)).To(Succeed())
		Expect(out.String()).To(BeEmpty())
	})

	It("should skip the summary when disabled", func() {
		cfg.Summary.Enabled = false
		Expect(runReport(context.Background(), cfg, []string{reports}, strings.NewReader(""), out, errOut)).To(Succeed())
		Expect(errOut.String()).To(BeEmpty())
	})

	It("should fail for a missing input", func() {
		err := runReport(context.Background(), cfg, []string{"nonexistent"}, strings.NewReader(""), out, errOut)
		Expect(err).To(HaveOccurred())
	})
})
