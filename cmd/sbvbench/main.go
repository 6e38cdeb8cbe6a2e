// Command sbvbench is the benchmark and cross-check driver for the
// succinct bit-vector index. It is explicitly outside the core's import
// graph: random population, naive-reference cross-checking, high-resolution
// timing, and formatted reporting all live here.
package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/errors"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/go-sbv/sbv"
	"github.com/go-sbv/sbv/internal/refcheck"
)

var config struct {
	bits     int64
	bitsFile string
	seed     int64
	samples  int
	queries  int
	parallel bool
}

var rootCmd = &cobra.Command{
	Use:   "sbvbench",
	Short: "Build a succinct bit-vector index and report its memory footprint and query latency.",
	RunE:  runBench,
}

func init() {
	rootCmd.Flags().Int64Var(&config.bits, "bits", 1<<20,
		"number of bits in the generated vector (ignored when --bits-file is set)")
	rootCmd.Flags().StringVar(&config.bitsFile, "bits-file", "",
		"path to a file of '0'/'1' characters supplying the bit sequence, instead of generating one")
	rootCmd.Flags().Int64Var(&config.seed, "seed", 1,
		"seed for the reproducible random bit source")
	rootCmd.Flags().IntVar(&config.samples, "samples", 2000,
		"number of rank/select cross-check samples against the naive reference")
	rootCmd.Flags().IntVar(&config.queries, "queries", 100000,
		"number of timed rank/select queries")
	rootCmd.Flags().BoolVar(&config.parallel, "parallel", true,
		"classify select-blocks with a bounded worker pool during construction")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("sbvbench failed", "error", err)
		os.Exit(1)
	}
}

func runBench(cmd *cobra.Command, args []string) error {
	logger := slog.Default()

	var bits []bool
	if config.bitsFile != "" {
		logger.Info("reading bit source from file", "path", config.bitsFile)
		var err error
		bits, err = readBitsFile(config.bitsFile)
		if err != nil {
			return errors.Wrapf(err, "reading --bits-file %q", config.bitsFile)
		}
		config.bits = int64(len(bits))
	} else {
		if config.bits < 0 {
			return errors.Newf("--bits must be >= 0, got %d", config.bits)
		}
		logger.Info("generating bit source", "bits", config.bits, "seed", config.seed)
		bits = materializeBits(config.bits, config.seed)
	}

	buildStart := time.Now()
	ix, err := sbv.Construct(config.bits, sbv.NewSliceBitSource(bits), sbv.WithParallelBuild(config.parallel))
	if err != nil {
		return errors.Wrapf(err, "constructing index")
	}
	logger.Info("constructed index", "elapsed", time.Since(buildStart), "totalOnes", ix.TotalOnes())

	if err := crossCheck(ix, bits, config.samples); err != nil {
		return errors.Wrapf(err, "cross-check against naive reference")
	}
	logger.Info("cross-check passed", "samples", config.samples)

	rankHist, selectHist, err := timeQueries(ix, config.queries, config.seed+1)
	if err != nil {
		return errors.Wrapf(err, "timing queries")
	}

	printMemoryReport(ix)
	printLatencyReport("rank", rankHist)
	printLatencyReport("select", selectHist)

	return nil
}

func materializeBits(n int64, seed int64) []bool {
	src := sbv.NewRandomBitSource(seed)
	out := make([]bool, n)
	for i := range out {
		out[i] = src.Next()
	}
	return out
}

// readBitsFile parses a file of '0'/'1' characters into a bit sequence,
// demonstrating the externally supplied bit source spec.md requires every
// real implementation to accept. Whitespace (including newlines) is
// ignored, so the file may wrap lines however the caller likes.
func readBitsFile(path string) ([]bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	bits := make([]bool, 0, len(raw))
	for _, r := range string(raw) {
		switch r {
		case '0':
			bits = append(bits, false)
		case '1':
			bits = append(bits, true)
		default:
			if !strings.ContainsRune(" \t\r\n", r) {
				return nil, errors.Newf("unexpected character %q in bits file", r)
			}
		}
	}
	return bits, nil
}

// crossCheck samples rank/select calls and checks them against the
// linear-scan reference implementation.
func crossCheck(ix *sbv.Index, bits []bool, samples int) error {
	if len(bits) == 0 || samples <= 0 {
		return nil
	}
	rnd := rand.New(rand.NewSource(99))

	for s := 0; s < samples; s++ {
		i := rnd.Intn(len(bits))
		got, err := ix.Rank(uint64(i))
		if err != nil {
			return errors.Wrapf(err, "rank(%d)", i)
		}
		if want := refcheck.Rank(bits, i); uint64(want) != got {
			return errors.Newf("rank(%d) = %d, want %d", i, got, want)
		}
	}

	total := int(ix.TotalOnes())
	for s := 0; s < samples && total > 0; s++ {
		k := rnd.Intn(total) + 1
		got, err := ix.Select(uint64(k))
		if err != nil {
			return errors.Wrapf(err, "select(%d)", k)
		}
		want, ok := refcheck.Select(bits, k)
		if !ok || uint64(want) != got {
			return errors.Newf("select(%d) = %d, want %d", k, got, want)
		}
	}
	return nil
}

// timeQueries records per-query latency into bounded-range histograms.
func timeQueries(ix *sbv.Index, queries int, seed int64) (rankHist, selectHist *hdrhistogram.Histogram, err error) {
	rankHist = hdrhistogram.New(0, 1_000_000, 3)   // nanoseconds, up to 1ms
	selectHist = hdrhistogram.New(0, 1_000_000, 3) // nanoseconds, up to 1ms

	if ix.Size() == 0 {
		return rankHist, selectHist, nil
	}
	rnd := rand.New(rand.NewSource(seed))
	total := ix.TotalOnes()

	for q := 0; q < queries; q++ {
		i := uint64(rnd.Int63n(int64(ix.Size())))
		start := time.Now()
		if _, err := ix.Rank(i); err != nil {
			return nil, nil, err
		}
		if err := rankHist.RecordValue(time.Since(start).Nanoseconds()); err != nil {
			return nil, nil, errors.Wrapf(err, "recording rank latency")
		}

		if total == 0 {
			continue
		}
		k := uint64(rnd.Int63n(int64(total))) + 1
		start = time.Now()
		if _, err := ix.Select(k); err != nil {
			return nil, nil, err
		}
		if err := selectHist.RecordValue(time.Since(start).Nanoseconds()); err != nil {
			return nil, nil, errors.Wrapf(err, "recording select latency")
		}
	}

	return rankHist, selectHist, nil
}

func printMemoryReport(ix *sbv.Index) {
	report := ix.MemoryReport()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Component", "Entries", "Element bytes", "Total bytes"})
	for _, c := range report.Components {
		table.Append([]string{
			c.Name,
			fmt.Sprintf("%d", c.Entries),
			fmt.Sprintf("%d", c.ElementBytes),
			fmt.Sprintf("%d", c.TotalBytes),
		})
	}
	table.SetFooter([]string{"", "", "total", fmt.Sprintf("%d", report.Total())})
	table.Render()
}

func printLatencyReport(name string, hist *hdrhistogram.Histogram) {
	fmt.Printf("\n%s latency (ns): mean=%.0f p50=%d p90=%d p99=%d max=%d\n",
		name, hist.Mean(), hist.ValueAtPercentile(50), hist.ValueAtPercentile(90),
		hist.ValueAtPercentile(99), hist.Max())

	if hist.TotalCount() == 0 {
		return
	}

	series := make([]float64, 0, 11)
	for _, p := range []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 95, 99} {
		series = append(series, float64(hist.ValueAtPercentile(p)))
	}
	graph := asciigraph.Plot(series, asciigraph.Height(10), asciigraph.Caption(name+" latency percentile curve"))
	fmt.Println(graph)
}
