package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"linkstat/internal/models"
)

// WriteLine writes the single-line SKTEST result consumed by downstream parsers
func WriteLine(w io.Writer, m models.Metrics) error {
	_, err := fmt.Fprintf(w, "SKTEST;%s;%d;%.1f;%.1f;%.1f;%.1f\n",
		m.ServerIP,
		m.HTTPResponseCode,
		m.NameLookupTime,
		m.ConnectTime,
		m.StartTransferTime,
		m.TotalTime,
	)
	return err
}

func (g *Generator) generateTextReport(outputDir string, result models.Aggregate, stats models.SampleStats, samples []models.Sample) error {
	filename := filepath.Join(outputDir, "summary.txt")
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "Link Quality Report\n")
	fmt.Fprintf(file, "Generated: %s\n", g.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "Iterations: %d\n\n", result.Iterations)
	fmt.Fprintln(file, strings.Repeat("=", 60))

	fmt.Fprintln(file, "\nAVERAGED RESULT")
	fmt.Fprintf(file, "  Server IP: %s\n", result.ServerIP)
	fmt.Fprintf(file, "  Effective URL: %s\n", result.EffectiveURL)
	fmt.Fprintf(file, "  HTTP Response Code: %d\n", result.HTTPResponseCode)
	fmt.Fprintf(file, "  Name Lookup: %.3f s\n", result.NameLookupTime)
	fmt.Fprintf(file, "  Connect: %.3f s\n", result.ConnectTime)
	fmt.Fprintf(file, "  Start Transfer: %.3f s\n", result.StartTransferTime)
	fmt.Fprintf(file, "  Total: %.3f s\n", result.TotalTime)
	fmt.Fprint(file, "  Line: ")
	if err := WriteLine(file, result.Metrics); err != nil {
		return err
	}
	fmt.Fprintln(file)

	fmt.Fprintln(file, strings.Repeat("=", 60))
	fmt.Fprintln(file, "\nSAMPLE STATISTICS")
	fmt.Fprintf(file, "  Total Samples: %d\n", stats.TotalSamples)
	fmt.Fprintf(file, "  Successful: %d\n", stats.Successful)
	fmt.Fprintf(file, "  Failure Rate: %.2f%%\n", stats.FailureRate)
	if stats.Successful > 0 {
		fmt.Fprintf(file, "  Average Total: %.3f s\n", stats.AvgTotal)
		fmt.Fprintf(file, "  Min Total: %.3f s\n", stats.MinTotal)
		fmt.Fprintf(file, "  Max Total: %.3f s\n", stats.MaxTotal)
	}
	if stats.Successful < stats.TotalSamples {
		fmt.Fprintln(file, "  Note: averages divide by all iterations, failed samples count as zero.")
	}
	fmt.Fprintln(file)

	fmt.Fprintln(file, strings.Repeat("=", 60))
	fmt.Fprintln(file, "\nSAMPLES")
	fmt.Fprintf(file, "%4s  %-8s  %-16s  %4s  %8s  %8s  %8s  %8s  %s\n",
		"#", "status", "server ip", "code", "lookup", "connect", "ttfb", "total", "error")
	for _, s := range samples {
		status := "ok"
		if !s.Success {
			status = "failed"
		}
		fmt.Fprintf(file, "%4d  %-8s  %-16s  %4d  %8.3f  %8.3f  %8.3f  %8.3f  %s\n",
			s.Iteration+1, status, s.ServerIP, s.HTTPResponseCode,
			s.NameLookupTime, s.ConnectTime, s.StartTransferTime, s.TotalTime, s.ErrorKind)
	}

	return nil
}
