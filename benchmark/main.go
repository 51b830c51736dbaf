// Package main provides a performance benchmarking tool for the Pulse CLI.
// It serves a community data directory over local HTTP and measures command
// execution times with and without snapshot caching, running each test
// multiple times, treating the first successful run as cold and averaging the
// rest as warm, generating CSV output for performance analysis.
//
// Prerequisites:
// - pulse binary installed and available in PATH
// - A data directory with the community history files
//
// Usage: go run benchmark/main.go [data-dir]
//
//	data-dir: Directory containing the community data files
package main

import (
	"encoding/csv"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	BaseURL     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
}

// benchCommands lists the command lines to measure, keyed by a short name.
var benchCommands = []struct {
	Name string
	Args string
}{
	{"metrics", "metrics"},
	{"series", "series --metric github-stars,npm-downloads"},
	{"dist", "dist --source template-categories"},
	{"rank", "rank --source creator-leaderboard --sort-by views"},
	{"corr", "corr --source template-stats --trend"},
	{"predict", "predict --metric github-stars"},
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [data-dir]\n", os.Args[0])
		os.Exit(1)
	}
	dataDir := os.Args[1]

	if err := checkPrerequisites(dataDir); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	baseURL, shutdown, err := serveDataDir(dataDir)
	if err != nil {
		fmt.Printf("Failed to serve data directory: %v\n", err)
		os.Exit(1)
	}
	defer shutdown()

	config := BenchmarkConfig{
		BaseURL:     baseURL,
		Timeout:     time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
	}

	// Clear the snapshot store using pulse cache clear
	fmt.Printf("Clearing snapshots...\n")
	clearCmd := exec.Command("pulse", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear snapshots: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Snapshots cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the pulse binary and data directory exist
func checkPrerequisites(dataDir string) error {
	if _, err := exec.LookPath("pulse"); err != nil {
		return fmt.Errorf("pulse binary not found in PATH")
	}

	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		return fmt.Errorf("data directory not found at %s", dataDir)
	}

	return nil
}

// serveDataDir exposes the data directory on a local HTTP listener so runs go
// through the remote fetch path.
func serveDataDir(dataDir string) (string, func(), error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}

	server := &http.Server{Handler: http.FileServer(http.Dir(dataDir))}
	go func() { _ = server.Serve(listener) }()

	baseURL := fmt.Sprintf("http://%s", listener.Addr().String())
	shutdown := func() { _ = server.Close() }
	return baseURL, shutdown, nil
}

// runBenchmarks executes all benchmark tests across configured commands
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d commands, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(benchCommands), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, bench := range benchCommands {
		results = append(results, runBenchmarkSuite(config, bench.Name, bench.Args))
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, name, argsStr string) BenchmarkResult {
	fmt.Printf("Running %s\n", name)

	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, argsStr, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Command:     name,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a pulse command multiple times with the specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, argsStr, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := parseArgs(argsStr)
	args = append(args, "--base-url", config.BaseURL, "--cache-backend", cacheBackend, "--output", "json")

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("pulse", args...)

		done := make(chan bool)
		var cmdErr error

		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/pulse_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-8s: No-cache: %s, Cold: %s, Warm: %s\n", result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
