package main

import (
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	inputDir     = "./data/incoming"
	numWorkers   = 20
	testDuration = 10 * time.Second
	numCallsigns = 200
)

var (
	statuses  = []string{"SAFE", "OK", "NEED HELP", "TRAFFIC", "ALL CLEAR"}
	powers    = []string{"ON", "OFF", "GENERATOR", ""}
	locations = []string{"Oakville", "Ridgecrest", "Pine Hollow", "Mill Creek", "Eastgate"}
	names     = []string{"John Smith", "Mary Jones", "Bob Lee", "Ann Ray", "Sam Hill"}
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== Welfare Board Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Callsigns: %d\n\n", numWorkers, testDuration, numCallsigns)

	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		fmt.Printf("FAILED: cannot create input dir: %s\n", err)
		return
	}

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/summary")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: Seed the board with check-in files
	fmt.Println("\n--- Phase 1: Seeding check-ins (file drops) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return dropCheckin(rng)
	})

	// Let the pipeline drain
	fmt.Println("\nWaiting 2s for the pipeline...")
	time.Sleep(2 * time.Second)

	// Phase 2: Mixed drop/read load
	fmt.Println("\n--- Phase 2: Mixed load (50% drops, 50% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.50:
			return dropCheckin(rng)
		case r < 0.65:
			return doGet("/summary")
		case r < 0.80:
			return doGet("/checkins")
		case r < 0.90:
			return doGet("/statuses")
		default:
			return doGet("/window")
		}
	})

	// Phase 3: Read-heavy load against the board API
	fmt.Println("\n--- Phase 3: Read-heavy load (10% drops, 90% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return dropCheckin(rng)
		case r < 0.35:
			return doGet("/summary")
		case r < 0.60:
			return doGet("/checkins")
		case r < 0.75:
			return doGet("/statuses")
		case r < 0.90:
			return doGet("/board")
		default:
			return doGet("/window")
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 88))
	fmt.Printf("  Total: %d ops | Errors: %d (%.1f%%) | OPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func dropCheckin(rng *rand.Rand) result {
	callsign := fmt.Sprintf("W%dABC%d", rng.Intn(10), rng.Intn(numCallsigns))
	body := fmt.Sprintf("CALLSIGN: %s\nNAME: %s\nLOCATION: %s\nSTATUS: %s\n",
		callsign,
		names[rng.Intn(len(names))],
		locations[rng.Intn(len(locations))],
		statuses[rng.Intn(len(statuses))])
	if pwr := powers[rng.Intn(len(powers))]; pwr != "" {
		body += "POWER: " + pwr + "\n"
	}
	if rng.Float64() < 0.4 {
		body += fmt.Sprintf("MESSAGE: checking in, seq %d\n", rng.Intn(1000))
	}

	// Stage outside the watched dir so the watcher only ever sees the
	// finished file appear.
	name := fmt.Sprintf("checkin_%s_%d.txt", callsign, rng.Int63())
	tmp := filepath.Join(filepath.Dir(inputDir), "."+name+".tmp")
	dst := filepath.Join(inputDir, name)

	start := time.Now()
	err := os.WriteFile(tmp, []byte(body), 0o644)
	if err == nil {
		err = os.Rename(tmp, dst)
	}
	lat := time.Since(start)
	return result{"DROP file", 0, lat, err != nil}
}

func doGet(path string) result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{"GET " + path, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	// 404 is a legal answer outside an active window
	bad := resp.StatusCode != 200 && resp.StatusCode != 404
	return result{"GET " + path, resp.StatusCode, lat, bad}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
