// Command loadtest runs an ad-hoc HTTP load test against a running API
// instance: a fixed mix of realistic catalog queries, a configurable
// number of concurrent users, and a latency/success report at the end.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"time"
)

type scenario struct {
	name string
	path string
}

var scenarios = []scenario{
	{"plain listing", "/api/games?limit=20"},
	{"text search", "/api/games?search=action&limit=20"},
	{"genre filter", "/api/games?genre=Action&limit=20"},
	{"price filter", "/api/games?priceMin=0&priceMax=10&limit=20"},
	{"score filter", "/api/games?scoreMin=80&limit=20"},
	{"popularity sort", "/api/games?sort=popularity&order=desc&limit=20"},
	{"statistics", "/api/stats"},
	{"genres", "/api/genres"},
}

type sample struct {
	duration time.Duration
	ok       bool
}

func main() {
	var (
		baseURL  string
		users    int
		requests int
		delay    time.Duration
	)

	flag.StringVar(&baseURL, "url", "http://localhost:3000", "Base URL of the API under test")
	flag.IntVar(&users, "users", 10, "Number of concurrent users")
	flag.IntVar(&requests, "requests", 20, "Requests per user")
	flag.DurationVar(&delay, "delay", 100*time.Millisecond, "Delay between requests per user")
	flag.Parse()

	fmt.Printf("Load test against %s: %d users x %d requests\n\n", baseURL, users, requests)

	client := &http.Client{Timeout: 30 * time.Second}

	var (
		mu      sync.Mutex
		samples []sample
		wg      sync.WaitGroup
	)

	start := time.Now()

	for u := 0; u < users; u++ {
		wg.Add(1)

		go func(seed int64) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(seed))
			local := make([]sample, 0, requests)

			for i := 0; i < requests; i++ {
				s := scenarios[rng.Intn(len(scenarios))]
				local = append(local, hit(client, baseURL+s.path))
				time.Sleep(delay)
			}

			mu.Lock()
			samples = append(samples, local...)
			mu.Unlock()
		}(time.Now().UnixNano() + int64(u))
	}

	wg.Wait()
	elapsed := time.Since(start)

	report(samples, elapsed)
}

func hit(client *http.Client, url string) sample {
	start := time.Now()

	resp, err := client.Get(url)
	if err != nil {
		return sample{duration: time.Since(start)}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return sample{
		duration: time.Since(start),
		ok:       resp.StatusCode == http.StatusOK,
	}
}

func report(samples []sample, elapsed time.Duration) {
	if len(samples) == 0 {
		fmt.Println("no samples collected")
		return
	}

	durations := make([]time.Duration, 0, len(samples))
	succeeded := 0
	var total time.Duration

	for _, s := range samples {
		durations = append(durations, s.duration)
		total += s.duration
		if s.ok {
			succeeded++
		}
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	percentile := func(p float64) time.Duration {
		idx := int(p * float64(len(durations)-1))
		return durations[idx]
	}

	fmt.Println("Results")
	fmt.Println("=======")
	fmt.Printf("requests:    %d (%d ok, %d failed)\n", len(samples), succeeded, len(samples)-succeeded)
	fmt.Printf("elapsed:     %v (%.1f req/s)\n", elapsed.Round(time.Millisecond), float64(len(samples))/elapsed.Seconds())
	fmt.Printf("min / avg / max: %v / %v / %v\n",
		durations[0].Round(time.Millisecond),
		(total / time.Duration(len(durations))).Round(time.Millisecond),
		durations[len(durations)-1].Round(time.Millisecond))
	fmt.Printf("p50 / p95 / p99: %v / %v / %v\n",
		percentile(0.50).Round(time.Millisecond),
		percentile(0.95).Round(time.Millisecond),
		percentile(0.99).Round(time.Millisecond))
}
