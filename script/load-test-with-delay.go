package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"
)

// TransactionPayload represents the transaction creation payload
type TransactionPayload struct {
	Type            string `json:"type"`
	Amount          string `json:"amount"`
	TransactionDate string `json:"transaction_date"`
	Description     string `json:"description,omitempty"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	TokenStats         map[string]int // Track requests per account token
	ScenarioStats      map[string]int // Track requests per scenario
	Lock               sync.Mutex
}

// TransactionScenario defines a transaction scenario
type TransactionScenario struct {
	Name   string // For stats tracking
	Type   string
	Amount string
}

func main() {

	// Define command line flags
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	tokensStr := flag.String("t", "", "Comma-separated list of bearer tokens to distribute load across")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	bootstrap := flag.Bool("bootstrap", true, "Call the bootstrap endpoint once per token before the run")
	flag.Parse()

	// Parse bearer tokens
	var tokens []string
	for _, entry := range strings.Split(*tokensStr, ",") {
		if token := strings.TrimSpace(entry); token != "" {
			tokens = append(tokens, token)
		}
	}

	if len(tokens) == 0 {
		fmt.Println("At least one bearer token is required (-t token1,token2)")
		return
	}

	// Define transaction scenarios
	scenarios := []TransactionScenario{
		{"Expense Small", "expense", "15000"},
		{"Expense Medium", "expense", "48500.50"},
		{"Expense Large", "expense", "250000"},
		{"Income Small", "income", "100000"},
		{"Income Medium", "income", "750000"},
		{"Income Large", "income", "5000000"},
	}

	fmt.Printf("Load testing API across %d accounts\n", len(tokens))
	fmt.Printf("Transaction scenarios: %d different combinations\n", len(scenarios))
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	// Warm up each account so default categories exist before the run
	if *bootstrap {
		client := &http.Client{Timeout: 10 * time.Second}
		for _, token := range tokens {
			if err := bootstrapAccount(client, *baseURL, token); err != nil {
				fmt.Printf("Bootstrap failed for %s: %v\n", tokenLabel(token), err)
				return
			}
		}
		fmt.Println("All accounts bootstrapped")
	}

	// Initialize test statistics
	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour, // Start with a high value that will be replaced
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
		TokenStats:      make(map[string]int),
		ScenarioStats:   make(map[string]int),
	}

	// Initialize stats for each account
	for _, token := range tokens {
		stats.TokenStats[tokenLabel(token)] = 0
	}

	// Initialize stats for each scenario
	for _, scenario := range scenarios {
		stats.ScenarioStats[scenario.Name] = 0
	}

	// Channel to collect results
	results := make(chan TestResult, *totalRequests)

	// Channel to distribute work
	jobs := make(chan int, *totalRequests)

	// Start worker goroutines
	var wg sync.WaitGroup
	fmt.Println("Starting worker goroutines...")
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			worker(workerID, *baseURL, *delayMs, tokens, scenarios, jobs, results, stats)
		}(i)
	}

	// Fill the jobs channel
	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	// Start a goroutine to collect results
	go func() {
		for result := range results {
			stats.Lock.Lock()
			if result.Success {
				stats.SuccessfulRequests++
			} else {
				stats.FailedRequests++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}

			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.TotalResponseTime += result.ResponseTime

			if result.ResponseTime < stats.MinResponseTime {
				stats.MinResponseTime = result.ResponseTime
			}
			if result.ResponseTime > stats.MaxResponseTime {
				stats.MaxResponseTime = result.ResponseTime
			}
			stats.Lock.Unlock()
		}
	}()

	// Start the timer
	startTime := time.Now()
	fmt.Println("Test running...")

	// Print progress periodically
	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := stats.SuccessfulRequests + stats.FailedRequests
			if completed > 0 {
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					completed, stats.TotalRequests, float64(completed)/float64(stats.TotalRequests)*100)
			}
			stats.Lock.Unlock()
		}
	}()

	// Wait for all workers to finish
	wg.Wait()
	close(results)
	ticker.Stop()

	// Calculate the total test time
	stats.TotalTime = time.Since(startTime)

	// Print results
	printResults(stats)
}

// tokenLabel shortens a token for display so full credentials never hit stdout
func tokenLabel(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8] + "..."
}

func bootstrapAccount(client *http.Client, baseURL, token string) error {
	req, err := http.NewRequest("POST", baseURL+"/api/v1/bootstrap", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}
	return nil
}

func worker(id int, baseURL string, delayMs int, tokens []string,
	scenarios []TransactionScenario, jobs <-chan int, results chan<- TestResult, stats *TestStats) {

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	for jobID := range jobs {
		// Optional delay between requests to prevent rate limiting
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		// Randomly select an account
		token := tokens[rand.Intn(len(tokens))]

		// Randomly select a transaction scenario
		scenario := scenarios[rand.Intn(len(scenarios))]

		// Update stats for which account and scenario was selected
		stats.Lock.Lock()
		stats.TokenStats[tokenLabel(token)]++
		stats.ScenarioStats[scenario.Name]++
		stats.Lock.Unlock()

		// Spread transaction dates over the current month
		day := rand.Intn(28) + 1
		transactionDate := time.Now().AddDate(0, 0, -day).Format("2006-01-02")

		payload := TransactionPayload{
			Type:            scenario.Type,
			Amount:          scenario.Amount,
			TransactionDate: transactionDate,
			Description:     fmt.Sprintf("load-test-%d-%d", id, jobID),
		}

		jsonData, err := json.Marshal(payload)
		if err != nil {
			results <- TestResult{Success: false, Error: err}
			continue
		}

		// Create request
		req, err := http.NewRequest("POST", baseURL+"/api/v1/transactions", bytes.NewBuffer(jsonData))
		if err != nil {
			results <- TestResult{Success: false, Error: err}
			continue
		}

		// Set headers
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		// Send the request and measure response time
		startTime := time.Now()
		resp, err := client.Do(req)
		responseTime := time.Since(startTime)

		result := TestResult{
			ResponseTime: responseTime,
		}

		if err != nil {
			result.Success = false
			result.Error = err
		} else {
			statusCode := resp.StatusCode
			result.StatusCode = statusCode
			result.Success = (statusCode >= 200 && statusCode < 300)
			if !result.Success {
				result.Error = fmt.Errorf("HTTP status code %d", statusCode)
			}
			resp.Body.Close()
		}

		results <- result
	}
}

func printResults(stats *TestStats) {
	// Calculate theoretical TPS (ignores actual delays between requests)
	rawTps := float64(stats.SuccessfulRequests) / stats.TotalTime.Seconds()

	// Calculate TPS if all requests were successful
	theoreticalTps := float64(stats.TotalRequests) / stats.TotalTime.Seconds()

	// Calculate success rate adjusted TPS
	adjustedTps := theoreticalTps * (float64(stats.SuccessfulRequests) / float64(stats.TotalRequests))

	// Calculate average response time
	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	}

	// Calculate percentiles
	var p50, p90, p95, p99 time.Duration
	if len(stats.ResponseTimes) > 0 {
		// Sort the response times
		sortedTimes := make([]time.Duration, len(stats.ResponseTimes))
		copy(sortedTimes, stats.ResponseTimes)

		// Simple bubble sort (OK for small datasets)
		for i := 0; i < len(sortedTimes); i++ {
			for j := i + 1; j < len(sortedTimes); j++ {
				if sortedTimes[i] > sortedTimes[j] {
					sortedTimes[i], sortedTimes[j] = sortedTimes[j], sortedTimes[i]
				}
			}
		}

		p50 = sortedTimes[len(sortedTimes)*50/100]
		p90 = sortedTimes[len(sortedTimes)*90/100]
		p95 = sortedTimes[len(sortedTimes)*95/100]
		p99 = sortedTimes[len(sortedTimes)*99/100]
	}

	// Print results
	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d (%.1f%%)\n", stats.SuccessfulRequests,
		float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Failed Requests:     %d (%.1f%%)\n", stats.FailedRequests,
		float64(stats.FailedRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())

	fmt.Println("\n----------------- PERFORMANCE -----------------")
	fmt.Printf("Raw TPS:             %.2f (successful requests / total time)\n", rawTps)
	fmt.Printf("Theoretical TPS:     %.2f (if all requests were successful)\n", theoreticalTps)
	fmt.Printf("Success-adjusted TPS: %.2f (theoretical * success rate)\n", adjustedTps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", p50)
	fmt.Printf("P90 Response:        %v\n", p90)
	fmt.Printf("P95 Response:        %v\n", p95)
	fmt.Printf("P99 Response:        %v\n", p99)

	// Print account distribution
	fmt.Println("\n----------------- ACCOUNT DISTRIBUTION -----------------")
	totalAccounts := 0
	for _, count := range stats.TokenStats {
		totalAccounts += count
	}
	for label, count := range stats.TokenStats {
		if count > 0 {
			fmt.Printf("Account %s:    %d requests (%.1f%%)\n", label, count,
				float64(count)/float64(totalAccounts)*100)
		}
	}

	// Print scenario distribution
	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	totalScenarios := 0
	for _, count := range stats.ScenarioStats {
		totalScenarios += count
	}
	for scenario, count := range stats.ScenarioStats {
		if count > 0 {
			fmt.Printf("%-15s: %d requests (%.1f%%)\n", scenario, count,
				float64(count)/float64(totalScenarios)*100)
		}
	}

	// Print error distribution if there were errors
	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d (%.1f%%)\n", errMsg, count,
				float64(count)/float64(stats.TotalRequests)*100)
		}
	}
}
