package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "moneta-cli",
		Short: "Moneta CLI tool",
		Long:  `A command line interface for interacting with the Moneta API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Moneta API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated requests")

	// Summary commands
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Income, expense and savings totals",
	}
	summaryCmd.AddCommand(&cobra.Command{
		Use:   "totals",
		Short: "Show all-time totals in the base currency",
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/v1/summary/totals")
		},
	})
	summaryCmd.AddCommand(&cobra.Command{
		Use:   "monthly",
		Short: "Show totals for the current month",
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/v1/summary/monthly")
		},
	})
	rootCmd.AddCommand(summaryCmd)

	// Goal commands
	rootCmd.AddCommand(goalsCmd())

	// Rate commands
	ratesCmd := &cobra.Command{
		Use:   "rates",
		Short: "Conversion rate operations",
	}
	ratesCmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the current settings",
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/v1/settings")
		},
	})
	ratesCmd.AddCommand(setRatesCmd())
	rootCmd.AddCommand(ratesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func goalsCmd() *cobra.Command {
	var (
		sort   string
		order  string
		status string
	)

	cmd := &cobra.Command{
		Use:   "goals",
		Short: "List goals with progress",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/goals?sort=" + sort + "&order=" + order
			if status != "" {
				path += "&status=" + status
			}
			getAndPrint(path)
		},
	}

	cmd.Flags().StringVar(&sort, "sort", "created", "Sort key: progress, target or created")
	cmd.Flags().StringVar(&order, "order", "asc", "Sort order: asc or desc")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status: completed, in-progress or not-started")

	return cmd
}

func setRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [rates]",
		Short: "Replace the conversion rate table",
		Long:  `Replace the conversion rate table, e.g. moneta-cli rates set "EUR=1,USD=1.08,RSD=117.2"`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rates, err := parseRates(args[0])
			if err != nil {
				return err
			}

			payload, err := json.Marshal(map[string]any{"rates": rates})
			if err != nil {
				return err
			}

			putAndPrint("/api/v1/settings/rates", payload)
			return nil
		},
	}
}

// parseRates parses "EUR=1,USD=1.08" into a code-to-rate map. Rates stay
// strings, the server does the decimal parsing.
func parseRates(s string) (map[string]string, error) {
	rates := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		code, rate, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found || code == "" || rate == "" {
			return nil, fmt.Errorf("invalid rate %q, expected CODE=VALUE", pair)
		}
		rates[strings.ToUpper(code)] = rate
	}
	return rates, nil
}

func getAndPrint(path string) {
	doRequest(http.MethodGet, path, nil)
}

func putAndPrint(path string, body []byte) {
	doRequest(http.MethodPut, path, body)
}

func doRequest(method, path string, body []byte) {
	client := &http.Client{Timeout: timeout}

	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(string(body))
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(respBody, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
