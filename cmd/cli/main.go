package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/adapter/http/middleware"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// apiClient talks to the finledger HTTP API.
type apiClient struct {
	baseURL        string
	identifier     string
	idempotencyKey string
	http           *http.Client
}

// apiError is a non-2xx response.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// do sends body as JSON and writes the indented response to out.
func (c *apiClient) do(ctx context.Context, method, path string, body any, out io.Writer) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.baseURL, "/")+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.identifier != "" {
		req.Header.Set(middleware.IdentifierHeader, c.identifier)
	}
	if c.idempotencyKey != "" {
		req.Header.Set(middleware.IdempotencyKeyHeader, c.idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp dto.ErrorResponse
		if json.Unmarshal(payload, &errResp) != nil || errResp.Error == "" {
			errResp.Error = strings.TrimSpace(string(payload))
		}
		return &apiError{Status: resp.StatusCode, Message: errResp.Error}
	}

	if len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}

	return printJSON(out, payload)
}

// printJSON pretty prints a JSON document.
func printJSON(out io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "  "); err != nil {
		_, werr := out.Write(raw)
		return werr
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(out)
	return err
}

func parseAmount(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return amount, nil
}

func newRootCmd() *cobra.Command {
	client := &apiClient{}
	var timeout time.Duration

	rootCmd := &cobra.Command{
		Use:           "finledger-cli",
		Short:         "finledger CLI tool",
		Long:          `A command line interface for interacting with the finledger API.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			client.http = &http.Client{Timeout: timeout}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&client.baseURL, "url", "http://localhost:8080", "Base URL of the finledger API")
	flags.DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	flags.StringVarP(&client.identifier, "identifier", "i", "", "Account identifier")
	flags.StringVar(&client.idempotencyKey, "idempotency-key", "", "Idempotency-Key header for mutating requests")

	rootCmd.AddCommand(
		accountCmd(client),
		accountsCmd(client),
		depositCmd(client),
		withdrawCmd(client),
		statementCmd(client),
		balanceCmd(client),
	)

	return rootCmd
}

func requireIdentifier(client *apiClient) error {
	if client.identifier == "" {
		return fmt.Errorf("--identifier is required")
	}
	return nil
}

func accountCmd(client *apiClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var name string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Open an account for --identifier",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireIdentifier(client); err != nil {
				return err
			}
			return client.do(cmd.Context(), http.MethodPost, "/accounts", dto.CreateAccountRequest{
				Identifier: client.identifier,
				Name:       name,
			}, cmd.OutOrStdout())
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "Account holder name")

	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Show the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireIdentifier(client); err != nil {
				return err
			}
			return client.do(cmd.Context(), http.MethodGet, "/accounts", nil, cmd.OutOrStdout())
		},
	}

	var newName string
	renameCmd := &cobra.Command{
		Use:   "rename",
		Short: "Change the account name",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireIdentifier(client); err != nil {
				return err
			}
			return client.do(cmd.Context(), http.MethodPut, "/accounts", dto.RenameAccountRequest{Name: newName}, cmd.OutOrStdout())
		},
	}
	renameCmd.Flags().StringVar(&newName, "name", "", "New account name")

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireIdentifier(client); err != nil {
				return err
			}
			if err := client.do(cmd.Context(), http.MethodDelete, "/accounts", nil, cmd.OutOrStdout()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "account deleted")
			return nil
		},
	}

	cmd.AddCommand(createCmd, getCmd, renameCmd, deleteCmd)
	return cmd
}

func accountsCmd(client *apiClient) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			query.Set("limit", strconv.Itoa(limit))
			query.Set("offset", strconv.Itoa(offset))
			return client.do(cmd.Context(), http.MethodGet, "/admin/accounts?"+query.Encode(), nil, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	return cmd
}

func depositCmd(client *apiClient) *cobra.Command {
	var amount, description string

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Credit the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireIdentifier(client); err != nil {
				return err
			}
			value, err := parseAmount(amount)
			if err != nil {
				return err
			}
			return client.do(cmd.Context(), http.MethodPost, "/deposit", dto.DepositRequest{
				Description: description,
				Amount:      value,
			}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to credit")
	cmd.Flags().StringVar(&description, "description", "", "Operation description")

	return cmd
}

func withdrawCmd(client *apiClient) *cobra.Command {
	var amount string

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Debit the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireIdentifier(client); err != nil {
				return err
			}
			value, err := parseAmount(amount)
			if err != nil {
				return err
			}
			return client.do(cmd.Context(), http.MethodPost, "/withdraw", dto.WithdrawRequest{Amount: value}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to debit")

	return cmd
}

func statementCmd(client *apiClient) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Show the account statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireIdentifier(client); err != nil {
				return err
			}
			path := "/statement"
			if date != "" {
				path += "?" + url.Values{"date": {date}}.Encode()
			}
			return client.do(cmd.Context(), http.MethodGet, path, nil, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Only operations up to this day (YYYY-MM-DD)")

	return cmd
}

func balanceCmd(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the account balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireIdentifier(client); err != nil {
				return err
			}
			return client.do(cmd.Context(), http.MethodGet, "/balance", nil, cmd.OutOrStdout())
		},
	}
}
