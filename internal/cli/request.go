package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/waabox/clubinho/internal/session"
)

var (
	requestData  string
	requestQuiet bool
)

var requestCmd = &cobra.Command{
	Use:   "request METHOD PATH",
	Short: "Send an authenticated request and print the JSON response",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := session.Request{
			Method:                  strings.ToUpper(args[0]),
			Path:                    args[1],
			SkipGlobalErrorHandling: requestQuiet,
		}
		if requestData != "" {
			if !json.Valid([]byte(requestData)) {
				return fmt.Errorf("--data is not valid JSON")
			}
			req.Body = json.RawMessage(requestData)
		}

		defer printToasts(app.Bus, cmd.ErrOrStderr())()
		resp, err := app.Client.Do(cmd.Context(), req)
		if err != nil {
			return err
		}
		var pretty bytes.Buffer
		if json.Indent(&pretty, resp.Body, "", "  ") != nil {
			pretty.Reset()
			pretty.Write(resp.Body)
		}
		fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
		return nil
	},
}

func init() {
	requestCmd.Flags().StringVarP(&requestData, "data", "d", "", "JSON request body")
	requestCmd.Flags().BoolVarP(&requestQuiet, "quiet", "q", false, "do not report failures as notifications")
	rootCmd.AddCommand(requestCmd)
}
