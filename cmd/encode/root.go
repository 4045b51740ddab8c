package encode

import (
	"bufio"
	"fmt"
	"github.com/ValentinKolb/sfc/cmd/util"
	"github.com/ValentinKolb/sfc/rpc/client"
	"github.com/ValentinKolb/sfc/rpc/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"io"
	"strings"
)

var (
	encoder client.IEncoderClient

	// EncodeCmd encodes messages from the arguments or from stdin (one message per line)
	EncodeCmd = &cobra.Command{
		Use:   "encode [message...]",
		Short: "Encode messages with a Shannon-Fano code",
		Long: `Encode messages with a Shannon-Fano code and print the report for every message.
The messages are taken from the arguments, without arguments every non-empty line of stdin is one message.
All messages are sent concurrently, the reports are printed in input order.`,
		PersistentPreRunE:  setupEncoder,
		PersistentPostRunE: closeEncoder,
		RunE:               run,
	}
)

func init() {
	// Add common RPC flags to the encode command
	util.SetupRPCClientFlags(EncodeCmd)

	key := "local"
	EncodeCmd.PersistentFlags().Bool(key, false, util.WrapString("Compute the reports in-process without a server"))

	key = "parallel"
	EncodeCmd.PersistentFlags().Int(key, 0, util.WrapString("Maximum number of messages processed at the same time (0 uses the number of CPUs)"))

	key = "log-level"
	EncodeCmd.PersistentFlags().String(key, "warn", util.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	// Add subcommands
	EncodeCmd.AddCommand(benchCmd)
}

// setupEncoder initializes the local or the remote encoder
func setupEncoder(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	if err := common.InitLoggers(viper.GetString("log-level")); err != nil {
		return err
	}

	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	if viper.GetBool("local") {
		encoder = client.NewLocalEncoder(s)
		return nil
	}

	config := util.GetClientConfig()
	if err := config.Validate(); err != nil {
		return err
	}

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	encoder, err = client.NewRPCEncoder(*config, t)
	return err
}

func closeEncoder(_ *cobra.Command, _ []string) error {
	if encoder == nil {
		return nil
	}
	return encoder.Close()
}

func run(cmd *cobra.Command, args []string) error {
	messages := args
	if len(messages) == 0 {
		var err error
		if messages, err = readMessages(cmd.InOrStdin(), maxLineSize()); err != nil {
			return err
		}
	}

	failed := 0
	for _, res := range client.EncodeAll(encoder, messages, viper.GetInt("parallel")) {
		if res.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "message %d (%q): %v\n", res.Index+1, truncate(res.Message, 32), res.Err)
			continue
		}
		if _, err := cmd.OutOrStdout().Write(res.Report); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d messages failed", failed, len(messages))
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// readMessages reads every non-empty line of r as one message
func readMessages(r io.Reader, maxLine int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, maxLine)), maxLine)

	var messages []string
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		messages = append(messages, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	return messages, nil
}

// maxLineSize is the longest line accepted on stdin, the line break included
func maxLineSize() int {
	if viper.GetBool("local") {
		return common.MaxFramePayload
	}
	return viper.GetInt("max-payload") + 2
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
