package cmd

import (
	"fmt"
	"github.com/ValentinKolb/sfc/cmd/encode"
	"github.com/ValentinKolb/sfc/cmd/serve"
	"github.com/ValentinKolb/sfc/cmd/util"
	"github.com/spf13/cobra"
	"os"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "sfc",
		Short: "Shannon-Fano coding service",
		Long: fmt.Sprintf(`sfc (v%s)

A small network service computing Shannon-Fano codes. The server answers every
message with a report of the symbol frequencies, the code table and the encoded
message. Each connection carries exactly one length-prefixed request and response.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of sfc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sfc v%s\n", Version)
		},
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(encode.EncodeCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "text", util.WrapString("serializer of the report (text, json)"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix, http)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
