package serve

import (
	"errors"
	cmdUtil "github.com/ValentinKolb/sfc/cmd/util"
	"github.com/ValentinKolb/sfc/rpc/common"
	"github.com/ValentinKolb/sfc/rpc/server"
	"github.com/spf13/cobra"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the sfc server",
		Long:    `Start the sfc server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is SFC_<flag> (e.g. SFC_MAX_PAYLOAD=1048576)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8080", cmdUtil.WrapString("The address on which the server will listen (e.g. localhost:8080, /tmp/sfc.sock, ...)"))

	key = "max-payload"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The maximum size of a request in bytes. Larger requests are rejected before they are read. Required, there is no default"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 30, cmdUtil.WrapString("Read and write timeout of a connection in seconds (0 disables the timeout)"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Optional address of the admin server exposing /metrics and /healthz (e.g. localhost:9090)"))

	cmdUtil.SetupSocketFlags(ServeCmd)
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	serveCmdConfig = cmdUtil.GetServerConfig()
	return serveCmdConfig.Validate()
}

// run starts the sfc server and blocks until it is shut down
func run(_ *cobra.Command, _ []string) error {
	s, err := cmdUtil.GetSerializer()
	if err != nil {
		return err
	}

	t, err := cmdUtil.GetServerTransport()
	if err != nil {
		return err
	}

	serv := server.NewRPCServer(
		*serveCmdConfig,
		t,
		s,
	)
	serv.CloseOnSignal()

	// Serve returns as soon as the listener is closed, Close blocks until all connections are drained
	err = serv.Serve()
	return errors.Join(err, serv.Close())
}
