package server

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/sfc/lib/coding"
	"github.com/ValentinKolb/sfc/rpc/common"
	"github.com/ValentinKolb/sfc/rpc/serializer"
	"github.com/ValentinKolb/sfc/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"net"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
)

var Logger = logger.GetLogger("rpc")

// NewRPCServer creates a new RPC server
// It takes a config, transport and serializer as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		tcp.NewTCPServerTransport(),
//		serializer.NewTextSerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
) *RPCServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	return &RPCServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
		metrics:    common.NewServerMetrics(),
	}
}

// RPCServer ties a transport to the coding pipeline and the report serializer
type RPCServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	metrics    *common.ServerMetrics

	admin     *adminServer
	closeOnce sync.Once
}

// handle computes the report for one request
// Every call builds its own tables, nothing is shared between requests
func (s *RPCServer) handle(req []byte) []byte {
	res := coding.Analyze(req)

	resp, err := s.serializer.Serialize(res)
	if err != nil {
		Logger.Errorf("Failed to serialize %s report: %v", s.serializer.Name(), err)
		return []byte(fmt.Sprintf("error: failed to serialize report: %v\n", err))
	}
	return resp
}

func (s *RPCServer) init() error {
	if err := s.config.Validate(); err != nil {
		return err
	}

	// Init logger
	if err := common.InitLoggers(s.config.LogLevel); err != nil {
		return err
	}

	Logger.Infof("Created RPC Server")
	Logger.Infof("%s", s.config.String())

	// Start the admin server if configured
	if s.config.MetricsEndpoint != "" {
		admin, err := startAdminServer(s.config.MetricsEndpoint, s.metrics)
		if err != nil {
			return err
		}
		s.admin = admin
	}

	// Configure the transport layer
	s.transport.RegisterHandler(s.handle)
	s.transport.RegisterMetrics(s.metrics)

	Logger.Infof("sfc setup completed successfully, serving %s reports", s.serializer.Name())
	return nil
}

// Serve starts the RPC server
// This function initializes the server and blocks in the transport layer until Close is called
func (s *RPCServer) Serve() error {
	if err := s.init(); err != nil {
		return err
	}
	return s.transport.Listen(s.config)
}

// Addr returns the address of the transport, nil before the transport listens
func (s *RPCServer) Addr() net.Addr {
	return s.transport.Addr()
}

// Metrics returns the metrics of the server
func (s *RPCServer) Metrics() *common.ServerMetrics {
	return s.metrics
}

// Close stops the transport, waits for in-flight connections and stops the admin server
func (s *RPCServer) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.transport.Close()
		if s.admin != nil {
			err = errors.Join(err, s.admin.close())
		}
	})
	return err
}

// CloseOnSignal closes the server on SIGINT or SIGTERM
func (s *RPCServer) CloseOnSignal() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		Logger.Infof("Received %s, shutting down", sig)
		if err := s.Close(); err != nil {
			Logger.Errorf("Shutdown failed: %v", err)
		}
	}()
}
