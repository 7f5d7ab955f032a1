package rpc

import (
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"time"

	"ParallelMandelbrot/mandelbrot"

	"github.com/BrugadaSyndrome/bslogger"
)

var ErrNotConnected = errors.New("not connected to render server")

const DialTimeout = 5 * time.Second

// TcpClient talks to one RenderService over net/rpc.
type TcpClient struct {
	client        *rpc.Client
	serverAddress string

	Logger bslogger.Logger
	Name   string
}

func NewTcpClient(serverAddress string, name string) TcpClient {
	return TcpClient{
		serverAddress: serverAddress,
		Name:          name,
		Logger:        bslogger.NewLogger(name, bslogger.Normal, nil),
	}
}

func (tc *TcpClient) Connected() bool {
	return tc.client != nil
}

func (tc *TcpClient) Connect() error {
	if tc.client != nil {
		tc.Logger.Warningf("Already connected to render server at %s", tc.serverAddress)
		return nil
	}

	conn, err := net.DialTimeout("tcp", tc.serverAddress, DialTimeout)
	if err != nil {
		tc.Logger.Errorf("Unable to reach render server at %s - %s", tc.serverAddress, err)
		return fmt.Errorf("dial render server %s: %w", tc.serverAddress, err)
	}
	tc.client = rpc.NewClient(conn)
	tc.Logger.Debugf("Connected to render server at %s", tc.serverAddress)
	return nil
}

// Render asks the server for the image described by settings.
func (tc *TcpClient) Render(settings mandelbrot.Settings) (RenderReply, error) {
	var reply RenderReply
	if err := tc.call("Render", settings, &reply); err != nil {
		return RenderReply{}, err
	}
	tc.Logger.Debugf("Received %dx%d image rendered in %s", reply.Width, reply.Height, reply.Elapsed)
	return reply, nil
}

// RollCall reports whether the server answers.
func (tc *TcpClient) RollCall() (bool, error) {
	var present bool
	if err := tc.call("RollCall", tc.Name, &present); err != nil {
		return false, err
	}
	return present, nil
}

func (tc *TcpClient) call(method string, request interface{}, reply interface{}) error {
	if tc.client == nil {
		return fmt.Errorf("%w at %s: %s", ErrNotConnected, tc.serverAddress, method)
	}
	if err := tc.client.Call(ServiceName+"."+method, request, reply); err != nil {
		tc.Logger.Errorf("%s at %s failed - %s", method, tc.serverAddress, err)
		return err
	}
	return nil
}

func (tc *TcpClient) Disconnect() error {
	if tc.client == nil {
		return fmt.Errorf("%w at %s: already disconnected", ErrNotConnected, tc.serverAddress)
	}

	err := tc.client.Close()
	tc.client = nil
	if err != nil {
		tc.Logger.Errorf("Disconnecting from render server at %s - %s", tc.serverAddress, err)
		return err
	}
	tc.Logger.Debugf("Disconnected from render server at %s", tc.serverAddress)
	return nil
}
