package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	"github.com/dliang/linefollow/monitor"
	"github.com/dliang/linefollow/runlog"
)

func main() {
	var portName, runlogAddr string
	var baudRate int
	var listPorts bool
	flag.StringVar(&portName, "port", os.Getenv("LINEFOLLOW_PORT"), "Serial port of the robot. Defaults to LINEFOLLOW_PORT or the first USB serial port")
	flag.IntVar(&baudRate, "baud", monitor.DefaultBaudRate, "Serial baud rate")
	flag.StringVar(&runlogAddr, "runlog", "", "Address of a runlog server to upload finished runs to")
	flag.BoolVar(&listPorts, "list", false, "List USB serial ports and exit")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if listPorts {
		ports, err := monitor.GetSerialPorts()
		if err != nil {
			logger.Error("error listing ports", "error", err)
			os.Exit(1)
		}
		for _, p := range ports {
			logger.Info("port", "name", p)
		}
		return
	}

	port, err := monitor.Open(portName, baudRate)
	if err != nil {
		logger.Error("error opening robot console", "error", err)
		os.Exit(1)
	}

	var uploader monitor.Uploader
	if runlogAddr != "" {
		uploader = runlog.NewClient(runlogAddr)
	}
	m := monitor.New(logger, uploader)

	sigCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// bench commands typed on stdin go to the robot. This is left out of the group since a read from
	// stdin cannot be interrupted.
	go func() {
		_, err := io.Copy(port, os.Stdin)
		if err != nil {
			logger.Warn("stopped forwarding stdin", "error", err)
		}
	}()

	runCtx, stop := context.WithCancel(sigCtx)
	defer stop()
	g, ctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		defer stop()
		return m.Run(ctx, port)
	})

	g.Go(func() error {
		<-ctx.Done()
		return port.Close()
	})

	err = g.Wait()
	if err != nil && sigCtx.Err() == nil {
		logger.Error("monitor stopped", "error", err)
		os.Exit(1)
	}
}
