package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/dliang/linefollow/runlog"
)

func main() {
	var addr string
	flag.StringVar(&addr, "addr", ":8080", "Address to serve the runlog API on")
	flag.Parse()

	slog.Info("serving runlog", "addr", addr)
	err := runlog.NewAPI().SetAddress(addr).Serve()
	if err != nil {
		slog.Error("runlog server stopped", "error", err)
		os.Exit(1)
	}
}
