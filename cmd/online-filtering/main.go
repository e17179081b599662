package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/elusive-m/online-filtering/internal/app"
	"github.com/elusive-m/online-filtering/internal/config"
	"github.com/elusive-m/online-filtering/internal/link"
)

func main() {
	port := flag.String("port", "", "Serial port of the filter device (e.g. /dev/ttyUSB0)")
	url := flag.String("url", "", "WebSocket URL of a network serial bridge (e.g. ws://192.168.4.1/serial)")
	cfgPath := flag.String("config", "online-filtering.yaml", "Path to the yaml config file")
	debug := flag.Bool("debug", false, "Write logs to online-filtering.log")
	flag.Parse()

	if (*port == "") == (*url == "") {
		fmt.Fprintln(os.Stderr, "specify exactly one of -port or -url")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal; logs either go to a file or nowhere.
	if *debug {
		f, err := tea.LogToFile("online-filtering.log", "debug")
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	dial := func() (link.Link, error) {
		if *port != "" {
			return link.OpenSerial(*port, cfg.Serial.BaudRate)
		}
		return link.DialWS(*url)
	}

	m := app.New(cfg, dial)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
