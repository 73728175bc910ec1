package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/walleye-chess/walleye/pkg/common"
	"github.com/walleye-chess/walleye/pkg/engine"
	"github.com/walleye-chess/walleye/pkg/uci"
)

const (
	name    = "Walleye"
	author  = "Mitchel Paulin"
	version = "1.0.0"
)

var (
	flgPerft    bool
	flgSelfPlay bool
	flgFen      string
	flgDepth    int
	flgDebug    bool
)

func main() {
	flag.BoolVar(&flgPerft, "T", false, "run perft on the given position")
	flag.BoolVar(&flgSelfPlay, "P", false, "self-play from the given position")
	flag.StringVar(&flgFen, "fen", common.InitialPositionFen, "position to start from")
	flag.IntVar(&flgDepth, "depth", 5, "search or perft depth")
	flag.BoolVar(&flgDebug, "debug", false, "write the debug log file")
	flag.Parse()

	var logger = log.New(os.Stderr, "", log.LstdFlags)
	var debug = newDebugLog()
	defer debug.Close()
	if flgDebug {
		debug.SetLevel("Info")
	}

	debug.logger.Println(name, version,
		"RuntimeVersion", runtime.Version(),
		"GOARCH", runtime.GOARCH,
		"GOOS", runtime.GOOS,
	)

	switch {
	case flgPerft:
		if err := runPerft(flgFen, flgDepth); err != nil {
			logger.Fatal(err)
		}
	case flgSelfPlay:
		if err := runSelfPlay(debug.logger, flgFen, flgDepth); err != nil {
			logger.Fatal(err)
		}
	default:
		runUci(logger, debug)
	}
}

func runUci(logger *log.Logger, debug *debugLog) {
	var eng = engine.NewEngine()
	var protocol = uci.New(name, author, version, eng, os.Stdout,
		[]uci.Option{
			&uci.ComboOption{
				Name:  "DebugLogLevel",
				Vars:  []string{"Off", "Info"},
				Value: &debug.level,
				OnSet: debug.SetLevel,
			},
		},
	)
	protocol.Run(logger, os.Stdin)
}

// debugLog is the per-process log file: walleye_<PID>.log in the working
// directory, timestamped lines. Logging failures must never affect play,
// so open errors leave the logger on io.Discard.
type debugLog struct {
	logger *log.Logger
	level  string
	file   *os.File
}

func newDebugLog() *debugLog {
	return &debugLog{
		logger: log.New(io.Discard, "", log.LstdFlags|log.Lmicroseconds),
		level:  "Off",
	}
}

func (d *debugLog) SetLevel(level string) {
	d.level = level
	if level == "Off" {
		d.logger.SetOutput(io.Discard)
		return
	}
	if d.file == nil {
		var path = fmt.Sprintf("walleye_%d.log", os.Getpid())
		var f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return
		}
		d.file = f
	}
	d.logger.SetOutput(d.file)
}

func (d *debugLog) Close() {
	if d.file != nil {
		d.file.Close()
	}
}
