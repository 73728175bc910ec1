package uci

import (
	"bytes"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/walleye-chess/walleye/pkg/common"
	"github.com/walleye-chess/walleye/pkg/engine"
)

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (w *syncBuffer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.b.Write(p)
}

func (w *syncBuffer) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.b.String()
}

type protocolDriver struct {
	out    *syncBuffer
	writer *io.PipeWriter
	done   chan struct{}
}

func startProtocol(t *testing.T) *protocolDriver {
	t.Helper()
	var out = &syncBuffer{}
	var reader, writer = io.Pipe()
	var debugLevel = "Off"
	var protocol = New("Walleye", "test", "dev", engine.NewEngine(), out,
		[]Option{
			&ComboOption{
				Name:  "DebugLogLevel",
				Vars:  []string{"Off", "Info"},
				Value: &debugLevel,
			},
		})
	var done = make(chan struct{})
	go func() {
		defer close(done)
		protocol.Run(log.New(io.Discard, "", 0), reader)
	}()
	return &protocolDriver{out: out, writer: writer, done: done}
}

func (d *protocolDriver) send(t *testing.T, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if _, err := io.WriteString(d.writer, line+"\n"); err != nil {
			t.Fatal(err)
		}
	}
}

func (d *protocolDriver) waitFor(t *testing.T, substr string, timeout time.Duration) string {
	t.Helper()
	var deadline = time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if output := d.out.String(); strings.Contains(output, substr) {
			return output
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in output:\n%s", substr, d.out.String())
	return ""
}

func (d *protocolDriver) quit(t *testing.T) {
	t.Helper()
	d.send(t, "quit")
	select {
	case <-d.done:
	case <-time.After(5 * time.Second):
		t.Fatal("protocol did not exit on quit")
	}
}

func lastBestMove(t *testing.T, output string) string {
	t.Helper()
	var move = ""
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "bestmove ") {
			move = strings.Fields(line)[1]
		}
	}
	if move == "" {
		t.Fatal("no bestmove line in output:\n" + output)
	}
	return move
}

func TestUciSession(t *testing.T) {
	var d = startProtocol(t)
	d.send(t, "uci")
	var output = d.waitFor(t, "uciok", 2*time.Second)
	if !strings.Contains(output, "id name Walleye") {
		t.Error("missing id name:\n" + output)
	}
	if !strings.Contains(output,
		"option name DebugLogLevel type combo default Off var Off var Info") {
		t.Error("missing DebugLogLevel option:\n" + output)
	}

	d.send(t, "isready")
	d.waitFor(t, "readyok", 2*time.Second)

	d.send(t, "position startpos moves e2e4", "go depth 2")
	output = d.waitFor(t, "bestmove", 30*time.Second)
	if !strings.Contains(output, "info depth 1") || !strings.Contains(output, "info depth 2") {
		t.Error("missing info lines:\n" + output)
	}

	var best = lastBestMove(t, output)
	var p, _ = common.NewPositionFromFEN(common.InitialPositionFen)
	var afterE4, ok = p.MakeMoveLAN("e2e4")
	if !ok {
		t.Fatal("e2e4 rejected")
	}
	var legal = false
	for _, move := range common.GenerateLegalMoves(&afterE4) {
		if move.String() == best {
			legal = true
		}
	}
	if !legal {
		t.Error("bestmove", best, "is not a legal black reply to e2e4")
	}

	d.quit(t)
}

func TestUciStopResponsive(t *testing.T) {
	var d = startProtocol(t)
	d.send(t, "position startpos", "go depth 30")
	d.waitFor(t, "info depth", 10*time.Second)
	d.send(t, "stop")
	var output = d.waitFor(t, "bestmove", 2*time.Second)
	lastBestMove(t, output)
	d.quit(t)
}

func TestUciIllegalMoveStopsMoveList(t *testing.T) {
	var d = startProtocol(t)
	// The second e2e4 is illegal: the list stops there and the engine
	// keeps the prefix after 1.e4 e5.
	d.send(t, "position startpos moves e2e4 e7e5 e2e4", "go depth 1")
	var output = d.waitFor(t, "bestmove", 10*time.Second)
	var best = lastBestMove(t, output)

	var p, _ = common.NewPositionFromFEN(common.InitialPositionFen)
	var afterE4, _ = p.MakeMoveLAN("e2e4")
	var afterE5, ok = afterE4.MakeMoveLAN("e7e5")
	if !ok {
		t.Fatal("e7e5 rejected")
	}
	var legal = false
	for _, move := range common.GenerateLegalMoves(&afterE5) {
		if move.String() == best {
			legal = true
		}
	}
	if !legal {
		t.Error("bestmove", best, "is not legal in the prefix position")
	}
	d.quit(t)
}

func TestUciUnknownCommandIgnored(t *testing.T) {
	var d = startProtocol(t)
	d.send(t, "joho", "isready")
	d.waitFor(t, "readyok", 2*time.Second)
	d.quit(t)
}

func TestComboOption(t *testing.T) {
	var value = "Off"
	var opt = &ComboOption{Name: "DebugLogLevel", Vars: []string{"Off", "Info"}, Value: &value}
	if err := opt.Set("Info"); err != nil || value != "Info" {
		t.Error("combo set", err, value)
	}
	if err := opt.Set("Verbose"); err == nil {
		t.Error("combo accepted an unknown var")
	}
}
