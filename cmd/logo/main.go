// Command logo is a REPL and script runner over the interp facade: it
// proves the facade is usable by something other than the test suite,
// the same role cmd/yaegi plays for the teacher interpreter package.
// It reads a script path from argv, or Logo source line by line from
// stdin if none is given, prints `print`/`show` output to stdout, and
// wires SIGINT to Break so Ctrl-C cancels a running program instead of
// killing the process.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/loturtle/logocore/interp"
	"github.com/loturtle/logocore/interp/lerr"
	"github.com/loturtle/logocore/internal/turtle"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "logo:", err)
		os.Exit(1)
	}
}

func run() error {
	ip := interp.New(interp.Options{Stdout: os.Stdout})
	turtle.Install(ip.ProcedureScope(), turtle.New())

	if len(os.Args) > 1 {
		return runFile(ip, os.Args[1])
	}
	return runREPL(ip)
}

func runFile(ip *interp.Interpreter, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	return execute(ip, ctx, string(src))
}

func runREPL(ip *interp.Interpreter) error {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("? ")
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			fmt.Print("? ")
			continue
		}
		ctx, cancel := signalContext()
		if err := execute(ip, ctx, line); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		cancel()
		fmt.Print("? ")
	}
	return scanner.Err()
}

// signalContext returns a context cancelled either when the returned
// cancel func is called, or when the process receives SIGINT — at
// which point the running program's next CheckBreak/Sleep observes
// cancellation and Execute returns *lerr.BreakError.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT)
}

func execute(ip *interp.Interpreter, ctx context.Context, src string) error {
	err := ip.Execute(ctx, src)
	if err == nil {
		return nil
	}
	var breakErr *lerr.BreakError
	if errors.As(err, &breakErr) {
		slog.Default().Debug("execution interrupted")
		return nil
	}
	return err
}
