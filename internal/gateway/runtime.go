package gateway

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"syscall"

	"github.com/ppiankov/routegate/internal/artifact"
)

// Runtime builds ExecFns for the sealed vendored runtime binary. The
// runtime owns the authoritative key=value stdout; this wrapper passes
// the byte stream through untouched.
type Runtime struct {
	// Entrypoint is the path to the runtime executable inside the
	// verified bundle.
	Entrypoint string
	// Dir is the working directory for the runtime process.
	Dir string
}

// ExecFnFor returns the ExecFn dispatching this record's accepted
// payload to the runtime. The accepted command is conveyed as argv:
// either the route triple or the order id plus event token. The runtime
// re-derives all authoritative state itself; these arguments are the
// same data the artifact already pins.
func (r *Runtime) ExecFnFor(rec *artifact.Record) ExecFn {
	return func(ctx context.Context) (int, []byte, error) {
		args := runtimeArgs(rec)
		cmd := exec.CommandContext(ctx, r.Entrypoint, args...)
		cmd.Dir = r.Dir

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err := cmd.Run()
		exitCode := 0
		if err != nil {
			exitErr, ok := err.(*exec.ExitError)
			if !ok {
				return -1, nil, fmt.Errorf("runtime spawn failed: %w", err)
			}
			if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
				exitCode = status.ExitStatus()
			}
		}
		return exitCode, stdout.Bytes(), nil
	}
}

func runtimeArgs(rec *artifact.Record) []string {
	p := rec.AcceptPayload
	if p == nil {
		return nil
	}
	switch p.Kind {
	case artifact.AcceptKindRoute:
		args := []string{"route", p.Route.Intent, p.Route.Target}
		if p.Route.Mode != "" {
			args = append(args, p.Route.Mode)
		}
		return args
	case artifact.AcceptKindStateTransition:
		return []string{"transition", p.Transition.OrderID, p.Transition.Event}
	default:
		return nil
	}
}
