package verify

import (
	"context"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/dojodts/errors"
)

// DefaultCompilerCommand checks declarations without emitting output
const DefaultCompilerCommand = "tsc --noEmit --target es6 --module commonjs"

// Compiler runs an external type checker over generated files.
type Compiler struct {
	// Command is the checker command line; files are appended as arguments
	Command string
	// Dir is the working directory; empty means the current one
	Dir string
}

// Check runs the checker over files. A missing binary yields
// ErrServiceUnavailable; a non-zero exit yields
// ErrCompileVerificationFailed with the checker output as detail.
func (c *Compiler) Check(ctx context.Context, files ...string) error {
	command := c.Command
	if command == "" {
		command = DefaultCompilerCommand
	}
	args, err := shellquote.Split(command)
	if err != nil {
		return errors.Wrapf(err, "invalid checker command %q", command)
	}
	if len(args) == 0 {
		return errors.Newf("empty checker command")
	}

	binary, err := exec.LookPath(args[0])
	if err != nil {
		err = errors.MarkAs(err, errors.ErrServiceUnavailable, "type checker not found")
		return errors.WithHintf(err, "install %s or set verify.command", args[0])
	}

	cmd := exec.CommandContext(ctx, binary, append(args[1:], files...)...)
	cmd.Dir = c.Dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Wrap(ctxErr, "type checker interrupted")
		}
		failed := errors.MarkAs(err, errors.ErrCompileVerificationFailed,
			args[0]+" rejected "+strings.Join(files, ", "))
		return errors.WithDetail(failed, strings.TrimSpace(string(out)))
	}
	return nil
}
