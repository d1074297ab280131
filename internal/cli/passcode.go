package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/cyclecare/internal/security"
)

var ErrPasscodeMismatch = errors.New("passcodes do not match")

type PasscodeReader func() ([]byte, error)

// TerminalPasscodeReader prompts on stderr and reads without echo.
func TerminalPasscodeReader(prompt string) PasscodeReader {
	return func() ([]byte, error) {
		fmt.Fprint(os.Stderr, prompt)
		defer fmt.Fprintln(os.Stderr)
		return readPasscodeNoEcho(os.Stdin)
	}
}

// RunPasscodeHashCommand asks for the passcode twice and prints the
// ACCESS_PASSCODE_HASH line to put into the environment.
func RunPasscodeHashCommand(out io.Writer, first PasscodeReader, confirm PasscodeReader) error {
	passcode, err := first()
	if err != nil {
		return fmt.Errorf("read passcode: %w", err)
	}
	repeated, err := confirm()
	if err != nil {
		return fmt.Errorf("read passcode confirmation: %w", err)
	}
	if string(passcode) != string(repeated) {
		return ErrPasscodeMismatch
	}

	hash, err := security.HashPasscode(string(passcode))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "ACCESS_PASSCODE_HASH=%s\n", hash)
	return err
}
