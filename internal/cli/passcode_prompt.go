package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// readPasscodeNoEcho reads one line from a terminal with echo switched off.
func readPasscodeNoEcho(stdin *os.File) ([]byte, error) {
	if stdin == nil {
		return nil, errors.New("stdin unavailable")
	}

	restore, err := disableEcho(stdin)
	if err != nil {
		return nil, err
	}
	defer restore()

	return readLine(stdin)
}

func readLine(reader io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
