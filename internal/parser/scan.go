package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single UCD line; Unihan lines are well under this.
const maxLineSize = 1024 * 1024

// lineFunc receives one line with its 1-based number. err is ErrLineTooLong
// when the line exceeded maxLineSize; line is empty in that case.
type lineFunc func(lineNum int, line string, err error)

// scanLines calls fn for every line of r. A leading UTF-8 byte order mark and
// trailing carriage returns are removed. Over-long lines are discarded and
// reported to fn; reading continues with the next line.
func scanLines(r io.Reader, fn lineFunc) error {
	br := bufio.NewReaderSize(r, 64*1024)

	var buf []byte
	lineNum := 0
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read line %d: %w", lineNum+1, err)
		}
		lineNum++

		tooLong := false
		buf = append(buf[:0], chunk...)
		for isPrefix {
			chunk, isPrefix, err = br.ReadLine()
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("read line %d: %w", lineNum, err)
			}
			if !tooLong && len(buf)+len(chunk) > maxLineSize {
				tooLong = true
				buf = buf[:0]
			}
			if !tooLong {
				buf = append(buf, chunk...)
			}
			if err != nil {
				break
			}
		}
		if !tooLong && len(buf) > maxLineSize {
			tooLong = true
		}
		if tooLong {
			fn(lineNum, "", fmt.Errorf("%w (limit %d bytes)", ErrLineTooLong, maxLineSize))
			continue
		}

		line := strings.TrimSuffix(string(buf), "\r")
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		fn(lineNum, line, nil)
	}
}
