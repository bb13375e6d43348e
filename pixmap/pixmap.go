// Package pixmap holds finished 8-bit pixels and reads and writes them in the
// plain-text PPM (P3) format.
package pixmap

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

const (
	magic    = "P3"
	maxValue = 255
)

type Image struct {
	RowSize, ColSize int

	// Pixels in row-major order, top row first.
	Pixels [][3]uint8
}

func (im *Image) Resize(rowSize, colSize int) {
	im.RowSize = rowSize
	im.ColSize = colSize
	im.Pixels = make([][3]uint8, rowSize*colSize)
}

func (im *Image) Set(r, c int, px [3]uint8) {
	im.Pixels[r*im.ColSize+c] = px
}

func (im *Image) At(r, c int) [3]uint8 {
	return im.Pixels[r*im.ColSize+c]
}

// WritePPM writes im as a P3 image: a header, then one "r g b" line per
// pixel.  Write errors are returned as soon as they happen; whatever was
// already written stays written.
func WritePPM(im *Image, w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", magic, im.ColSize, im.RowSize, maxValue); err != nil {
		return fmt.Errorf("while writing header: %w", err)
	}

	line := make([]byte, 0, len("255 255 255\n"))
	for r := 0; r < im.RowSize; r++ {
		for c := 0; c < im.ColSize; c++ {
			px := im.At(r, c)

			line = line[:0]
			line = strconv.AppendUint(line, uint64(px[0]), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(px[1]), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(px[2]), 10)
			line = append(line, '\n')

			if _, err := bw.Write(line); err != nil {
				return fmt.Errorf("while writing pixel row %d: %w", r, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while flushing pixels: %w", err)
	}

	return nil
}

// ReadPPM parses a P3 image with a maximum value of 255.
func ReadPPM(in io.Reader) (*Image, error) {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)

	next := func(what string) (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("while reading %s: %w", what, err)
			}
			return "", fmt.Errorf("while reading %s: %w", what, io.ErrUnexpectedEOF)
		}
		return sc.Text(), nil
	}

	nextInt := func(what string) (int, error) {
		tok, err := next(what)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, fmt.Errorf("while parsing %s: %w", what, err)
		}
		return v, nil
	}

	tok, err := next("magic")
	if err != nil {
		return nil, err
	}
	if tok != magic {
		return nil, fmt.Errorf("bad magic %q, want %q", tok, magic)
	}

	cols, err := nextInt("width")
	if err != nil {
		return nil, err
	}
	rows, err := nextInt("height")
	if err != nil {
		return nil, err
	}
	if cols < 0 || rows < 0 {
		return nil, fmt.Errorf("bad dimensions %dx%d", cols, rows)
	}

	max, err := nextInt("max value")
	if err != nil {
		return nil, err
	}
	if max != maxValue {
		return nil, fmt.Errorf("unsupported max value %d, want %d", max, maxValue)
	}

	im := &Image{}
	im.Resize(rows, cols)
	for i := range im.Pixels {
		for ch := 0; ch < 3; ch++ {
			v, err := nextInt(fmt.Sprintf("pixel %d", i))
			if err != nil {
				return nil, err
			}
			if v < 0 || v > maxValue {
				return nil, fmt.Errorf("pixel %d channel %d out of range: %d", i, ch, v)
			}
			im.Pixels[i][ch] = uint8(v)
		}
	}

	if _, err := next("trailing data"); err == nil {
		return nil, fmt.Errorf("trailing data after %d pixels", len(im.Pixels))
	}

	return im, nil
}
