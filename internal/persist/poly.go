package persist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muurk/maptools/internal/geom"
)

// ParsePoly reads the outer ring of an Osmosis .poly file:
//
//	<name>
//	<section>
//	    <lon> <lat>
//	    ...
//	END
//	END
//
// Sections whose name starts with "!" are holes and are skipped.
func ParsePoly(r io.Reader) ([]geom.LonLat, error) {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	next := func() (string, bool) {
		for scanner.Scan() {
			lineNum++
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	if _, ok := next(); !ok {
		return nil, errors.New("missing polygon name")
	}

	var ring []geom.LonLat
	haveRing := false
	for {
		section, ok := next()
		if !ok {
			return nil, errors.New("missing final END")
		}
		if section == "END" {
			break
		}
		keep := !haveRing && !strings.HasPrefix(section, "!")

		for {
			line, ok := next()
			if !ok {
				return nil, fmt.Errorf("section %q not terminated by END", section)
			}
			if line == "END" {
				break
			}
			fields := strings.Fields(line)
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: expected \"lon lat\", got %q", lineNum, line)
			}
			lon, err := strconv.ParseFloat(fields[0], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad longitude: %w", lineNum, err)
			}
			lat, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad latitude: %w", lineNum, err)
			}
			if keep {
				ring = append(ring, geom.LonLat{Lon: lon, Lat: lat})
			}
		}

		// Only the first outer ring is kept.
		if keep {
			haveRing = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(ring) < 3 {
		return nil, fmt.Errorf("polygon has %d points, need at least 3", len(ring))
	}
	return ring, nil
}

// WritePoly writes pts as a single-ring Osmosis polygon.
func WritePoly(w io.Writer, name string, pts []geom.LonLat) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, name)
	fmt.Fprintln(bw, "1")
	for _, pt := range pts {
		fmt.Fprintf(bw, "     %.7f     %.7f\n", pt.Lon, pt.Lat)
	}
	fmt.Fprintln(bw, "END")
	fmt.Fprintln(bw, "END")
	return bw.Flush()
}
