// Command genmock writes a synthetic reference dataset for local runs and
// tests. The values follow a smooth capacity model and are not engineering
// data. The output is parsed back with the dataset package so the file is
// known to load the way the server loads it.
//
// Usage:
//
//	go run ./cmd/genmock -out data/data.csv
//	go run ./cmd/genmock -out data/data_long.csv -layout long
package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/ktg84478/erovista/internal/adapter/dataset"
	"github.com/ktg84478/erovista/internal/domain"
)

type fixture struct {
	mount, name string
	load        float64 // relative projected area of the fixture arrangement
}

type material struct {
	name     string
	strength float64
}

var (
	fixtures = []fixture{
		{"Top Mount", "Single Top Mount", 1.0},
		{"Top Mount", "Twin Top Mount 180", 1.6},
		{"Side Mount", "Single Side Mount", 1.25},
		{"Side Mount", "Twin Side Mount 180", 1.9},
		{"Side Mount", "Quad Side Mount 90", 2.8},
	}
	poleSizes = []struct {
		name string
		base float64
	}{
		{"4x4", 6},
		{"6x6", 16},
		{"8x8", 34},
		{"10x10", 58},
	}
	heights   = []float64{12, 16, 20, 25}
	winds     = []float64{90, 100, 110, 130}
	materials = []material{
		{"Alaskan Yellow Cedar", 1.0},
		{"Southern Yellow Pine", 1.12},
	}
)

// minimumEPA is the smallest capacity worth listing; below it the configuration is not possible.
const minimumEPA = 1.0

func main() {
	out := flag.String("out", "data/data.csv", "output path for the generated dataset")
	layout := flag.String("layout", string(dataset.LayoutWide), "csv layout (wide|long)")
	flag.Parse()

	if err := run(*out, dataset.Layout(*layout)); err != nil {
		log.Fatal(err)
	}
}

func run(out string, layout dataset.Layout) error {
	var buf bytes.Buffer
	if err := generate(&buf, layout); err != nil {
		return err
	}

	ds, err := dataset.Parse(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return fmt.Errorf("generated dataset does not load: %w", err)
	}

	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil { //nolint:gosec // dataset is not secret
		return fmt.Errorf("writing dataset: %w", err)
	}

	stats := ds.Table.Stats()
	log.Printf("wrote %s (%s): %d rows, %d not possible, materials %v", out, ds.Layout, stats.Rows, stats.SentinelRows, stats.Materials)
	return nil
}

func generate(w io.Writer, layout dataset.Layout) error {
	cw := csv.NewWriter(w)

	switch layout {
	case dataset.LayoutWide:
		header := []string{"mount_type", "fixture_configuration", "ero_vista_pole_size", "pole_height_ft", "wind_speed_mph"}
		for _, m := range materials {
			header = append(header, m.name+" Poles")
		}
		if err := cw.Write(header); err != nil {
			return err
		}
	case dataset.LayoutLong:
		if err := cw.Write([]string{"mount_type", "fixture_configuration", "wood_type", "pole_size", "pole_height_ft", "wind_speed_mph", "epa"}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown layout %q", layout)
	}

	for _, f := range fixtures {
		for _, wind := range winds {
			for _, h := range heights {
				for _, size := range poleSizes {
					key := []string{f.mount, f.name, size.name, domain.FormatNumber(h), domain.FormatNumber(wind)}

					if layout == dataset.LayoutWide {
						rec := key
						for _, m := range materials {
							rec = append(rec, formatEPA(capacity(f, size.base, h, wind, m)))
						}
						if err := cw.Write(rec); err != nil {
							return err
						}
						continue
					}

					for _, m := range materials {
						rec := []string{f.mount, f.name, m.name, size.name, key[3], key[4], formatEPA(capacity(f, size.base, h, wind, m))}
						if err := cw.Write(rec); err != nil {
							return err
						}
					}
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// capacity scales a pole's base EPA down with wind pressure, height, and fixture load.
func capacity(f fixture, base, height, wind float64, m material) float64 {
	v := base * m.strength * math.Pow(90/wind, 2) * math.Pow(12/height, 0.9) / f.load
	if v < minimumEPA {
		return domain.SentinelEPA
	}
	return math.Round(v*10) / 10
}

func formatEPA(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
