package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/joseph-ayodele/blind-rankings/constants"
	"github.com/joseph-ayodele/blind-rankings/internal/common"
	"github.com/joseph-ayodele/blind-rankings/internal/document"
	"github.com/joseph-ayodele/blind-rankings/internal/entity"
	"github.com/joseph-ayodele/blind-rankings/internal/extract"
)

func main() {
	verbose := flag.Bool("v", false, "debug logging")
	units := flag.Bool("units", false, "also print detail rows per unit; a unit with 0 rows usually means its label did not resolve")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if flag.NArg() == 0 {
		logger.Error("usage", "cmd", "parsepdf [-v] [-units] <report.pdf>...")
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	parser := extract.NewParser(document.NewExtractor(document.Config{Pdftotext: cfg.Parse.Pdftotext}, logger), logger)
	ctx := context.Background()

	failed := false
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read file", "path", path, "error", err)
			failed = true
			continue
		}
		harvests, err := parser.ParseBytes(ctx, filepath.Base(path), data)
		if err != nil {
			logger.Error("parse file", "path", path, "error", err)
			failed = true
			continue
		}

		fmt.Printf("%s (%d rows)\n", path, len(harvests))
		t := tablewriter.NewWriter(os.Stdout)
		t.SetHeader([]string{"Side", "Blind", "Hunters", "Ducks"})
		t.SetAutoFormatHeaders(false)
		for _, h := range harvests {
			t.Append([]string{string(h.Side), h.Blind, strconv.Itoa(h.Hunters), strconv.Itoa(h.Ducks)})
		}
		t.Render()

		if *units {
			u := tablewriter.NewWriter(os.Stdout)
			u.SetHeader([]string{"Unit", "Rows"})
			u.SetAutoFormatHeaders(false)
			u.AppendBulk(unitRows(harvests))
			u.Render()
		}
	}
	if failed {
		os.Exit(1)
	}
}

// unitRows counts detail harvests per known unit, in unit order.
func unitRows(harvests []entity.Harvest) [][]string {
	counts := make(map[string]int)
	for _, h := range harvests {
		if unit, _, ok := strings.Cut(h.Blind, constants.UnitBlindMarker); ok {
			counts[unit]++
		}
	}
	names := constants.Units()
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strconv.Itoa(counts[name])})
	}
	return rows
}
