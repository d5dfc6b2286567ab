// Command stockgen expands a YAML offer description into its concrete
// bookable instances, printing them and optionally writing an iCalendar
// file for inspection in regular calendar tooling.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cyp0633/stockgen/recurrence"
	"github.com/cyp0633/stockgen/stock"
)

func main() {
	configPath := flag.String("config", "offer.yaml", "path to the offer description")
	icsPath := flag.String("ics", "", "write the generated instances to this .ics file")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(*configPath, *icsPath, logger); err != nil {
		logger.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, icsPath string, logger *slog.Logger) error {
	offer, err := LoadOffer(configPath)
	if err != nil {
		return fmt.Errorf("failed to load offer: %w", err)
	}

	engine := recurrence.NewEngine()
	defer engine.Close()

	gen := stock.NewGenerator(engine, logger)
	result := gen.Generate(offer.Rule, offer.Slots, offer.Allocations, offer.BookingLimit, time.Now())

	instances, err := result.Get()
	if err != nil {
		reportErrors(err, logger)
		return err
	}

	printInstances(instances)
	logger.Info("generation complete", "instances", len(instances))

	if icsPath != "" {
		data, err := stock.EncodeICS(offer.Rule, offer.Summary, instances)
		if err != nil {
			return fmt.Errorf("failed to encode calendar: %w", err)
		}
		if err := os.WriteFile(icsPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", icsPath, err)
		}
		logger.Info("wrote calendar", "path", icsPath)
	}

	return nil
}

// reportErrors logs each structured failure on its own line; the engine
// returns error kinds, the boundary turns them into text.
func reportErrors(err error, logger *slog.Logger) {
	var violations recurrence.Violations
	if errors.As(err, &violations) {
		for _, v := range violations {
			logger.Error("invalid input", "field", v.Field, "code", string(v.Code))
		}
		return
	}

	var limitErrs stock.LimitErrors
	if errors.As(err, &limitErrs) {
		for _, le := range limitErrs {
			logger.Error("booking cutoff in the past",
				"starts_at", le.Instance.StartsAt().Format(time.RFC3339),
				"cutoff", le.Cutoff.Format(time.RFC3339))
		}
	}
}

func printInstances(instances []stock.Instance) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTIME\tPRICE CATEGORY\tQUANTITY\tBOOKING CUTOFF")
	for _, in := range instances {
		quantity := "unlimited"
		if q, ok := in.Quantity.Get(); ok {
			quantity = fmt.Sprintf("%d", q)
		}
		cutoff := "-"
		if c, ok := in.BookingCutoff.Get(); ok {
			cutoff = c.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			in.Date.Format("2006-01-02"), in.Slot, in.PriceCategory, quantity, cutoff)
	}
	w.Flush()
}
