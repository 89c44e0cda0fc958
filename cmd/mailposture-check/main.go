// Command mailposture-check prints the DNS posture of each email address
// given on the command line as JSON, one result per line.
//
// Exit status is 1 when any address fails to parse or any verdict is fail.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/optimode/mailposture"
	"github.com/optimode/mailposture/internal/config"
	"github.com/optimode/mailposture/internal/logging"
)

func main() {
	workers := flag.Int("workers", 5, "number of addresses checked concurrently")
	selectors := flag.String("selectors", "", "comma-separated DKIM selectors (overrides DKIM_SELECTORS)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] email...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	emails := flag.Args()
	if len(emails) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if *selectors != "" {
		cfg.DKIM.Selectors = strings.Split(*selectors, ",")
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	checker := cfg.NewChecker(logger.WithField("service", "mailposture-check"))
	results, err := checker.CheckMany(ctx, emails, mailposture.ConcurrencyOptions{Workers: *workers})

	exit := 0
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		exit = 1
	}

	enc := json.NewEncoder(os.Stdout)
	for _, r := range results {
		if r.Domain == "" {
			continue
		}
		if r.OverallStatus == mailposture.OverallFail {
			exit = 1
		}
		if err := enc.Encode(r); err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
			os.Exit(1)
		}
	}
	os.Exit(exit)
}
