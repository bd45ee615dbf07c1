// Command populate fills a running University Session API with sample data
// over HTTP and prints a summary table.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/yigit/unisession/internal/config"
	"github.com/yigit/unisession/internal/pkg/logger"
	"github.com/yigit/unisession/internal/seed"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		color.Red("failed to load .env: %v", err)
		os.Exit(1)
	}

	baseURL := flag.String("base-url", config.GetEnv("BASE_URL", "http://localhost:8000"), "API base URL")
	groups := flag.Int("groups", 50, "number of groups to create")
	subjects := flag.Int("subjects", 50, "number of subjects to create")
	sessions := flag.Int("sessions", 200, "number of sessions to create")
	randomSeed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	verbose := flag.Bool("v", false, "log every failed call")
	flag.Parse()

	level := logger.ErrorLevel
	if *verbose {
		level = logger.WarnLevel
	}
	logger.Configure(logger.Config{Level: level, Pretty: true, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	color.Cyan("Populating %s ...", *baseURL)
	summary, err := seed.Run(ctx, seed.NewHTTPTarget(*baseURL, nil), seed.Options{
		Groups:     *groups,
		Subjects:   *subjects,
		Sessions:   *sessions,
		RandomSeed: *randomSeed,
	}, logger.Get())

	printSummary(os.Stdout, summary)

	if err != nil {
		color.Red("Interrupted: %v", err)
		os.Exit(1)
	}
	if _, failed := summary.Total(); failed > 0 {
		color.Yellow("Finished with %d failed calls", failed)
		return
	}
	color.Green("Done.")
}

func printSummary(w io.Writer, summary seed.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Entity", "Created", "Failed"})
	for _, r := range summary.Results {
		table.Append([]string{r.Entity, strconv.Itoa(r.Created), strconv.Itoa(r.Failed)})
	}
	created, failed := summary.Total()
	table.SetFooter([]string{"Total", strconv.Itoa(created), strconv.Itoa(failed)})
	table.Render()
	fmt.Fprintln(w)
}
