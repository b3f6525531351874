package whodata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"golang.org/x/sync/errgroup"

	"dashboard.covid19.org/internal/logging"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func init() {
	// A renamed or dropped column must fail the load instead of decoding
	// as empty cells.
	gocsv.FailIfUnmatchedStructTags = true
}

func rawData(ctx context.Context, client *http.Client, location string) ([]byte, error) {
	if isLocalFile(location) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("error reading local file: %w", err)
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading data: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body,
		logging.FromContext(ctx).With(slog.String("component", "whodata_downloader")),
		"http_response_body")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	return b, nil
}

// decodeRows parses a CSV payload into wire rows and converts each row.
// The first failing row aborts the decode.
func decodeRows[Row any, Rec any](b []byte, convert func(Row) (Rec, error)) ([]Rec, error) {
	b = bytes.TrimPrefix(b, utf8BOM)
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, fmt.Errorf("empty payload")
	}

	var rows []Row
	if err := gocsv.UnmarshalBytes(b, &rows); err != nil {
		if errors.Is(err, gocsv.ErrUnmatchedStructTags) {
			return nil, fmt.Errorf("missing columns: %w", err)
		}
		return nil, fmt.Errorf("error parsing csv: %w", err)
	}

	records := make([]Rec, 0, len(rows))
	for i, row := range rows {
		rec, err := convert(row)
		if err != nil {
			// +2: one for the header, one for 1-based numbering.
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func fetchTable[Row any, Rec any](ctx context.Context, client *http.Client, config Config, source Source, convert func(Row) (Rec, error)) ([]Rec, error) {
	location := config.location(source)
	b, err := rawData(ctx, client, location)
	if err != nil {
		return nil, &FetchError{Source: source, Location: location, Err: err}
	}
	records, err := decodeRows(b, convert)
	if err != nil {
		return nil, &FetchError{Source: source, Location: location, Err: err}
	}
	return records, nil
}

// Load retrieves the three sources concurrently. Each source gets a single
// attempt; if any of them fails the returned error is a *FetchError and no
// dataset is returned.
func Load(ctx context.Context, config Config, client *http.Client) (*Dataset, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if config.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.FetchTimeout)
		defer cancel()
	}

	logger := logging.FromContext(ctx).With(slog.String("component", "whodata_loader"))
	start := time.Now()
	data := &Dataset{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := fetchTable(gctx, client, config, SourceCases, caseRow.record)
		data.Cases = rows
		return err
	})
	g.Go(func() error {
		rows, err := fetchTable(gctx, client, config, SourceSummary, latestRow.record)
		data.Latest = rows
		return err
	})
	g.Go(func() error {
		rows, err := fetchTable(gctx, client, config, SourceVaccinations, vaccinationRow.record)
		data.Vaccinations = rows
		return err
	})
	if err := g.Wait(); err != nil {
		logging.LogError(logger, "failed to load WHO data", err)
		return nil, err
	}

	data.LoadedAt = time.Now()
	logging.LogOperation(logger, "who_data_loaded",
		slog.Int("cases", len(data.Cases)),
		slog.Int("summary_rows", len(data.Latest)),
		slog.Int("vaccinations", len(data.Vaccinations)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}
