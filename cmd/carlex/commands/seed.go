// Copyright (c) 2026 Carlex. All rights reserved.
// Author: minh.dao.autos@gmail.com

package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/minhdao/carlex/internal/catalog"
	"github.com/minhdao/carlex/internal/platform/validate"
	"github.com/minhdao/carlex/pkg/pointer"
	"github.com/minhdao/carlex/pkg/slug"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import catalog rows from a CSV file",
	Long: `Imports brand/model/generation rows from a CSV file with the header:

  brand,model,generation,internal_code,production_start,production_end

Brands and models upsert by slug, so re-seeding refreshes display names
without duplicating rows. Generations always insert; run dedup afterwards
if the file may repeat generations already in the catalog.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "path to the CSV file (required)")
	seedCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(seedCmd)
}

// seedRecord is one parsed CSV line.
type seedRecord struct {
	Brand           string
	Model           string
	Generation      string
	InternalCode    string
	ProductionStart *int
	ProductionEnd   *int
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx, cancel := jobContext()
	defer cancel()

	records, err := readSeedFile(seedFile)
	if err != nil {
		return err
	}

	rt, cleanup, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	repo := catalog.NewPostgresRepository(rt.pool)
	limiter := rt.storeLimiter()
	bar := progressbar.Default(int64(len(records)), "seeding catalog")

	// Brand and model ids are cached per slug so a 10k-row file doesn't
	// upsert the same brand 10k times.
	brandIDs := make(map[string]int64)
	modelIDs := make(map[string]int64)

	for line, record := range records {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}

		brandSlug := slug.From(record.Brand)
		brandID, ok := brandIDs[brandSlug]
		if !ok {
			brandID, err = repo.UpsertBrand(ctx, record.Brand, brandSlug)
			if err != nil {
				return fmt.Errorf("line %d: upsert brand %q: %w", line+2, record.Brand, err)
			}
			brandIDs[brandSlug] = brandID
		}

		modelKey := brandSlug + "/" + slug.From(record.Model)
		modelID, ok := modelIDs[modelKey]
		if !ok {
			modelID, err = repo.UpsertModel(ctx, brandID, record.Model, slug.From(record.Model))
			if err != nil {
				return fmt.Errorf("line %d: upsert model %q: %w", line+2, record.Model, err)
			}
			modelIDs[modelKey] = modelID
		}

		generation := &catalog.Generation{
			ModelID:         modelID,
			Name:            record.Generation,
			ProductionStart: record.ProductionStart,
			ProductionEnd:   record.ProductionEnd,
		}
		if record.InternalCode != "" {
			generation.InternalCode = pointer.To(record.InternalCode)
		}
		if err := repo.CreateGeneration(ctx, generation); err != nil {
			return fmt.Errorf("line %d: create generation %q: %w", line+2, record.Generation, err)
		}

		bar.Add(1)
	}

	fmt.Printf("\nseeded %d generations (%d brands, %d models)\n",
		len(records), len(brandIDs), len(modelIDs))
	return nil
}

// readSeedFile parses and validates the whole file before any write, so a
// malformed line fails the run without touching the database.
func readSeedFile(path string) ([]seedRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 6
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if strings.ToLower(header[0]) != "brand" {
		return nil, fmt.Errorf("unexpected header %q, want brand,model,generation,internal_code,production_start,production_end", strings.Join(header, ","))
	}

	var records []seedRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		record := seedRecord{
			Brand:        strings.TrimSpace(row[0]),
			Model:        strings.TrimSpace(row[1]),
			Generation:   strings.TrimSpace(row[2]),
			InternalCode: strings.TrimSpace(row[3]),
		}

		v := &validate.Validator{}
		v.Required("brand", record.Brand).
			Required("model", record.Model).
			Required("generation", record.Generation).
			MaxLen("brand", record.Brand, 128).
			MaxLen("model", record.Model, 128).
			MaxLen("generation", record.Generation, 128)

		if record.ProductionStart, err = parseYear(v, "production_start", row[4]); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if record.ProductionEnd, err = parseYear(v, "production_end", row[5]); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if err := v.Err(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		records = append(records, record)
	}

	return records, nil
}

func parseYear(v *validate.Validator, field, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not a year", field, raw)
	}
	v.Range(field, year, 1885, 2100)
	return &year, nil
}
