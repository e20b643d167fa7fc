package sim

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// ResultRow is the on-disk form of a Result
type ResultRow struct {
	Config   string `parquet:"config,dict"`
	Strategy string `parquet:"strategy,dict"`
	Seed     int64  `parquet:"seed"`
	Status   string `parquet:"status,dict"`
	Reason   string `parquet:"reason,dict,optional"`
	Turns    int32  `parquet:"turns"`
	Elapsed  int32  `parquet:"elapsed_seconds"`
	Rejected int32  `parquet:"rejected"`
	FinalRow int32  `parquet:"final_row"`
}

// Rows converts results for writing
func Rows(config string, results []Result) []ResultRow {
	rows := make([]ResultRow, len(results))
	for i, r := range results {
		rows[i] = ResultRow{
			Config:   config,
			Strategy: r.Strategy,
			Seed:     int64(r.Seed),
			Status:   string(r.Status),
			Reason:   string(r.Reason),
			Turns:    int32(r.Turns),
			Elapsed:  int32(r.Elapsed),
			Rejected: int32(r.Rejected),
			FinalRow: int32(r.FinalRow),
		}
	}
	return rows
}

// WriteParquet writes rows to outPath through a temp file and a rename
func WriteParquet(outPath string, rows []ResultRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "sim_result_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}
