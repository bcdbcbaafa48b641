package main

import (
	"context"

	"github.com/lupacomun/forensik/internal/domain/benchmark"
	"github.com/lupacomun/forensik/internal/domain/forensic"
)

// benchmarkAdapter bridges the benchmark detector into the forensic
// pipeline's OverpriceDetector port.
type benchmarkAdapter struct {
	detector *benchmark.Detector
}

func (a *benchmarkAdapter) DetectOverprice(ctx context.Context, expense forensic.Expense) (forensic.BenchmarkVerdict, error) {
	verdict, err := a.detector.Detect(ctx, expense)
	if err != nil {
		return forensic.BenchmarkVerdict{}, err
	}

	return forensic.BenchmarkVerdict{
		IsAnomaly: verdict.IsAnomaly,
		Kind:      verdict.Kind,
		Comment:   verdict.Comment,
	}, nil
}
