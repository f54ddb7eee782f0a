package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/gzk6332987/CourseSchedule/pkg/allocation"
	"github.com/gzk6332987/CourseSchedule/pkg/model"
	"github.com/samber/lo"
)

const settingsDirectory = "../../test/settings/"

type ResultType int

const (
	solved ResultType = iota
	exhausted
	unverified
)

var resultTypes = map[ResultType]string{
	solved:     "solved",
	exhausted:  "exhausted",
	unverified: "unverified",
}

type TestMetadata struct {
	Name     string
	Weekdays uint64
	Depth    uint64
	Courses  int
	Teachers int
	Classes  int
}

type BenchmarkResult struct {
	Test     string `csv:"Test"`
	Weekdays uint64 `csv:"Weekdays"`
	Depth    uint64 `csv:"Depth"`
	Courses  int    `csv:"Courses"`
	Teachers int    `csv:"Teachers"`
	Classes  int    `csv:"Classes"`
	Seed     uint64 `csv:"Seed"`
	Duration int64  `csv:"Duration(us)"`
	Result   string `csv:"Result"`
	Class    string `csv:"Aborted Class"`
	Day      uint64 `csv:"Aborted Day"`
	Slot     uint64 `csv:"Aborted Slot"`
}

type Summary struct {
	Test            string  `csv:"Test"`
	Runs            int     `csv:"Runs"`
	Solved          int     `csv:"Solved"`
	Unverified      int     `csv:"Unverified"`
	AbortRate       float64 `csv:"Abort Rate"` // Share of runs ending in exhaustion
	MeanDuration    int64   `csv:"Mean Duration(us)"`
	MeanSolvedDur   int64   `csv:"Mean Solved Duration(us)"`
	FirstSolvedSeed uint64  `csv:"First Solved Seed"`
}

func main() {
	directoryPtr := flag.String("dir", settingsDirectory, "Directory holding the settings files to benchmark")
	seedsPtr := flag.Uint64("seeds", 100, "Number of seeds (1..n) run per settings file")
	outPtr := flag.String("out", "benchmark_results.csv", "Path to the CSV file with one row per run")
	summaryPtr := flag.String("summary", "benchmark_summary.csv", "Path to the CSV file with one row per settings file")
	flag.Parse()

	tests := getTests(*directoryPtr)
	results := make([]*BenchmarkResult, 0, len(tests)*int(*seedsPtr))

	for _, test := range tests {
		fmt.Printf("Benchmarking test \"%v\" with %d seeds\n", test.Name, *seedsPtr)
		for seed := uint64(1); seed <= *seedsPtr; seed++ {
			results = append(results, measure(test, seed))
		}
	}

	toCsv(*outPtr, results)
	toCsv(*summaryPtr, summarize(results))
}

func getTests(directory string) []TestMetadata {
	testFiles, err := os.ReadDir(directory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	tests := make([]TestMetadata, 0)
	for _, file := range testFiles {
		if file.IsDir() || !slices.Contains([]string{".yaml", ".yml", ".json"}, filepath.Ext(file.Name())) {
			continue
		}

		filename := filepath.Join(directory, file.Name())
		schedulingContext, err := model.InputFromFile(filename)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}

		tests = append(tests, TestMetadata{
			Name:     filename,
			Weekdays: schedulingContext.Table.Weekdays,
			Depth:    schedulingContext.Table.Depth,
			Courses:  len(schedulingContext.Courses),
			Teachers: len(schedulingContext.Teachers),
			Classes:  len(schedulingContext.Classes),
		})
	}

	return tests
}

// measure runs one seed over a freshly loaded context, since a run mutates the catalog
func measure(test TestMetadata, seed uint64) *BenchmarkResult {
	schedulingContext := lo.Must(model.InputFromFile(test.Name))
	timetabler := allocation.NewGreedyTimetabler(seed, allocation.DefaultOptions(), nil)

	start := time.Now()
	timetable, err := timetabler.Build(schedulingContext)
	duration := time.Since(start)

	result := &BenchmarkResult{
		Test:     test.Name,
		Weekdays: test.Weekdays,
		Depth:    test.Depth,
		Courses:  test.Courses,
		Teachers: test.Teachers,
		Classes:  test.Classes,
		Seed:     seed,
		Duration: duration.Microseconds(),
	}

	var exhaustion *model.ExhaustionError
	if errors.As(err, &exhaustion) {
		result.Result = resultTypes[exhausted]
		result.Class, result.Day, result.Slot = exhaustion.Diagnostic.Class, exhaustion.Diagnostic.Day, exhaustion.Diagnostic.Slot
	} else if err != nil {
		log.Fatalf("an error occurred during the execution at test \"%v\" using seed %d: %v", test.Name, seed, err)
	} else if !timetabler.Verify(schedulingContext, timetable) {
		result.Result = resultTypes[unverified]
	} else {
		result.Result = resultTypes[solved]
	}

	return result
}

func summarize(results []*BenchmarkResult) []*Summary {
	grouped := lo.GroupBy(results, func(result *BenchmarkResult) string { return result.Test })
	tests := lo.Uniq(lo.Map(results, func(result *BenchmarkResult, _ int) string { return result.Test }))

	return lo.Map(tests, func(test string, _ int) *Summary {
		runs := grouped[test]
		solvedRuns := lo.Filter(runs, func(result *BenchmarkResult, _ int) bool { return result.Result == resultTypes[solved] })
		abortedRuns := lo.CountBy(runs, func(result *BenchmarkResult) bool { return result.Result == resultTypes[exhausted] })
		durationOf := func(result *BenchmarkResult, _ int) int64 { return result.Duration }

		summary := &Summary{
			Test:         test,
			Runs:         len(runs),
			Solved:       len(solvedRuns),
			Unverified:   lo.CountBy(runs, func(result *BenchmarkResult) bool { return result.Result == resultTypes[unverified] }),
			AbortRate:    float64(abortedRuns) / float64(len(runs)),
			MeanDuration: lo.Sum(lo.Map(runs, durationOf)) / int64(len(runs)),
		}
		if len(solvedRuns) > 0 {
			summary.MeanSolvedDur = lo.Sum(lo.Map(solvedRuns, durationOf)) / int64(len(solvedRuns))
			summary.FirstSolvedSeed = lo.MinBy(solvedRuns, func(a, b *BenchmarkResult) bool { return a.Seed < b.Seed }).Seed
		}
		return summary
	})
}

func toCsv[T any](path string, rows []*T) {
	file, err := os.Create(path)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		log.Panicf("cannot write CSV file: %v", err)
	}
}
