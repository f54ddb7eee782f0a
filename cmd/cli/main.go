package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gzk6332987/CourseSchedule/internal/config"
	"github.com/gzk6332987/CourseSchedule/internal/logger"
	"github.com/gzk6332987/CourseSchedule/pkg/allocation"
	"github.com/gzk6332987/CourseSchedule/pkg/export"
	"github.com/gzk6332987/CourseSchedule/pkg/model"
	"go.uber.org/zap"
)

const (
	exitExhausted    = 20
	exitUnverifiable = 15
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the settings file (YAML, or JSON when the extension is \".json\")")
	outFilePathPtr := flag.String("out", "", "Path to the file where the JSON output will be written; if empty, it'll be written into the Standard Output")
	csvFilePathPtr := flag.String("csv", "", "Path to the file where a CSV rendering of the timetable will be written")
	pdfFilePathPtr := flag.String("pdf", "", "Path to the file where a PDF rendering of the timetable will be written")
	seedPtr := flag.Uint64("seed", cfg.Scheduler.Seed, "Seed of the random source; 0 picks a time-based seed")
	decayPtr := flag.Float64("decay", cfg.Scheduler.DecayFactor, "Decay factor (between 0 and 1) applied to the weights after every placement")
	electiveSuppressionPtr := flag.Bool("elective-suppression", cfg.Scheduler.ElectiveSuppression, "Exclude a whole day for an elective hour once its daily maximum rejects a time of that day")
	enforceProhibitPtr := flag.Bool("enforce-prohibit", cfg.Scheduler.EnforceProhibit, "Reject courses at their prohibited slot-positions")
	printPtr := flag.Bool("print", false, "Print every class' timetable as a table instead of JSON")
	flag.Parse()
	filePath := *filePathPtr
	seed := *seedPtr

	// Validate arguments
	if filePath == "" {
		log.Fatal("an input file must be specified")
	} else if *decayPtr <= 0 || *decayPtr > 1 {
		log.Fatalf("decay factor must be greater than 0 and smaller than or equal to 1: %v", *decayPtr)
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer zapLogger.Sync()

	// Extract input
	schedulingContext, err := model.InputFromFile(filePath)
	if err != nil {
		zapLogger.Fatal("cannot parse settings file", zap.String("file", filePath), zap.Error(err))
	}

	// Initialize engine
	timetabler := allocation.NewGreedyTimetabler(seed, allocation.Options{
		DecayFactor:         *decayPtr,
		MaxDrawAttempts:     cfg.Scheduler.MaxDrawAttempts,
		MaxElectiveAttempts: cfg.Scheduler.MaxElectiveAttempts,
		ElectiveSuppression: *electiveSuppressionPtr,
		EnforceProhibit:     *enforceProhibitPtr,
	}, zapLogger)

	// Build timetable
	timetable, err := timetabler.Build(schedulingContext)
	var exhaustion *model.ExhaustionError
	if errors.As(err, &exhaustion) {
		fmt.Fprintf(os.Stderr, "Seed: %v\nDiagnostic: %v\n", seed, exhaustion.Diagnostic)
		zapLogger.Sync()
		os.Exit(exitExhausted)
	} else if err != nil {
		zapLogger.Fatal("an error occurred during timetable construction", zap.Error(err))
	}

	// Verify timetable correctness
	if !timetabler.Verify(schedulingContext, timetable) {
		fmt.Fprintf(os.Stderr, "Seed: %v\n", seed)
		zapLogger.Sync()
		os.Exit(exitUnverifiable)
	}

	if *csvFilePathPtr != "" {
		if err := export.WriteCSV(timetable, *csvFilePathPtr); err != nil {
			zapLogger.Fatal("an error occurred while writing the csv file", zap.Error(err))
		}
	}
	if *pdfFilePathPtr != "" {
		pdf, err := export.PDF(timetable)
		if err != nil {
			zapLogger.Fatal("an error occurred while rendering the pdf", zap.Error(err))
		}
		if err := os.WriteFile(*pdfFilePathPtr, pdf, 0666); err != nil {
			zapLogger.Fatal("an error occurred while writing the pdf file", zap.Error(err))
		}
	}

	if *printPtr {
		if err := export.Print(os.Stdout, timetable); err != nil {
			zapLogger.Fatal("an error occurred while printing the timetable", zap.Error(err))
		}
		return
	}

	timetableJson, err := export.JSON(timetable)
	if err != nil {
		zapLogger.Fatal("an error occurred while building output json", zap.Error(err))
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if *outFilePathPtr == "" {
		fmt.Println(string(timetableJson))
	} else if err := os.WriteFile(*outFilePathPtr, timetableJson, 0666); err != nil {
		zapLogger.Fatal("an error occurred while writing to the output file", zap.Error(err))
	}
}
