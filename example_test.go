package omr_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/tsawler/omr"
	"github.com/tsawler/omr/logging"
	"github.com/tsawler/omr/scoring"
)

// These examples show the README code samples. They are not run as tests
// since they need scanned sheets on disk.

func Example_scanSheet() {
	result := omr.Open("sheet.jpg").Questions(30).Scan()
	if !result.Success {
		log.Fatal(result.Diagnostic)
	}

	for _, q := range result.Questions() {
		answer, _ := result.Answer(q)
		fmt.Printf("%d: %s\n", q, answer)
	}

	for _, note := range result.Notes {
		fmt.Println("Note:", note)
	}
}

func Example_identifier() {
	result := omr.Open("sheet.png").Scan()

	if ref := result.Identifier; ref != nil && ref.HasSubject() {
		fmt.Printf("assessment %d, %s %d\n", ref.AssessmentID, ref.SubjectKind, ref.SubjectID)
	}
}

func Example_configuredScanner() {
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Output: os.Stderr})
	if err != nil {
		log.Fatal(err)
	}

	avail := omr.Probe("")
	if !avail.Ready() {
		log.Fatal(avail.Reason())
	}

	scanner := omr.New(avail,
		omr.WithLogger(logger),
		omr.WithPolicy(scoring.DefaultNearTie()),
	)

	result := scanner.ScanFile("sheet.jpg", omr.Request{Questions: 40, Options: 4})

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
}

func Example_batch() {
	scanner := omr.New(omr.Probe(""))

	jobs := []omr.Job{
		{ID: "first", Path: "scans/001.jpg", Request: omr.Request{Questions: 30}},
		{ID: "second", Path: "scans/002.jpg", Request: omr.Request{Questions: 30}},
	}

	results, err := omr.ScanBatch(context.Background(), scanner, jobs, 4)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range results {
		fmt.Println(r.Job.ID, r.Result)
	}
}
