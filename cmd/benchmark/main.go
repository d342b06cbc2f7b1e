package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/limaJavier/semester-planner/pkg/model"

	"github.com/samber/lo"
)

var topics = []string{"algorithms", "biology", "chemistry", "genomics", "machine learning", "math", "physics", "statistics", "systems", "writing"}

type StrategyType int

const (
	sequential StrategyType = iota
	parallel
)

type ResultType int

const (
	solved ResultType = iota
	empty
	failed
)

var (
	strategyTypes = map[StrategyType]string{
		sequential: "sequential",
		parallel:   "parallel",
	}
	resultTypes = map[ResultType]string{
		solved: "solved",
		empty:  "empty",
		failed: "failed",
	}
)

type TestMetadata struct {
	Name        string
	Courses     int
	CourseCount int
	Seed        uint64
}

type BenchmarkResult struct {
	Strategy   StrategyType
	Test       TestMetadata
	Eligible   int
	Candidates uint64
	Duration   time.Duration
	Result     ResultType
}

func main() {
	outFilePathPtr := flag.String("out", "", "Path to the CSV file where the results will be written; if empty, they'll be written into the Standard Output")
	seedPtr := flag.Uint64("seed", 1, "Seed used to generate the synthetic catalogs")
	workersPtr := flag.Int("workers", 0, "Amount of workers used by the parallel strategy; 0 stands for the amount of CPUs")
	flag.Parse()

	tests := getTests(*seedPtr)
	planners := map[StrategyType]model.Planner{
		sequential: model.NewSequentialPlanner(),
		parallel:   model.NewParallelPlanner(*workersPtr),
	}
	results := make([]BenchmarkResult, 0, len(tests)*len(planners))

	for _, test := range tests {
		catalog := syntheticCatalog(test.Courses, test.Seed)
		for _, strategy := range []StrategyType{sequential, parallel} {
			log.Printf("Benchmarking test \"%v\" with strategy \"%v\"", test.Name, strategyTypes[strategy])
			results = append(results, measure(planners[strategy], strategy, catalog, test))
		}
	}

	var out io.Writer = os.Stdout
	if *outFilePathPtr != "" {
		file, err := os.Create(*outFilePathPtr)
		if err != nil {
			log.Fatalf("cannot create CSV file: %v", err)
		}
		defer file.Close()
		out = file
	}
	if err := toCsv(out, results); err != nil {
		log.Fatalf("cannot write CSV: %v", err)
	}
}

func getTests(seed uint64) []TestMetadata {
	tests := make([]TestMetadata, 0)
	for _, tuple := range lo.Zip2([]int{10, 20, 30, 40}, []int{2, 3, 3, 4}) {
		courses, courseCount := tuple.A, tuple.B
		tests = append(tests, TestMetadata{
			Name:        fmt.Sprintf("synthetic-%d-choose-%d", courses, courseCount),
			Courses:     courses,
			CourseCount: courseCount,
			Seed:        seed,
		})
	}
	return tests
}

// Builds a deterministic catalog of the given size. Courses only require courses with a smaller index, so the prerequisite graph is acyclic
func syntheticCatalog(size int, seed uint64) model.Catalog {
	random := rand.New(rand.NewPCG(seed, uint64(size)))
	courses := make([]model.Course, 0, size)

	for i := range size {
		courseTopics := make(map[string]float64)
		for range 1 + random.IntN(3) {
			courseTopics[topics[random.IntN(len(topics))]] = float64(1+random.IntN(4)) / 4
		}

		var prerequisites model.Requirement = model.None()
		if i > 0 && random.Float64() < 0.3 {
			prerequisites = model.Or(model.Leaf(courseId(random.IntN(i))), model.Leaf(courseId(random.IntN(i))))
		}

		courses = append(courses, model.Course{
			Id:              courseId(i),
			Units:           float64(2 + random.IntN(3)),
			Topics:          courseTopics,
			Difficulty:      random.Float64(),
			ProfessorRating: 1 + 4*random.Float64(),
			Terms:           []model.Term{model.Fall, model.Spring},
			Prerequisites:   prerequisites,
			Major:           random.Float64() < 0.5,
			Workload:        random.Float64() * 10,
		})
	}

	catalog, err := model.NewCatalog(courses...)
	if err != nil {
		log.Panicf("cannot build synthetic catalog: %v", err)
	}
	return catalog
}

func courseId(index int) string {
	return fmt.Sprintf("COURSE %03d", index)
}

func measure(planner model.Planner, strategy StrategyType, catalog model.Catalog, test TestMetadata) BenchmarkResult {
	request := model.DefaultRequest()
	request.CourseCount = test.CourseCount
	request.MaxCandidates = 0
	request.Interests = lo.SliceToMap(topics, func(topic string) (string, float64) { return topic, 0.5 })
	request.Weights = model.Weights{Interest: 1, Difficulty: 0.5, Professor: 0.2}

	eligible, err := model.Eligible(catalog, request.Completed, request.Term)
	if err != nil {
		log.Fatalf("cannot compute eligible courses at test \"%v\": %v", test.Name, err)
	}

	start := time.Now()
	plans, err := planner.Plan(context.Background(), catalog, request)
	duration := time.Since(start)

	result := solved
	if err != nil {
		log.Printf("an error occurred at test \"%v\" using strategy \"%v\": %v", test.Name, strategyTypes[strategy], err)
		result = failed
	} else if len(plans) == 0 {
		result = empty
	}

	return BenchmarkResult{
		Strategy:   strategy,
		Test:       test,
		Eligible:   len(eligible),
		Candidates: model.CountCombinations(len(eligible), test.CourseCount, test.CourseCount),
		Duration:   duration,
		Result:     result,
	}
}

func toCsv(out io.Writer, results []BenchmarkResult) error {
	writer := csv.NewWriter(out)

	header := []string{"Strategy", "Test", "Courses", "Eligible", "CourseCount", "Candidates", "Duration(ms)", "Result"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			strategyTypes[result.Strategy],
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Courses),
			fmt.Sprintf("%d", result.Eligible),
			fmt.Sprintf("%d", result.Test.CourseCount),
			fmt.Sprintf("%d", result.Candidates),
			formatMilliseconds(result.Duration),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMilliseconds(duration time.Duration) string {
	return fmt.Sprintf("%.3f", float64(duration.Microseconds())/1000)
}
