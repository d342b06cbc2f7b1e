package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path"
	"slices"
	"strings"

	"github.com/limaJavier/semester-planner/pkg/config"
	"github.com/limaJavier/semester-planner/pkg/model"
	"github.com/limaJavier/semester-planner/pkg/prompt"
	"github.com/samber/lo"
)

const (
	exitPlansFound         = 0
	exitVerificationFailed = 15
	exitNoPlans            = 20
)

var (
	validStrategies = []string{"sequential", "parallel"}
	validFormats    = []string{"text", "json"}
)

func main() {
	// Define arguments
	configPathPtr := flag.String("config", "", "Path to a JSON or YAML configuration file; if empty, config.json next to the executable is used when present")
	catalogPathPtr := flag.String("catalog", "", "Path to the course catalog (JSON, or YAML when the extension is .yaml or .yml)")
	completedPtr := flag.String("completed", "", "Comma-separated list of completed courses")
	termPtr := flag.String("term", "", "Only consider courses offered in this term (Fall, Spring, Summer or Winter); if empty, terms are ignored")
	countPtr := flag.Int("count", -1, "Amount of courses per plan; 0 considers every size within [min-size, max-size]. Defaults to the configured course count")
	minSizePtr := flag.Int("min-size", 1, "Minimum amount of courses per plan when count is 0")
	maxSizePtr := flag.Int("max-size", 0, "Maximum amount of courses per plan when count is 0; 0 stands for every eligible course")
	minUnitsPtr := flag.Float64("min-units", -1, "Minimum amount of units per plan. Defaults to the configured value (8)")
	maxUnitsPtr := flag.Float64("max-units", -1, "Maximum amount of units per plan. Defaults to the configured value (12)")
	topPtr := flag.Int("top", -1, "Amount of plans to output. Defaults to the configured value (5)")
	weightsPtr := flag.String("weights", "", "Weight profile to score plans with (e.g. \"standard\" or \"progress\"). Defaults to the configured profile")
	interactiveWeightsPtr := flag.Bool("interactive-weights", false, "Prompt for the weights of the selected profile instead of using the configured values")
	interestsPtr := flag.String("interests", "", "Path to a JSON or YAML mapping from topic to interest (between 0 and 1); if empty, interests are prompted for")
	strategyPtr := flag.String("strategy", "", `Strategy to search plans with. Allowed values are "sequential" and "parallel". Defaults to the configured strategy`)
	workersPtr := flag.Int("workers", -1, "Amount of workers used by the parallel strategy; 0 stands for the amount of CPUs")
	conflictsPtr := flag.Bool("conflicts", false, "Reject plans whose courses cannot be given distinct sections")
	formatPtr := flag.String("format", "text", `Output format. Allowed values are "text" and "json"`)
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	verbosePtr := flag.Bool("verbose", false, "Log planning diagnostics into the Standard Error")
	flag.Parse()

	//** Load configuration
	settings := loadConfig(*configPathPtr)
	if *strategyPtr != "" {
		settings.Strategy = strings.ToLower(*strategyPtr)
	}
	if *workersPtr >= 0 {
		settings.Workers = *workersPtr
	}
	if *weightsPtr != "" {
		settings.WeightProfile = *weightsPtr
	}
	settings.Strategy = strings.ToLower(settings.Strategy)
	format := strings.ToLower(*formatPtr)

	// Validate arguments
	if !slices.Contains(validStrategies, settings.Strategy) {
		log.Fatalf("%v is not a valid strategy", settings.Strategy)
	} else if !slices.Contains(validFormats, format) {
		log.Fatalf("%v is not a valid format", format)
	} else if *catalogPathPtr == "" {
		log.Fatal("a catalog file must be specified")
	}

	//** Extract input
	catalog, err := model.CatalogFromFile(*catalogPathPtr)
	if err != nil {
		log.Fatalf("cannot parse catalog file: %v", err)
	}

	request := settings.Request()
	request.Completed = model.NewCompletedSet(splitList(*completedPtr)...)
	request.CheckConflicts = *conflictsPtr
	if *termPtr != "" {
		term, err := model.ParseTerm(*termPtr)
		if err != nil {
			log.Fatal(err)
		}
		request.Term = &term
	}
	if *countPtr >= 0 {
		request.CourseCount = *countPtr
	}
	request.MinSize, request.MaxSize = *minSizePtr, *maxSizePtr
	if *minUnitsPtr >= 0 {
		request.MinUnits = *minUnitsPtr
	}
	if *maxUnitsPtr >= 0 {
		request.MaxUnits = *maxUnitsPtr
	}
	if *topPtr >= 0 {
		request.TopK = *topPtr
	}
	if *verbosePtr {
		request.Logger = log.New(os.Stderr, "planner: ", log.LstdFlags)
	}

	//** Collect subjective inputs
	weights, err := settings.Weights(settings.WeightProfile)
	if err != nil {
		log.Fatal(err)
	}
	var fileProfile model.InterestProfile
	if *interestsPtr != "" {
		if fileProfile, err = prompt.InterestsFromFile(*interestsPtr); err != nil {
			log.Fatalf("cannot read interests: %v", err)
		}
	}

	console := prompt.NewConsoleProvider(os.Stdin, os.Stdout)
	static := prompt.NewStaticProvider(fileProfile, weights)
	interestsProvider, weightsProvider := static, static
	if *interestsPtr == "" {
		interestsProvider = console
	}
	if *interactiveWeightsPtr {
		weightsProvider = console
	}

	if request.Interests, err = interestsProvider.InterestProfile(catalog.Topics()); err != nil {
		log.Fatalf("cannot read interests: %v", err)
	}

	keys := lo.Keys(settings.WeightProfiles[settings.WeightProfile])
	slices.Sort(keys)
	if request.Weights, err = weightsProvider.Weights(keys); err != nil {
		log.Fatalf("cannot read weights: %v", err)
	}

	//** Build plans
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	planner := settings.Planner()
	plans, err := planner.Plan(ctx, catalog, request)
	if err != nil {
		log.Fatalf("an error occurred during plan construction: %v", err)
	}

	// Verify plans correctness
	if !planner.Verify(plans, catalog, request) {
		stop()
		os.Exit(exitVerificationFailed)
	}

	//** Build output
	var output []byte
	if format == "json" {
		output, err = json.Marshal(plans)
		if err != nil {
			log.Fatalf("an error occurred while building output json: %v", err)
		}
	} else {
		output = []byte(render(plans))
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if *outFilePathPtr == "" {
		fmt.Println(string(output))
	} else if err := os.WriteFile(*outFilePathPtr, output, 0666); err != nil {
		log.Fatalf("an error occurred while writing to the output file: %v", err)
	}

	stop()
	if len(plans) == 0 {
		os.Exit(exitNoPlans)
	}
	os.Exit(exitPlansFound)
}

func loadConfig(configPath string) config.Config {
	if configPath != "" {
		settings, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("cannot load config: %v", err)
		}
		return settings
	}

	// Look for the config file next to the executable
	execPath, err := os.Executable()
	if err != nil {
		log.Fatalf("cannot determine executable path: %v", err)
	}
	settings, err := config.LoadOrDefault(path.Join(path.Dir(execPath), config.ConfigPath))
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	return settings
}

func splitList(list string) []string {
	return lo.Filter(
		lo.Map(strings.Split(list, ","), func(item string, _ int) string { return strings.TrimSpace(item) }),
		func(item string, _ int) bool { return item != "" },
	)
}

func render(plans []model.PlanResult) string {
	var builder strings.Builder
	if len(plans) == 0 {
		builder.WriteString("No plan satisfies the constraints")
	}
	for i, plan := range plans {
		writePlan(&builder, i+1, plan)
	}
	return strings.TrimRight(builder.String(), "\n")
}

func writePlan(writer io.Writer, position int, plan model.PlanResult) {
	fmt.Fprintf(writer, "\nPlan %d | Score: %.3f\n", position, plan.Score)
	for _, course := range plan.Schedule {
		fmt.Fprintf(writer, "  - %v\n", course)
	}
}
