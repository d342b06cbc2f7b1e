package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type Term uint8

const (
	Fall Term = iota
	Spring
	Summer
	Winter
)

var Terms = map[Term]string{
	Fall:   "Fall",
	Spring: "Spring",
	Summer: "Summer",
	Winter: "Winter",
}

func (term Term) String() string {
	if name, ok := Terms[term]; ok {
		return name
	}
	return fmt.Sprintf("Term(%d)", uint8(term))
}

func ParseTerm(name string) (Term, error) {
	for term, termName := range Terms {
		if strings.EqualFold(termName, strings.TrimSpace(name)) {
			return term, nil
		}
	}
	return 0, fmt.Errorf("unknown term \"%v\"", name)
}

// RawCourse mirrors a catalog entry as it is found in the catalog document
type RawCourse struct {
	Units           float64
	Topics          any // Either a list of topic names (weight 1 each) or a mapping from topic name to weight
	Difficulty      float64
	ProfessorRating float64  `mapstructure:"professor_rating"`
	TermsOffered    []string `mapstructure:"terms_offered"`
	Prerequisites   any
	Major           bool
	Workload        float64
	Sections        []string
}

type RawCatalog map[string]RawCourse

type Course struct {
	Id              string
	Units           float64
	Topics          map[string]float64
	Difficulty      float64
	ProfessorRating float64
	Terms           []Term
	Prerequisites   Requirement
	Major           bool
	Workload        float64
	Sections        []string // Alternative meeting slots, a course takes exactly one of them
}

func (course Course) OfferedIn(term Term) bool {
	return slices.Contains(course.Terms, term)
}

// Catalog is an immutable handle over all the courses. It's passed explicitly to every component
type Catalog struct {
	courses map[string]Course
	ids     []string // Sorted course identifiers
}

func (catalog Catalog) Course(id string) (Course, bool) {
	course, ok := catalog.courses[id]
	return course, ok
}

// Lookup returns the course or an UnknownCourseError
func (catalog Catalog) Lookup(id string) (Course, error) {
	course, ok := catalog.courses[id]
	if !ok {
		return Course{}, UnknownCourseError{Course: id}
	}
	return course, nil
}

func (catalog Catalog) Contains(id string) bool {
	_, ok := catalog.courses[id]
	return ok
}

// Ids returns the sorted identifiers of every course in the catalog
func (catalog Catalog) Ids() []string {
	return slices.Clone(catalog.ids)
}

func (catalog Catalog) Len() int {
	return len(catalog.ids)
}

// Topics returns the sorted set of topics found across the catalog
func (catalog Catalog) Topics() []string {
	topics := lo.Uniq(lo.FlatMap(catalog.ids, func(id string, _ int) []string {
		return lo.Keys(catalog.courses[id].Topics)
	}))
	slices.Sort(topics)
	return topics
}

// NewCatalog builds a catalog from already decoded courses. A nil prerequisite is taken as NoRequirement
func NewCatalog(courses ...Course) (Catalog, error) {
	catalog := Catalog{
		courses: make(map[string]Course, len(courses)),
		ids:     make([]string, 0, len(courses)),
	}

	for _, course := range courses {
		if _, ok := catalog.courses[course.Id]; ok {
			return Catalog{}, fmt.Errorf("duplicate course \"%v\"", course.Id)
		}
		if course.Prerequisites == nil {
			course.Prerequisites = None()
		}
		if course.Topics == nil {
			course.Topics = make(map[string]float64)
		}
		if err := validateCourse(course); err != nil {
			return Catalog{}, err
		}
		catalog.courses[course.Id] = course
		catalog.ids = append(catalog.ids, course.Id)
	}
	slices.Sort(catalog.ids)

	// Make sure every course referenced by a prerequisite exists
	for _, id := range catalog.ids {
		for _, referenced := range requirementCourses(catalog.courses[id].Prerequisites) {
			if !catalog.Contains(referenced) {
				return Catalog{}, UnknownCourseError{Course: referenced, Context: fmt.Sprintf("prerequisite of %v", id)}
			}
		}
	}

	return catalog, nil
}

func validateCourse(course Course) error {
	if strings.TrimSpace(course.Id) == "" {
		return fmt.Errorf("course identifier must not be empty")
	} else if course.Units <= 0 || math.IsNaN(course.Units) || math.IsInf(course.Units, 0) {
		return fmt.Errorf("course \"%v\" must have a positive amount of units: %v", course.Id, course.Units)
	}

	for topic, weight := range course.Topics {
		if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
			return fmt.Errorf("topic \"%v\" of course \"%v\" must have a finite non-negative weight: %v", topic, course.Id, weight)
		}
	}

	for _, value := range []float64{course.Difficulty, course.ProfessorRating, course.Workload} {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("course \"%v\" has a non-finite attribute", course.Id)
		}
	}
	return nil
}

// CatalogFromFile loads a catalog choosing the decoder by the file extension (.yaml and .yml are YAML, anything else JSON)
func CatalogFromFile(file string) (Catalog, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return CatalogFromYaml(file)
	}
	return CatalogFromJson(file)
}

func CatalogFromJson(file string) (Catalog, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Catalog{}, err
	}
	var catalogJson map[string]any
	if err := json.Unmarshal(bytes, &catalogJson); err != nil {
		return Catalog{}, err
	}
	return decodeCatalog(catalogJson)
}

func CatalogFromYaml(file string) (Catalog, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Catalog{}, err
	}
	var catalogYaml map[string]any
	if err := yaml.Unmarshal(bytes, &catalogYaml); err != nil {
		return Catalog{}, err
	}
	return decodeCatalog(catalogYaml)
}

func decodeCatalog(document map[string]any) (Catalog, error) {
	rawCatalog := make(RawCatalog, len(document))
	for id, entry := range document {
		var rawCourse RawCourse
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &rawCourse,
			ErrorUnused: true,
		})
		if err != nil {
			return Catalog{}, err
		}
		if err := decoder.Decode(entry); err != nil {
			return Catalog{}, fmt.Errorf("cannot decode course \"%v\": %w", id, err)
		}
		rawCatalog[id] = rawCourse
	}
	return ProcessRawCatalog(rawCatalog)
}

func ProcessRawCatalog(rawCatalog RawCatalog) (Catalog, error) {
	ids := lo.Keys(rawCatalog)
	slices.Sort(ids) // Sort identifiers so that the first reported error is deterministic

	courses := make([]Course, 0, len(rawCatalog))
	for _, id := range ids {
		rawCourse := rawCatalog[id]

		topics, err := decodeTopics(rawCourse.Topics)
		if err != nil {
			return Catalog{}, fmt.Errorf("course \"%v\": %w", id, err)
		}

		terms := make([]Term, 0, len(rawCourse.TermsOffered))
		for _, termName := range rawCourse.TermsOffered {
			term, err := ParseTerm(termName)
			if err != nil {
				return Catalog{}, fmt.Errorf("course \"%v\": %w", id, err)
			}
			if !slices.Contains(terms, term) {
				terms = append(terms, term)
			}
		}

		prerequisites, err := DecodeRequirement(rawCourse.Prerequisites)
		if err != nil {
			if malformed, ok := err.(MalformedRequirementError); ok {
				malformed.Course = id
				return Catalog{}, malformed
			}
			return Catalog{}, err
		}

		courses = append(courses, Course{
			Id:              id,
			Units:           rawCourse.Units,
			Topics:          topics,
			Difficulty:      rawCourse.Difficulty,
			ProfessorRating: rawCourse.ProfessorRating,
			Terms:           terms,
			Prerequisites:   prerequisites,
			Major:           rawCourse.Major,
			Workload:        rawCourse.Workload,
			Sections:        lo.Uniq(rawCourse.Sections),
		})
	}

	return NewCatalog(courses...)
}

func decodeTopics(raw any) (map[string]float64, error) {
	topics := make(map[string]float64)
	switch value := raw.(type) {
	case nil:
	case []any:
		for _, topic := range value {
			name, ok := topic.(string)
			if !ok {
				return nil, fmt.Errorf("topic must be a string: %v", topic)
			}
			topics[name] = 1
		}
	case map[string]any:
		if err := mapstructure.Decode(value, &topics); err != nil {
			return nil, fmt.Errorf("cannot decode topics: %w", err)
		}
	default:
		return nil, fmt.Errorf("topics must be a list or a mapping: %v", raw)
	}
	return topics, nil
}
