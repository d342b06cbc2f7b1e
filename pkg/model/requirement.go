package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Requirement is a prerequisite expression. It is a closed set of variants: LeafRequirement, AndRequirement, OrRequirement and NoRequirement
type Requirement interface {
	fmt.Stringer
	requirement()
}

// LeafRequirement holds iff the course has been completed
type LeafRequirement struct {
	Course string
}

// AndRequirement holds iff every operand holds. An empty AndRequirement always holds
type AndRequirement struct {
	Operands []Requirement
}

// OrRequirement holds iff at least one operand holds. An empty OrRequirement never holds
type OrRequirement struct {
	Operands []Requirement
}

// NoRequirement always holds
type NoRequirement struct{}

func (LeafRequirement) requirement() {}
func (AndRequirement) requirement()  {}
func (OrRequirement) requirement()   {}
func (NoRequirement) requirement()   {}

func (requirement LeafRequirement) String() string { return requirement.Course }
func (requirement AndRequirement) String() string  { return joinOperands(requirement.Operands, " AND ") }
func (requirement OrRequirement) String() string   { return joinOperands(requirement.Operands, " OR ") }
func (NoRequirement) String() string               { return "none" }

func joinOperands(operands []Requirement, separator string) string {
	return "(" + strings.Join(lo.Map(operands, func(operand Requirement, _ int) string {
		if operand == nil {
			return "<nil>"
		}
		return operand.String()
	}), separator) + ")"
}

func Leaf(course string) Requirement { return LeafRequirement{Course: course} }

func And(operands ...Requirement) Requirement { return AndRequirement{Operands: operands} }

func Or(operands ...Requirement) Requirement { return OrRequirement{Operands: operands} }

func None() Requirement { return NoRequirement{} }

// DecodeRequirement turns an untyped prerequisite expression (as produced by encoding/json or yaml.v3) into a Requirement.
//
// Accepted shapes:
//
//	nil, "none"               -> NoRequirement
//	"MATH 51"                 -> LeafRequirement
//	{"and": [...]}            -> AndRequirement
//	{"or": [...]}             -> OrRequirement
//	["MATH 51", "PHYSICS 7A"] -> AndRequirement (flat list)
func DecodeRequirement(raw any) (Requirement, error) {
	switch value := raw.(type) {
	case nil:
		return None(), nil
	case Requirement:
		return value, nil
	case string:
		course := strings.TrimSpace(value)
		if course == "" {
			return nil, MalformedRequirementError{Expression: raw, Reason: "empty course identifier"}
		} else if strings.EqualFold(course, "none") {
			return None(), nil
		}
		return Leaf(course), nil
	case []any:
		operands, err := decodeOperands(value)
		if err != nil {
			return nil, err
		}
		return And(operands...), nil
	case map[string]any:
		if len(value) != 1 {
			return nil, MalformedRequirementError{Expression: raw, Reason: "a node must hold exactly one of \"and\" or \"or\""}
		}
		for key, operandsRaw := range value {
			operandsList, ok := operandsRaw.([]any)
			if !ok {
				return nil, MalformedRequirementError{Expression: raw, Reason: fmt.Sprintf("operands of \"%v\" must be a list", key)}
			}
			operands, err := decodeOperands(operandsList)
			if err != nil {
				return nil, err
			}

			switch strings.ToLower(key) {
			case "and":
				return And(operands...), nil
			case "or":
				return Or(operands...), nil
			}
			return nil, MalformedRequirementError{Expression: raw, Reason: fmt.Sprintf("unknown operator \"%v\"", key)}
		}
	}
	return nil, MalformedRequirementError{Expression: raw}
}

func decodeOperands(raw []any) ([]Requirement, error) {
	operands := make([]Requirement, 0, len(raw))
	for _, operandRaw := range raw {
		// A nested nil is not a none-marker, only a missing top-level prerequisite is
		if operandRaw == nil {
			return nil, MalformedRequirementError{Expression: raw, Reason: "null operand"}
		}
		operand, err := DecodeRequirement(operandRaw)
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}
	return operands, nil
}

// Returns every course identifier referenced by the requirement
func requirementCourses(requirement Requirement) []string {
	switch node := requirement.(type) {
	case LeafRequirement:
		return []string{node.Course}
	case AndRequirement:
		return lo.FlatMap(node.Operands, func(operand Requirement, _ int) []string { return requirementCourses(operand) })
	case OrRequirement:
		return lo.FlatMap(node.Operands, func(operand Requirement, _ int) []string { return requirementCourses(operand) })
	}
	return nil
}
