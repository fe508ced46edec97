package diag

// Code is the stable machine-readable identifier of a diagnostic.
type Code string

const (
	UnknownCode Code = ""

	ParseError Code = "parse_error"

	AlmostSwapped                  Code = "almost_swapped"
	CompareNan                     Code = "compare_nan"
	DivideByZero                   Code = "divide_by_zero"
	EmptyIf                        Code = "empty_if"
	GlobalUsage                    Code = "global_usage"
	LimitFunctionComplexity        Code = "limit_function_complexity"
	StandardLibraryTypes           Code = "standard_library_types"
	MultipleStatements             Code = "multiple_statements"
	ParentheseConditions           Code = "parenthese_conditions"
	RobloxIncorrectColor3NewBounds Code = "roblox_incorrect_color3_new_bounds"
	RobloxSuspiciousUDim2New       Code = "roblox_suspicious_udim2_new"
	Shadowing                      Code = "shadowing"
	SuspiciousReverseLoop          Code = "suspicious_reverse_loop"
	TypeCheckInsideCall            Code = "type_check_inside_call"
	UnbalancedAssignments          Code = "unbalanced_assignments"
	UndefinedVariable              Code = "undefined_variable"
	UnscopedVariables              Code = "unscoped_variables"
	UnusedVariable                 Code = "unused_variable"
)

var codeDescription = map[Code]string{
	UnknownCode:                    "Unknown diagnostic",
	ParseError:                     "Source could not be parsed",
	AlmostSwapped:                  "Assignments that look like a failed swap",
	CompareNan:                     "Direct comparison against nan",
	DivideByZero:                   "Division by a literal zero",
	EmptyIf:                        "If or else branch with an empty body",
	GlobalUsage:                    "Use of the _G table",
	LimitFunctionComplexity:        "Function with high cyclomatic complexity",
	StandardLibraryTypes:           "Incorrect call of a standard library function",
	MultipleStatements:             "More than one statement on a line",
	ParentheseConditions:           "Parentheses around a condition",
	RobloxIncorrectColor3NewBounds: "Color3.new called with values outside 0..1",
	RobloxSuspiciousUDim2New:       "UDim2.new called with too few arguments",
	Shadowing:                      "Local variable shadowing another local",
	SuspiciousReverseLoop:          "Numeric for loop counting down without a step",
	TypeCheckInsideCall:            "Comparison inside a type() call",
	UnbalancedAssignments:          "Assignment with mismatched value count",
	UndefinedVariable:              "Read of a variable that is never defined",
	UnscopedVariables:              "Implicit global variable",
	UnusedVariable:                 "Local variable that is never read",
}

// ID returns the code as written in configuration and output.
func (c Code) ID() string {
	return string(c)
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return string(c)
}
