package tutor

import (
	"fmt"
	"sort"
	"strings"

	"tutor-bot/api/internal/constants"
)

const subjectPrompt = `
Analyze this query and determine if it's primarily about mathematics or physics:
%s

Respond with exactly one of these options:
- 'mathematics'
- 'physics'
- 'other'
`

const generalPrompt = `
Provide a brief, clear answer to this question in 2-3 sentences:
%s
`

const mathCategoryPrompt = `
Analyze this mathematical query and determine its type:
%s

Respond with exactly one of these options:
- 'equation' if it's an equation to solve (contains =)
- 'calculation' if it's a simple calculation
- 'formula' if it's a formula application (like area, volume, etc.)
- 'conceptual' if it's a conceptual question
`

const mathConceptualPrompt = `
Provide a brief, clear explanation for this mathematical concept in 2-3 sentences:
%s
`

const mathEquationPrompt = `
Solve this equation and provide the solution in a clear, concise way:
%s

Format your response as:
1. The solution (x = value)
2. A brief explanation of the steps (1-2 sentences)
`

const mathFormulaPrompt = `
For this geometric calculation: %s

1. Identify the shape and required formula
2. Extract the given measurements
3. Calculate the result
4. Provide a brief, clear response in this format:
   "The [shape] has an area of [result] square [units]."

Keep the response concise and include the calculation steps in 1-2 sentences.
`

const mathCalculationPrompt = `
Solve this calculation: %s

Provide a clear, concise response in this format:
1. The result of the calculation
2. A brief explanation of the steps (1-2 sentences)

Example format:
"The result is [answer].
[Brief explanation of how you got the answer]"
`

const physicsAnalysisPrompt = `
Analyze this physics query and determine if it requires physical constants:
%s

If it requires constants, list the constants needed as a comma separated list (e.g., 'speed_of_light, gravitational_constant').
Known constants: %s.
If it's a conceptual question, respond with 'conceptual'.
`

const physicsConceptualPrompt = `
Provide a brief, clear explanation for this physics concept in 2-3 sentences:
%s
`

const physicsConstantsPrompt = `
Using these physical constants:
%s
Provide a brief, clear explanation for this physics question in 2-3 sentences:
%s
`

// formatConstants renders resolved constants one per line, sorted by token.
func formatConstants(used map[string]constants.Entry) string {
	keys := make([]string, 0, len(used))
	for k := range used {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		e := used[k]
		fmt.Fprintf(&b, "- %s: %s %s (%s)\n", k, e.Value, e.Unit, e.Description)
	}
	return b.String()
}
