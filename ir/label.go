package ir

import "strings"

// StartLabel is the label of the program start routine.
const StartLabel = "_start"

// AutoLabelPrefix begins every automatic label of the data section.
const AutoLabelPrefix = "auto_str_"

// labelReplacer maps the operator characters allowed in names to text the
// assembler accepts in labels.
var labelReplacer = strings.NewReplacer(
	"+", "add",
	"-", "sub",
	"*", "mul",
	"/", "div",
	"|", "pipe",
	"%", "cent",
	"^", "caret",
	"&", "amp",
)

// SanitizeLabel converts a routine name into the label it is emitted under.
// Distinct names may share a label: `+` and `add` both become `add`.
func SanitizeLabel(name string) string {
	return labelReplacer.Replace(name)
}
