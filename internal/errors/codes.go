package errors

// Error codes for the Bessambly toolchain
// These codes are used in diagnostics and documentation
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0001-E0099: Semantic analysis errors
// E0100-E0199: Parser errors
// W0001-W0099: Warning codes

const (
	// Semantic analysis errors

	// E0001: Label declared more than once
	ErrorDuplicateLabel = "E0001"

	// E0002: Jump to a label that is never declared
	ErrorUndefinedLabel = "E0002"

	// E0003: Wrong number of operands for the opcode
	ErrorOperandCount = "E0003"

	// E0004: Operand of the wrong kind for its position
	ErrorOperandKind = "E0004"

	// E0005: Register index outside R0-R15
	ErrorRegisterRange = "E0005"

	// Parser errors

	// E0100: Character the scanner does not recognize, or a literal out of range
	ErrorLexical = "E0100"

	// E0101: Token that cannot appear here
	ErrorUnexpectedToken = "E0101"

	// E0102: Operand expected but not found
	ErrorMalformedOperand = "E0102"

	// E0103: More operands than any instruction accepts
	ErrorTooManyOperands = "E0103"

	// E0104: Statement that starts with neither a label nor an opcode
	ErrorInvalidStatement = "E0104"

	// Warning codes

	// W0001: Label declared but never referenced
	WarningUnusedLabel = "W0001"
)

// UnknownCodeDescription is what GetErrorDescription returns for a code it
// does not know.
const UnknownCodeDescription = "Unknown error code"

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorDuplicateLabel:
		return "Label is declared more than once"
	case ErrorUndefinedLabel:
		return "Jump refers to a label that is not declared"
	case ErrorOperandCount:
		return "Instruction has the wrong number of operands"
	case ErrorOperandKind:
		return "Operand kind is not allowed in this position"
	case ErrorRegisterRange:
		return "Register index is outside R0-R15"
	case ErrorLexical:
		return "Unrecognized character or out-of-range literal"
	case ErrorUnexpectedToken:
		return "Unexpected token"
	case ErrorMalformedOperand:
		return "Operand expected"
	case ErrorTooManyOperands:
		return "Instruction has more than three operands"
	case ErrorInvalidStatement:
		return "Statement must start with a label or an opcode"
	case WarningUnusedLabel:
		return "Label is declared but never referenced"
	default:
		return UnknownCodeDescription
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code != "" && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Semantic Analysis"
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case IsWarning(code):
		return "Warning"
	default:
		return "Unknown"
	}
}
