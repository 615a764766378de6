package generator

import (
	"strings"

	"github.com/tlipoca9/guardgen/genkit"
)

// ErrorCode is the closed set of codes generated validators report.
type ErrorCode string

const (
	CodeRequired         ErrorCode = "REQUIRED"
	CodeType             ErrorCode = "TYPE"
	CodeStringEnum       ErrorCode = "STRING_ENUM"
	CodeStringMaxLength  ErrorCode = "STRING_MAX_LENGTH"
	CodeStringMinLength  ErrorCode = "STRING_MIN_LENGTH"
	CodeStringPattern    ErrorCode = "STRING_PATTERN"
	CodeNumberMultipleOf ErrorCode = "NUMBER_MULTIPLE_OF"
	CodeNumberGT         ErrorCode = "NUMBER_GT"
	CodeNumberGTE        ErrorCode = "NUMBER_GTE"
	CodeNumberLT         ErrorCode = "NUMBER_LT"
	CodeNumberLTE        ErrorCode = "NUMBER_LTE"
	CodeArrayMaxItems    ErrorCode = "ARRAY_MAX_ITEMS"
	CodeArrayMinItems    ErrorCode = "ARRAY_MIN_ITEMS"
	CodeArrayUniqueItems ErrorCode = "ARRAY_UNIQUE_ITEMS"
)

// pathPlaceholder marks where an error title mentions the failing path.
const pathPlaceholder = "{path}"

// writeErrorTypes prints the error code union and the error record.
// Only the codes in use appear, sorted.
func writeErrorTypes(g genkit.Printer, codes []ErrorCode) {
	union := "never"
	if len(codes) > 0 {
		quoted := make([]string, len(codes))
		for i, c := range codes {
			quoted[i] = genkit.Quote(string(c))
		}
		union = strings.Join(quoted, " | ")
	}
	g.P("export type ValidationErrorCode = ", union, ";")
	g.P()
	g.P("export interface ValidationError {")
	g.P("code: ValidationErrorCode;")
	g.P("title: string;")
	g.P("path: string;")
	g.P("}")
}

// templateLiteral renders title as a template literal, substituting the
// path placeholder with pathExpr.
func templateLiteral(title, pathExpr string) string {
	return "`" + strings.ReplaceAll(templateText(title), pathPlaceholder, "${"+pathExpr+"}") + "`"
}

// pushError prints the statement recording one error.
func pushError(g genkit.Printer, code ErrorCode, title, pathExpr string) {
	g.P("errors.push({ code: ", genkit.Quote(string(code)), ", title: ", templateLiteral(title, pathExpr), ", path: ", pathExpr, " });")
}
