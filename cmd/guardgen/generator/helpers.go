package generator

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/tlipoca9/guardgen/genkit"
)

// Helper is a routine shared by all validators of one file.
type Helper int

const (
	HelperIsRecord Helper = iota
	HelperJoinPath
	HelperCheckString
	HelperCheckNumber
	HelperCheckInteger
	HelperCheckBoolean
	HelperCheckDate
	HelperCheckArray
	HelperIsMultipleOf
	HelperHasDuplicateItems
)

type helperDef struct {
	name   string
	codes  []ErrorCode
	source string
}

var helperDefs = map[Helper]helperDef{
	HelperIsRecord: {
		name: "isRecord",
		source: `function isRecord(value: unknown): value is Record<string, unknown> {
return typeof value === "object" && value !== null && !Array.isArray(value);
}`,
	},
	HelperJoinPath: {
		name: "joinPath",
		source: `function joinPath(parentPath: string | undefined, name: string): string {
return parentPath ? ` + "`${parentPath}.${name}`" + ` : name;
}`,
	},
	HelperCheckString: {
		name:  "checkString",
		codes: []ErrorCode{CodeType},
		source: `function checkString(value: unknown, path: string, errors: ValidationError[]): value is string {
if (typeof value === "string") {
return true;
}
errors.push({ code: "TYPE", title: ` + "`${path} must be a string`" + `, path });
return false;
}`,
	},
	HelperCheckNumber: {
		name:  "checkNumber",
		codes: []ErrorCode{CodeType},
		source: `function checkNumber(value: unknown, path: string, errors: ValidationError[]): value is number {
if (typeof value === "number" && !Number.isNaN(value)) {
return true;
}
errors.push({ code: "TYPE", title: ` + "`${path} must be a number`" + `, path });
return false;
}`,
	},
	HelperCheckInteger: {
		name:  "checkInteger",
		codes: []ErrorCode{CodeType},
		source: `function checkInteger(value: unknown, path: string, errors: ValidationError[]): value is number {
if (typeof value === "number" && Number.isInteger(value)) {
return true;
}
errors.push({ code: "TYPE", title: ` + "`${path} must be an integer`" + `, path });
return false;
}`,
	},
	HelperCheckBoolean: {
		name:  "checkBoolean",
		codes: []ErrorCode{CodeType},
		source: `function checkBoolean(value: unknown, path: string, errors: ValidationError[]): value is boolean {
if (typeof value === "boolean") {
return true;
}
errors.push({ code: "TYPE", title: ` + "`${path} must be a boolean`" + `, path });
return false;
}`,
	},
	HelperCheckDate: {
		name:  "checkDate",
		codes: []ErrorCode{CodeType},
		source: `function checkDate(value: unknown, path: string, errors: ValidationError[]): value is string | Date {
if (value instanceof Date ? !Number.isNaN(value.getTime()) : typeof value === "string" && !Number.isNaN(Date.parse(value))) {
return true;
}
errors.push({ code: "TYPE", title: ` + "`${path} must be a valid date`" + `, path });
return false;
}`,
	},
	HelperCheckArray: {
		name:  "checkArray",
		codes: []ErrorCode{CodeType},
		source: `function checkArray(value: unknown, path: string, errors: ValidationError[]): value is unknown[] {
if (Array.isArray(value)) {
return true;
}
errors.push({ code: "TYPE", title: ` + "`${path} must be an array`" + `, path });
return false;
}`,
	},
	HelperIsMultipleOf: {
		name: "isMultipleOf",
		source: `function isMultipleOf(value: number, divisor: number): boolean {
const quotient = value / divisor;
return Math.abs(quotient - Math.round(quotient)) < 1e-9;
}`,
	},
	HelperHasDuplicateItems: {
		name: "hasDuplicateItems",
		source: `function hasDuplicateItems(items: unknown[]): boolean {
const seen = new Set<string>();
for (const item of items) {
const key = typeof item === "object" && item !== null ? JSON.stringify(item) : ` + "`${typeof item}:${String(item)}`" + `;
if (seen.has(key)) {
return true;
}
seen.add(key);
}
return false;
}`,
	},
}

// Name is the identifier of the helper in generated code.
func (h Helper) Name() string { return helperDefs[h].name }

// Usage records the helpers and error codes generated code refers to.
// It only grows while validators are assembled and is read once emission
// starts.
type Usage struct {
	Helpers sets.Set[Helper]
	Codes   sets.Set[ErrorCode]
}

// NewUsage returns an empty Usage.
func NewUsage() Usage {
	return Usage{
		Helpers: sets.New[Helper](),
		Codes:   sets.New[ErrorCode](),
	}
}

// Use records h, and the codes it reports, and returns its name.
func (u Usage) Use(h Helper) string {
	u.Helpers.Insert(h)
	u.Codes.Insert(helperDefs[h].codes...)
	return h.Name()
}

// Report records code.
func (u Usage) Report(code ErrorCode) ErrorCode {
	u.Codes.Insert(code)
	return code
}

// Merge adds everything other records.
func (u Usage) Merge(other Usage) {
	u.Helpers.Insert(other.Helpers.UnsortedList()...)
	u.Codes.Insert(other.Codes.UnsortedList()...)
}

// SortedHelpers returns the recorded helpers in emission order.
func (u Usage) SortedHelpers() []Helper { return sets.List(u.Helpers) }

// SortedCodes returns the recorded codes alphabetically.
func (u Usage) SortedCodes() []ErrorCode { return sets.List(u.Codes) }

// writeHelpers prints the source of every recorded helper once.
func writeHelpers(g genkit.Printer, u Usage) {
	for _, h := range u.SortedHelpers() {
		g.P()
		g.P(genkit.RawString(helperDefs[h].source))
	}
}
