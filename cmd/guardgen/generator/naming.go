package generator

import (
	"unicode"

	"github.com/tlipoca9/guardgen/genkit"
	"github.com/tlipoca9/guardgen/ir"
)

// Names maps model entities to the identifiers generated for them.
// Every identifier carries the module that exports it, so a file that
// prints it imports that module automatically.
type Names struct {
	Types      genkit.TSModule
	Validators genkit.TSModule
	Sanitizers genkit.TSModule
	Dates      genkit.TSModule
	Services   genkit.TSModule
}

// NewNames derives module specifiers from the configured file names.
func NewNames(files genkit.FileNames) Names {
	return Names{
		Types:      genkit.Module(files.Types),
		Validators: genkit.Module(files.Validators),
		Sanitizers: genkit.Module(files.Sanitizers),
		Dates:      genkit.Module(files.Dates),
		Services:   genkit.Module(files.Services),
	}
}

// Type is the declared TypeScript type of a type, enum or union.
func (n Names) Type(name string) genkit.TSIdent {
	return n.Types.Ident(name)
}

// EnumValues is the constant array listing an enum's literals.
func (n Names) EnumValues(name string) genkit.TSIdent {
	return n.Types.Ident(ir.EnumValuesName(name))
}

// Validator is the validator of a type, enum or union.
func (n Names) Validator(name string) genkit.TSIdent {
	return n.Validators.Ident("validate" + ir.PascalCase(name))
}

// Guard is the type guard of a type.
func (n Names) Guard(name string) genkit.TSIdent {
	return n.Validators.Ident("is" + ir.PascalCase(name))
}

// Sanitizer is the sanitizer of a type or union.
func (n Names) Sanitizer(name string) genkit.TSIdent {
	return n.Sanitizers.Ident("sanitize" + ir.PascalCase(name))
}

// DateConverter is the date converter of a type.
func (n Names) DateConverter(name string) genkit.TSIdent {
	return n.Dates.Ident("convert" + ir.PascalCase(name) + "Dates")
}

// ParamsType is the declared parameter object of a method.
func (n Names) ParamsType(iface, method string) genkit.TSIdent {
	return n.Types.Ident(ir.ParamsTypeName(iface, method))
}

// ParamsValidator validates the parameter object of a method.
func (n Names) ParamsValidator(iface, method string) genkit.TSIdent {
	return n.Validators.Ident("validate" + ir.ParamsTypeName(iface, method))
}

// ParamsSanitizer sanitizes the parameter object of a method.
func (n Names) ParamsSanitizer(iface, method string) genkit.TSIdent {
	return n.Sanitizers.Ident("sanitize" + ir.ParamsTypeName(iface, method))
}

// Interface is the declared service interface.
func (n Names) Interface(name string) genkit.TSIdent {
	return n.Types.Ident(name)
}

// Wrapper is the validated wrapper class of an interface.
func (n Names) Wrapper(iface string) genkit.TSIdent {
	return n.Services.Ident("Validated" + ir.PascalCase(iface))
}

// ResponseBuilders is the builder table type of an interface.
func (n Names) ResponseBuilders(iface string) genkit.TSIdent {
	return n.Services.Ident(ir.PascalCase(iface) + "ResponseBuilders")
}

// ValidationError is the error record type.
func (n Names) ValidationError() genkit.TSIdent {
	return n.Validators.Ident("ValidationError")
}

// isIdentifier reports whether s can be used as a bare property name.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// propertyKey renders name as an object literal key or interface member name.
func propertyKey(name string) string {
	if isIdentifier(name) {
		return name
	}
	return genkit.Quote(name)
}

// propertyAccess renders obj.name, falling back to bracket notation.
func propertyAccess(obj, name string) string {
	if isIdentifier(name) {
		return obj + "." + name
	}
	return obj + "[" + genkit.Quote(name) + "]"
}
