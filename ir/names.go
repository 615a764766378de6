package ir

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PascalCase joins the alphanumeric runs of s, upper-casing the first
// letter of each and leaving the rest untouched: "getPet" and "get_pet"
// both become "GetPet".
func PascalCase(s string) string {
	caser := cases.Title(language.Und, cases.NoLower)
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(caser.String(p))
	}
	return b.String()
}

// ParamsTypeName is the name of the parameter object of a method.
func ParamsTypeName(iface, method string) string {
	return PascalCase(iface) + PascalCase(method) + "Params"
}

// EnumValuesName is the name of the constant listing an enum's literals.
func EnumValuesName(enum string) string {
	return enum + "Values"
}
