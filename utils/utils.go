package utils

import (
	"reflect"

	"github.com/iancoleman/strcase"
)

func SnakeCase(s string) string {
	return strcase.ToSnake(s)
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// TypeName returns the declared name of t with pointer indirections stripped.
// Unnamed types (slices, maps, func types) fall back to their literal form.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}

	t = deref(t)
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

// QualifiedName is TypeName prefixed with the package name, e.g. "gorm.DB".
func QualifiedName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}

	return deref(t).String()
}

// DefaultName derives a log-friendly snake_case name for t.
func DefaultName(t reflect.Type) string {
	if t == nil || deref(t).Name() == "" {
		return TypeName(t)
	}
	return SnakeCase(TypeName(t))
}

func init() {
	strcase.ConfigureAcronym("API", "api")
	strcase.ConfigureAcronym("ID", "id")
}
