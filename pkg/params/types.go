package params

import (
	"strings"

	"github.com/pkg/errors"
)

// Type is the SQL type tag attached to a bound value.
type Type int

const (
	TypeUnknown Type = iota
	TypeBoolean
	TypeTinyInt
	TypeSmallInt
	TypeInteger
	TypeBigInt
	TypeDecimal
	TypeFloat
	TypeDouble
	TypeChar
	TypeVarchar
	TypeNVarchar
	TypeText
	TypeDate
	TypeTime
	TypeTimestamp
	TypeBinary
)

var typeNames = map[Type]string{
	TypeUnknown:   "unknown",
	TypeBoolean:   "boolean",
	TypeTinyInt:   "tinyint",
	TypeSmallInt:  "smallint",
	TypeInteger:   "integer",
	TypeBigInt:    "bigint",
	TypeDecimal:   "decimal",
	TypeFloat:     "float",
	TypeDouble:    "double",
	TypeChar:      "char",
	TypeVarchar:   "varchar",
	TypeNVarchar:  "nvarchar",
	TypeText:      "text",
	TypeDate:      "date",
	TypeTime:      "time",
	TypeTimestamp: "timestamp",
	TypeBinary:    "binary",
}

var typeAliases = map[string]Type{
	"bool":     TypeBoolean,
	"bit":      TypeBoolean,
	"int":      TypeInteger,
	"long":     TypeBigInt,
	"numeric":  TypeDecimal,
	"real":     TypeFloat,
	"string":   TypeVarchar,
	"datetime": TypeTimestamp,
	"blob":     TypeBinary,
	"bytes":    TypeBinary,
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return typeNames[TypeUnknown]
}

// MarshalText encodes the type by name.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name produced by MarshalText or accepted by ParseType.
func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// ParseType resolves a case-insensitive type name such as "int", "varchar" or
// "timestamp".
func ParseType(name string) (Type, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if t, ok := typeAliases[n]; ok {
		return t, nil
	}

	for t, tn := range typeNames {
		if tn == n {
			return t, nil
		}
	}

	return TypeUnknown, errors.Errorf("unknown parameter type: %q", name)
}

// InMode selects how IN / NOT IN expressions bind their list.
type InMode string

const (
	// InList renders `col IN ( ? )` and binds the whole list to the single placeholder.
	InList InMode = "list"

	// InExpanded renders one placeholder per element, `col IN (?, ?, ?)`, and binds
	// each element separately.
	InExpanded InMode = "expanded"
)

// ParseInMode resolves an InMode name. The empty string yields InList.
func ParseInMode(s string) (InMode, error) {
	switch InMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", InList:
		return InList, nil
	case InExpanded:
		return InExpanded, nil
	default:
		return "", errors.Errorf("unknown IN mode: %q", s)
	}
}
