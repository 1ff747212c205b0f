// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package attrs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/staranto/d2frames/internal/weapons"
)

// DefaultSpec is the column set used when --attrs is not given.
const DefaultSpec = "name,type,frame,damage,craftable"

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Attr represents each of the weapon fields to be included in the output.
type Attr struct {
	// The weapon field to extract.
	Key string
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool
	// The key to use in the output. This is also the column title when
	// output=text.
	OutputKey string
	// Transformation spec to apply to the output value.
	TransformSpec string
}

// Transform applies the case and length transformations in TransformSpec to a
// string value. Other values pass through untouched.
func (a *Attr) Transform(value interface{}) interface{} {
	result, ok := value.(string)
	if !ok {
		return value
	}

	// The case transformation that appears last wins. A global spec is
	// prepended to the attr's own, so IOW... --attrs '*::U,name::l' will be
	// lower case.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	if a.TransformSpec == "" {
		return result
	}

	// Same logic as above re: case. The last length wins.
	match := lengthRegex.FindAllString(a.TransformSpec, -1)
	if len(match) == 0 {
		return result
	}
	l, _ := strconv.Atoi(match[len(match)-1])
	return truncate(result, l)
}

// truncate shortens s to n runes. A negative n keeps both ends of s and joins
// them with "..".
func truncate(s string, n int) string {
	runes := []rune(s)
	abs := n
	if abs < 0 {
		abs = -abs
	}
	if len(runes) <= abs {
		return s
	}
	side := abs/2 - 1
	if n > 0 || side < 1 {
		return string(runes[:abs])
	}
	return string(runes[:side]) + ".." + string(runes[len(runes)-side:])
}

type AttrList []Attr

// Defaults returns the default column set.
func Defaults() AttrList {
	var a AttrList
	_ = a.Set(DefaultSpec)
	return a
}

// Return a string representation of the AttrList. This should match the format
// of the original --attrs flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Parse each spec from the --attrs flag and add it to the AttrList.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

	// There are three : delimited fields in each spec. The first is the weapon
	// field. The second is the key to use in the output. The third is the
	// transformation spec to apply to the output value. The latter two are
	// optional and the output key defaults to the field name.
	specs := strings.Split(value, ",")
specloop:
	for _, spec := range specs {
		attr := Attr{
			Include: true,
		}

		fields := strings.Split(spec, ":")

		// A leading ! keeps the field available to filters but out of the
		// output.
		attr.Key = strings.ToLower(strings.TrimSpace(fields[keyIdx]))
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}

		if attr.Key == "*" {
			attr.Include = false
		} else if _, ok := weapons.Field(weapons.Weapon{}, attr.Key); !ok {
			return fmt.Errorf("unknown attribute: %s (want one of %s)",
				attr.Key, strings.Join(weapons.FieldNames, ", "))
		}

		attr.OutputKey = attr.Key
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// If the attr already exists in the list (because it's one of the
		// defaults or the user double-entered it) just apply the OutputKey,
		// Include and TransformSpec to the existing Attr.
		for i := range *a {
			if (*a)[i].Key == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec inserts a global transform spec into the front of all
// attrs in the list.
func (alist *AttrList) SetGlobalTransformSpec() error {
	spec := ""

	// Find the global transform spec. If there is more than one, we're not
	// dealing with it and just taking the first.
	for a := range *alist {
		if (*alist)[a].Key == "*" {
			spec = (*alist)[a].TransformSpec
			break
		}
	}

	if spec == "" {
		return nil
	}

	for a := range *alist {
		(*alist)[a].TransformSpec = spec + "," + (*alist)[a].TransformSpec
	}

	return nil
}

// Lookup returns the field key behind an output key or field name.
func (a AttrList) Lookup(name string) (string, bool) {
	for _, attr := range a {
		if attr.OutputKey == name || attr.Key == strings.ToLower(name) {
			return attr.Key, attr.Key != "*"
		}
	}
	return "", false
}

func (a *AttrList) Type() string {
	return "list"
}
