package validator

import (
	"reflect"
	"strings"
)

// jsonFieldName reports fields by their wire name so messages match the
// query parameters and payload keys callers send.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}
