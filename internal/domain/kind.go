package domain

import "reflect"

// KindOf returns the fully-qualified type name of v, "<pkgpath>.<Name>",
// looking through pointers. Values implementing TypeNamer name themselves.
func KindOf(v any) (name string) {
	defer func() {
		if recover() != nil {
			name = ""
		}
	}()

	if tn, ok := v.(TypeNamer); ok {
		return tn.TypeName()
	}
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
