package util

import (
	"reflect"

	"github.com/pkg/errors"
)

// IsStructInitialized returns an error if any pointer, interface, map or
// slice field of the given struct is nil. Used by the server readiness probe
// to detect partially initialized components.
func IsStructInitialized(s any) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return errors.New("struct is nil")
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return errors.New("not a struct")
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)

		switch field.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			if field.IsNil() {
				return errors.Errorf("field %q is not initialized", t.Field(i).Name)
			}
		}
	}

	return nil
}
