package result

import (
	"reflect"

	"github.com/ArcletProject/Alconna/errs"
)

// Bind projects r's bound values onto a new T using `alc:"path"` struct
// tags, reflection-driven the same way the teacher's command.go walks a
// flag struct's tags (SPEC_FULL §7 "Bind[T]"). A tag's path is resolved
// through Query; a field whose path resolves to nothing is left at its
// zero value when tagged `alc:",omitempty"` and yields an error otherwise.
func Bind[T any](r *Arparma) (T, error) {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	if rv.Kind() != reflect.Struct {
		return out, errs.New(errs.InvalidParam).WithExpected("Bind target must be a struct")
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag, ok := field.Tag.Lookup("alc")
		if !ok || tag == "" || tag == "-" {
			continue
		}
		path, omitempty := parseTag(tag)
		v, err := r.Query(path)
		if err != nil {
			return out, err
		}
		if v == nil {
			if omitempty {
				continue
			}
			return out, errs.New(errs.InvalidParam).WithName(path).WithExpected("a value bound at " + path)
		}
		fv := rv.Field(i)
		if !fv.CanSet() {
			continue
		}
		assignInto(fv, v)
	}
	return out, nil
}

func parseTag(tag string) (path string, omitempty bool) {
	path = tag
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			path = tag[:i]
			if tag[i+1:] == "omitempty" {
				omitempty = true
			}
			break
		}
	}
	return path, omitempty
}

func assignInto(fv reflect.Value, v any) {
	vv := reflect.ValueOf(v)
	if !vv.IsValid() {
		return
	}
	if vv.Type().AssignableTo(fv.Type()) {
		fv.Set(vv)
		return
	}
	if vv.Type().ConvertibleTo(fv.Type()) {
		fv.Set(vv.Convert(fv.Type()))
	}
}
