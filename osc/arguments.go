package osc

import (
	"fmt"
	"io"
	"reflect"
)

var (
	timeTagType = reflect.TypeOf(TimeTag{})
	bytesType   = reflect.TypeOf([]byte(nil))
)

// ArgumentWriter flattens Go values into an OSC argument list. Each call to
// Element appends one element, which may expand to several arguments:
//
//   - bool, int32, int64, float32, float64, string, []byte and TimeTag (and
//     types defined on them) become a single argument;
//   - structs become their exported fields, in declaration order;
//   - arrays become their elements, in order;
//   - pointers are followed, a nil pointer becomes Nil;
//   - struct{} becomes no argument at all.
type ArgumentWriter struct {
	Arguments []interface{}
}

// Element appends v to the argument list.
func (w *ArgumentWriter) Element(v interface{}) error {
	if v == nil {
		w.Arguments = append(w.Arguments, nil)
		return nil
	}
	return w.write(reflect.ValueOf(v))
}

func (w *ArgumentWriter) write(v reflect.Value) error {
	if v.Type() == timeTagType {
		w.Arguments = append(w.Arguments, v.Interface().(TimeTag))
		return nil
	}

	switch v.Kind() {
	case reflect.Bool:
		w.Arguments = append(w.Arguments, v.Bool())
	case reflect.Int32:
		w.Arguments = append(w.Arguments, int32(v.Int()))
	case reflect.Int64:
		w.Arguments = append(w.Arguments, v.Int())
	case reflect.Float32:
		w.Arguments = append(w.Arguments, float32(v.Float()))
	case reflect.Float64:
		w.Arguments = append(w.Arguments, v.Float())
	case reflect.String:
		w.Arguments = append(w.Arguments, v.String())
	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.Uint8 {
			return fmt.Errorf("ArgumentWriter: unsupported type: %s", v.Type())
		}
		w.Arguments = append(w.Arguments, v.Convert(bytesType).Interface())
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := w.write(v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if err := w.write(v.Field(i)); err != nil {
				return err
			}
		}
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			w.Arguments = append(w.Arguments, nil)
			return nil
		}
		return w.write(v.Elem())
	default:
		return fmt.Errorf("ArgumentWriter: unsupported type: %s", v.Type())
	}
	return nil
}

// ArgumentReader reads Go values from an OSC argument list, mirroring
// ArgumentWriter.
type ArgumentReader struct {
	args []interface{}
	pos  int
}

// NewArgumentReader returns a reader over args.
func NewArgumentReader(args []interface{}) *ArgumentReader {
	return &ArgumentReader{args: args}
}

// Remaining returns the number of unread arguments.
func (r *ArgumentReader) Remaining() int {
	return len(r.args) - r.pos
}

// Element decodes the next element into the value pointed to by v. It returns
// io.EOF if the argument list is exhausted before the element starts, and
// io.ErrUnexpectedEOF if it runs out part way through. On error no arguments
// are consumed.
func (r *ArgumentReader) Element(v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("ArgumentReader: non-nil pointer required, got %T", v)
	}

	start := r.pos
	if err := r.read(rv.Elem()); err != nil {
		consumed := r.pos > start
		r.pos = start
		if err == io.EOF && consumed {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

func (r *ArgumentReader) next() (interface{}, error) {
	if r.pos >= len(r.args) {
		return nil, io.EOF
	}
	arg := r.args[r.pos]
	r.pos++
	return arg, nil
}

func (r *ArgumentReader) read(v reflect.Value) error {
	t := v.Type()

	switch {
	case t.Kind() == reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := r.read(v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case t.Kind() == reflect.Struct && t != timeTagType:
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if err := r.read(v.Field(i)); err != nil {
				return err
			}
		}
		return nil
	}

	arg, err := r.next()
	if err != nil {
		return err
	}

	if t.Kind() == reflect.Pointer {
		if arg == nil {
			v.Set(reflect.Zero(t))
			return nil
		}
		elem := reflect.New(t.Elem())
		r.pos--
		if err := r.read(elem.Elem()); err != nil {
			return err
		}
		v.Set(elem)
		return nil
	}

	if t.Kind() == reflect.Interface {
		if arg == nil {
			v.Set(reflect.Zero(t))
			return nil
		}
		av := reflect.ValueOf(arg)
		if !av.Type().AssignableTo(t) {
			return fmt.Errorf("ArgumentReader: cannot decode %T into %s", arg, t)
		}
		v.Set(av)
		return nil
	}

	ok := false
	switch a := arg.(type) {
	case bool:
		if ok = t.Kind() == reflect.Bool; ok {
			v.SetBool(a)
		}
	case int32:
		if ok = t.Kind() == reflect.Int32; ok {
			v.SetInt(int64(a))
		}
	case int64:
		if ok = t.Kind() == reflect.Int64; ok {
			v.SetInt(a)
		}
	case float32:
		if ok = t.Kind() == reflect.Float32; ok {
			v.SetFloat(float64(a))
		}
	case float64:
		if ok = t.Kind() == reflect.Float64; ok {
			v.SetFloat(a)
		}
	case string:
		if ok = t.Kind() == reflect.String; ok {
			v.SetString(a)
		}
	case []byte:
		if ok = t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8; ok {
			v.Set(reflect.ValueOf(a).Convert(t))
		}
	case TimeTag:
		if ok = t == timeTagType; ok {
			v.Set(reflect.ValueOf(a))
		}
	}
	if !ok {
		return fmt.Errorf("ArgumentReader: cannot decode %T into %s", arg, t)
	}
	return nil
}
