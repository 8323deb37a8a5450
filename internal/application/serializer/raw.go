// Package serializer convierte definiciones crudas (mapas leídos de YAML/JSON) en entidades
// del catálogo y viceversa. Deserialize y Serialize son inversas sobre los campos de la
// definición: Deserialize(Serialize(x)) es igual a x. No acceden a almacenamiento y son
// seguras para uso concurrente.
package serializer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/BrandoCommando/product-taxonomy/internal/domain"
)

// Raw es una definición sin tipar tal como la entrega el decodificador.
type Raw map[string]any

// fieldReader lee campos de una definición y construye errores con el contexto
// de la entidad (tipo, id y ruta del campo).
type fieldReader struct {
	kind   string
	id     string
	prefix string
	raw    map[string]any
}

func (r *fieldReader) fail(field string, err error) error {
	return &domain.DefinitionError{Kind: r.kind, ID: r.id, Field: r.prefix + field, Err: err}
}

// nested devuelve un lector para un sub-registro (ej. values[2]) que conserva el id del dueño.
func (r *fieldReader) nested(prefix string, raw map[string]any) *fieldReader {
	return &fieldReader{kind: r.kind, id: r.id, prefix: r.prefix + prefix, raw: raw}
}

func (r *fieldReader) lookup(key string) (any, bool) {
	v, ok := r.raw[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r *fieldReader) requiredString(key string) (string, error) {
	v, ok := r.lookup(key)
	if !ok {
		return "", r.fail(key, domain.ErrMissingField)
	}
	s, ok := v.(string)
	if !ok {
		return "", r.fail(key, fmt.Errorf("%w: se esperaba texto, llegó %T", domain.ErrTypeMismatch, v))
	}
	if s == "" {
		return "", r.fail(key, domain.ErrMissingField)
	}
	return s, nil
}

func (r *fieldReader) optionalString(key string) (string, error) {
	v, ok := r.lookup(key)
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", r.fail(key, fmt.Errorf("%w: se esperaba texto, llegó %T", domain.ErrTypeMismatch, v))
	}
	return s, nil
}

func (r *fieldReader) requiredInt(key string, missing error) (int64, error) {
	v, ok := r.lookup(key)
	if !ok {
		return 0, r.fail(key, missing)
	}
	n, ok := toInt64(v)
	if !ok {
		return 0, r.fail(key, fmt.Errorf("%w: se esperaba entero, llegó %T", domain.ErrTypeMismatch, v))
	}
	return n, nil
}

func (r *fieldReader) optionalStrings(key string) ([]string, error) {
	return r.optionalList(key, asString, "texto")
}

// optionalIDs como optionalStrings pero acepta ids enteros sin comillas (children: [12]).
func (r *fieldReader) optionalIDs(key string) ([]string, error) {
	return r.optionalList(key, scalarID, "texto o entero")
}

// optionalID lee un id de texto o entero; ausente o null devuelve "".
func (r *fieldReader) optionalID(key string) (string, error) {
	v, ok := r.lookup(key)
	if !ok {
		return "", nil
	}
	id, ok := scalarID(v)
	if !ok {
		return "", r.fail(key, fmt.Errorf("%w: se esperaba texto o entero, llegó %T", domain.ErrTypeMismatch, v))
	}
	return id, nil
}

func (r *fieldReader) optionalList(key string, item func(any) (string, bool), want string) ([]string, error) {
	v, ok := r.lookup(key)
	if !ok {
		return nil, nil
	}
	switch list := v.(type) {
	case []string:
		if len(list) == 0 {
			return nil, nil
		}
		return append([]string(nil), list...), nil
	case []any:
		if len(list) == 0 {
			return nil, nil
		}
		out := make([]string, 0, len(list))
		for i, elem := range list {
			s, ok := item(elem)
			if !ok {
				return nil, r.fail(key+"["+strconv.Itoa(i)+"]", fmt.Errorf("%w: se esperaba %s, llegó %T", domain.ErrTypeMismatch, want, elem))
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, r.fail(key, fmt.Errorf("%w: se esperaba lista, llegó %T", domain.ErrTypeMismatch, v))
	}
}

func (r *fieldReader) optionalRecords(key string) ([]map[string]any, error) {
	v, ok := r.lookup(key)
	if !ok {
		return nil, nil
	}
	var items []any
	switch list := v.(type) {
	case []any:
		items = list
	case []map[string]any:
		items = make([]any, len(list))
		for i := range list {
			items[i] = list[i]
		}
	case []Raw:
		items = make([]any, len(list))
		for i := range list {
			items[i] = list[i]
		}
	default:
		return nil, r.fail(key, fmt.Errorf("%w: se esperaba lista, llegó %T", domain.ErrTypeMismatch, v))
	}
	if len(items) == 0 {
		return nil, nil
	}
	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		m, ok := asMap(item)
		if !ok {
			return nil, r.fail(key+"["+strconv.Itoa(i)+"]", fmt.Errorf("%w: se esperaba mapa, llegó %T", domain.ErrTypeMismatch, item))
		}
		out = append(out, m)
	}
	return out, nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Raw:
		return m, true
	default:
		return nil, false
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// scalarID normaliza un id escalar: texto tal cual, enteros en base 10 (id: 123 → "123").
func scalarID(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if n, ok := toInt64(v); ok {
		return strconv.FormatInt(n, 10), true
	}
	return "", false
}

// toInt64 acepta cualquier entero de Go y flotantes enteros (los decodificadores JSON
// entregan float64).
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return uintToInt64(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return uintToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	default:
		return 0, false
	}
}

func uintToInt64(n uint64) (int64, bool) {
	if n > math.MaxInt64 {
		return 0, false
	}
	return int64(n), true
}

func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// idString representa un id crudo para mensajes de error cuando no es del tipo esperado.
func idString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
