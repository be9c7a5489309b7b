package search

import "fmt"

// RawResponse is a decoded upstream JSON body: map[string]any, []any or a scalar.
type RawResponse = any

// ResponseShape names which of the accepted layouts a body matched.
type ResponseShape string

const (
	ShapeResultsField ResponseShape = "results"
	ShapeArray        ResponseShape = "array"
	ShapeDataField    ResponseShape = "data"
	ShapeSingle       ResponseShape = "single"
)

// Normalize flattens an upstream body into records.
func Normalize(raw RawResponse) ([]SearchRecord, error) {
	records, _, err := NormalizeWithShape(raw)
	return records, err
}

// NormalizeWithShape is Normalize that also reports the matched shape.
// Precedence, first match wins: {"results": [...]}, [...], {"data": [...]},
// any other object as a single record. Everything else is a ShapeError.
func NormalizeWithShape(raw RawResponse) ([]SearchRecord, ResponseShape, error) {
	items, shape, err := extractItems(raw)
	if err != nil {
		return nil, "", err
	}

	records := make([]SearchRecord, 0, len(items))
	for idx, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, shape, &ShapeError{Reason: fmt.Sprintf("element %d is %s, not an object", idx, jsonKind(item))}
		}
		records = append(records, recordFromMap(obj))
	}
	return records, shape, nil
}

func extractItems(raw RawResponse) ([]any, ResponseShape, error) {
	if obj, ok := raw.(map[string]any); ok {
		if results, ok := obj["results"].([]any); ok {
			return results, ShapeResultsField, nil
		}
	}

	if arr, ok := raw.([]any); ok {
		return arr, ShapeArray, nil
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, "", &ShapeError{Reason: fmt.Sprintf("top-level %s", jsonKind(raw))}
	}
	if data, ok := obj["data"].([]any); ok {
		return data, ShapeDataField, nil
	}
	return []any{obj}, ShapeSingle, nil
}

func recordFromMap(obj map[string]any) SearchRecord {
	rawSource := stringField(obj, "source")
	return SearchRecord{
		Name:        stringField(obj, "name"),
		Title:       optionalField(obj, "title"),
		Link:        stringField(obj, "link"),
		Description: optionalField(obj, "description"),
		Location:    optionalField(obj, "location"),
		Source:      ParseSourceNetwork(rawSource),
		RawSource:   rawSource,
	}
}

func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func optionalField(obj map[string]any, key string) *string {
	value := stringField(obj, key)
	if value == "" {
		return nil
	}
	return &value
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
