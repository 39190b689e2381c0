package diff

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/wI2L/jsondiff"
)

// PatchOp is a single change between two JSON documents. Path uses dot notation, e.g. "levels.0.role".
type PatchOp struct {
	Op       string      `json:"op"`
	Path     string      `json:"path"`
	NewValue interface{} `json:"new_value,omitempty"`
	OldValue interface{} `json:"old_value,omitempty"`
}

// Compare returns the changes needed to turn a into b, or nil when both encode to the same JSON.
func Compare(a, b interface{}) ([]*PatchOp, error) {
	jsonA, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encoding original value: %w", err)
	}
	jsonB, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encoding updated value: %w", err)
	}

	patch, err := jsondiff.CompareJSON(jsonA, jsonB)
	if err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return nil, nil
	}

	var original interface{}
	if err := json.Unmarshal(jsonA, &original); err != nil {
		return nil, err
	}

	var changes []*PatchOp
	for _, op := range patch {
		segments := splitPointer(op.Path)
		change := &PatchOp{
			Op:       op.Type,
			Path:     strings.Join(segments, "."),
			NewValue: op.Value,
		}
		if op.Type == jsondiff.OperationRemove || op.Type == jsondiff.OperationReplace {
			old, err := valueAt(original, segments)
			if err != nil {
				return nil, err
			}
			change.OldValue = old
		}
		changes = append(changes, change)
	}

	return changes, nil
}

func valueAt(doc interface{}, segments []string) (interface{}, error) {
	current := doc
	for _, s := range segments {
		switch node := current.(type) {
		case map[string]interface{}:
			current = node[s]
		case []interface{}:
			i, err := strconv.Atoi(s)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("invalid array index %q", s)
			}
			current = node[i]
		default:
			return nil, fmt.Errorf("path segment %q does not exist", s)
		}
	}
	return current, nil
}

// splitPointer decodes an RFC 6901 pointer into its segments.
func splitPointer(pointer string) []string {
	if pointer == "" || pointer == "/" {
		return nil
	}
	segments := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	for i, s := range segments {
		s = strings.ReplaceAll(s, "~1", "/")
		segments[i] = strings.ReplaceAll(s, "~0", "~")
	}
	return segments
}
