package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-object",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
				"tags":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 1},
			},
			"required": []string{"name", "age"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"Alice","age":10,"grade":"A"}`, false},
		{"optional omitted", `{"name":"Bob","age":8}`, false},
		{"missing required", `{"name":"Charlie"}`, true},
		{"wrong type", `{"name":"Dave","age":"ten"}`, true},
		{"invalid enum", `{"name":"Eve","age":9,"grade":"D"}`, true},
		{"below minimum", `{"name":"Fay","age":-1}`, true},
		{"empty array below minItems", `{"name":"Gus","age":3,"tags":[]}`, true},
		{"malformed JSON", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestDecode(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	if err := Decode(&Response{Content: json.RawMessage(`{"name":"Ada"}`)}, &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Name != "Ada" {
		t.Errorf("name = %q", v.Name)
	}

	var inv *ErrInvalidResponse
	if err := Decode(&Response{Content: json.RawMessage(`[1,2]`)}, &v); !errors.As(err, &inv) {
		t.Errorf("expected ErrInvalidResponse for array, got %v", err)
	}
	if err := Decode(nil, &v); !errors.As(err, &inv) {
		t.Errorf("expected ErrInvalidResponse for nil response, got %v", err)
	}
}

func TestValidationError(t *testing.T) {
	var err error = &ValidationError{Validator: "structural", Message: "topic is empty", Retryable: true}
	if err.Error() != `validator "structural": topic is empty` {
		t.Errorf("Error() = %q", err.Error())
	}
	var verr *ValidationError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &verr) || !verr.Retryable {
		t.Errorf("errors.As failed: %v", verr)
	}
}
