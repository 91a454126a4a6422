package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "config error",
			code:    "R001",
			wantMsg: "Routes configuration missing",
			wantCat: CategoryConfig,
		},
		{
			name:    "not found error",
			code:    "R010",
			wantMsg: "Path not found",
			wantCat: CategoryNotFound,
		},
		{
			name:    "param error",
			code:    "R020",
			wantMsg: "Missing required param: path",
			wantCat: CategoryParam,
		},
		{
			name:    "state error",
			code:    "R030",
			wantMsg: "Component not registered",
			wantCat: CategoryState,
		},
		{
			name:    "unknown error code",
			code:    "R999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestRouterError_Error(t *testing.T) {
	err := New("R010").WithPath("/missing")
	want := "R010: Path not found: /missing"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := &RouterError{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestSentinels(t *testing.T) {
	tests := []struct {
		code   string
		target error
	}{
		{"R001", ErrConfig},
		{"R002", ErrConfig},
		{"R010", ErrNotFound},
		{"R011", ErrNotFound},
		{"R020", ErrMissingParam},
		{"R030", ErrState},
		{"R031", ErrState},
	}

	for _, tt := range tests {
		wrapped := fmt.Errorf("navigate: %w", New(tt.code))
		if !stderrors.Is(wrapped, tt.target) {
			t.Errorf("errors.Is(%s, %v) = false, want true", tt.code, tt.target)
		}
	}

	if stderrors.Is(New("R010"), ErrState) {
		t.Error("not-found error should not match ErrState")
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := stderrors.New("access denied")
	err := New("R042").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause should be reachable through errors.Is")
	}
	if !strings.Contains(err.Error(), "access denied") {
		t.Errorf("Error() = %q, should mention the cause", err.Error())
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "R040") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("R010")
	if got := FromError(orig, "R040"); got != orig {
		t.Error("FromError should return existing RouterError unchanged")
	}

	got := FromError(stderrors.New("boom"), "R040")
	if got.Code != "R040" || got.Wrapped == nil {
		t.Errorf("FromError = %+v, want R040 wrapping cause", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("R010").
		WithPath("/list/detail").
		WithSuggestion("Declare the route")

	out := err.Format()
	for _, want := range []string{"ERROR R010: Path not found", "path: /list/detail", "Hint: Declare the route"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("R030").WithPath("cmp-1")

	var got map[string]any
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &got); jerr != nil {
		t.Fatalf("FormatJSON() produced invalid JSON: %v", jerr)
	}
	if got["code"] != "R030" {
		t.Errorf("code = %v, want R030", got["code"])
	}
	if got["category"] != "state" {
		t.Errorf("category = %v, want state", got["category"])
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, fmt.Errorf("load: %w", New("R041")))
	if !strings.Contains(buf.String(), "R041") {
		t.Errorf("Fprint output = %q, want R041", buf.String())
	}

	buf.Reset()
	Fprint(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("Fprint output = %q, want plain rendering", buf.String())
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("no registered codes")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	if _, ok := GetTemplate("R010"); !ok {
		t.Error("R010 should be registered")
	}
}
