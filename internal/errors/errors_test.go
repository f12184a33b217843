package errors

import (
	stderrors "errors"
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
			name:    "runtime error",
			code:    "E001",
			wantMsg: "Element already attached",
			wantCat: CategoryRuntime,
		},
		{
			name:    "loader error",
			code:    "E020",
			wantMsg: "Stylesheet fetch failed",
			wantCat: CategoryLoader,
		},
		{
			name:    "protocol error",
			code:    "E040",
			wantMsg: "Load finished without a matching start",
			wantCat: CategoryProtocol,
		},
		{
			name:    "unknown error code",
			code:    "E999",
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

func TestNewf(t *testing.T) {
	err := Newf(CategoryLoader, "scheme %q not supported", "ftp")
	if err.Message != `scheme "ftp" not supported` {
		t.Errorf("Message = %q, want %q", err.Message, `scheme "ftp" not supported`)
	}
	if err.Category != CategoryLoader {
		t.Errorf("Category = %q, want %q", err.Category, CategoryLoader)
	}
}

func TestServoError_Error(t *testing.T) {
	err := New("E040")
	got := err.Error()
	want := "E040: Load finished without a matching start"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	// Without code
	err2 := &ServoError{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}
}

func TestServoError_Wrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := New("E020").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	var se *ServoError
	if !stderrors.As(err, &se) {
		t.Error("errors.As should find *ServoError")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E020") != nil {
		t.Error("FromError(nil) should return nil")
	}

	// Already a ServoError: returned as-is.
	orig := New("E021")
	if got := FromError(orig, "E020"); got != orig {
		t.Errorf("FromError should pass through *ServoError, got %v", got)
	}

	cause := stderrors.New("boom")
	err := FromError(cause, "E020")
	if err.Code != "E020" {
		t.Errorf("Code = %q, want E020", err.Code)
	}
	if !stderrors.Is(err, cause) {
		t.Error("cause should be wrapped")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E020").
		Wrap(stderrors.New("dial tcp: refused")).
		WithSuggestion("check that the stylesheet URL is reachable")

	out := err.Format()
	for _, want := range []string{
		"ERROR E020: Stylesheet fetch failed",
		"Caused by: dial tcp: refused",
		"Hint: check that the stylesheet URL is reachable",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E023").Wrap(stderrors.New("ftp"))
	got := err.FormatCompact()
	want := "E023: Unsupported URL scheme: ftp"
	if got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E021").WithSuggestion("regenerate the integrity hash")
	out := err.FormatJSON()
	for _, want := range []string{
		`"code":"E021"`,
		`"category":"loader"`,
		`"suggestion":"regenerate the integrity hash"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatJSON() missing %q in %s", want, out)
		}
	}
}

func TestRegister(t *testing.T) {
	Register("E900", ErrorTemplate{
		Category: CategoryRuntime,
		Message:  "Custom test error",
	})
	defer delete(registry, "E900")

	err := New("E900")
	if err.Message != "Custom test error" {
		t.Errorf("Message = %q, want %q", err.Message, "Custom test error")
	}

	if _, ok := GetTemplate("E900"); !ok {
		t.Error("GetTemplate should find registered code")
	}

	found := false
	for _, c := range GetAllCodes() {
		if c == "E900" {
			found = true
		}
	}
	if !found {
		t.Error("GetAllCodes should include registered code")
	}
}
