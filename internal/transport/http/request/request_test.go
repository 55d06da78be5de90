package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Additional-Code/stockledger/pkg/errorbank"
)

func newContext(method, body string) echo.Context {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestID(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"12", 12, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		c := newContext(http.MethodGet, "")
		c.SetParamNames("id")
		c.SetParamValues(tt.raw)

		got, err := ID(c, "id")
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ID(%q) = %d, %v", tt.raw, got, err)
		}
		if !tt.ok && !errorbank.Is(err, errorbank.KindBadRequest) {
			t.Errorf("ID(%q) err = %v, want bad request", tt.raw, err)
		}
	}
}

func TestBind(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	if err := Bind(newContext(http.MethodPost, `{"name":"Bolt"}`), &dst); err != nil || dst.Name != "Bolt" {
		t.Fatalf("bind = %v, %+v", err, dst)
	}
	if err := Bind(newContext(http.MethodPost, `{"name":`), &dst); !errorbank.Is(err, errorbank.KindBadRequest) {
		t.Fatalf("malformed body err = %v", err)
	}
}
