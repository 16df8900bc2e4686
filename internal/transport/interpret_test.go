package transport

import (
	"errors"
	"testing"

	"github.com/nordpay/nordpay-go/pkg/api"
)

func TestInterpretSuccess(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantBody string
	}{
		{name: "200 with body", status: 200, body: `{"reference":"ref-1"}`, wantBody: `{"reference":"ref-1"}`},
		{name: "201 with body", status: 201, body: `{"ok":true}`, wantBody: `{"ok":true}`},
		{name: "204 no content", status: 204, body: "", wantBody: ""},
		{name: "200 empty body", status: 200, body: "", wantBody: ""},
		{name: "200 non-JSON body is tolerated", status: 200, body: "OK", wantBody: "OK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := interpret(tt.status, []byte(tt.body))
			if err != nil {
				t.Fatalf("interpret() error = %v", err)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", resp.StatusCode, tt.status)
			}
			if string(resp.Body) != tt.wantBody {
				t.Errorf("Body = %q, want %q", resp.Body, tt.wantBody)
			}
		})
	}
}

func TestInterpretServerErrorIsRetryable(t *testing.T) {
	for _, status := range []int{500, 502, 503} {
		_, err := interpret(status, []byte("upstream broke"))
		if err == nil {
			t.Fatalf("interpret(%d) error = nil", status)
		}
		var terr *transportError
		if !errors.As(err, &terr) {
			t.Fatalf("interpret(%d) error type = %T", status, err)
		}
		if !terr.retryable {
			t.Errorf("interpret(%d) not retryable", status)
		}
		if terr.statusCode != status {
			t.Errorf("statusCode = %d, want %d", terr.statusCode, status)
		}
		if string(terr.body) != "upstream broke" {
			t.Errorf("body = %q", terr.body)
		}
	}
}

func TestInterpretClientErrorIsTerminal(t *testing.T) {
	_, err := interpret(400, []byte(`{"detail":"amount too low"}`))
	if err == nil {
		t.Fatal("interpret() error = nil")
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *api.Error", err)
	}
	if apiErr.Kind != api.KindProblem {
		t.Errorf("Kind = %s, want %s", apiErr.Kind, api.KindProblem)
	}
	if apiErr.Message != "amount too low" {
		t.Errorf("Message = %q", apiErr.Message)
	}

	var terr *transportError
	if errors.As(err, &terr) {
		t.Error("client error must not be retryable")
	}
}

func TestParseBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{name: "empty", body: "", want: nil},
		{name: "whitespace only", body: "  \n ", want: nil},
		{name: "object", body: `{"a":1}`, want: map[string]any{"a": float64(1)}},
		{name: "string literal", body: `"oops"`, want: "oops"},
		{name: "plain text", body: "not json", want: "not json"},
		{name: "plain text is trimmed", body: "  not json \n", want: "not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseBody([]byte(tt.body))
			switch want := tt.want.(type) {
			case nil:
				if got != nil {
					t.Errorf("parseBody() = %v, want nil", got)
				}
			case string:
				if got != want {
					t.Errorf("parseBody() = %v, want %q", got, want)
				}
			case map[string]any:
				obj, ok := got.(map[string]any)
				if !ok || len(obj) != len(want) {
					t.Fatalf("parseBody() = %v, want %v", got, want)
				}
				for k, v := range want {
					if obj[k] != v {
						t.Errorf("parseBody()[%s] = %v, want %v", k, obj[k], v)
					}
				}
			}
		})
	}
}
