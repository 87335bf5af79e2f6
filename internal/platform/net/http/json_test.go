package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type thresholdDTO struct {
	Threshold int64 `json:"threshold"`
}

func TestJSONHandler_Success(t *testing.T) {
	t.Parallel()

	h := JSONHandler[thresholdDTO](func(_ *http.Request, in thresholdDTO) (any, error) {
		return map[string]int64{"answer": in.Threshold * 2}, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/ask", bytes.NewBufferString(`{"threshold":700}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `"answer":1400`) {
		t.Fatalf("body %q missing answer", body)
	}
}

func TestJSONHandler_BindError(t *testing.T) {
	t.Parallel()

	h := JSONHandler[thresholdDTO](func(_ *http.Request, _ thresholdDTO) (any, error) {
		t.Fatal("handler should not be called on bind error")
		return nil, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/ask", bytes.NewBufferString(`{`)) // invalid JSON
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h(rr, req)

	if rr.Code == http.StatusOK {
		t.Fatalf("expected non-200 on bind error, got %d", rr.Code)
	}
	if !strings.Contains(strings.ToLower(rr.Body.String()), "error") {
		t.Fatalf("expected error text in body, got %q", rr.Body.String())
	}
}

func TestJSONHandler_HandlerError(t *testing.T) {
	t.Parallel()

	h := JSONHandler[thresholdDTO](func(_ *http.Request, _ thresholdDTO) (any, error) {
		return nil, errors.New("boom")
	})

	req := httptest.NewRequest(http.MethodPost, "/ask", bytes.NewBufferString(`{"threshold":1}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h(rr, req)

	if rr.Code == http.StatusOK {
		t.Fatalf("expected non-200 on handler error, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "boom") {
		t.Fatalf("expected error message in body, got %q", rr.Body.String())
	}
}

func TestJSONHandlerNoBody_SuccessAndError(t *testing.T) {
	t.Parallel()

	h := JSONHandlerNoBody(func(_ *http.Request) (any, error) {
		return map[string]string{"service": "vidtally"}, nil
	})
	req := httptest.NewRequest(http.MethodGet, "/meta/version", nil)
	rr := httptest.NewRecorder()
	h(rr, req)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"service":"vidtally"`) {
		t.Fatalf("no-body success => code=%d body=%q", rr.Code, rr.Body.String())
	}

	hErr := JSONHandlerNoBody(func(_ *http.Request) (any, error) {
		return nil, errors.New("meta lookup failed")
	})
	rr2 := httptest.NewRecorder()
	hErr(rr2, httptest.NewRequest(http.MethodGet, "/meta/version", nil))
	if rr2.Code == http.StatusOK {
		t.Fatalf("expected non-200 on no-body handler error, got %d", rr2.Code)
	}
}
