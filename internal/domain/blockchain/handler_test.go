package blockchain

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/omnihealth/guardian/internal/platform/chain"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	svc := NewService(newMockWalletRepo(), testPatients(), testAlerts(), chain.NewClient("missing.json"))
	return NewHandler(svc)
}

func TestVerifyTxHandler_ReceiptShape(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/blockchain/verify/0xfeed", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("txHash")
	c.SetParamValues("0xfeed")

	if err := newTestHandler(t).VerifyTx(c); err != nil {
		t.Fatalf("VerifyTx failed: %v", err)
	}
	var receipt chain.Receipt
	if err := json.Unmarshal(rec.Body.Bytes(), &receipt); err != nil {
		t.Fatalf("decode receipt: %v", err)
	}
	if receipt.TxHash != "0xfeed" || receipt.Status != "confirmed" {
		t.Errorf("unexpected receipt %+v", receipt)
	}
	if receipt.BlockNumber < 1_000_000 || receipt.BlockNumber >= 2_000_000 {
		t.Errorf("block number %d out of range", receipt.BlockNumber)
	}
}

func TestGetWalletHandler_PatientNotFound(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/blockchain/wallet/ghost", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patientID")
	c.SetParamValues("ghost")

	err := newTestHandler(t).GetWallet(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
	if httpErr.Message != "Patient not found" {
		t.Errorf("unexpected message %v", httpErr.Message)
	}
}

func TestRecordAlertHandler_QueryParam(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/blockchain/record-alert?alert_id=a1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := newTestHandler(t).RecordAlert(c); err != nil {
		t.Fatalf("RecordAlert failed: %v", err)
	}
	var result RecordResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Status != "simulated" || result.AlertID != "a1" {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestRecordAlertHandler_JSONBody(t *testing.T) {
	e := echo.New()
	body := strings.NewReader(`{"alert_id":"a1"}`)
	req := httptest.NewRequest(http.MethodPost, "/blockchain/record-alert", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := newTestHandler(t).RecordAlert(c); err != nil {
		t.Fatalf("RecordAlert failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRecordAlertHandler_UnknownAlert(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/blockchain/record-alert?alert_id=ghost", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := newTestHandler(t).RecordAlert(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
	if httpErr.Message != "Alert not found" {
		t.Errorf("unexpected message %v", httpErr.Message)
	}
}
