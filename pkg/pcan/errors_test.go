package pcan

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode TPCANStatus
		wantOK   bool
	}{
		{name: "nil", err: nil, wantCode: PCAN_ERROR_OK, wantOK: false},
		{name: "plain", err: errors.New("boom"), wantCode: PCAN_ERROR_OK, wantOK: false},
		{name: "direct", err: PCANError{Code: PCAN_ERROR_QRCVEMPTY}, wantCode: PCAN_ERROR_QRCVEMPTY, wantOK: true},
		{name: "wrapped", err: fmt.Errorf("read: %w", PCANError{Code: PCAN_ERROR_BUSOFF}), wantCode: PCAN_ERROR_BUSOFF, wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := StatusOf(tt.err)
			if code != tt.wantCode || ok != tt.wantOK {
				t.Errorf("StatusOf() = 0x%X, %v, want 0x%X, %v", code, ok, tt.wantCode, tt.wantOK)
			}
		})
	}
}

func TestIsStatus(t *testing.T) {
	err := fmt.Errorf("write: %w", PCANError{Code: PCAN_ERROR_QXMTFULL})
	if !IsStatus(err, PCAN_ERROR_QXMTFULL) {
		t.Error("IsStatus() = false for wrapped QXMTFULL")
	}
	if IsStatus(err, PCAN_ERROR_XMTFULL) {
		t.Error("IsStatus() = true for a different code")
	}
}

func TestCheckStatus(t *testing.T) {
	if err := checkStatus(PCAN_ERROR_OK); err != nil {
		t.Errorf("checkStatus(OK) = %v, want nil", err)
	}
	err := checkStatus(PCAN_ERROR_ILLHW)
	if err == nil {
		t.Fatal("checkStatus(ILLHW) = nil")
	}
	if !strings.Contains(err.Error(), "invalid hardware handle") {
		t.Errorf("Error() = %q", err.Error())
	}
	if got := (PCANError{Code: 0x7777}).Error(); got != "pcan: status 0x07777" {
		t.Errorf("unknown code Error() = %q", got)
	}
}
