package api

import (
	"encoding/json"
	"fmt"
	"micromon/internal/entity"
	"net/http"
	"testing"
)

func seedAlert(t *testing.T, env *testEnv, alert entity.DbAlert) uint {
	t.Helper()
	if err := env.repo.CreateAlert(t.Context(), &alert); err != nil {
		t.Fatalf("CreateAlert() error = %v", err)
	}
	return alert.ID
}

func TestCreateAlertDefaults(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "manager", "manager123", entity.UserRoleManager)
	token := env.login(t, "manager", "manager123")

	w := env.do(t, http.MethodPost, "/alerts", token, entity.AlertCreateRequest{
		Name:      "disk almost full",
		Condition: "disk > 90",
		Severity:  entity.AlertSeverityHigh,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}

	var alert entity.DbAlert
	if err := json.Unmarshal(w.Body.Bytes(), &alert); err != nil {
		t.Fatalf("decode alert: %v", err)
	}
	if !alert.Enabled {
		t.Error("new alert not enabled")
	}
	if alert.Status != entity.AlertStatusActive {
		t.Errorf("status = %q, want %q", alert.Status, entity.AlertStatusActive)
	}
	if alert.ID == 0 {
		t.Error("alert ID not assigned")
	}
}

func TestCreateAlertValidation(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "manager", "manager123", entity.UserRoleManager)
	token := env.login(t, "manager", "manager123")

	tests := []struct {
		name       string
		body       entity.AlertCreateRequest
		wantFields []string
	}{
		{
			name:       "all fields missing",
			body:       entity.AlertCreateRequest{},
			wantFields: []string{"name", "condition", "severity"},
		},
		{
			name:       "unknown severity",
			body:       entity.AlertCreateRequest{Name: "x", Condition: "y", Severity: "catastrophic"},
			wantFields: []string{"severity"},
		},
		{
			name:       "whitespace only name",
			body:       entity.AlertCreateRequest{Name: "   ", Condition: "y", Severity: entity.AlertSeverityLow},
			wantFields: []string{"name"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/alerts", token, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			apiErr := decodeAPIError(t, w)
			if apiErr.Code != ErrCodeValidationFailed {
				t.Fatalf("code = %q, want %q", apiErr.Code, ErrCodeValidationFailed)
			}
			got := make([]string, 0, len(apiErr.Errors))
			for _, fe := range apiErr.Errors {
				got = append(got, fe.Field)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.wantFields) {
				t.Errorf("error fields = %v, want %v", got, tt.wantFields)
			}
			if len(env.repo.alerts) != 0 {
				t.Error("rejected request still created an alert")
			}
		})
	}
}

func TestToggleAlertLeavesOtherFieldsAlone(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "admin", "admin123", entity.UserRoleAdmin)
	token := env.login(t, "admin", "admin123")

	id := seedAlert(t, env, entity.DbAlert{
		Name:        "memory pressure",
		Condition:   "memory > 85",
		Severity:    entity.AlertSeverityMedium,
		Description: "page the on-call",
		Enabled:     true,
		Status:      entity.AlertStatusActive,
	})

	w := env.do(t, http.MethodPut, fmt.Sprintf("/alerts/%d/toggle", id), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	stored := env.repo.alerts[id]
	if stored.Enabled {
		t.Error("enabled flag not flipped")
	}
	if stored.Name != "memory pressure" || stored.Condition != "memory > 85" ||
		stored.Severity != entity.AlertSeverityMedium || stored.Description != "page the on-call" ||
		stored.Status != entity.AlertStatusActive {
		t.Errorf("toggle touched other fields: %+v", stored)
	}

	// Toggling again restores the original value.
	w = env.do(t, http.MethodPut, fmt.Sprintf("/alerts/%d/toggle", id), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("second toggle: status = %d", w.Code)
	}
	if !env.repo.alerts[id].Enabled {
		t.Error("second toggle did not re-enable")
	}
}

func TestUpdateAlertPartial(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "admin", "admin123", entity.UserRoleAdmin)
	token := env.login(t, "admin", "admin123")

	id := seedAlert(t, env, entity.DbAlert{
		Name:      "cpu spike",
		Condition: "cpu > 95",
		Severity:  entity.AlertSeverityLow,
		Enabled:   true,
		Status:    entity.AlertStatusActive,
	})

	severity := entity.AlertSeverityHigh
	status := entity.AlertStatusResolved
	w := env.do(t, http.MethodPut, fmt.Sprintf("/alerts/%d", id), token, entity.AlertUpdateRequest{
		Severity: &severity,
		Status:   &status,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	stored := env.repo.alerts[id]
	if stored.Severity != entity.AlertSeverityHigh || stored.Status != entity.AlertStatusResolved {
		t.Errorf("update not applied: %+v", stored)
	}
	if stored.Name != "cpu spike" || stored.Condition != "cpu > 95" {
		t.Errorf("unrelated fields changed: %+v", stored)
	}
}

func TestAlertNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "admin", "admin123", entity.UserRoleAdmin)
	token := env.login(t, "admin", "admin123")

	name := "renamed"
	tests := []struct {
		desc   string
		method string
		path   string
		body   interface{}
	}{
		{"update", http.MethodPut, "/alerts/99", entity.AlertUpdateRequest{Name: &name}},
		{"toggle", http.MethodPut, "/alerts/99/toggle", nil},
		{"delete", http.MethodDelete, "/alerts/99", nil},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			w := env.do(t, tt.method, tt.path, token, tt.body)
			if w.Code != http.StatusNotFound {
				t.Errorf("status = %d, want 404", w.Code)
			}
		})
	}
}

func TestDeleteAlert(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "admin", "admin123", entity.UserRoleAdmin)
	token := env.login(t, "admin", "admin123")

	id := seedAlert(t, env, entity.DbAlert{
		Name:      "old rule",
		Condition: "cpu > 10",
		Severity:  entity.AlertSeverityLow,
		Enabled:   true,
		Status:    entity.AlertStatusActive,
	})

	w := env.do(t, http.MethodDelete, fmt.Sprintf("/alerts/%d", id), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if _, exists := env.repo.alerts[id]; exists {
		t.Error("alert still present after delete")
	}
}
