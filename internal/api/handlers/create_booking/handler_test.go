package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	createBooking "github.com/m04kA/PawsBubbles-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/types"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createBooking.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var bogota = time.FixedZone("COT", -5*60*60)

func body(serviceID uuid.UUID, startTime string) string {
	return fmt.Sprintf(`{
		"serviceId": %q,
		"petName": "Luna",
		"date": "2026-10-20",
		"startTime": %q,
		"clientName": "Ana",
		"clientEmail": "ana@example.com",
		"clientPhone": "300 123 4567"
	}`, serviceID, startTime)
}

func TestHandle_Created(t *testing.T) {
	serviceID := uuid.New()
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.ServiceID == serviceID &&
			req.StartTime == types.TimeString("10:00") &&
			req.Date.Equal(time.Date(2026, 10, 20, 0, 0, 0, 0, bogota))
	})).Return(&createBooking.Response{Appointment: &domain.Appointment{
		ID:        uuid.New(),
		PetName:   "Luna",
		Date:      time.Date(2026, 10, 20, 0, 0, 0, 0, bogota),
		StartTime: "10:00",
		Status:    domain.StatusConfirmed,
	}}, nil)

	w := httptest.NewRecorder()
	NewHandler(uc, bogota, nopLogger{}).Handle(w,
		httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body(serviceID, "10:00:00"))))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "confirmed", resp["status"])
	assert.Equal(t, "2026-10-20", resp["appointmentDate"])
}

func TestHandle_TrimsPaddedEmail(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.ClientEmail == "Ana@Mail.com" && req.PetName == "Luna"
	})).Return(&createBooking.Response{Appointment: &domain.Appointment{
		ID:          uuid.New(),
		PetName:     "Luna",
		ClientEmail: "ana@mail.com",
		Date:        time.Date(2026, 10, 20, 0, 0, 0, 0, bogota),
		StartTime:   "10:00",
		Status:      domain.StatusConfirmed,
	}}, nil)

	payload := strings.Replace(body(uuid.New(), "10:00"), `"ana@example.com"`, `" Ana@Mail.com "`, 1)
	payload = strings.Replace(payload, `"Luna"`, `"  Luna "`, 1)

	w := httptest.NewRecorder()
	NewHandler(uc, bogota, nopLogger{}).Handle(w,
		httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload)))

	assert.Equal(t, http.StatusCreated, w.Code)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "slot taken", err: createBooking.ErrSlotNotAvailable, want: http.StatusConflict},
		{name: "service missing", err: createBooking.ErrServiceNotFound, want: http.StatusNotFound},
		{name: "closed day", err: createBooking.ErrDayClosed, want: http.StatusBadRequest},
		{name: "off grid", err: createBooking.ErrInvalidTimeSlot, want: http.StatusBadRequest},
		{name: "internal", err: fmt.Errorf("%w: db down", createBooking.ErrInternal), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			NewHandler(uc, bogota, nopLogger{}).Handle(w,
				httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body(uuid.New(), "10:00"))))

			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestHandle_RejectsBeforeUseCase(t *testing.T) {
	for name, payload := range map[string]string{
		"broken json":   `{"serviceId":`,
		"bad email":     strings.Replace(body(uuid.New(), "10:00"), "ana@example.com", "ana", 1),
		"bad time":      body(uuid.New(), "10h"),
		"missing pet":   strings.Replace(body(uuid.New(), "10:00"), `"Luna"`, `""`, 1),
		"bad date":      strings.Replace(body(uuid.New(), "10:00"), "2026-10-20", "20/10/2026", 1),
		"unknown field": `{"serviceId":"x","foo":1}`,
	} {
		t.Run(name, func(t *testing.T) {
			uc := &mockUseCase{}
			w := httptest.NewRecorder()
			NewHandler(uc, bogota, nopLogger{}).Handle(w,
				httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload)))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}
