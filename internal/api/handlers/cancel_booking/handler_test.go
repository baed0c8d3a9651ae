package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/PawsBubbles-BookingService/internal/service/bookings"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/bookings/models"
)

type mockService struct{ mock.Mock }

func (m *mockService) CancelByClient(ctx context.Context, id uuid.UUID, email string) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, id, email)
	resp, _ := args.Get(0).(*models.AppointmentResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *mockService, id string, payload string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}/cancel", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPatch)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+id+"/cancel", strings.NewReader(payload)))
	return w
}

func TestHandle(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "cancelled", want: http.StatusOK},
		{name: "too late", err: bookings.ErrTooLateToCancel, want: http.StatusConflict},
		{name: "other client", err: bookings.ErrAccessDenied, want: http.StatusForbidden},
		{name: "unknown", err: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "twice", err: bookings.ErrAlreadyCancelled, want: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.err != nil {
				svc.On("CancelByClient", mock.Anything, id, "ana@example.com").Return(nil, tt.err)
			} else {
				svc.On("CancelByClient", mock.Anything, id, "ana@example.com").
					Return(&models.AppointmentResponse{ID: id.String(), Status: "cancelled"}, nil)
			}

			w := serve(svc, id.String(), `{"email":"ana@example.com"}`)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandle_TooLateMessage(t *testing.T) {
	id := uuid.New()
	svc := &mockService{}
	svc.On("CancelByClient", mock.Anything, id, "ana@example.com").Return(nil, bookings.ErrTooLateToCancel)

	w := serve(svc, id.String(), `{"email":"ana@example.com"}`)
	assert.JSONEq(t, `{"error":"Lo sentimos, solo puedes cancelar hasta 3 horas antes de la cita."}`, w.Body.String())
}

func TestHandle_BadInput(t *testing.T) {
	svc := &mockService{}

	assert.Equal(t, http.StatusBadRequest, serve(svc, "42", `{"email":"ana@example.com"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(svc, uuid.NewString(), `{"email":"nope"}`).Code)
	svc.AssertNotCalled(t, "CancelByClient", mock.Anything, mock.Anything, mock.Anything)
}
