package approve_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitBookingService/internal/api/handlers"
	approveBooking "github.com/m04kA/SMC-VisitBookingService/internal/usecase/approve_booking"
)

type fakeUseCase struct {
	resp *approveBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *approveBooking.Request) (*approveBooking.Response, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc ApproveBookingUseCase, bookingID string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/approve", nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})

	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) handlers.Response {
	t.Helper()

	var resp handlers.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHandle_Admitted(t *testing.T) {
	uc := &fakeUseCase{resp: &approveBooking.Response{
		Admitted: true,
		Reason:   approveBooking.ReasonApproved,
	}}

	rec := doRequest(t, uc, "7")

	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Error)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(7), data["bookingId"])
	assert.Equal(t, true, data["admitted"])
	assert.Equal(t, approveBooking.ReasonApproved, data["reason"])
}

// Бизнес-отказ из-за нехватки мест - это 200 OK с admitted=false, не ошибка
func TestHandle_DeclinedIsStillOK(t *testing.T) {
	uc := &fakeUseCase{resp: &approveBooking.Response{
		Admitted: false,
		Reason:   approveBooking.ReasonNoSlots,
	}}

	rec := doRequest(t, uc, "7")

	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Error)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, data["admitted"])
	assert.Equal(t, approveBooking.ReasonNoSlots, data["reason"])
}

func TestHandle_NotFound(t *testing.T) {
	uc := &fakeUseCase{err: approveBooking.ErrBookingNotFound}

	rec := doRequest(t, uc, "42")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Error)
}

// Конфликт конкурентного доступа - 409, вызывающая сторона повторяет запрос
func TestHandle_ContentionReturnsConflict(t *testing.T) {
	uc := &fakeUseCase{err: approveBooking.ErrContention}

	rec := doRequest(t, uc, "7")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Error)
}

func TestHandle_InvalidBookingID(t *testing.T) {
	uc := &fakeUseCase{}

	rec := doRequest(t, uc, "abc")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Error)
}

func TestHandle_InternalError(t *testing.T) {
	uc := &fakeUseCase{err: approveBooking.ErrInternal}

	rec := doRequest(t, uc, "7")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Error)
}
