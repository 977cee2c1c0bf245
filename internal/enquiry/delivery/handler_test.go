package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"rcc-backend/internal/enquiry/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsecase struct {
	result *domain.Result
}

func (s *stubUsecase) Fetch(context.Context) *domain.Result { return s.result }

func serve(h *EnquiryHandler) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/enquiries", h.GetEnquiries)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/enquiries", nil))
	return w
}

func TestGetEnquiriesUnconfigured(t *testing.T) {
	w := serve(NewEnquiryHandler(nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"emails":[],"live":false,"message":"Gmail OAuth not configured"}`, w.Body.String())
}

func TestGetEnquiriesEmptyRunServesArray(t *testing.T) {
	w := serve(NewEnquiryHandler(&stubUsecase{result: &domain.Result{
		Live:     true,
		Accounts: domain.AccountStatus{domain.AccountPersonal: true, domain.AccountProfessional: false},
	}}))

	require.Equal(t, http.StatusOK, w.Code)
	// A run with no survivors serves [] rather than null.
	assert.JSONEq(t, `{
		"emails": [],
		"live": true,
		"accounts": {"personal": true, "professional": false}
	}`, w.Body.String())
}
