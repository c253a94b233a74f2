package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/offboarding"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/review"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/tenant"
)

func handle(t *testing.T, err error) (int, string) {
	t.Helper()

	rec := httptest.NewRecorder()
	HandleError(rec, err)

	var body struct {
		Success bool `json:"success"`
		Error   *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.False(t, body.Success)
	return rec.Code, body.Error.Code
}

func TestHandleError_ChecklistIncompleteIsBadRequest(t *testing.T) {
	code, _ := handle(t, offboarding.ErrChecklistIncomplete)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHandleError_TierRequiredIsForbidden(t *testing.T) {
	code, errCode := handle(t, tenant.ErrTierRequired)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "TIER_REQUIRED", errCode)
}

func TestHandleError_ConflictsStayConflicts(t *testing.T) {
	code, _ := handle(t, review.ErrAlreadyCommitted)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = handle(t, offboarding.ErrWorkflowExists)
	assert.Equal(t, http.StatusConflict, code)
}
