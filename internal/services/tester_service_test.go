// internal/services/tester_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asterohype/backend/internal/models"
)

func TestCreateCodeGeneratesWhenOmitted(t *testing.T) {
	db := newServiceTestDB(t, &models.TesterCode{})
	svc := NewTesterService(db)

	code, err := svc.CreateCode(&CreateTesterCodeRequest{Label: "QA pool"})
	require.NoError(t, err)
	assert.Len(t, code.Code, generatedCodeLength)
	assert.True(t, code.IsActive)
}

func TestCreateCodeKeepsExplicitCode(t *testing.T) {
	db := newServiceTestDB(t, &models.TesterCode{})
	svc := NewTesterService(db)

	code, err := svc.CreateCode(&CreateTesterCodeRequest{Code: "FRIENDS-42"})
	require.NoError(t, err)
	assert.Equal(t, "FRIENDS-42", code.Code)
}
