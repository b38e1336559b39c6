package routes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/identity"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func issueToken(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := identity.NewIssuer("test-secret").Issue(u)
	require.NoError(t, err)
	return token
}
