package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haythbl004/uni-console/internal/models"
	"github.com/haythbl004/uni-console/internal/session"
	"github.com/haythbl004/uni-console/internal/upstream"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
)

type fakeCoefficientUpstream struct {
	coefficients []models.Coefficient
	updateCalls  int
	deleteCalls  int
}

func (f *fakeCoefficientUpstream) ListCoefficients(ctx context.Context, creds upstream.Credentials) ([]models.Coefficient, error) {
	return f.coefficients, nil
}

func (f *fakeCoefficientUpstream) UpdateCoefficient(ctx context.Context, creds upstream.Credentials, seanceType string, value float64) (*models.Coefficient, error) {
	f.updateCalls++
	coefficient := models.Coefficient{SeanceType: seanceType, Value: value}
	for i := range f.coefficients {
		if f.coefficients[i].SeanceType == seanceType {
			f.coefficients[i].Value = value
			return &coefficient, nil
		}
	}
	f.coefficients = append(f.coefficients, coefficient)
	return &coefficient, nil
}

func (f *fakeCoefficientUpstream) DeleteCoefficient(ctx context.Context, creds upstream.Credentials, seanceType string) error {
	f.deleteCalls++
	return nil
}

func newCoefficientFixture(t *testing.T, up *fakeCoefficientUpstream) (*CoefficientService, *session.Session) {
	t.Helper()
	store := session.NewMemoryStore(time.Hour)
	auth := newTestAuth(&fakeAuthUpstream{}, store, session.NewTokenManager("test_secret", time.Hour))
	svc := NewCoefficientService(up, auth, store, validator.New(), zap.NewNop(), testConsoleConfig())
	return svc, testSession(t, store)
}

func TestCoefficientServiceUpdateUpserts(t *testing.T) {
	up := &fakeCoefficientUpstream{}
	svc, sess := newCoefficientFixture(t, up)

	page, err := svc.Update(context.Background(), sess, 1, models.SeanceTD, CoefficientForm{Value: 1.25})
	require.NoError(t, err)
	assert.Equal(t, 1, up.updateCalls)
	require.Len(t, page.Items, 1)
	assert.Equal(t, models.SeanceTD, page.Items[0].SeanceType)
	require.NotNil(t, page.Flash)
	assert.Equal(t, "Coefficient updated successfully!", page.Flash.Message)
}

func TestCoefficientServiceUpdateUnknownType(t *testing.T) {
	up := &fakeCoefficientUpstream{}
	svc, sess := newCoefficientFixture(t, up)

	_, err := svc.Update(context.Background(), sess, 1, "lecture", CoefficientForm{Value: 1.25})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, up.updateCalls)
}

func TestCoefficientServiceUpdateRejectsNonPositiveValue(t *testing.T) {
	up := &fakeCoefficientUpstream{}
	svc, sess := newCoefficientFixture(t, up)

	_, err := svc.Update(context.Background(), sess, 1, models.SeanceCours, CoefficientForm{Value: 0})
	require.Error(t, err)
	assert.Equal(t, 0, up.updateCalls)
}

func TestCoefficientServiceDeleteUnknownType(t *testing.T) {
	up := &fakeCoefficientUpstream{}
	svc, sess := newCoefficientFixture(t, up)

	_, err := svc.Delete(context.Background(), sess, 1, "seminar")
	require.Error(t, err)
	assert.Equal(t, 0, up.deleteCalls)
}

func TestCoefficientServiceDelete(t *testing.T) {
	up := &fakeCoefficientUpstream{coefficients: []models.Coefficient{{SeanceType: models.SeanceTP, Value: 2}}}
	svc, sess := newCoefficientFixture(t, up)

	page, err := svc.Delete(context.Background(), sess, 1, models.SeanceTP)
	require.NoError(t, err)
	assert.Equal(t, 1, up.deleteCalls)
	require.NotNil(t, page.Flash)
	assert.Equal(t, "Coefficient deleted successfully!", page.Flash.Message)
}
