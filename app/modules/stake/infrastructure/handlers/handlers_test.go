package stakehandlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	stakeservice "github.com/apvc-club/stake-reservations/app/modules/stake/application"
	stakedomain "github.com/apvc-club/stake-reservations/app/modules/stake/domain"
	stakedb "github.com/apvc-club/stake-reservations/app/modules/stake/infrastructure/repositories"
	tournamentservice "github.com/apvc-club/stake-reservations/app/modules/tournament/application"
	"github.com/apvc-club/stake-reservations/internal/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeStakeService struct {
	reserveFn func(ctx context.Context, stakeID uuid.UUID, name, phone string) (*stakeservice.ReserveResult, error)
	confirmFn func(ctx context.Context, stakeID uuid.UUID) (*stakedb.Stake, error)
	cancelFn  func(ctx context.Context, stakeID uuid.UUID) (*stakedb.Stake, error)
	listFn    func(ctx context.Context, birdTypeID uuid.UUID) ([]stakedb.Stake, error)
	exportFn  func(ctx context.Context, tournamentID uuid.UUID) (*excelize.File, error)
}

func (f *fakeStakeService) Reserve(ctx context.Context, stakeID uuid.UUID, name, phone string) (*stakeservice.ReserveResult, error) {
	return f.reserveFn(ctx, stakeID, name, phone)
}

func (f *fakeStakeService) ConfirmPayment(ctx context.Context, stakeID uuid.UUID) (*stakedb.Stake, error) {
	return f.confirmFn(ctx, stakeID)
}

func (f *fakeStakeService) CancelReservation(ctx context.Context, stakeID uuid.UUID) (*stakedb.Stake, error) {
	return f.cancelFn(ctx, stakeID)
}

func (f *fakeStakeService) ListByBirdType(ctx context.Context, birdTypeID uuid.UUID) ([]stakedb.Stake, error) {
	return f.listFn(ctx, birdTypeID)
}

func (f *fakeStakeService) ExportWorkbook(ctx context.Context, tournamentID uuid.UUID) (*excelize.File, error) {
	return f.exportFn(ctx, tournamentID)
}

type fakeTournamentService struct {
	tournamentservice.Service
}

func newRouter(svc stakeservice.Service) http.Handler {
	h := NewStakeHandlers(svc, &fakeTournamentService{})
	r := chi.NewRouter()
	r.Get("/api/bird-types/{birdTypeID}/stakes", h.ListByBirdType)
	r.Post("/api/stakes/{stakeID}/reserve", h.Reserve)
	r.Post("/api/admin/stakes/{stakeID}/confirm", h.ConfirmPayment)
	r.Post("/api/admin/stakes/{stakeID}/cancel", h.CancelReservation)
	r.Get("/api/admin/export", h.Export)
	return r
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorBody {
	t.Helper()
	var body httputil.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestReserveHandler(t *testing.T) {
	stakeID := uuid.New()

	t.Run("success", func(t *testing.T) {
		router := newRouter(&fakeStakeService{
			reserveFn: func(_ context.Context, id uuid.UUID, name, phone string) (*stakeservice.ReserveResult, error) {
				assert.Equal(t, stakeID, id)
				return &stakeservice.ReserveResult{
					Stake: &stakedb.Stake{ID: id, Number: 7, Status: stakedomain.StatusPending},
					Payment: stakeservice.PaymentInstructions{
						AmountCents: 5000,
						PixKey:      "chave-pix@apvc.club",
					},
				}, nil
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/api/stakes/"+stakeID.String()+"/reserve",
			strings.NewReader(`{"customer_name":"Maria","customer_phone":"+5511988887777"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var result stakeservice.ReserveResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		assert.Equal(t, "chave-pix@apvc.club", result.Payment.PixKey)
	})

	t.Run("conflict is not validation", func(t *testing.T) {
		router := newRouter(&fakeStakeService{
			reserveFn: func(context.Context, uuid.UUID, string, string) (*stakeservice.ReserveResult, error) {
				return nil, stakedb.ErrStakeNotAvailable
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/api/stakes/"+stakeID.String()+"/reserve",
			strings.NewReader(`{"customer_name":"Maria","customer_phone":"+5511988887777"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "conflict", decodeError(t, rec).Code)
	})

	t.Run("validation error", func(t *testing.T) {
		router := newRouter(&fakeStakeService{
			reserveFn: func(context.Context, uuid.UUID, string, string) (*stakeservice.ReserveResult, error) {
				return nil, &stakeservice.ValidationError{Field: "customer_name"}
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/api/stakes/"+stakeID.String()+"/reserve",
			strings.NewReader(`{"customer_phone":"+5511988887777"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "validation", decodeError(t, rec).Code)
	})

	t.Run("not found", func(t *testing.T) {
		router := newRouter(&fakeStakeService{
			reserveFn: func(context.Context, uuid.UUID, string, string) (*stakeservice.ReserveResult, error) {
				return nil, stakedb.ErrStakeNotFound
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/api/stakes/"+stakeID.String()+"/reserve",
			strings.NewReader(`{"customer_name":"Maria","customer_phone":"+5511988887777"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid stake id", func(t *testing.T) {
		router := newRouter(&fakeStakeService{})

		req := httptest.NewRequest(http.MethodPost, "/api/stakes/not-a-uuid/reserve",
			strings.NewReader(`{"customer_name":"Maria","customer_phone":"+5511988887777"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestConfirmHandler(t *testing.T) {
	stakeID := uuid.New()

	t.Run("success", func(t *testing.T) {
		router := newRouter(&fakeStakeService{
			confirmFn: func(_ context.Context, id uuid.UUID) (*stakedb.Stake, error) {
				return &stakedb.Stake{ID: id, Status: stakedomain.StatusConfirmed}, nil
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/api/admin/stakes/"+stakeID.String()+"/confirm", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid transition", func(t *testing.T) {
		router := newRouter(&fakeStakeService{
			confirmFn: func(context.Context, uuid.UUID) (*stakedb.Stake, error) {
				return nil, stakedb.ErrInvalidTransition
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/api/admin/stakes/"+stakeID.String()+"/confirm", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "conflict", decodeError(t, rec).Code)
	})
}

func TestCancelHandler(t *testing.T) {
	stakeID := uuid.New()

	router := newRouter(&fakeStakeService{
		cancelFn: func(_ context.Context, id uuid.UUID) (*stakedb.Stake, error) {
			return &stakedb.Stake{ID: id, Status: stakedomain.StatusAvailable}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/stakes/"+stakeID.String()+"/cancel", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var stake stakedb.Stake
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stake))
	assert.Equal(t, stakedomain.StatusAvailable, stake.Status)
}

func TestListHandler(t *testing.T) {
	birdTypeID := uuid.New()

	router := newRouter(&fakeStakeService{
		listFn: func(_ context.Context, id uuid.UUID) ([]stakedb.Stake, error) {
			assert.Equal(t, birdTypeID, id)
			return []stakedb.Stake{
				{Number: 1, Status: stakedomain.StatusAvailable},
				{Number: 2, Status: stakedomain.StatusPending},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/bird-types/"+birdTypeID.String()+"/stakes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var stakes []stakedb.Stake
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stakes))
	assert.Len(t, stakes, 2)
}

func TestExportHandler(t *testing.T) {
	tournamentID := uuid.New()

	router := newRouter(&fakeStakeService{
		exportFn: func(_ context.Context, id uuid.UUID) (*excelize.File, error) {
			assert.Equal(t, tournamentID, id)
			return excelize.NewFile(), nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/export?tournament_id="+tournamentID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, rec.Body.Len())
}
