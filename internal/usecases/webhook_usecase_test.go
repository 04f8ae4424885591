package usecases

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
)

func TestCreateWebhook_GeneratesSecret(t *testing.T) {
	repo := new(MockWebhookRepository)
	usecase := NewWebhookUsecase(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Webhook")).Return(nil)

	webhook, secret, err := usecase.CreateWebhook(context.Background(), uuid.New(), &entities.CreateWebhookInput{
		URL:    "https://hooks.example.com/receive",
		Events: []string{EventEntryPublished},
	})
	require.NoError(t, err)
	assert.Len(t, secret, 64)
	assert.Equal(t, secret, webhook.Secret)
	assert.True(t, webhook.IsActive)
}

func TestCreateWebhook_RequiresEvents(t *testing.T) {
	repo := new(MockWebhookRepository)
	usecase := NewWebhookUsecase(repo)

	_, _, err := usecase.CreateWebhook(context.Background(), uuid.New(), &entities.CreateWebhookInput{
		URL: "https://hooks.example.com/receive",
	})

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeValidationError, appErr.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestDeliver_SignsPayload(t *testing.T) {
	var (
		gotSignature string
		gotBody      []byte
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSignature = r.Header.Get("X-SiteWeaver-Signature")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	usecase := NewWebhookUsecase(new(MockWebhookRepository))
	webhook := &entities.Webhook{
		ID:     uuid.New(),
		SiteID: uuid.New(),
		URL:    server.URL,
		Secret: "topsecret",
	}

	err := usecase.deliver(context.Background(), webhook, WebhookEvent{
		Event:      EventEntryPublished,
		SiteID:     webhook.SiteID,
		OccurredAt: time.Now().UTC(),
		Data:       map[string]string{"slug": "hello"},
	})
	require.NoError(t, err)

	mac := hmac.New(sha256.New, []byte("topsecret"))
	mac.Write(gotBody)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), gotSignature)
}

func TestDeliver_TimeoutClassifiedDistinctly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	usecase := NewWebhookUsecase(new(MockWebhookRepository))
	usecase.httpClient = &http.Client{Timeout: 50 * time.Millisecond}

	webhook := &entities.Webhook{ID: uuid.New(), URL: server.URL, Secret: "s"}
	err := usecase.deliver(context.Background(), webhook, WebhookEvent{Event: EventEntryUpdated})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestDeliver_ConnectionRefusedIsNotATimeout(t *testing.T) {
	usecase := NewWebhookUsecase(new(MockWebhookRepository))

	webhook := &entities.Webhook{ID: uuid.New(), URL: "http://127.0.0.1:1", Secret: "s"}
	err := usecase.deliver(context.Background(), webhook, WebhookEvent{Event: EventEntryUpdated})

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "timed out")
}

func TestDeliver_Non2xxIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	usecase := NewWebhookUsecase(new(MockWebhookRepository))
	webhook := &entities.Webhook{ID: uuid.New(), URL: server.URL, Secret: "s"}
	err := usecase.deliver(context.Background(), webhook, WebhookEvent{Event: EventEntryDeleted})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestDispatch_RecordsLastFired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	repo := new(MockWebhookRepository)
	usecase := NewWebhookUsecase(repo)

	siteID := uuid.New()
	webhook := &entities.Webhook{
		ID:       uuid.New(),
		SiteID:   siteID,
		URL:      server.URL,
		Secret:   "s",
		Events:   []string{EventEntryPublished},
		IsActive: true,
	}
	repo.On("ListActiveByEvent", mock.Anything, siteID, EventEntryPublished).
		Return([]*entities.Webhook{webhook}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(w *entities.Webhook) bool {
		return w.ID == webhook.ID && w.LastFired.Valid
	})).Return(nil)

	usecase.Dispatch(context.Background(), siteID, EventEntryPublished, map[string]string{"slug": "x"})
	repo.AssertExpectations(t)
}

func TestDeleteWebhook_WrongSite(t *testing.T) {
	repo := new(MockWebhookRepository)
	usecase := NewWebhookUsecase(repo)

	webhook := &entities.Webhook{ID: uuid.New(), SiteID: uuid.New()}
	repo.On("GetByID", mock.Anything, webhook.ID).Return(webhook, nil)

	err := usecase.DeleteWebhook(context.Background(), uuid.New(), webhook.ID)

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeNotFound, appErr.Code)
	repo.AssertNotCalled(t, "Delete")
}
