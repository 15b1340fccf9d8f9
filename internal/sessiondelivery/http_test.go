package sessiondelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"github.com/go-petr/invoice-dash/internal/domain"
	"github.com/go-petr/invoice-dash/pkg/errorspkg"
	"github.com/go-petr/invoice-dash/pkg/randompkg"
	"github.com/go-petr/invoice-dash/pkg/tokenpkg"
	"github.com/go-petr/invoice-dash/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestRenewAccessToken(t *testing.T) {
	refreshToken := randompkg.String(10)
	accessToken := randompkg.String(10)
	accessTokenExpiresAt := time.Now().Add(time.Minute).Truncate(time.Second).UTC()

	testCases := []struct {
		name           string
		requestBody    gin.H
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "OK",
			requestBody: gin.H{"refresh_token": refreshToken},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					RenewAccessToken(gomock.Any(), gomock.Eq(refreshToken)).
					Times(1).
					Return(accessToken, accessTokenExpiresAt, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:        "MissingRefreshToken",
			requestBody: gin.H{},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					RenewAccessToken(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:        "ExpiredToken",
			requestBody: gin.H{"refresh_token": refreshToken},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					RenewAccessToken(gomock.Any(), gomock.Eq(refreshToken)).
					Times(1).
					Return("", time.Time{}, tokenpkg.ErrExpiredToken)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      tokenpkg.ErrExpiredToken.Error(),
		},
		{
			name:        "BlockedSession",
			requestBody: gin.H{"refresh_token": refreshToken},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					RenewAccessToken(gomock.Any(), gomock.Eq(refreshToken)).
					Times(1).
					Return("", time.Time{}, domain.ErrBlockedSession)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrBlockedSession.Error(),
		},
		{
			name:        "SessionNotFound",
			requestBody: gin.H{"refresh_token": refreshToken},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					RenewAccessToken(gomock.Any(), gomock.Eq(refreshToken)).
					Times(1).
					Return("", time.Time{}, domain.ErrSessionNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrSessionNotFound.Error(),
		},
		{
			name:        "InternalServerError",
			requestBody: gin.H{"refresh_token": refreshToken},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					RenewAccessToken(gomock.Any(), gomock.Eq(refreshToken)).
					Times(1).
					Return("", time.Time{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			service := NewMockService(ctrl)
			handler := NewHandler(service)

			server := gin.New()
			server.POST("/sessions/renew", handler.RenewAccessToken)

			tc.buildStubs(service)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/sessions/renew", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			if tc.wantStatusCode == http.StatusOK {
				var res renewAccessTokenResponse
				if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
					t.Errorf("Decoding response body error: %v", err)
				}

				if res.AccessToken != accessToken {
					t.Errorf("res.AccessToken=%q, want %q", res.AccessToken, accessToken)
				}

				if !res.AccessTokenExpiresAt.Equal(accessTokenExpiresAt) {
					t.Errorf("res.AccessTokenExpiresAt=%v, want %v", res.AccessTokenExpiresAt, accessTokenExpiresAt)
				}

				return
			}

			if tc.wantError == "" {
				return
			}

			var res web.JSONError
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if res.Error != tc.wantError {
				t.Errorf("res.Error=%q, want %q", res.Error, tc.wantError)
			}
		})
	}
}
