package userdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"

	"github.com/go-petr/invoice-dash/internal/authservice"
	"github.com/go-petr/invoice-dash/internal/domain"
	"github.com/go-petr/invoice-dash/pkg/errorspkg"
	"github.com/go-petr/invoice-dash/pkg/randompkg"
	"github.com/go-petr/invoice-dash/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func randomUser() domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		Username: randompkg.Owner(),
		FullName: randompkg.Owner(),
		Email:    randompkg.Email(),
	}
}

func newServer(t *testing.T, service Service, auth Authenticator, sessionMaker SessionMaker) *gin.Engine {
	t.Helper()

	handler := NewHandler(service, auth, sessionMaker)

	server := gin.New()
	server.POST("/users", handler.Create)
	server.POST("/login", handler.Login)

	return server
}

func TestCreate(t *testing.T) {
	user := randomUser()
	password := randompkg.String(10)

	session := domain.Session{
		Username:     user.Username,
		RefreshToken: randompkg.String(10),
		ExpiresAt:    time.Now().Add(time.Hour).Truncate(time.Second).UTC(),
	}
	accessToken := randompkg.String(10)
	accessTokenExpiresAt := time.Now().Add(time.Minute).Truncate(time.Second).UTC()

	type requestBody struct {
		Username string `json:"username"`
		Password string `json:"password"`
		FullName string `json:"fullname"`
		Email    string `json:"email"`
	}

	body := requestBody{
		Username: user.Username,
		Password: password,
		FullName: user.FullName,
		Email:    user.Email,
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		buildStubs     func(service *MockService, sessionMaker *MockSessionMaker)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "OK",
			requestBody: body,
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(user.Username), gomock.Eq(password), gomock.Eq(user.FullName), gomock.Eq(user.Email)).
					Times(1).
					Return(user, nil)

				sessionMaker.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(accessToken, accessTokenExpiresAt, session, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InvalidEmail",
			requestBody: requestBody{
				Username: user.Username,
				Password: password,
				FullName: user.FullName,
				Email:    "invalid-email",
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Email must be a valid email address",
		},
		{
			name: "ShortPassword",
			requestBody: requestBody{
				Username: user.Username,
				Password: "12345",
				FullName: user.FullName,
				Email:    user.Email,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Password must be at least 6 characters long",
		},
		{
			name:        "UsernameAlreadyExists",
			requestBody: body,
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrUsernameAlreadyExists)
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrUsernameAlreadyExists.Error(),
		},
		{
			name:        "EmailAlreadyExists",
			requestBody: body,
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrEmailAlreadyExists)
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrEmailAlreadyExists.Error(),
		},
		{
			name:        "SessionCreateError",
			requestBody: body,
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(user, nil)

				sessionMaker.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return("", time.Time{}, domain.Session{}, errorspkg.ErrInternal)
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
			auth := NewMockAuthenticator(ctrl)
			sessionMaker := NewMockSessionMaker(ctrl)

			server := newServer(t, service, auth, sessionMaker)

			tc.buildStubs(service, sessionMaker)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{Data: &userData{}}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf("res.Error=%q, want %q", res.Error, tc.wantError)
				}

				return
			}

			if res.AccessToken != accessToken || res.RefreshToken != session.RefreshToken {
				t.Errorf("Tokens: got (%q, %q), want (%q, %q)",
					res.AccessToken, res.RefreshToken, accessToken, session.RefreshToken)
			}

			got, ok := res.Data.(*userData)
			if !ok {
				t.Fatalf("res.Data=%v, failed type conversion", res.Data)
			}

			if diff := cmp.Diff(user, got.User); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	user := randomUser()
	password := randompkg.String(10)

	form := domain.LoginFormValues{
		Email:    user.Email,
		Password: password,
	}

	session := domain.Session{
		Username:     user.Username,
		RefreshToken: randompkg.String(10),
		ExpiresAt:    time.Now().Add(time.Hour).Truncate(time.Second).UTC(),
	}
	accessToken := randompkg.String(10)
	accessTokenExpiresAt := time.Now().Add(time.Minute).Truncate(time.Second).UTC()

	testCases := []struct {
		name           string
		buildStubs     func(auth *MockAuthenticator, sessionMaker *MockSessionMaker)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			buildStubs: func(auth *MockAuthenticator, sessionMaker *MockSessionMaker) {
				auth.EXPECT().
					Login(gomock.Any(), gomock.Eq(form)).
					Times(1).
					Return(user, "", nil)

				sessionMaker.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(accessToken, accessTokenExpiresAt, session, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InvalidCredentials",
			buildStubs: func(auth *MockAuthenticator, sessionMaker *MockSessionMaker) {
				auth.EXPECT().
					Login(gomock.Any(), gomock.Eq(form)).
					Times(1).
					Return(domain.UserWithoutPassword{}, authservice.MsgInvalidCredentials, nil)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      authservice.MsgInvalidCredentials,
		},
		{
			name: "SomethingWentWrong",
			buildStubs: func(auth *MockAuthenticator, sessionMaker *MockSessionMaker) {
				auth.EXPECT().
					Login(gomock.Any(), gomock.Eq(form)).
					Times(1).
					Return(domain.UserWithoutPassword{}, authservice.MsgSomethingWentWrong, nil)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      authservice.MsgSomethingWentWrong,
		},
		{
			name: "UnexpectedErrorPropagates",
			buildStubs: func(auth *MockAuthenticator, sessionMaker *MockSessionMaker) {
				auth.EXPECT().
					Login(gomock.Any(), gomock.Eq(form)).
					Times(1).
					Return(domain.UserWithoutPassword{}, "", errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
		{
			name: "SessionCreateError",
			buildStubs: func(auth *MockAuthenticator, sessionMaker *MockSessionMaker) {
				auth.EXPECT().
					Login(gomock.Any(), gomock.Eq(form)).
					Times(1).
					Return(user, "", nil)

				sessionMaker.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return("", time.Time{}, domain.Session{}, errorspkg.ErrInternal)
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
			auth := NewMockAuthenticator(ctrl)
			sessionMaker := NewMockSessionMaker(ctrl)

			server := newServer(t, service, auth, sessionMaker)

			tc.buildStubs(auth, sessionMaker)

			body := url.Values{
				"email":    {form.Email},
				"password": {form.Password},
			}

			req, err := http.NewRequest(http.MethodPost, "/login", strings.NewReader(body.Encode()))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{Data: &userData{}}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf("res.Error=%q, want %q", res.Error, tc.wantError)
				}

				return
			}

			if res.AccessToken != accessToken || res.RefreshToken != session.RefreshToken {
				t.Errorf("Tokens: got (%q, %q), want (%q, %q)",
					res.AccessToken, res.RefreshToken, accessToken, session.RefreshToken)
			}

			got, ok := res.Data.(*userData)
			if !ok {
				t.Fatalf("res.Data=%v, failed type conversion", res.Data)
			}

			if diff := cmp.Diff(user, got.User); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
