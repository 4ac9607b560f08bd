package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/users/internal/errors"
	"github.com/allisson/users/internal/httputil"
	"github.com/allisson/users/internal/user/domain"
	"github.com/allisson/users/internal/user/http/dto"
	"github.com/allisson/users/internal/user/usecase"
)

// MockUserUseCase is a mock implementation of usecase.UseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserUseCase) Create(ctx context.Context, input usecase.UserInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) FullUpdate(
	ctx context.Context,
	id int64,
	input usecase.UserInput,
) (*domain.User, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) PartialUpdate(
	ctx context.Context,
	id int64,
	patch usecase.UserPatch,
) (*domain.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserUseCase) SearchByBirthDateRange(
	ctx context.Context,
	from, to domain.Date,
) ([]*domain.User, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func setupRouter(useCase usecase.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handler := NewUserHandler(useCase, logger)

	router := gin.New()
	users := router.Group("/api/v1/users")
	{
		users.GET("", handler.ListHandler)
		users.POST("", handler.CreateHandler)
		users.GET("/by-date-range", handler.SearchByDateRangeHandler)
		users.PUT("/:id", handler.FullUpdateHandler)
		users.PATCH("/:id", handler.PartialUpdateHandler)
		users.DELETE("/:id", handler.DeleteHandler)
	}
	return router
}

func performRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func handlerUser() *domain.User {
	return &domain.User{
		ID:          1,
		FirstName:   "Bob",
		LastName:    "Smith",
		Email:       "bobsmith@example.com",
		BirthDate:   domain.NewDate(2000, time.January, 1),
		Address:     "123 Main St, City",
		PhoneNumber: "123-456-7890",
		CreatedAt:   time.Date(2026, time.January, 2, 15, 4, 5, 0, time.UTC),
		UpdatedAt:   time.Date(2026, time.January, 2, 15, 4, 5, 0, time.UTC),
	}
}

func requestBody() map[string]any {
	return map[string]any{
		"first_name":   "Bob",
		"last_name":    "Smith",
		"email":        "bobsmith@example.com",
		"birth_date":   "2000-01-01",
		"address":      "123 Main St, City",
		"phone_number": "123-456-7890",
	}
}

func TestUserHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)

		useCase.On("List", mock.Anything).Return([]*domain.User{handlerUser()}, nil)

		recorder := performRequest(router, http.MethodGet, "/api/v1/users", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var response []dto.UserResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		require.Len(t, response, 1)
		assert.Equal(t, int64(1), response[0].ID)
		assert.Equal(t, "bobsmith@example.com", response[0].Email)
	})

	t.Run("EmptyListIsJSONArray", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)

		useCase.On("List", mock.Anything).Return([]*domain.User{}, nil)

		recorder := performRequest(router, http.MethodGet, "/api/v1/users", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `[]`, recorder.Body.String())
	})
}

func TestUserHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)

		useCase.On("Create", mock.Anything, mock.AnythingOfType("usecase.UserInput")).
			Return(handlerUser(), nil)

		recorder := performRequest(router, http.MethodPost, "/api/v1/users", requestBody())
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var response dto.UserResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, int64(1), response.ID)
		assert.Equal(t, "2000-01-01", response.BirthDate.String())
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader([]byte(`{not json`)))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		useCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("MalformedBirthDate", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)
		body := requestBody()
		body["birth_date"] = "01/01/2000"

		recorder := performRequest(router, http.MethodPost, "/api/v1/users", body)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		useCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("EmptyStringBirthDate", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)
		body := requestBody()
		body["birth_date"] = ""

		recorder := performRequest(router, http.MethodPost, "/api/v1/users", body)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		useCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)

		takenErr := apperrors.Wrapf(domain.ErrEmailTaken, "user with email %s already exists", "bobsmith@example.com")
		useCase.On("Create", mock.Anything, mock.AnythingOfType("usecase.UserInput")).
			Return(nil, takenErr)

		recorder := performRequest(router, http.MethodPost, "/api/v1/users", requestBody())
		assert.Equal(t, http.StatusConflict, recorder.Code)

		var response httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Contains(t, response.Message, "already exists")
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)

		invalidErr := apperrors.Wrap(domain.ErrInvalidBirthDate, "birth date is required")
		useCase.On("Create", mock.Anything, mock.AnythingOfType("usecase.UserInput")).
			Return(nil, invalidErr)

		body := requestBody()
		delete(body, "birth_date")
		recorder := performRequest(router, http.MethodPost, "/api/v1/users", body)
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestUserHandler_FullUpdate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)

		useCase.On("FullUpdate", mock.Anything, int64(1), mock.AnythingOfType("usecase.UserInput")).
			Return(handlerUser(), nil)

		recorder := performRequest(router, http.MethodPut, "/api/v1/users/1", requestBody())
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)

		notFound := apperrors.Wrapf(domain.ErrUserNotFound, "user by id %d not found", 42)
		useCase.On("FullUpdate", mock.Anything, int64(42), mock.AnythingOfType("usecase.UserInput")).
			Return(nil, notFound)

		recorder := performRequest(router, http.MethodPut, "/api/v1/users/42", requestBody())
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)

		recorder := performRequest(router, http.MethodPut, "/api/v1/users/abc", requestBody())
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		useCase.AssertNotCalled(t, "FullUpdate", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserHandler_PartialUpdate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)

		useCase.On("PartialUpdate", mock.Anything, int64(1), mock.AnythingOfType("usecase.UserPatch")).
			Run(func(args mock.Arguments) {
				patch := args.Get(2).(usecase.UserPatch)
				require.NotNil(t, patch.FirstName)
				assert.Equal(t, "Alice", *patch.FirstName)
				assert.Nil(t, patch.Email)
				assert.Nil(t, patch.BirthDate)
			}).
			Return(handlerUser(), nil)

		recorder := performRequest(router, http.MethodPatch, "/api/v1/users/1", map[string]any{
			"first_name": "Alice",
		})
		assert.Equal(t, http.StatusOK, recorder.Code)
		useCase.AssertExpectations(t)
	})

	t.Run("EmptyStringBirthDate", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)

		recorder := performRequest(router, http.MethodPatch, "/api/v1/users/1", map[string]any{
			"birth_date": "",
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		useCase.AssertNotCalled(t, "PartialUpdate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AgeNotAllowed", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)

		ageErr := apperrors.Wrapf(domain.ErrAgeNotAllowed, "registration is allowed only from age %d", 18)
		useCase.On("PartialUpdate", mock.Anything, int64(1), mock.AnythingOfType("usecase.UserPatch")).
			Return(nil, ageErr)

		recorder := performRequest(router, http.MethodPatch, "/api/v1/users/1", map[string]any{
			"birth_date": "2020-01-01",
		})
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)

		useCase.On("Delete", mock.Anything, int64(1)).Return(nil)

		recorder := performRequest(router, http.MethodDelete, "/api/v1/users/1", nil)
		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Empty(t, recorder.Body.String())
	})

	t.Run("NotFound", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)

		notFound := apperrors.Wrapf(domain.ErrUserNotFound, "user by id %d not found", 1)
		useCase.On("Delete", mock.Anything, int64(1)).Return(notFound)

		recorder := performRequest(router, http.MethodDelete, "/api/v1/users/1", nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestUserHandler_SearchByDateRange(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)
		from := domain.NewDate(1999, time.January, 1)
		to := domain.NewDate(2001, time.December, 31)

		useCase.On("SearchByBirthDateRange", mock.Anything, from, to).
			Return([]*domain.User{handlerUser()}, nil)

		recorder := performRequest(
			router, http.MethodGet,
			"/api/v1/users/by-date-range?from_date=1999-01-01&to_date=2001-12-31", nil,
		)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var response []dto.UserResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Len(t, response, 1)
	})

	t.Run("MissingParameter", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)

		recorder := performRequest(
			router, http.MethodGet, "/api/v1/users/by-date-range?from_date=1999-01-01", nil,
		)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		useCase.AssertNotCalled(t, "SearchByBirthDateRange", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MalformedDate", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)

		recorder := performRequest(
			router, http.MethodGet,
			"/api/v1/users/by-date-range?from_date=01-01-1999&to_date=2001-12-31", nil,
		)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("InvalidRange", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := setupRouter(useCase)

		rangeErr := apperrors.Wrap(domain.ErrInvalidDateRange, `"from date" must not be after "to date"`)
		useCase.On("SearchByBirthDateRange", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, rangeErr)

		recorder := performRequest(
			router, http.MethodGet,
			"/api/v1/users/by-date-range?from_date=2001-01-01&to_date=1999-01-01", nil,
		)
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}
