// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/shophub/internal/platform/request"
	"github.com/taibuivan/shophub/internal/platform/respond"
	"github.com/taibuivan/shophub/internal/platform/validate"
	"github.com/taibuivan/shophub/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the account HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns the public account routes.
//
// # Endpoints
//   - POST /create-user : Registers a new account.
//   - POST /login-user  : Verifies credentials and returns a bearer token.
//   - POST /delete-user : Removes an account by email.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/create-user", handler.createUser)
	router.Post("/login-user", handler.loginUser)
	router.Post("/delete-user", handler.deleteUser)

	return router
}

// AdminRoutes returns the account administration routes.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/delete-user", handler.deleteUser)
	return router
}

// ProtectedRoutes returns the routes served behind the access gate.
//
// # Endpoints
//   - GET /me    : Echoes the verified token claims.
//   - GET /users : Paginated account listing.
func (handler *Handler) ProtectedRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/me", handler.me)
	router.Get("/users", handler.listUsers)
	return router
}

// # Request & Response Payloads

type createUserRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type deleteUserRequest struct {
	Email string `json:"email"`
}

type loginUserResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
	Status   int    `json:"status"`
}

/*
createUser registers a new account.

POST /api/auth/create-user

Response:
  - 201: {message, status}
  - 400: Missing credentials, or the email is already registered
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldFirstName, input.FirstName).
		Required(FieldLastName, input.LastName).
		Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)
	if err := validator.ErrWithMessage(msgMissingCredentials); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator.Email(FieldEmail, input.Email).
		MaxLen(FieldFirstName, input.FirstName, maxNameLength).
		MaxLen(FieldLastName, input.LastName, maxNameLength)
	if err := validator.ErrWithMessage(msgInvalidAccount); err != nil {
		respond.Error(writer, request, err)
		return
	}

	_, err := handler.authService.Register(request.Context(), RegisterInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, http.StatusCreated, msgUserCreated)
}

/*
loginUser exchanges an email and password for a bearer token.

POST /api/auth/login-user

Response:
  - 200: {message, username, email, token, status}
  - 400: Missing or invalid credentials
  - 404: Unknown email
*/
func (handler *Handler) loginUser(writer http.ResponseWriter, request *http.Request) {
	var input loginUserRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)
	if err := validator.ErrWithMessage(msgMissingCredentials); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, loginUserResponse{
		Message:  msgLoginSuccess,
		Username: result.User.Username,
		Email:    result.User.Email,
		Token:    result.Token,
		Status:   http.StatusOK,
	})
}

/*
deleteUser removes an account by email.

POST /api/auth/delete-user

Response:
  - 200: {message, status}
  - 400: Missing email
  - 404: Unknown email
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	var input deleteUserRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Delete(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, http.StatusOK, msgUserDeleted)
}

/*
me returns the claims the access gate verified.

GET /api/protected/me
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, msgCurrentUser, claims)
}

/*
listUsers returns a page of accounts, newest first.

GET /api/protected/users?page=&limit=
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, total, err := handler.authService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, msgUsersFetched, users, pagination.NewMeta(params, total))
}
