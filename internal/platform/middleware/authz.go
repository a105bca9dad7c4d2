// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/shophub/internal/platform/apperr"
	"github.com/taibuivan/shophub/internal/platform/constants"
	"github.com/taibuivan/shophub/internal/platform/ctxutil"
	"github.com/taibuivan/shophub/internal/platform/respond"
	"github.com/taibuivan/shophub/internal/platform/sec"
)

const (
	msgTokenNotProvided = "Token not provided."
	msgTokenInvalid     = "Invalid or expired token."
)

// TokenVerifier is the part of [sec.TokenService] the access gate depends on.
type TokenVerifier interface {
	VerifyToken(token string) (*sec.AuthClaims, error)
}

// Authenticate is the access gate for the protected route group.
//
// # Flow
//  1. No Authorization header, or an empty token after the scheme: 401.
//  2. A scheme other than Bearer, or a token that fails verification: 403.
//  3. Otherwise the verified claims are put on the request context.
//
// Verification is local; the gate never touches the database.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := strings.TrimSpace(request.Header.Get(constants.HeaderAuthorization))
			if header == "" {
				respond.Error(writer, request, apperr.MissingToken(msgTokenNotProvided))
				return
			}

			scheme, token, _ := strings.Cut(header, " ")
			token = strings.TrimSpace(token)

			if !strings.EqualFold(scheme, constants.BearerScheme) {
				respond.Error(writer, request, apperr.InvalidToken(msgTokenInvalid))
				return
			}
			if token == "" {
				respond.Error(writer, request, apperr.MissingToken(msgTokenNotProvided))
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				ctxutil.Logger(request.Context()).DebugContext(request.Context(), "access_denied",
					"error", err.Error(),
				)
				respond.Error(writer, request, apperr.InvalidToken(msgTokenInvalid))
				return
			}

			ctx := ctxutil.WithCaller(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
