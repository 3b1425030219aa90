package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"medstory-be/internal/pkg/apperror"
	"medstory-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlerMapsKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"resolution", &apperror.ResolutionError{Section: "x"}, 422},
		{"validation", &apperror.ValidationError{Field: "title", Reason: "required"}, 400},
		{"transient", &apperror.TransientIOError{Store: "minio", Op: "upload", Err: errors.New("down")}, 503},
		{"partial", &apperror.PartialFailure{Op: "delete note", Legs: []apperror.LegResult{{Store: "blob", Err: errors.New("x")}, {Store: "document"}}}, 207},
		{"fiber", fiber.ErrNotFound, 404},
		{"other", errors.New("boom"), 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
			app.Get("/", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.code, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, float64(tc.code), body["code"])
		})
	}
}

func TestErrorHandlerPartialListsLegs(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/", func(c *fiber.Ctx) error {
		return &apperror.PartialFailure{Op: "delete note", Legs: []apperror.LegResult{
			{Store: "blob", Err: errors.New("timeout")},
			{Store: "document"},
		}}
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	var body BaseResponse[[]LegDetail]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []LegDetail{
		{Store: "blob", Succeeded: false, Error: "timeout"},
		{Store: "document", Succeeded: true},
	}, body.Data)
}

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestJwtMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(NewJwtMiddleware("secret"))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(GetUserId(c)) })

	req := httptest.NewRequest("GET", "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "other", jwt.MapClaims{"user_id": "u1"}))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "secret", jwt.MapClaims{"user_id": "u1"}))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestParseUserTokenRequiresUserId(t *testing.T) {
	_, err := ParseUserToken("secret", signedToken(t, "secret", jwt.MapClaims{"sub": "u1"}))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseUserToken("secret", "")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		Section string `validate:"required"`
	}
	err := ValidateRequest(req{})
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Section", verr.Field)
	assert.NoError(t, ValidateRequest(req{Section: "blood"}))
}
